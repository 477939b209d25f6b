package models

import (
	"time"

	"github.com/google/uuid"
)

// VideoView records that a user watched a video, keyed by
// (user, video). Re-watching is a no-op; the original timestamps
// order the watch history.
type VideoView struct {
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	VideoID   uuid.UUID `json:"video_id" db:"video_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
