package models

import (
	"time"

	"github.com/google/uuid"
)

// Reaction type values
const (
	ReactionLike    = "like"
	ReactionDislike = "dislike"
)

// VideoReaction is keyed by (user, video); at most one row per pair.
type VideoReaction struct {
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	VideoID   uuid.UUID `json:"video_id" db:"video_id"`
	Type      string    `json:"type" db:"type"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CommentReaction is keyed by (user, comment); at most one row per pair.
type CommentReaction struct {
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	CommentID uuid.UUID `json:"comment_id" db:"comment_id"`
	Type      string    `json:"type" db:"type"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
