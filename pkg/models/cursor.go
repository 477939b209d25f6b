package models

import (
	"time"

	"github.com/google/uuid"
)

// TimeCursor is a keyset pagination cursor for timestamp-ordered
// listings. Time holds the endpoint's sort key (updated_at, viewed_at
// or liked_at); ID breaks ties so that rows sharing a timestamp are
// neither skipped nor repeated across pages.
type TimeCursor struct {
	ID   uuid.UUID `json:"id"`
	Time time.Time `json:"time"`
}

// CountCursor is the trending cursor: view count with id tie-break.
type CountCursor struct {
	ID    uuid.UUID `json:"id"`
	Count int64     `json:"count"`
}
