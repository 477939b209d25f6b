package models

import (
	"time"

	"github.com/google/uuid"
)

// Subscription is keyed by (viewer, creator). Self-subscriptions are
// rejected before the insert is attempted.
type Subscription struct {
	ViewerID  uuid.UUID `json:"viewer_id" db:"viewer_id"`
	CreatorID uuid.UUID `json:"creator_id" db:"creator_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// SubscriptionItem is a listed subscription with the creator loaded.
type SubscriptionItem struct {
	Subscription
	Creator         User  `json:"creator"`
	SubscriberCount int64 `json:"subscriber_count"`
}

// SubscriptionPage pages on (updated_at, creator_id); subscriptions
// have no surrogate id so the creator id breaks ties.
type SubscriptionPage struct {
	Items      []SubscriptionItem `json:"items"`
	NextCursor *TimeCursor        `json:"next_cursor"`
}
