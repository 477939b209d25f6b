package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a provisioned account. ExternalID is the auth provider's
// subject id; rows are created and removed by the user webhook, never
// by the API itself.
type User struct {
	ID         uuid.UUID `json:"id" db:"id"`
	ExternalID string    `json:"external_id" db:"external_id"`
	Name       string    `json:"name" db:"name"`
	ImageURL   *string   `json:"image_url" db:"image_url"`
	BannerURL  *string   `json:"banner_url" db:"banner_url"`
	BannerKey  *string   `json:"banner_key" db:"banner_key"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// UserProfile is the public channel page payload.
type UserProfile struct {
	User
	VideoCount       int64 `json:"video_count"`
	SubscriberCount  int64 `json:"subscriber_count"`
	ViewerSubscribed bool  `json:"viewer_subscribed"`
}
