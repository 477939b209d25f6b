package models

import (
	"time"

	"github.com/google/uuid"
)

// Video represents a video row. The mux_* columns mirror the state of
// the corresponding asset at the video provider and are written by the
// webhook ingester; everything else is owner-editable.
type Video struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	UserID         uuid.UUID  `json:"user_id" db:"user_id"`
	CategoryID     *uuid.UUID `json:"category_id" db:"category_id"`
	Title          string     `json:"title" db:"title"`
	Description    *string    `json:"description" db:"description"`
	Visibility     string     `json:"visibility" db:"visibility"`
	MuxUploadID    *string    `json:"mux_upload_id" db:"mux_upload_id"`
	MuxAssetID     *string    `json:"mux_asset_id" db:"mux_asset_id"`
	MuxPlaybackID  *string    `json:"mux_playback_id" db:"mux_playback_id"`
	MuxStatus      *string    `json:"mux_status" db:"mux_status"`
	MuxTrackID     *string    `json:"mux_track_id" db:"mux_track_id"`
	MuxTrackStatus *string    `json:"mux_track_status" db:"mux_track_status"`
	ThumbnailURL   *string    `json:"thumbnail_url" db:"thumbnail_url"`
	ThumbnailKey   *string    `json:"thumbnail_key" db:"thumbnail_key"`
	PreviewURL     *string    `json:"preview_url" db:"preview_url"`
	Duration       int64      `json:"duration" db:"duration"` // milliseconds
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}

// Visibility values
const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

// Provider asset status values mirrored into mux_status
const (
	MuxStatusWaiting = "waiting"
	MuxStatusReady   = "ready"
	MuxStatusErrored = "errored"
)

// VideoItem is a feed row: the video plus its owner and aggregate
// counts. ViewedAt/LikedAt are only populated by the history and liked
// playlists respectively.
type VideoItem struct {
	Video
	User         User       `json:"user"`
	ViewCount    int64      `json:"view_count"`
	LikeCount    int64      `json:"like_count"`
	DislikeCount int64      `json:"dislike_count"`
	ViewedAt     *time.Time `json:"viewed_at,omitempty"`
	LikedAt      *time.Time `json:"liked_at,omitempty"`
}

// VideoOwner is a video's creator as seen by a viewer.
type VideoOwner struct {
	User
	SubscriberCount  int64 `json:"subscriber_count"`
	ViewerSubscribed bool  `json:"viewer_subscribed"`
}

// VideoDetail is the single-video payload with viewer personalization.
type VideoDetail struct {
	Video
	User           VideoOwner `json:"user"`
	ViewCount      int64      `json:"view_count"`
	LikeCount      int64      `json:"like_count"`
	DislikeCount   int64      `json:"dislike_count"`
	ViewerReaction *string    `json:"viewer_reaction"`
}

// VideoPage is one page of a cursor-paginated video listing.
type VideoPage struct {
	Items      []VideoItem `json:"items"`
	NextCursor *TimeCursor `json:"next_cursor"`
}

// TrendingPage orders by view count instead of a timestamp.
type TrendingPage struct {
	Items      []VideoItem  `json:"items"`
	NextCursor *CountCursor `json:"next_cursor"`
}

// VideoUpdate carries an owner edit of video metadata.
type VideoUpdate struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	CategoryID  *uuid.UUID `json:"category_id"`
	Visibility  string     `json:"visibility"`
}
