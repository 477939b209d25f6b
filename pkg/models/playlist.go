package models

import (
	"time"

	"github.com/google/uuid"
)

// Playlist is a user-curated list of videos.
type Playlist struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// PlaylistItem is a listed playlist with its video count.
type PlaylistItem struct {
	Playlist
	VideoCount int64 `json:"video_count"`
}

// PlaylistPage is one page of the owner's playlists.
type PlaylistPage struct {
	Items      []PlaylistItem `json:"items"`
	NextCursor *TimeCursor    `json:"next_cursor"`
}
