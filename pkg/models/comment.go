package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a comment or a single-level reply (ParentID set).
type Comment struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	VideoID   uuid.UUID  `json:"video_id" db:"video_id"`
	UserID    uuid.UUID  `json:"user_id" db:"user_id"`
	ParentID  *uuid.UUID `json:"parent_id" db:"parent_id"`
	Value     string     `json:"value" db:"value"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}

// CommentItem is a listed comment with its author, counts and the
// viewer's own reaction when authenticated.
type CommentItem struct {
	Comment
	User           User    `json:"user"`
	LikeCount      int64   `json:"like_count"`
	DislikeCount   int64   `json:"dislike_count"`
	ReplyCount     int64   `json:"reply_count"`
	ViewerReaction *string `json:"viewer_reaction"`
}

// CommentPage is one page of comments plus the video's total count.
type CommentPage struct {
	Items      []CommentItem `json:"items"`
	NextCursor *TimeCursor   `json:"next_cursor"`
	TotalCount int64         `json:"total_count"`
}
