package main

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/therealutkarshpriyadarshi/vidtube/internal/database"
	"github.com/therealutkarshpriyadarshi/vidtube/internal/videoplatform"
	"github.com/therealutkarshpriyadarshi/vidtube/pkg/models"
)

// Store interfaces consumed by the handlers. *database.Repository
// satisfies all of them; tests plug in fakes per domain.

type VideoStore interface {
	CreateVideo(ctx context.Context, userID uuid.UUID, title, muxUploadID string) (*models.Video, error)
	ListPublicVideos(ctx context.Context, filter database.VideoFilter, cursor *models.TimeCursor, limit int) (*models.VideoPage, error)
	ListTrendingVideos(ctx context.Context, cursor *models.CountCursor, limit int) (*models.TrendingPage, error)
	ListSubscribedVideos(ctx context.Context, viewerID uuid.UUID, cursor *models.TimeCursor, limit int) (*models.VideoPage, error)
	GetVideoDetail(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (*models.VideoDetail, error)
	UpdateVideo(ctx context.Context, id, ownerID uuid.UUID, update models.VideoUpdate) (*models.Video, error)
	DeleteVideo(ctx context.Context, id, ownerID uuid.UUID) (*models.Video, error)
	GetOwnedVideo(ctx context.Context, id, ownerID uuid.UUID) (*models.Video, error)
	ListOwnedVideos(ctx context.Context, ownerID uuid.UUID, cursor *models.TimeCursor, limit int) (*models.VideoPage, error)
	UpdateProviderSync(ctx context.Context, id, ownerID uuid.UUID, status, assetID string, playbackID *string, duration int64) (*models.Video, error)
	SetVideoThumbnail(ctx context.Context, id, ownerID uuid.UUID, url, key string) (*models.Video, error)
	ClearVideoThumbnail(ctx context.Context, id, ownerID uuid.UUID) error
}

type UserStore interface {
	GetUserProfile(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (*models.UserProfile, error)
	GetUserBannerKey(ctx context.Context, id uuid.UUID) (*string, error)
	SetUserBanner(ctx context.Context, id uuid.UUID, url, key string) error
	ClearUserBanner(ctx context.Context, id uuid.UUID) error
}

type CommentStore interface {
	CreateComment(ctx context.Context, userID, videoID uuid.UUID, parentID *uuid.UUID, value string) (*models.Comment, error)
	GetComment(ctx context.Context, id uuid.UUID) (*models.Comment, error)
	DeleteComment(ctx context.Context, id, userID uuid.UUID) (*models.Comment, error)
	ListComments(ctx context.Context, videoID uuid.UUID, parentID, viewerID *uuid.UUID, cursor *models.TimeCursor, limit int) (*models.CommentPage, error)
}

type ReactionStore interface {
	GetVideoReaction(ctx context.Context, userID, videoID uuid.UUID) (*models.VideoReaction, error)
	DeleteVideoReaction(ctx context.Context, userID, videoID uuid.UUID) (*models.VideoReaction, error)
	UpsertVideoReaction(ctx context.Context, userID, videoID uuid.UUID, reactionType string) (*models.VideoReaction, error)
	GetCommentReaction(ctx context.Context, userID, commentID uuid.UUID) (*models.CommentReaction, error)
	DeleteCommentReaction(ctx context.Context, userID, commentID uuid.UUID) (*models.CommentReaction, error)
	UpsertCommentReaction(ctx context.Context, userID, commentID uuid.UUID, reactionType string) (*models.CommentReaction, error)
}

type SubscriptionStore interface {
	CreateSubscription(ctx context.Context, viewerID, creatorID uuid.UUID) (*models.Subscription, error)
	DeleteSubscription(ctx context.Context, viewerID, creatorID uuid.UUID) (*models.Subscription, error)
	ListSubscriptions(ctx context.Context, viewerID uuid.UUID, cursor *models.TimeCursor, limit int) (*models.SubscriptionPage, error)
}

type ViewStore interface {
	CreateVideoView(ctx context.Context, userID, videoID uuid.UUID) (*models.VideoView, error)
}

type CategoryStore interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
}

type PlaylistStore interface {
	CreatePlaylist(ctx context.Context, userID uuid.UUID, name string) (*models.Playlist, error)
	DeletePlaylist(ctx context.Context, id, ownerID uuid.UUID) (*models.Playlist, error)
	ListPlaylists(ctx context.Context, ownerID uuid.UUID, cursor *models.TimeCursor, limit int) (*models.PlaylistPage, error)
	AddPlaylistVideo(ctx context.Context, playlistID, ownerID, videoID uuid.UUID) error
	RemovePlaylistVideo(ctx context.Context, playlistID, ownerID, videoID uuid.UUID) error
	ListPlaylistVideos(ctx context.Context, playlistID, ownerID uuid.UUID, cursor *models.TimeCursor, limit int) (*models.VideoPage, error)
	ListHistoryVideos(ctx context.Context, viewerID uuid.UUID, cursor *models.TimeCursor, limit int) (*models.VideoPage, error)
	ListLikedVideos(ctx context.Context, viewerID uuid.UUID, cursor *models.TimeCursor, limit int) (*models.VideoPage, error)
}

// VideoPlatform is the outbound provider surface.
type VideoPlatform interface {
	CreateDirectUpload(ctx context.Context) (*videoplatform.DirectUpload, error)
	GetAsset(ctx context.Context, assetID string) (*videoplatform.Asset, error)
	DeleteAsset(ctx context.Context, assetID string) error
}

// ObjectStorage holds thumbnails and banners.
type ObjectStorage interface {
	Upload(ctx context.Context, objectKey string, reader io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, objectKey string) error
}

// WorkflowTrigger starts background generation runs.
type WorkflowTrigger interface {
	Trigger(ctx context.Context, workflow, videoID, userID string) (string, error)
}

// CategoryCache fronts the static category list.
type CategoryCache interface {
	GetCategories(ctx context.Context) ([]models.Category, error)
	SetCategories(ctx context.Context, categories []models.Category) error
}

// HealthChecker reports store liveness for /health.
type HealthChecker interface {
	Health(ctx context.Context) error
}
