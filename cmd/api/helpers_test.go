package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/therealutkarshpriyadarshi/vidtube/internal/database"
	"github.com/therealutkarshpriyadarshi/vidtube/internal/logging"
	"github.com/therealutkarshpriyadarshi/vidtube/internal/middleware"
	"github.com/therealutkarshpriyadarshi/vidtube/internal/videoplatform"
	"github.com/therealutkarshpriyadarshi/vidtube/pkg/models"
)

// Fakes with function fields: tests set only the calls they expect,
// anything else answers ErrNotFound.

type fakeVideoStore struct {
	createVideo          func(ctx context.Context, userID uuid.UUID, title, muxUploadID string) (*models.Video, error)
	listPublicVideos     func(ctx context.Context, filter database.VideoFilter, cursor *models.TimeCursor, limit int) (*models.VideoPage, error)
	listTrendingVideos   func(ctx context.Context, cursor *models.CountCursor, limit int) (*models.TrendingPage, error)
	listSubscribedVideos func(ctx context.Context, viewerID uuid.UUID, cursor *models.TimeCursor, limit int) (*models.VideoPage, error)
	getVideoDetail       func(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (*models.VideoDetail, error)
	updateVideo          func(ctx context.Context, id, ownerID uuid.UUID, update models.VideoUpdate) (*models.Video, error)
	deleteVideo          func(ctx context.Context, id, ownerID uuid.UUID) (*models.Video, error)
	getOwnedVideo        func(ctx context.Context, id, ownerID uuid.UUID) (*models.Video, error)
	listOwnedVideos      func(ctx context.Context, ownerID uuid.UUID, cursor *models.TimeCursor, limit int) (*models.VideoPage, error)
	updateProviderSync   func(ctx context.Context, id, ownerID uuid.UUID, status, assetID string, playbackID *string, duration int64) (*models.Video, error)
	setVideoThumbnail    func(ctx context.Context, id, ownerID uuid.UUID, url, key string) (*models.Video, error)
	clearVideoThumbnail  func(ctx context.Context, id, ownerID uuid.UUID) error
}

func (f *fakeVideoStore) CreateVideo(ctx context.Context, userID uuid.UUID, title, muxUploadID string) (*models.Video, error) {
	return f.createVideo(ctx, userID, title, muxUploadID)
}

func (f *fakeVideoStore) ListPublicVideos(ctx context.Context, filter database.VideoFilter, cursor *models.TimeCursor, limit int) (*models.VideoPage, error) {
	return f.listPublicVideos(ctx, filter, cursor, limit)
}

func (f *fakeVideoStore) ListTrendingVideos(ctx context.Context, cursor *models.CountCursor, limit int) (*models.TrendingPage, error) {
	return f.listTrendingVideos(ctx, cursor, limit)
}

func (f *fakeVideoStore) ListSubscribedVideos(ctx context.Context, viewerID uuid.UUID, cursor *models.TimeCursor, limit int) (*models.VideoPage, error) {
	return f.listSubscribedVideos(ctx, viewerID, cursor, limit)
}

func (f *fakeVideoStore) GetVideoDetail(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (*models.VideoDetail, error) {
	return f.getVideoDetail(ctx, id, viewerID)
}

func (f *fakeVideoStore) UpdateVideo(ctx context.Context, id, ownerID uuid.UUID, update models.VideoUpdate) (*models.Video, error) {
	return f.updateVideo(ctx, id, ownerID, update)
}

func (f *fakeVideoStore) DeleteVideo(ctx context.Context, id, ownerID uuid.UUID) (*models.Video, error) {
	return f.deleteVideo(ctx, id, ownerID)
}

func (f *fakeVideoStore) GetOwnedVideo(ctx context.Context, id, ownerID uuid.UUID) (*models.Video, error) {
	return f.getOwnedVideo(ctx, id, ownerID)
}

func (f *fakeVideoStore) ListOwnedVideos(ctx context.Context, ownerID uuid.UUID, cursor *models.TimeCursor, limit int) (*models.VideoPage, error) {
	return f.listOwnedVideos(ctx, ownerID, cursor, limit)
}

func (f *fakeVideoStore) UpdateProviderSync(ctx context.Context, id, ownerID uuid.UUID, status, assetID string, playbackID *string, duration int64) (*models.Video, error) {
	return f.updateProviderSync(ctx, id, ownerID, status, assetID, playbackID, duration)
}

func (f *fakeVideoStore) SetVideoThumbnail(ctx context.Context, id, ownerID uuid.UUID, url, key string) (*models.Video, error) {
	return f.setVideoThumbnail(ctx, id, ownerID, url, key)
}

func (f *fakeVideoStore) ClearVideoThumbnail(ctx context.Context, id, ownerID uuid.UUID) error {
	return f.clearVideoThumbnail(ctx, id, ownerID)
}

// fakeReactionStore mirrors the DB semantics in memory: at most one
// row per (user, target) pair.
type fakeReactionStore struct {
	videoReactions   map[string]string
	commentReactions map[string]string
}

func newFakeReactionStore() *fakeReactionStore {
	return &fakeReactionStore{
		videoReactions:   make(map[string]string),
		commentReactions: make(map[string]string),
	}
}

func reactionKey(userID, targetID uuid.UUID) string {
	return userID.String() + ":" + targetID.String()
}

func (f *fakeReactionStore) GetVideoReaction(_ context.Context, userID, videoID uuid.UUID) (*models.VideoReaction, error) {
	if t, ok := f.videoReactions[reactionKey(userID, videoID)]; ok {
		return &models.VideoReaction{UserID: userID, VideoID: videoID, Type: t}, nil
	}
	return nil, nil
}

func (f *fakeReactionStore) DeleteVideoReaction(_ context.Context, userID, videoID uuid.UUID) (*models.VideoReaction, error) {
	key := reactionKey(userID, videoID)
	t, ok := f.videoReactions[key]
	if !ok {
		return nil, database.ErrNotFound
	}
	delete(f.videoReactions, key)
	return &models.VideoReaction{UserID: userID, VideoID: videoID, Type: t}, nil
}

func (f *fakeReactionStore) UpsertVideoReaction(_ context.Context, userID, videoID uuid.UUID, reactionType string) (*models.VideoReaction, error) {
	f.videoReactions[reactionKey(userID, videoID)] = reactionType
	return &models.VideoReaction{UserID: userID, VideoID: videoID, Type: reactionType}, nil
}

func (f *fakeReactionStore) GetCommentReaction(_ context.Context, userID, commentID uuid.UUID) (*models.CommentReaction, error) {
	if t, ok := f.commentReactions[reactionKey(userID, commentID)]; ok {
		return &models.CommentReaction{UserID: userID, CommentID: commentID, Type: t}, nil
	}
	return nil, nil
}

func (f *fakeReactionStore) DeleteCommentReaction(_ context.Context, userID, commentID uuid.UUID) (*models.CommentReaction, error) {
	key := reactionKey(userID, commentID)
	t, ok := f.commentReactions[key]
	if !ok {
		return nil, database.ErrNotFound
	}
	delete(f.commentReactions, key)
	return &models.CommentReaction{UserID: userID, CommentID: commentID, Type: t}, nil
}

func (f *fakeReactionStore) UpsertCommentReaction(_ context.Context, userID, commentID uuid.UUID, reactionType string) (*models.CommentReaction, error) {
	f.commentReactions[reactionKey(userID, commentID)] = reactionType
	return &models.CommentReaction{UserID: userID, CommentID: commentID, Type: reactionType}, nil
}

// fakeSubscriptionStore keeps one row per (viewer, creator).
type fakeSubscriptionStore struct {
	rows map[string]bool
}

func newFakeSubscriptionStore() *fakeSubscriptionStore {
	return &fakeSubscriptionStore{rows: make(map[string]bool)}
}

func (f *fakeSubscriptionStore) CreateSubscription(_ context.Context, viewerID, creatorID uuid.UUID) (*models.Subscription, error) {
	f.rows[reactionKey(viewerID, creatorID)] = true
	return &models.Subscription{ViewerID: viewerID, CreatorID: creatorID}, nil
}

func (f *fakeSubscriptionStore) DeleteSubscription(_ context.Context, viewerID, creatorID uuid.UUID) (*models.Subscription, error) {
	key := reactionKey(viewerID, creatorID)
	if !f.rows[key] {
		return nil, database.ErrNotFound
	}
	delete(f.rows, key)
	return &models.Subscription{ViewerID: viewerID, CreatorID: creatorID}, nil
}

func (f *fakeSubscriptionStore) ListSubscriptions(_ context.Context, viewerID uuid.UUID, cursor *models.TimeCursor, limit int) (*models.SubscriptionPage, error) {
	return &models.SubscriptionPage{}, nil
}

type fakeCommentStore struct {
	comments map[uuid.UUID]*models.Comment
	created  []*models.Comment
}

func newFakeCommentStore() *fakeCommentStore {
	return &fakeCommentStore{comments: make(map[uuid.UUID]*models.Comment)}
}

func (f *fakeCommentStore) CreateComment(_ context.Context, userID, videoID uuid.UUID, parentID *uuid.UUID, value string) (*models.Comment, error) {
	comment := &models.Comment{ID: uuid.New(), VideoID: videoID, UserID: userID, ParentID: parentID, Value: value}
	f.comments[comment.ID] = comment
	f.created = append(f.created, comment)
	return comment, nil
}

func (f *fakeCommentStore) GetComment(_ context.Context, id uuid.UUID) (*models.Comment, error) {
	if comment, ok := f.comments[id]; ok {
		return comment, nil
	}
	return nil, database.ErrNotFound
}

func (f *fakeCommentStore) DeleteComment(_ context.Context, id, userID uuid.UUID) (*models.Comment, error) {
	comment, ok := f.comments[id]
	if !ok || comment.UserID != userID {
		return nil, database.ErrNotFound
	}
	delete(f.comments, id)
	return comment, nil
}

func (f *fakeCommentStore) ListComments(_ context.Context, videoID uuid.UUID, parentID, viewerID *uuid.UUID, cursor *models.TimeCursor, limit int) (*models.CommentPage, error) {
	return &models.CommentPage{}, nil
}

type fakePlatform struct {
	upload    *videoplatform.DirectUpload
	asset     *videoplatform.Asset
	deletedID string
}

func (f *fakePlatform) CreateDirectUpload(_ context.Context) (*videoplatform.DirectUpload, error) {
	return f.upload, nil
}

func (f *fakePlatform) GetAsset(_ context.Context, assetID string) (*videoplatform.Asset, error) {
	return f.asset, nil
}

func (f *fakePlatform) DeleteAsset(_ context.Context, assetID string) error {
	f.deletedID = assetID
	return nil
}

type fakeWorkflows struct {
	triggered []string
	runID     string
}

func (f *fakeWorkflows) Trigger(_ context.Context, workflow, videoID, userID string) (string, error) {
	f.triggered = append(f.triggered, workflow)
	return f.runID, nil
}

func newTestAPI() *API {
	return &API{
		imageBaseURL: "https://image.example.com",
		logger:       logging.NewDefaultLogger(),
	}
}

// authAs injects a signed-in user the way RequireAuth would.
func authAs(user *models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.AuthContextKey, user)
		c.Next()
	}
}

func testUser() *models.User {
	return &models.User{ID: uuid.New(), ExternalID: "ext_test", Name: "Test User"}
}
