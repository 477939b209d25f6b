package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/therealutkarshpriyadarshi/vidtube/pkg/models"
)

const videoColumns = `v.id, v.user_id, v.category_id, v.title, v.description, v.visibility,
	v.mux_upload_id, v.mux_asset_id, v.mux_playback_id, v.mux_status,
	v.mux_track_id, v.mux_track_status, v.thumbnail_url, v.thumbnail_key,
	v.preview_url, v.duration, v.created_at, v.updated_at`

const userColumns = `u.id, u.external_id, u.name, u.image_url, u.banner_url, u.banner_key,
	u.created_at, u.updated_at`

// Correlated scalar subqueries stand in for the CTE joins the frontend
// ORM used for the same counts.
const videoCountColumns = `(SELECT COUNT(*) FROM video_views vv WHERE vv.video_id = v.id),
	(SELECT COUNT(*) FROM video_reactions vr WHERE vr.video_id = v.id AND vr.type = 'like'),
	(SELECT COUNT(*) FROM video_reactions vr WHERE vr.video_id = v.id AND vr.type = 'dislike')`

const viewCountExpr = `(SELECT COUNT(*) FROM video_views vv WHERE vv.video_id = v.id)`

type scanner interface {
	Scan(dest ...any) error
}

func scanVideo(row scanner, v *models.Video) error {
	return row.Scan(
		&v.ID, &v.UserID, &v.CategoryID, &v.Title, &v.Description, &v.Visibility,
		&v.MuxUploadID, &v.MuxAssetID, &v.MuxPlaybackID, &v.MuxStatus,
		&v.MuxTrackID, &v.MuxTrackStatus, &v.ThumbnailURL, &v.ThumbnailKey,
		&v.PreviewURL, &v.Duration, &v.CreatedAt, &v.UpdatedAt,
	)
}

func scanVideoItem(row scanner, item *models.VideoItem) error {
	return row.Scan(
		&item.ID, &item.UserID, &item.CategoryID, &item.Title, &item.Description, &item.Visibility,
		&item.MuxUploadID, &item.MuxAssetID, &item.MuxPlaybackID, &item.MuxStatus,
		&item.MuxTrackID, &item.MuxTrackStatus, &item.ThumbnailURL, &item.ThumbnailKey,
		&item.PreviewURL, &item.Duration, &item.CreatedAt, &item.UpdatedAt,
		&item.User.ID, &item.User.ExternalID, &item.User.Name, &item.User.ImageURL,
		&item.User.BannerURL, &item.User.BannerKey, &item.User.CreatedAt, &item.User.UpdatedAt,
		&item.ViewCount, &item.LikeCount, &item.DislikeCount,
	)
}

// VideoFilter narrows the public feed.
type VideoFilter struct {
	CategoryID *uuid.UUID
	UserID     *uuid.UUID
	Query      string
}

// CreateVideo inserts the row for a freshly opened upload session.
func (r *Repository) CreateVideo(ctx context.Context, userID uuid.UUID, title, muxUploadID string) (*models.Video, error) {
	query := fmt.Sprintf(`
		INSERT INTO videos AS v (user_id, title, mux_status, mux_upload_id)
		VALUES ($1, $2, $3, $4)
		RETURNING %s
	`, videoColumns)

	var video models.Video
	err := scanVideo(r.db.Pool.QueryRow(ctx, query, userID, title, models.MuxStatusWaiting, muxUploadID), &video)
	if err != nil {
		return nil, fmt.Errorf("failed to create video: %w", err)
	}

	return &video, nil
}

// ListPublicVideos returns one page of the public feed, optionally
// narrowed by category, owner or a title search.
func (r *Repository) ListPublicVideos(ctx context.Context, filter VideoFilter, cursor *models.TimeCursor, limit int) (*models.VideoPage, error) {
	where := []string{"v.visibility = 'public'"}
	var args []any

	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		where = append(where, fmt.Sprintf("v.category_id = $%d", len(args)))
	}
	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		where = append(where, fmt.Sprintf("v.user_id = $%d", len(args)))
	}
	if filter.Query != "" {
		args = append(args, filter.Query)
		where = append(where, fmt.Sprintf("v.title ILIKE '%%' || $%d || '%%'", len(args)))
	}
	if cursor != nil {
		args = append(args, cursor.Time, cursor.ID)
		where = append(where, timeKeyset("v.updated_at", "v.id", len(args)-1))
	}
	args = append(args, limit+1)

	query := fmt.Sprintf(`
		SELECT %s, %s, %s
		FROM videos v
		JOIN users u ON u.id = v.user_id
		WHERE %s
		ORDER BY v.updated_at DESC, v.id DESC
		LIMIT $%d
	`, videoColumns, userColumns, videoCountColumns, strings.Join(where, " AND "), len(args))

	items, err := r.queryVideoItems(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	items, hasMore := trimPage(items, limit)
	page := &models.VideoPage{Items: items}
	if hasMore {
		last := items[len(items)-1]
		page.NextCursor = &models.TimeCursor{ID: last.ID, Time: last.UpdatedAt}
	}

	return page, nil
}

// ListTrendingVideos orders the public feed by view count.
func (r *Repository) ListTrendingVideos(ctx context.Context, cursor *models.CountCursor, limit int) (*models.TrendingPage, error) {
	where := []string{"v.visibility = 'public'"}
	var args []any

	if cursor != nil {
		args = append(args, cursor.Count, cursor.ID)
		where = append(where, countKeyset(viewCountExpr, "v.id", len(args)-1))
	}
	args = append(args, limit+1)

	query := fmt.Sprintf(`
		SELECT %s, %s, %s
		FROM videos v
		JOIN users u ON u.id = v.user_id
		WHERE %s
		ORDER BY %s DESC, v.id DESC
		LIMIT $%d
	`, videoColumns, userColumns, videoCountColumns, strings.Join(where, " AND "), viewCountExpr, len(args))

	items, err := r.queryVideoItems(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	items, hasMore := trimPage(items, limit)
	page := &models.TrendingPage{Items: items}
	if hasMore {
		last := items[len(items)-1]
		page.NextCursor = &models.CountCursor{ID: last.ID, Count: last.ViewCount}
	}

	return page, nil
}

// ListSubscribedVideos restricts the public feed to creators the viewer
// is subscribed to.
func (r *Repository) ListSubscribedVideos(ctx context.Context, viewerID uuid.UUID, cursor *models.TimeCursor, limit int) (*models.VideoPage, error) {
	where := []string{"v.visibility = 'public'", "s.viewer_id = $1"}
	args := []any{viewerID}

	if cursor != nil {
		args = append(args, cursor.Time, cursor.ID)
		where = append(where, timeKeyset("v.updated_at", "v.id", len(args)-1))
	}
	args = append(args, limit+1)

	query := fmt.Sprintf(`
		SELECT %s, %s, %s
		FROM videos v
		JOIN users u ON u.id = v.user_id
		JOIN subscriptions s ON s.creator_id = v.user_id
		WHERE %s
		ORDER BY v.updated_at DESC, v.id DESC
		LIMIT $%d
	`, videoColumns, userColumns, videoCountColumns, strings.Join(where, " AND "), len(args))

	items, err := r.queryVideoItems(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	items, hasMore := trimPage(items, limit)
	page := &models.VideoPage{Items: items}
	if hasMore {
		last := items[len(items)-1]
		page.NextCursor = &models.TimeCursor{ID: last.ID, Time: last.UpdatedAt}
	}

	return page, nil
}

func (r *Repository) queryVideoItems(ctx context.Context, query string, args ...any) ([]models.VideoItem, error) {
	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}
	defer rows.Close()

	var items []models.VideoItem
	for rows.Next() {
		var item models.VideoItem
		if err := scanVideoItem(rows, &item); err != nil {
			return nil, fmt.Errorf("failed to scan video: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// GetVideoDetail loads a single video with its owner and the viewer's
// own reaction and subscription state. viewerID may be nil.
func (r *Repository) GetVideoDetail(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (*models.VideoDetail, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s,
			(SELECT COUNT(*) FROM subscriptions s WHERE s.creator_id = u.id),
			EXISTS(SELECT 1 FROM subscriptions s WHERE s.creator_id = u.id AND s.viewer_id = $2),
			%s,
			(SELECT vr.type FROM video_reactions vr WHERE vr.video_id = v.id AND vr.user_id = $2)
		FROM videos v
		JOIN users u ON u.id = v.user_id
		WHERE v.id = $1
	`, videoColumns, userColumns, videoCountColumns)

	var d models.VideoDetail
	err := r.db.Pool.QueryRow(ctx, query, id, viewerID).Scan(
		&d.ID, &d.UserID, &d.CategoryID, &d.Title, &d.Description, &d.Visibility,
		&d.MuxUploadID, &d.MuxAssetID, &d.MuxPlaybackID, &d.MuxStatus,
		&d.MuxTrackID, &d.MuxTrackStatus, &d.ThumbnailURL, &d.ThumbnailKey,
		&d.PreviewURL, &d.Duration, &d.CreatedAt, &d.UpdatedAt,
		&d.User.ID, &d.User.ExternalID, &d.User.Name, &d.User.ImageURL,
		&d.User.BannerURL, &d.User.BannerKey, &d.User.CreatedAt, &d.User.UpdatedAt,
		&d.User.SubscriberCount, &d.User.ViewerSubscribed,
		&d.ViewCount, &d.LikeCount, &d.DislikeCount,
		&d.ViewerReaction,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get video: %w", err)
	}

	return &d, nil
}

// UpdateVideo applies an owner edit. Zero matched rows means absent or
// not owned, reported identically.
func (r *Repository) UpdateVideo(ctx context.Context, id, ownerID uuid.UUID, upd models.VideoUpdate) (*models.Video, error) {
	query := fmt.Sprintf(`
		UPDATE videos v
		SET title = $3, description = $4, category_id = $5, visibility = $6, updated_at = now()
		WHERE v.id = $1 AND v.user_id = $2
		RETURNING %s
	`, videoColumns)

	var video models.Video
	err := scanVideo(r.db.Pool.QueryRow(ctx, query, id, ownerID, upd.Title, upd.Description, upd.CategoryID, upd.Visibility), &video)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update video: %w", err)
	}

	return &video, nil
}

// DeleteVideo removes an owned video.
func (r *Repository) DeleteVideo(ctx context.Context, id, ownerID uuid.UUID) (*models.Video, error) {
	query := fmt.Sprintf(`
		DELETE FROM videos v
		WHERE v.id = $1 AND v.user_id = $2
		RETURNING %s
	`, videoColumns)

	var video models.Video
	err := scanVideo(r.db.Pool.QueryRow(ctx, query, id, ownerID), &video)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete video: %w", err)
	}

	return &video, nil
}

// GetOwnedVideo fetches a video scoped to its owner (studio detail).
func (r *Repository) GetOwnedVideo(ctx context.Context, id, ownerID uuid.UUID) (*models.Video, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM videos v WHERE v.id = $1 AND v.user_id = $2
	`, videoColumns)

	var video models.Video
	err := scanVideo(r.db.Pool.QueryRow(ctx, query, id, ownerID), &video)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get video: %w", err)
	}

	return &video, nil
}

// ListOwnedVideos is the studio listing: every video of the owner
// regardless of visibility.
func (r *Repository) ListOwnedVideos(ctx context.Context, ownerID uuid.UUID, cursor *models.TimeCursor, limit int) (*models.VideoPage, error) {
	where := []string{"v.user_id = $1"}
	args := []any{ownerID}

	if cursor != nil {
		args = append(args, cursor.Time, cursor.ID)
		where = append(where, timeKeyset("v.updated_at", "v.id", len(args)-1))
	}
	args = append(args, limit+1)

	query := fmt.Sprintf(`
		SELECT %s, %s, %s
		FROM videos v
		JOIN users u ON u.id = v.user_id
		WHERE %s
		ORDER BY v.updated_at DESC, v.id DESC
		LIMIT $%d
	`, videoColumns, userColumns, videoCountColumns, strings.Join(where, " AND "), len(args))

	items, err := r.queryVideoItems(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	items, hasMore := trimPage(items, limit)
	page := &models.VideoPage{Items: items}
	if hasMore {
		last := items[len(items)-1]
		page.NextCursor = &models.TimeCursor{ID: last.ID, Time: last.UpdatedAt}
	}

	return page, nil
}

// UpdateProviderSync re-applies provider state fetched by revalidate.
func (r *Repository) UpdateProviderSync(ctx context.Context, id, ownerID uuid.UUID, status string, assetID string, playbackID *string, duration int64) (*models.Video, error) {
	query := fmt.Sprintf(`
		UPDATE videos v
		SET mux_status = $3, mux_asset_id = $4, mux_playback_id = $5, duration = $6
		WHERE v.id = $1 AND v.user_id = $2
		RETURNING %s
	`, videoColumns)

	var video models.Video
	err := scanVideo(r.db.Pool.QueryRow(ctx, query, id, ownerID, status, assetID, playbackID, duration), &video)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to sync video: %w", err)
	}

	return &video, nil
}

// SetVideoThumbnail records a replacement thumbnail object.
func (r *Repository) SetVideoThumbnail(ctx context.Context, id, ownerID uuid.UUID, url, key string) (*models.Video, error) {
	query := fmt.Sprintf(`
		UPDATE videos v
		SET thumbnail_url = $3, thumbnail_key = $4
		WHERE v.id = $1 AND v.user_id = $2
		RETURNING %s
	`, videoColumns)

	var video models.Video
	err := scanVideo(r.db.Pool.QueryRow(ctx, query, id, ownerID, url, key), &video)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to set thumbnail: %w", err)
	}

	return &video, nil
}

// ClearVideoThumbnail drops the stored thumbnail reference.
func (r *Repository) ClearVideoThumbnail(ctx context.Context, id, ownerID uuid.UUID) error {
	tag, err := r.db.Pool.Exec(ctx, `
		UPDATE videos SET thumbnail_url = NULL, thumbnail_key = NULL
		WHERE id = $1 AND user_id = $2
	`, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to clear thumbnail: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// Webhook updates. All of these key on the provider's correlation id
// because the provider never learns our primary keys, and all are pure
// column sets so re-delivery is harmless.

// SetAssetByUploadID links a created provider asset to its video row.
func (r *Repository) SetAssetByUploadID(ctx context.Context, uploadID, assetID, status string) error {
	_, err := r.db.Pool.Exec(ctx, `
		UPDATE videos SET mux_asset_id = $2, mux_status = $3
		WHERE mux_upload_id = $1
	`, uploadID, assetID, status)
	if err != nil {
		return fmt.Errorf("failed to set asset: %w", err)
	}

	return nil
}

// MarkAssetReadyByUploadID applies the ready transition.
func (r *Repository) MarkAssetReadyByUploadID(ctx context.Context, uploadID, assetID, playbackID, status, thumbnailURL, previewURL string, duration int64) error {
	_, err := r.db.Pool.Exec(ctx, `
		UPDATE videos
		SET mux_asset_id = $2, mux_playback_id = $3, mux_status = $4,
		    thumbnail_url = $5, preview_url = $6, duration = $7
		WHERE mux_upload_id = $1
	`, uploadID, assetID, playbackID, status, thumbnailURL, previewURL, duration)
	if err != nil {
		return fmt.Errorf("failed to mark asset ready: %w", err)
	}

	return nil
}

// SetStatusByUploadID records an errored (or other) provider status.
func (r *Repository) SetStatusByUploadID(ctx context.Context, uploadID, status string) error {
	_, err := r.db.Pool.Exec(ctx, `
		UPDATE videos SET mux_status = $2 WHERE mux_upload_id = $1
	`, uploadID, status)
	if err != nil {
		return fmt.Errorf("failed to set status: %w", err)
	}

	return nil
}

// DeleteVideoByUploadID removes the row when the provider deletes the
// asset.
func (r *Repository) DeleteVideoByUploadID(ctx context.Context, uploadID string) error {
	_, err := r.db.Pool.Exec(ctx, `
		DELETE FROM videos WHERE mux_upload_id = $1
	`, uploadID)
	if err != nil {
		return fmt.Errorf("failed to delete video: %w", err)
	}

	return nil
}

// SetTrackByAssetID records subtitle track state.
func (r *Repository) SetTrackByAssetID(ctx context.Context, assetID, trackID, trackStatus string) error {
	_, err := r.db.Pool.Exec(ctx, `
		UPDATE videos SET mux_track_id = $2, mux_track_status = $3
		WHERE mux_asset_id = $1
	`, assetID, trackID, trackStatus)
	if err != nil {
		return fmt.Errorf("failed to set track: %w", err)
	}

	return nil
}
