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

const playlistColumns = `p.id, p.user_id, p.name, p.created_at, p.updated_at`

func scanPlaylist(row scanner, p *models.Playlist) error {
	return row.Scan(&p.ID, &p.UserID, &p.Name, &p.CreatedAt, &p.UpdatedAt)
}

// CreatePlaylist creates an empty playlist for the user.
func (r *Repository) CreatePlaylist(ctx context.Context, userID uuid.UUID, name string) (*models.Playlist, error) {
	query := fmt.Sprintf(`
		INSERT INTO playlists AS p (user_id, name)
		VALUES ($1, $2)
		RETURNING %s
	`, playlistColumns)

	var playlist models.Playlist
	err := scanPlaylist(r.db.Pool.QueryRow(ctx, query, userID, name), &playlist)
	if err != nil {
		return nil, fmt.Errorf("failed to create playlist: %w", err)
	}

	return &playlist, nil
}

// DeletePlaylist removes an owned playlist.
func (r *Repository) DeletePlaylist(ctx context.Context, id, ownerID uuid.UUID) (*models.Playlist, error) {
	query := fmt.Sprintf(`
		DELETE FROM playlists p
		WHERE p.id = $1 AND p.user_id = $2
		RETURNING %s
	`, playlistColumns)

	var playlist models.Playlist
	err := scanPlaylist(r.db.Pool.QueryRow(ctx, query, id, ownerID), &playlist)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete playlist: %w", err)
	}

	return &playlist, nil
}

// GetOwnedPlaylist fetches a playlist scoped to its owner.
func (r *Repository) GetOwnedPlaylist(ctx context.Context, id, ownerID uuid.UUID) (*models.Playlist, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM playlists p WHERE p.id = $1 AND p.user_id = $2
	`, playlistColumns)

	var playlist models.Playlist
	err := scanPlaylist(r.db.Pool.QueryRow(ctx, query, id, ownerID), &playlist)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist: %w", err)
	}

	return &playlist, nil
}

// ListPlaylists returns one page of the owner's playlists.
func (r *Repository) ListPlaylists(ctx context.Context, ownerID uuid.UUID, cursor *models.TimeCursor, limit int) (*models.PlaylistPage, error) {
	where := []string{"p.user_id = $1"}
	args := []any{ownerID}

	if cursor != nil {
		args = append(args, cursor.Time, cursor.ID)
		where = append(where, timeKeyset("p.updated_at", "p.id", len(args)-1))
	}
	args = append(args, limit+1)

	query := fmt.Sprintf(`
		SELECT %s,
			(SELECT COUNT(*) FROM playlist_videos pv WHERE pv.playlist_id = p.id)
		FROM playlists p
		WHERE %s
		ORDER BY p.updated_at DESC, p.id DESC
		LIMIT $%d
	`, playlistColumns, strings.Join(where, " AND "), len(args))

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list playlists: %w", err)
	}
	defer rows.Close()

	var items []models.PlaylistItem
	for rows.Next() {
		var item models.PlaylistItem
		err := rows.Scan(&item.ID, &item.UserID, &item.Name, &item.CreatedAt, &item.UpdatedAt, &item.VideoCount)
		if err != nil {
			return nil, fmt.Errorf("failed to scan playlist: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list playlists: %w", err)
	}

	items, hasMore := trimPage(items, limit)
	page := &models.PlaylistPage{Items: items}
	if hasMore {
		last := items[len(items)-1]
		page.NextCursor = &models.TimeCursor{ID: last.ID, Time: last.UpdatedAt}
	}

	return page, nil
}

// AddPlaylistVideo puts a video into an owned playlist; adding the same
// video twice is a no-op.
func (r *Repository) AddPlaylistVideo(ctx context.Context, playlistID, ownerID, videoID uuid.UUID) error {
	if _, err := r.GetOwnedPlaylist(ctx, playlistID, ownerID); err != nil {
		return err
	}

	_, err := r.db.Pool.Exec(ctx, `
		INSERT INTO playlist_videos (playlist_id, video_id)
		VALUES ($1, $2)
		ON CONFLICT (playlist_id, video_id) DO NOTHING
	`, playlistID, videoID)
	if err != nil {
		return fmt.Errorf("failed to add playlist video: %w", err)
	}

	return nil
}

// RemovePlaylistVideo takes a video out of an owned playlist.
func (r *Repository) RemovePlaylistVideo(ctx context.Context, playlistID, ownerID, videoID uuid.UUID) error {
	if _, err := r.GetOwnedPlaylist(ctx, playlistID, ownerID); err != nil {
		return err
	}

	tag, err := r.db.Pool.Exec(ctx, `
		DELETE FROM playlist_videos WHERE playlist_id = $1 AND video_id = $2
	`, playlistID, videoID)
	if err != nil {
		return fmt.Errorf("failed to remove playlist video: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// ListPlaylistVideos returns one page of an owned playlist's videos.
func (r *Repository) ListPlaylistVideos(ctx context.Context, playlistID, ownerID uuid.UUID, cursor *models.TimeCursor, limit int) (*models.VideoPage, error) {
	if _, err := r.GetOwnedPlaylist(ctx, playlistID, ownerID); err != nil {
		return nil, err
	}

	where := []string{"pv.playlist_id = $1"}
	args := []any{playlistID}

	if cursor != nil {
		args = append(args, cursor.Time, cursor.ID)
		where = append(where, timeKeyset("v.updated_at", "v.id", len(args)-1))
	}
	args = append(args, limit+1)

	query := fmt.Sprintf(`
		SELECT %s, %s, %s
		FROM videos v
		JOIN users u ON u.id = v.user_id
		JOIN playlist_videos pv ON pv.video_id = v.id
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

// ListHistoryVideos returns one page of the viewer's watch history,
// ordered by when they watched each video.
func (r *Repository) ListHistoryVideos(ctx context.Context, viewerID uuid.UUID, cursor *models.TimeCursor, limit int) (*models.VideoPage, error) {
	where := []string{"v.visibility = 'public'", "vw.user_id = $1"}
	args := []any{viewerID}

	if cursor != nil {
		args = append(args, cursor.Time, cursor.ID)
		where = append(where, timeKeyset("vw.updated_at", "v.id", len(args)-1))
	}
	args = append(args, limit+1)

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, vw.updated_at
		FROM videos v
		JOIN users u ON u.id = v.user_id
		JOIN video_views vw ON vw.video_id = v.id
		WHERE %s
		ORDER BY vw.updated_at DESC, v.id DESC
		LIMIT $%d
	`, videoColumns, userColumns, videoCountColumns, strings.Join(where, " AND "), len(args))

	items, err := r.queryVideoItemsWithTime(ctx, query, true, args...)
	if err != nil {
		return nil, err
	}

	items, hasMore := trimPage(items, limit)
	page := &models.VideoPage{Items: items}
	if hasMore {
		last := items[len(items)-1]
		page.NextCursor = &models.TimeCursor{ID: last.ID, Time: *last.ViewedAt}
	}

	return page, nil
}

// ListLikedVideos returns one page of the videos the viewer liked,
// ordered by when they liked each one.
func (r *Repository) ListLikedVideos(ctx context.Context, viewerID uuid.UUID, cursor *models.TimeCursor, limit int) (*models.VideoPage, error) {
	where := []string{"v.visibility = 'public'", "lr.user_id = $1", "lr.type = 'like'"}
	args := []any{viewerID}

	if cursor != nil {
		args = append(args, cursor.Time, cursor.ID)
		where = append(where, timeKeyset("lr.updated_at", "v.id", len(args)-1))
	}
	args = append(args, limit+1)

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, lr.updated_at
		FROM videos v
		JOIN users u ON u.id = v.user_id
		JOIN video_reactions lr ON lr.video_id = v.id
		WHERE %s
		ORDER BY lr.updated_at DESC, v.id DESC
		LIMIT $%d
	`, videoColumns, userColumns, videoCountColumns, strings.Join(where, " AND "), len(args))

	items, err := r.queryVideoItemsWithTime(ctx, query, false, args...)
	if err != nil {
		return nil, err
	}

	items, hasMore := trimPage(items, limit)
	page := &models.VideoPage{Items: items}
	if hasMore {
		last := items[len(items)-1]
		page.NextCursor = &models.TimeCursor{ID: last.ID, Time: *last.LikedAt}
	}

	return page, nil
}

// queryVideoItemsWithTime scans feed rows carrying one extra timestamp
// column: viewed_at for history, liked_at otherwise.
func (r *Repository) queryVideoItemsWithTime(ctx context.Context, query string, viewed bool, args ...any) ([]models.VideoItem, error) {
	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}
	defer rows.Close()

	var items []models.VideoItem
	for rows.Next() {
		var item models.VideoItem
		err := rows.Scan(
			&item.ID, &item.UserID, &item.CategoryID, &item.Title, &item.Description, &item.Visibility,
			&item.MuxUploadID, &item.MuxAssetID, &item.MuxPlaybackID, &item.MuxStatus,
			&item.MuxTrackID, &item.MuxTrackStatus, &item.ThumbnailURL, &item.ThumbnailKey,
			&item.PreviewURL, &item.Duration, &item.CreatedAt, &item.UpdatedAt,
			&item.User.ID, &item.User.ExternalID, &item.User.Name, &item.User.ImageURL,
			&item.User.BannerURL, &item.User.BannerKey, &item.User.CreatedAt, &item.User.UpdatedAt,
			&item.ViewCount, &item.LikeCount, &item.DislikeCount,
			timeDest(&item, viewed),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan video: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func timeDest(item *models.VideoItem, viewed bool) any {
	if viewed {
		return &item.ViewedAt
	}
	return &item.LikedAt
}
