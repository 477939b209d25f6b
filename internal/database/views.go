package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/therealutkarshpriyadarshi/vidtube/pkg/models"
)

const viewColumns = `user_id, video_id, created_at, updated_at`

// CreateVideoView records a watch. Watching again returns the original
// row untouched so view counts stay one-per-user and the watch history
// keeps its first-watched ordering.
func (r *Repository) CreateVideoView(ctx context.Context, userID, videoID uuid.UUID) (*models.VideoView, error) {
	query := fmt.Sprintf(`
		INSERT INTO video_views (user_id, video_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, video_id) DO NOTHING
		RETURNING %s
	`, viewColumns)

	var view models.VideoView
	err := r.db.Pool.QueryRow(ctx, query, userID, videoID).Scan(
		&view.UserID, &view.VideoID, &view.CreatedAt, &view.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return r.getVideoView(ctx, userID, videoID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create video view: %w", err)
	}

	return &view, nil
}

func (r *Repository) getVideoView(ctx context.Context, userID, videoID uuid.UUID) (*models.VideoView, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM video_views WHERE user_id = $1 AND video_id = $2
	`, viewColumns)

	var view models.VideoView
	err := r.db.Pool.QueryRow(ctx, query, userID, videoID).Scan(
		&view.UserID, &view.VideoID, &view.CreatedAt, &view.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get video view: %w", err)
	}

	return &view, nil
}
