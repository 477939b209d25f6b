package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/therealutkarshpriyadarshi/vidtube/pkg/models"
)

// Reaction persistence. The toggle decision (same type removes, other
// type flips) lives in the handlers; these methods supply the three
// primitives: read, delete, atomic upsert. The composite primary key
// plus ON CONFLICT DO UPDATE keeps the at-most-one-row invariant even
// under concurrent requests.

const videoReactionColumns = `user_id, video_id, type, created_at, updated_at`

// GetVideoReaction returns the viewer's reaction on a video, or nil.
func (r *Repository) GetVideoReaction(ctx context.Context, userID, videoID uuid.UUID) (*models.VideoReaction, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM video_reactions WHERE user_id = $1 AND video_id = $2
	`, videoReactionColumns)

	var reaction models.VideoReaction
	err := r.db.Pool.QueryRow(ctx, query, userID, videoID).Scan(
		&reaction.UserID, &reaction.VideoID, &reaction.Type, &reaction.CreatedAt, &reaction.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get video reaction: %w", err)
	}

	return &reaction, nil
}

// DeleteVideoReaction removes the viewer's reaction (toggle off).
func (r *Repository) DeleteVideoReaction(ctx context.Context, userID, videoID uuid.UUID) (*models.VideoReaction, error) {
	query := fmt.Sprintf(`
		DELETE FROM video_reactions WHERE user_id = $1 AND video_id = $2
		RETURNING %s
	`, videoReactionColumns)

	var reaction models.VideoReaction
	err := r.db.Pool.QueryRow(ctx, query, userID, videoID).Scan(
		&reaction.UserID, &reaction.VideoID, &reaction.Type, &reaction.CreatedAt, &reaction.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete video reaction: %w", err)
	}

	return &reaction, nil
}

// UpsertVideoReaction inserts the reaction or flips its type in place.
// updated_at doubles as the liked-playlist sort key.
func (r *Repository) UpsertVideoReaction(ctx context.Context, userID, videoID uuid.UUID, reactionType string) (*models.VideoReaction, error) {
	query := fmt.Sprintf(`
		INSERT INTO video_reactions (user_id, video_id, type)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, video_id)
		DO UPDATE SET type = EXCLUDED.type, updated_at = now()
		RETURNING %s
	`, videoReactionColumns)

	var reaction models.VideoReaction
	err := r.db.Pool.QueryRow(ctx, query, userID, videoID, reactionType).Scan(
		&reaction.UserID, &reaction.VideoID, &reaction.Type, &reaction.CreatedAt, &reaction.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert video reaction: %w", err)
	}

	return &reaction, nil
}

const commentReactionColumns = `user_id, comment_id, type, created_at, updated_at`

// GetCommentReaction returns the viewer's reaction on a comment, or nil.
func (r *Repository) GetCommentReaction(ctx context.Context, userID, commentID uuid.UUID) (*models.CommentReaction, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM comment_reactions WHERE user_id = $1 AND comment_id = $2
	`, commentReactionColumns)

	var reaction models.CommentReaction
	err := r.db.Pool.QueryRow(ctx, query, userID, commentID).Scan(
		&reaction.UserID, &reaction.CommentID, &reaction.Type, &reaction.CreatedAt, &reaction.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comment reaction: %w", err)
	}

	return &reaction, nil
}

// DeleteCommentReaction removes the viewer's reaction (toggle off).
func (r *Repository) DeleteCommentReaction(ctx context.Context, userID, commentID uuid.UUID) (*models.CommentReaction, error) {
	query := fmt.Sprintf(`
		DELETE FROM comment_reactions WHERE user_id = $1 AND comment_id = $2
		RETURNING %s
	`, commentReactionColumns)

	var reaction models.CommentReaction
	err := r.db.Pool.QueryRow(ctx, query, userID, commentID).Scan(
		&reaction.UserID, &reaction.CommentID, &reaction.Type, &reaction.CreatedAt, &reaction.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete comment reaction: %w", err)
	}

	return &reaction, nil
}

// UpsertCommentReaction inserts the reaction or flips its type in place.
func (r *Repository) UpsertCommentReaction(ctx context.Context, userID, commentID uuid.UUID, reactionType string) (*models.CommentReaction, error) {
	query := fmt.Sprintf(`
		INSERT INTO comment_reactions (user_id, comment_id, type)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, comment_id)
		DO UPDATE SET type = EXCLUDED.type, updated_at = now()
		RETURNING %s
	`, commentReactionColumns)

	var reaction models.CommentReaction
	err := r.db.Pool.QueryRow(ctx, query, userID, commentID, reactionType).Scan(
		&reaction.UserID, &reaction.CommentID, &reaction.Type, &reaction.CreatedAt, &reaction.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert comment reaction: %w", err)
	}

	return &reaction, nil
}
