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

const commentColumns = `c.id, c.video_id, c.user_id, c.parent_id, c.value, c.created_at, c.updated_at`

func scanComment(row scanner, c *models.Comment) error {
	return row.Scan(&c.ID, &c.VideoID, &c.UserID, &c.ParentID, &c.Value, &c.CreatedAt, &c.UpdatedAt)
}

// CreateComment inserts a comment or reply.
func (r *Repository) CreateComment(ctx context.Context, userID, videoID uuid.UUID, parentID *uuid.UUID, value string) (*models.Comment, error) {
	query := fmt.Sprintf(`
		INSERT INTO comments AS c (user_id, video_id, parent_id, value)
		VALUES ($1, $2, $3, $4)
		RETURNING %s
	`, commentColumns)

	var comment models.Comment
	err := scanComment(r.db.Pool.QueryRow(ctx, query, userID, videoID, parentID, value), &comment)
	if err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return &comment, nil
}

// GetComment fetches a comment by id (used to validate reply targets).
func (r *Repository) GetComment(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	query := fmt.Sprintf(`SELECT %s FROM comments c WHERE c.id = $1`, commentColumns)

	var comment models.Comment
	err := scanComment(r.db.Pool.QueryRow(ctx, query, id), &comment)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	return &comment, nil
}

// DeleteComment removes a comment authored by userID.
func (r *Repository) DeleteComment(ctx context.Context, id, userID uuid.UUID) (*models.Comment, error) {
	query := fmt.Sprintf(`
		DELETE FROM comments c
		WHERE c.id = $1 AND c.user_id = $2
		RETURNING %s
	`, commentColumns)

	var comment models.Comment
	err := scanComment(r.db.Pool.QueryRow(ctx, query, id, userID), &comment)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete comment: %w", err)
	}

	return &comment, nil
}

// ListComments returns one page of a video's top-level comments, or of
// the replies under parentID when set, plus the video's total comment
// count.
func (r *Repository) ListComments(ctx context.Context, videoID uuid.UUID, parentID, viewerID *uuid.UUID, cursor *models.TimeCursor, limit int) (*models.CommentPage, error) {
	where := []string{"c.video_id = $1"}
	args := []any{videoID, viewerID}

	if parentID != nil {
		args = append(args, *parentID)
		where = append(where, fmt.Sprintf("c.parent_id = $%d", len(args)))
	} else {
		where = append(where, "c.parent_id IS NULL")
	}
	if cursor != nil {
		args = append(args, cursor.Time, cursor.ID)
		where = append(where, timeKeyset("c.updated_at", "c.id", len(args)-1))
	}
	args = append(args, limit+1)

	query := fmt.Sprintf(`
		SELECT %s, %s,
			(SELECT COUNT(*) FROM comment_reactions cr WHERE cr.comment_id = c.id AND cr.type = 'like'),
			(SELECT COUNT(*) FROM comment_reactions cr WHERE cr.comment_id = c.id AND cr.type = 'dislike'),
			(SELECT COUNT(*) FROM comments rc WHERE rc.parent_id = c.id),
			(SELECT cr.type FROM comment_reactions cr WHERE cr.comment_id = c.id AND cr.user_id = $2)
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE %s
		ORDER BY c.updated_at DESC, c.id DESC
		LIMIT $%d
	`, commentColumns, userColumns, strings.Join(where, " AND "), len(args))

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	var items []models.CommentItem
	for rows.Next() {
		var item models.CommentItem
		err := rows.Scan(
			&item.ID, &item.VideoID, &item.UserID, &item.ParentID, &item.Value,
			&item.CreatedAt, &item.UpdatedAt,
			&item.User.ID, &item.User.ExternalID, &item.User.Name, &item.User.ImageURL,
			&item.User.BannerURL, &item.User.BannerKey, &item.User.CreatedAt, &item.User.UpdatedAt,
			&item.LikeCount, &item.DislikeCount, &item.ReplyCount, &item.ViewerReaction,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	var total int64
	err = r.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM comments WHERE video_id = $1`, videoID).Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("failed to count comments: %w", err)
	}

	items, hasMore := trimPage(items, limit)
	page := &models.CommentPage{Items: items, TotalCount: total}
	if hasMore {
		last := items[len(items)-1]
		page.NextCursor = &models.TimeCursor{ID: last.ID, Time: last.UpdatedAt}
	}

	return page, nil
}
