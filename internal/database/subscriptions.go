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

const subscriptionColumns = `s.viewer_id, s.creator_id, s.created_at, s.updated_at`

func scanSubscription(row scanner, s *models.Subscription) error {
	return row.Scan(&s.ViewerID, &s.CreatorID, &s.CreatedAt, &s.UpdatedAt)
}

// CreateSubscription subscribes viewer to creator. Subscribing twice
// is a no-op that returns the existing row, so exactly one row ever
// exists per pair. Self-subscription is rejected by the handler before
// this is called.
func (r *Repository) CreateSubscription(ctx context.Context, viewerID, creatorID uuid.UUID) (*models.Subscription, error) {
	query := fmt.Sprintf(`
		INSERT INTO subscriptions AS s (viewer_id, creator_id)
		VALUES ($1, $2)
		ON CONFLICT (viewer_id, creator_id) DO NOTHING
		RETURNING %s
	`, subscriptionColumns)

	var sub models.Subscription
	err := scanSubscription(r.db.Pool.QueryRow(ctx, query, viewerID, creatorID), &sub)
	if errors.Is(err, pgx.ErrNoRows) {
		// Conflict path: the row already existed.
		return r.getSubscription(ctx, viewerID, creatorID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}

	return &sub, nil
}

func (r *Repository) getSubscription(ctx context.Context, viewerID, creatorID uuid.UUID) (*models.Subscription, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM subscriptions s WHERE s.viewer_id = $1 AND s.creator_id = $2
	`, subscriptionColumns)

	var sub models.Subscription
	err := scanSubscription(r.db.Pool.QueryRow(ctx, query, viewerID, creatorID), &sub)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	return &sub, nil
}

// DeleteSubscription unsubscribes viewer from creator.
func (r *Repository) DeleteSubscription(ctx context.Context, viewerID, creatorID uuid.UUID) (*models.Subscription, error) {
	query := fmt.Sprintf(`
		DELETE FROM subscriptions s
		WHERE s.viewer_id = $1 AND s.creator_id = $2
		RETURNING %s
	`, subscriptionColumns)

	var sub models.Subscription
	err := scanSubscription(r.db.Pool.QueryRow(ctx, query, viewerID, creatorID), &sub)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete subscription: %w", err)
	}

	return &sub, nil
}

// ListSubscriptions returns one page of the creators the viewer is
// subscribed to. The cursor ties on creator_id because subscriptions
// have no surrogate primary key.
func (r *Repository) ListSubscriptions(ctx context.Context, viewerID uuid.UUID, cursor *models.TimeCursor, limit int) (*models.SubscriptionPage, error) {
	where := []string{"s.viewer_id = $1"}
	args := []any{viewerID}

	if cursor != nil {
		args = append(args, cursor.Time, cursor.ID)
		where = append(where, timeKeyset("s.updated_at", "s.creator_id", len(args)-1))
	}
	args = append(args, limit+1)

	query := fmt.Sprintf(`
		SELECT %s, %s,
			(SELECT COUNT(*) FROM subscriptions sc WHERE sc.creator_id = u.id)
		FROM subscriptions s
		JOIN users u ON u.id = s.creator_id
		WHERE %s
		ORDER BY s.updated_at DESC, s.creator_id DESC
		LIMIT $%d
	`, subscriptionColumns, userColumns, strings.Join(where, " AND "), len(args))

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	defer rows.Close()

	var items []models.SubscriptionItem
	for rows.Next() {
		var item models.SubscriptionItem
		err := rows.Scan(
			&item.ViewerID, &item.CreatorID, &item.CreatedAt, &item.UpdatedAt,
			&item.Creator.ID, &item.Creator.ExternalID, &item.Creator.Name, &item.Creator.ImageURL,
			&item.Creator.BannerURL, &item.Creator.BannerKey, &item.Creator.CreatedAt, &item.Creator.UpdatedAt,
			&item.SubscriberCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan subscription: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	items, hasMore := trimPage(items, limit)
	page := &models.SubscriptionPage{Items: items}
	if hasMore {
		last := items[len(items)-1]
		page.NextCursor = &models.TimeCursor{ID: last.CreatorID, Time: last.UpdatedAt}
	}

	return page, nil
}
