package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/therealutkarshpriyadarshi/vidtube/pkg/models"
)

func scanUser(row scanner, u *models.User) error {
	return row.Scan(
		&u.ID, &u.ExternalID, &u.Name, &u.ImageURL,
		&u.BannerURL, &u.BannerKey, &u.CreatedAt, &u.UpdatedAt,
	)
}

// GetUserByExternalID resolves the auth provider's subject id to a
// provisioned account. ErrNotFound means the token is valid but the
// user was never provisioned.
func (r *Repository) GetUserByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users u WHERE u.external_id = $1`, userColumns)

	var user models.User
	err := scanUser(r.db.Pool.QueryRow(ctx, query, externalID), &user)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// GetUserProfile loads the public channel page for a user.
func (r *Repository) GetUserProfile(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (*models.UserProfile, error) {
	query := fmt.Sprintf(`
		SELECT %s,
			(SELECT COUNT(*) FROM videos v WHERE v.user_id = u.id),
			(SELECT COUNT(*) FROM subscriptions s WHERE s.creator_id = u.id),
			EXISTS(SELECT 1 FROM subscriptions s WHERE s.creator_id = u.id AND s.viewer_id = $2)
		FROM users u
		WHERE u.id = $1
	`, userColumns)

	var p models.UserProfile
	err := r.db.Pool.QueryRow(ctx, query, id, viewerID).Scan(
		&p.ID, &p.ExternalID, &p.Name, &p.ImageURL,
		&p.BannerURL, &p.BannerKey, &p.CreatedAt, &p.UpdatedAt,
		&p.VideoCount, &p.SubscriberCount, &p.ViewerSubscribed,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user profile: %w", err)
	}

	return &p, nil
}

// UpsertUserByExternalID provisions or refreshes an account from an
// auth provider webhook event. Idempotent under re-delivery.
func (r *Repository) UpsertUserByExternalID(ctx context.Context, externalID, name string, imageURL *string) (*models.User, error) {
	query := fmt.Sprintf(`
		INSERT INTO users AS u (external_id, name, image_url)
		VALUES ($1, $2, $3)
		ON CONFLICT (external_id)
		DO UPDATE SET name = EXCLUDED.name, image_url = EXCLUDED.image_url, updated_at = now()
		RETURNING %s
	`, userColumns)

	var user models.User
	err := scanUser(r.db.Pool.QueryRow(ctx, query, externalID, name, imageURL), &user)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	return &user, nil
}

// DeleteUserByExternalID removes a deprovisioned account; cascades
// take the user's videos, comments, reactions and subscriptions.
func (r *Repository) DeleteUserByExternalID(ctx context.Context, externalID string) error {
	_, err := r.db.Pool.Exec(ctx, `DELETE FROM users WHERE external_id = $1`, externalID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}

// GetUserBannerKey returns the stored banner object key, if any.
func (r *Repository) GetUserBannerKey(ctx context.Context, id uuid.UUID) (*string, error) {
	var key *string
	err := r.db.Pool.QueryRow(ctx, `SELECT banner_key FROM users WHERE id = $1`, id).Scan(&key)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get banner key: %w", err)
	}

	return key, nil
}

// SetUserBanner records a replacement banner object.
func (r *Repository) SetUserBanner(ctx context.Context, id uuid.UUID, url, key string) error {
	tag, err := r.db.Pool.Exec(ctx, `
		UPDATE users SET banner_url = $2, banner_key = $3 WHERE id = $1
	`, id, url, key)
	if err != nil {
		return fmt.Errorf("failed to set banner: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// ClearUserBanner drops the stored banner reference.
func (r *Repository) ClearUserBanner(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Pool.Exec(ctx, `
		UPDATE users SET banner_url = NULL, banner_key = NULL WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("failed to clear banner: %w", err)
	}

	return nil
}
