package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/therealutkarshpriyadarshi/vidtube/pkg/models"
)

// ListCategories returns all categories ordered by name.
func (r *Repository) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, name, description, created_at, updated_at
		FROM categories
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

// SeedCategories inserts the static category set, skipping names that
// already exist so the seeder can be re-run.
func (r *Repository) SeedCategories(ctx context.Context, names []string) error {
	for _, name := range names {
		description := fmt.Sprintf("Videos related to %s", strings.ToLower(name))
		_, err := r.db.Pool.Exec(ctx, `
			INSERT INTO categories (name, description)
			VALUES ($1, $2)
			ON CONFLICT (name) DO NOTHING
		`, name, description)
		if err != nil {
			return fmt.Errorf("failed to seed category %q: %w", name, err)
		}
	}

	return nil
}
