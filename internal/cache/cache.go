package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/therealutkarshpriyadarshi/vidtube/internal/config"
	"github.com/therealutkarshpriyadarshi/vidtube/pkg/models"
)

const categoryTTL = 10 * time.Minute

// Cache provides read-through caching over Redis. The category list is
// the hot case: it is static between seeder runs but sits on every
// upload form and feed filter.
type Cache struct {
	client *redis.Client
}

// New creates a cache around an existing Redis client.
func New(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// NewClient dials Redis and verifies the connection.
func NewClient(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}

// GetCategories returns the cached category list, or nil on a miss.
func (c *Cache) GetCategories(ctx context.Context) ([]models.Category, error) {
	data, err := c.client.Get(ctx, "categories").Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get categories from cache: %w", err)
	}

	var categories []models.Category
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, fmt.Errorf("failed to unmarshal categories: %w", err)
	}

	return categories, nil
}

// SetCategories caches the category list.
func (c *Cache) SetCategories(ctx context.Context, categories []models.Category) error {
	data, err := json.Marshal(categories)
	if err != nil {
		return fmt.Errorf("failed to marshal categories: %w", err)
	}

	return c.client.Set(ctx, "categories", data, categoryTTL).Err()
}

// InvalidateCategories drops the cached list; the seeder calls it
// after inserting.
func (c *Cache) InvalidateCategories(ctx context.Context) error {
	return c.client.Del(ctx, "categories").Err()
}

// Ping checks the Redis connection for the health endpoint.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
