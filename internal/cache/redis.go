package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/actuallystonmai/movie-reviews/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	defaultTTL = 10 * time.Minute
	keyPrefix  = "movies:top"
)

type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Cache{client: client, ttl: ttl}
}

func buildKey(limit int) string {
	return fmt.Sprintf("%s:limit:%d", keyPrefix, limit)
}

// Get the ordered top list from cache
func (c *Cache) GetTopMovies(ctx context.Context, limit int) ([]domain.Movie, bool, error) {
	key := buildKey(limit)
	val, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get top movies from cache: %w", err)
	}

	var movies []domain.Movie
	if err := json.Unmarshal([]byte(val), &movies); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal top movies %s: %w", key, err)
	}
	return movies, true, nil
}

// Store the ordered top list in cache
func (c *Cache) SetTopMovies(ctx context.Context, limit int, movies []domain.Movie) error {
	val, err := json.Marshal(movies)
	if err != nil {
		return fmt.Errorf("failed to marshal top movies: %w", err)
	}

	if err := c.client.Set(ctx, buildKey(limit), val, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set top movies in cache: %w", err)
	}
	return nil
}

// Clear every cached top list: used when the catalog changes
func (c *Cache) ClearTopMovies(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, keyPrefix+":limit:*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("cache delete %s: %w", iter.Val(), err)
		}
	}
	return iter.Err()
}

// Ping connectivity
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
