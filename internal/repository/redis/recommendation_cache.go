package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mySmartShop/domain"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss: no fresh entry for the user. Callers fall through to the
// database.
var ErrCacheMiss = errors.New("recommendation cache miss")

// RecommendationCache keeps the most recently generated list per user so
// repeated reads skip the scoring pass. Entries are invalidated whenever
// the user records a new interaction.
type RecommendationCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRecommendationCache(client *redis.Client, ttl time.Duration) *RecommendationCache {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}

	return &RecommendationCache{
		client: client,
		ttl:    ttl,
	}
}

func cacheKey(userID uint) string {
	return fmt.Sprintf("reco:latest:%d", userID)
}

func (c *RecommendationCache) SetLatest(ctx context.Context, userID uint, items []domain.RecommendedItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal recommendations: %w", err)
	}

	if err := c.client.Set(ctx, cacheKey(userID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache recommendations: %w", err)
	}

	return nil
}

func (c *RecommendationCache) GetLatest(ctx context.Context, userID uint) ([]domain.RecommendedItem, error) {
	val, err := c.client.Get(ctx, cacheKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to read recommendation cache: %w", err)
	}

	var items []domain.RecommendedItem
	if err := json.Unmarshal([]byte(val), &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached recommendations: %w", err)
	}

	return items, nil
}

func (c *RecommendationCache) Invalidate(ctx context.Context, userID uint) error {
	if err := c.client.Del(ctx, cacheKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate recommendation cache: %w", err)
	}

	return nil
}
