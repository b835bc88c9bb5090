package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"superadmin/navigation/internal/domain"

	"github.com/redis/go-redis/v9"
)

// MenuStore is the shared second-level cache of fetched navigation arrays
type MenuStore interface {
	GetNavigation(ctx context.Context, query domain.MenuQuery) (*StoredNavigation, error)
	SetNavigation(ctx context.Context, query domain.MenuQuery, stored StoredNavigation, ttl time.Duration) error
	DeleteNavigation(ctx context.Context, query domain.MenuQuery) error
}

type StoredNavigation struct {
	FetchedAt time.Time               `json:"fetched_at"`
	Items     []domain.NavigationItem `json:"items"`
}

type redisCommands interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type redisMenuStore struct {
	redisClient redisCommands
	keyPrefix   string
}

func NewRedisMenuStore(redisClient *redis.Client) MenuStore {
	return newRedisMenuStore(redisClient)
}

func newRedisMenuStore(redisClient redisCommands) *redisMenuStore {
	return &redisMenuStore{
		redisClient: redisClient,
		keyPrefix:   "navigation:menu:",
	}
}

// GetNavigation returns nil, nil when nothing is stored for the query
func (s *redisMenuStore) GetNavigation(ctx context.Context, query domain.MenuQuery) (*StoredNavigation, error) {
	key := s.keyPrefix + query.CacheKey()
	val, err := s.redisClient.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get navigation for %s: %w", query.CacheKey(), err)
	}

	var stored StoredNavigation
	if err := json.Unmarshal([]byte(val), &stored); err != nil {
		return nil, fmt.Errorf("failed to decode navigation for %s: %w", query.CacheKey(), err)
	}
	return &stored, nil
}

func (s *redisMenuStore) SetNavigation(ctx context.Context, query domain.MenuQuery, stored StoredNavigation, ttl time.Duration) error {
	key := s.keyPrefix + query.CacheKey()
	payload, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("failed to encode navigation for %s: %w", query.CacheKey(), err)
	}

	if err := s.redisClient.Set(ctx, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set navigation for %s: %w", query.CacheKey(), err)
	}
	return nil
}

func (s *redisMenuStore) DeleteNavigation(ctx context.Context, query domain.MenuQuery) error {
	key := s.keyPrefix + query.CacheKey()
	if err := s.redisClient.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete navigation for %s: %w", query.CacheKey(), err)
	}
	return nil
}
