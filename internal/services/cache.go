package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gridironlabs/league-archive/pkg/logger"
)

type CacheService struct {
	client *redis.Client
}

func NewCacheService(client *redis.Client) *CacheService {
	return &CacheService{
		client: client,
	}
}

func (s *CacheService) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	if err := s.client.Set(ctx, key, data, expiration).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}

	return nil
}

func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return fmt.Errorf("key not found")
		}
		return fmt.Errorf("failed to get cache: %w", err)
	}

	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return fmt.Errorf("failed to unmarshal value: %w", err)
	}

	return nil
}

func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete cache: %w", err)
	}
	return nil
}

// Cache key generators. Aggregate keys embed the dataset generation so a
// refresh naturally invalidates every derived entry.
func SeasonStatsCacheKey(generation, playerID string) string {
	return fmt.Sprintf("seasons:%s:%s", generation, playerID)
}

func CareerCacheKey(generation, playerID string) string {
	return fmt.Sprintf("career:%s:%s", generation, playerID)
}

func BoomBustCacheKey(generation, playerID string, season int) string {
	return fmt.Sprintf("boombust:%s:%s:%d", generation, playerID, season)
}

func HeadToHeadCacheKey(generation, ownerA, ownerB string) string {
	return fmt.Sprintf("h2h:%s:%s:%s", generation, ownerA, ownerB)
}

func StandingsCacheKey(generation string) string {
	return fmt.Sprintf("standings:%s", generation)
}

func PreferencesCacheKey(clientID string) string {
	return fmt.Sprintf("prefs:%s", clientID)
}

// Cache with retry logic
func (s *CacheService) SetWithRetry(ctx context.Context, key string, value interface{}, expiration time.Duration, maxRetries int) error {
	var err error
	for i := 0; i < maxRetries; i++ {
		if err = s.Set(ctx, key, value, expiration); err == nil {
			return nil
		}
		logger.WithService("cache").Warnf("Cache set failed (attempt %d/%d): %v", i+1, maxRetries, err)
		time.Sleep(time.Millisecond * 100 * time.Duration(i+1))
	}
	return err
}

// Convenience method without context (uses background context)
func (s *CacheService) GetSimple(key string, dest interface{}) error {
	return s.Get(context.Background(), key, dest)
}
