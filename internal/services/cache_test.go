package services

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unreachableCache() *CacheService {
	// Nothing listens on port 1; every command fails fast.
	return NewCacheService(redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	}))
}

func TestSetWithRetryExhaustsAttempts(t *testing.T) {
	svc := unreachableCache()
	err := svc.SetWithRetry(context.Background(), "k", "v", time.Minute, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to set cache")
}

func TestGetSimpleUnreachableBackend(t *testing.T) {
	svc := unreachableCache()
	var dest string
	assert.Error(t, svc.GetSimple("k", &dest))
}

func TestCacheKeysEmbedGeneration(t *testing.T) {
	// A refresh produces a new generation, which must change every derived
	// aggregate key so stale entries are never served.
	assert.NotEqual(t, SeasonStatsCacheKey("gen-1", "p1"), SeasonStatsCacheKey("gen-2", "p1"))
	assert.NotEqual(t, CareerCacheKey("gen-1", "p1"), CareerCacheKey("gen-2", "p1"))
	assert.NotEqual(t, BoomBustCacheKey("gen-1", "p1", 0), BoomBustCacheKey("gen-2", "p1", 0))
	assert.NotEqual(t, HeadToHeadCacheKey("gen-1", "a", "b"), HeadToHeadCacheKey("gen-2", "a", "b"))
	assert.NotEqual(t, StandingsCacheKey("gen-1"), StandingsCacheKey("gen-2"))

	// Preferences are session state, independent of dataset generation.
	assert.Equal(t, PreferencesCacheKey("c1"), PreferencesCacheKey("c1"))
}
