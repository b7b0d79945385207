package metadata

import (
	"context"
	"encoding/json"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"mindcave/pkg/cache"
	"mindcave/pkg/logging"
)

// Cache stores resolved metadata keyed by canonical URL so repeat
// resolutions of the same page skip the outbound fetch.
type Cache interface {
	Get(ctx context.Context, canonicalURL string) (ResolvedMetadata, bool)
	Set(ctx context.Context, canonicalURL string, record ResolvedMetadata)
}

type memoryCache struct {
	inner *cache.Cache
}

// NewMemoryCache returns an in-process cache suitable for single-instance
// deployments.
func NewMemoryCache(ttl time.Duration, maxEntries int) Cache {
	return &memoryCache{
		inner: cache.New(cache.Options{
			TTL:        ttl,
			MaxEntries: maxEntries,
		}),
	}
}

func (m *memoryCache) Get(_ context.Context, canonicalURL string) (ResolvedMetadata, bool) {
	val, ok := m.inner.Peek(canonicalURL)
	if !ok {
		return ResolvedMetadata{}, false
	}
	record, ok := val.(ResolvedMetadata)
	return record, ok
}

func (m *memoryCache) Set(_ context.Context, canonicalURL string, record ResolvedMetadata) {
	m.inner.Set(canonicalURL, record)
}

const redisKeyPrefix = "metadata:"

type redisCache struct {
	client goredis.UniversalClient
	ttl    time.Duration
	logger logging.Logger
}

// NewRedisCache returns a cache backed by Redis, shared across instances.
// Failures degrade to cache misses; resolution never depends on Redis
// being reachable.
func NewRedisCache(client goredis.UniversalClient, ttl time.Duration, logger logging.Logger) Cache {
	return &redisCache{client: client, ttl: ttl, logger: logger}
}

func (r *redisCache) Get(ctx context.Context, canonicalURL string) (ResolvedMetadata, bool) {
	raw, err := r.client.Get(ctx, redisKeyPrefix+canonicalURL).Bytes()
	if err != nil {
		if err != goredis.Nil {
			r.logger.WithFields(logging.Fields{
				"url":   canonicalURL,
				"error": err.Error(),
			}).Debug("Metadata cache read failed")
		}
		return ResolvedMetadata{}, false
	}

	var record ResolvedMetadata
	if err := json.Unmarshal(raw, &record); err != nil {
		return ResolvedMetadata{}, false
	}
	return record, true
}

func (r *redisCache) Set(ctx context.Context, canonicalURL string, record ResolvedMetadata) {
	raw, err := json.Marshal(record)
	if err != nil {
		return
	}
	if err := r.client.Set(ctx, redisKeyPrefix+canonicalURL, raw, r.ttl).Err(); err != nil {
		r.logger.WithFields(logging.Fields{
			"url":   canonicalURL,
			"error": err.Error(),
		}).Debug("Metadata cache write failed")
	}
}
