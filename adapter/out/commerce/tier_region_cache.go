package commerce

import (
	"context"
	"time"

	"tier_server/core/domain"
	"tier_server/core/port/out"
	"tier_server/pkg/cache"
	"tier_server/pkg/logger"
)

const regionCacheKey = "commerce:regions"

// CachedPort decorates a CommercePort with a Redis cache for region lookups.
// Regions change on the order of months; bulk runs read them on every apply.
// Everything else passes through untouched.
type CachedPort struct {
	out.CommercePort
	cache *cache.RedisCache
	ttl   time.Duration
	log   *logger.Logger
}

// NewCachedPort wraps inner with region caching.
func NewCachedPort(inner out.CommercePort, redisCache *cache.RedisCache, ttl time.Duration) *CachedPort {
	return &CachedPort{
		CommercePort: inner,
		cache:        redisCache,
		ttl:          ttl,
		log:          logger.WithField("component", "commerce-cache"),
	}
}

// ListRegions serves regions from cache when present. Cache failures fall
// back to the platform; a cold or broken Redis never blocks a run.
func (c *CachedPort) ListRegions(ctx context.Context) ([]domain.Region, error) {
	var cached []domain.Region
	hit, err := c.cache.GetJSON(ctx, regionCacheKey, &cached)
	if err != nil {
		c.log.WithError(err).Warn("region cache read failed")
	}
	if hit && len(cached) > 0 {
		return cached, nil
	}

	regions, err := c.CommercePort.ListRegions(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.cache.SetJSON(ctx, regionCacheKey, regions, c.ttl); err != nil {
		c.log.WithError(err).Warn("region cache write failed")
	}
	return regions, nil
}
