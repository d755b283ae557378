package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/Payphone-Digital/storefront/internal/constants"
	"github.com/Payphone-Digital/storefront/pkg/cache"
	"github.com/Payphone-Digital/storefront/pkg/logger"
	"github.com/Payphone-Digital/storefront/pkg/metrics"
	"github.com/Payphone-Digital/storefront/pkg/redis"
)

// CacheService stores JSON values and counters in redis, or in process
// memory when redis is disabled. Cache failures are logged and treated as
// misses so they never fail a request.
type CacheService struct {
	redisClient redis.Client
	local       *cache.Cache
	metrics     *metrics.Metrics
}

func NewCacheService(redisClient redis.Client, local *cache.Cache, m *metrics.Metrics) *CacheService {
	if redisClient == nil {
		redisClient = redis.NewDisabledClient()
	}
	if local == nil && !redisClient.IsEnabled() {
		local = cache.NewCache()
	}
	return &CacheService{
		redisClient: redisClient,
		local:       local,
		metrics:     m,
	}
}

func (s *CacheService) useRedis() bool {
	return s.redisClient.IsEnabled()
}

// GetJSON decodes the cached value into dest and reports whether it was found.
func (s *CacheService) GetJSON(ctx context.Context, key string, dest interface{}) bool {
	var raw []byte
	if s.useRedis() {
		data, err := s.redisClient.Get(ctx, key)
		if err != nil {
			logger.WarnWithContext(ctx, "Cache read failed").String("cache_key", key).Err(err).Log()
			return false
		}
		raw = data
	} else if v, ok := s.local.Get(key); ok {
		raw, _ = v.([]byte)
	}

	if raw == nil {
		s.metrics.ObserveCache(false)
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		logger.WarnWithContext(ctx, "Cached value is not valid JSON").String("cache_key", key).Err(err).Log()
		s.Invalidate(ctx, key)
		return false
	}

	s.metrics.ObserveCache(true)
	logger.DebugWithContext(ctx, "Cache hit").String("cache_key", key).Int("data_size", len(raw)).Log()
	return true
}

func (s *CacheService) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		logger.WarnWithContext(ctx, "Failed to encode cache value").String("cache_key", key).Err(err).Log()
		return
	}

	if !s.useRedis() {
		s.local.Set(key, data, ttl)
		return
	}
	if err := s.redisClient.Set(ctx, key, data, ttl); err != nil {
		logger.WarnWithContext(ctx, "Cache write failed").String("cache_key", key).Err(err).Log()
	}
}

func (s *CacheService) Invalidate(ctx context.Context, keys ...string) {
	if !s.useRedis() {
		for _, k := range keys {
			s.local.Delete(k)
		}
		return
	}
	if err := s.redisClient.Delete(ctx, keys...); err != nil {
		logger.WarnWithContext(ctx, "Cache invalidation failed").Any("cache_keys", keys).Err(err).Log()
	}
}

// IncrementAttempts bumps a counter that expires ttl after its first
// increment and returns the new value.
func (s *CacheService) IncrementAttempts(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	if !s.useRedis() {
		return s.local.Increment(key, ttl), nil
	}
	return s.redisClient.Incr(ctx, key, ttl)
}

// Attempts reads a counter without changing it.
func (s *CacheService) Attempts(ctx context.Context, key string) int64 {
	if !s.useRedis() {
		v, ok := s.local.Get(key)
		if !ok {
			return 0
		}
		n, _ := v.(int64)
		return n
	}

	raw, err := s.redisClient.Get(ctx, key)
	if err != nil || raw == nil {
		return 0
	}
	var n int64
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0
	}
	return n
}

func (s *CacheService) ResetAttempts(ctx context.Context, key string) {
	s.Invalidate(ctx, key)
}

// GetCacheStats returns cache statistics
func (s *CacheService) GetCacheStats(ctx context.Context) (map[string]interface{}, error) {
	if !s.useRedis() {
		return map[string]interface{}{
			"enabled": false,
			"backend": "memory",
			"keys":    s.local.Len(),
		}, nil
	}

	stats, err := s.redisClient.GetStats(ctx)
	if err != nil {
		return nil, err
	}
	stats["enabled"] = true
	return stats, nil
}

// ClearAll drops every key owned by this service.
func (s *CacheService) ClearAll(ctx context.Context) error {
	if !s.useRedis() {
		s.local.DeletePrefix(constants.CacheKeyPrefix)
		return nil
	}
	return s.redisClient.DeleteByPattern(ctx, strings.TrimSuffix(constants.CacheKeyPrefix, ":")+":*")
}
