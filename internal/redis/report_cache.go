package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/razdine10/Groovify/internal/metrics"
)

const reportCachePrefix = "report_cache:"

// ReportCache provides read-through report caching: Redis → PostgreSQL.
// Report payloads are immutable for a given parameter set within the TTL,
// so cached JSON is served as-is.
type ReportCache struct {
	rdb goredis.Cmdable
	ttl time.Duration
}

// NewReportCache creates a read-through cache with the given TTL.
func NewReportCache(rdb goredis.Cmdable, ttl time.Duration) *ReportCache {
	return &ReportCache{rdb: rdb, ttl: ttl}
}

// CacheKey builds a cache key from a report name and its parameters.
func CacheKey(report string, params ...string) string {
	if len(params) == 0 {
		return reportCachePrefix + report
	}
	return reportCachePrefix + report + ":" + strings.Join(params, ":")
}

// Fetch looks up a report payload with read-through caching.
// Read path: Redis GET → load from PostgreSQL → populate Redis cache.
// A nil cache always loads directly.
func Fetch[T any](ctx context.Context, c *ReportCache, report, key string, load func(context.Context) (T, error)) (T, error) {
	var zero T
	if c == nil {
		return load(ctx)
	}

	// Try Redis cache
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err == nil {
		var cached T
		if err := json.Unmarshal(data, &cached); err != nil {
			slog.Warn("Failed to unmarshal cached report, falling through to PostgreSQL",
				"report", report, "key", key, "error", err)
		} else {
			metrics.CacheHits.WithLabelValues(report).Inc()
			return cached, nil
		}
	} else if !errors.Is(err, goredis.Nil) {
		// Redis error, fall through to PostgreSQL
		slog.Warn("Redis report cache GET failed, falling through to PostgreSQL",
			"report", report, "key", key, "error", err)
	}

	metrics.CacheMisses.WithLabelValues(report).Inc()

	result, err := load(ctx)
	if err != nil {
		return zero, fmt.Errorf("report load failed: %w", err)
	}

	// Populate Redis cache (best-effort)
	if encoded, err := json.Marshal(result); err == nil {
		if err := c.rdb.Set(ctx, key, encoded, c.ttl).Err(); err != nil {
			slog.Warn("Failed to populate Redis report cache",
				"report", report, "key", key, "error", err)
		}
	}

	return result, nil
}

// Invalidate removes every cached payload of one report.
func (c *ReportCache) Invalidate(ctx context.Context, report string) error {
	if c == nil {
		return nil
	}

	pattern := reportCachePrefix + report + "*"
	iter := c.rdb.Scan(ctx, 0, pattern, 100).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan report cache keys: %w", err)
	}

	if len(keys) == 0 {
		return nil
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate report cache: %w", err)
	}
	return nil
}
