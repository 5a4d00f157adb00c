// Package cache provides an optional Redis-backed TTL cache for the
// pipeline's three cacheable payloads: normalized markets, composed
// reports, and social search results. A nil *Cache is valid and caches
// nothing, so callers never branch on whether caching is configured.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// TTLs per payload kind.
const (
	MarketTTL   = 5 * time.Minute
	AnalysisTTL = 30 * time.Minute
	SocialTTL   = 15 * time.Minute
)

// Config holds Redis connection parameters.
type Config struct {
	Addr     string
	Password string
	DB       int
}

// Cache wraps a go-redis client with JSON values.
type Cache struct {
	rdb *redis.Client
}

// New connects to Redis and verifies connectivity.
func New(ctx context.Context, cfg Config) (*Cache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return &Cache{rdb: rdb}, nil
}

// MarketKey keys normalized market payloads by slug.
func MarketKey(slug string) string { return "market:" + slug }

// AnalysisKey keys composed reports by slug.
func AnalysisKey(slug string) string { return "analysis:" + slug }

// SocialKey keys social search results by query.
func SocialKey(query string) string { return "social:" + query }

// Get loads the JSON value at key into v. Returns false on a miss, on
// any Redis error, or when the cache is disabled; a cache problem is
// never a request problem.
func (c *Cache) Get(ctx context.Context, key string, v interface{}) bool {
	if c == nil {
		return false
	}

	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Str("key", key).Msg("Cache read failed")
		}
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Cache entry corrupt")
		return false
	}
	return true
}

// Set stores v as JSON at key with the given TTL. Failures are logged
// and swallowed.
func (c *Cache) Set(ctx context.Context, key string, v interface{}, ttl time.Duration) {
	if c == nil {
		return
	}

	data, err := json.Marshal(v)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Cache marshal failed")
		return
	}
	if err := c.rdb.Set(ctx, key, data, ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Cache write failed")
	}
}

// Close releases the Redis connection.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
