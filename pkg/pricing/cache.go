package pricing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned by a Cache when the key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

const priceCacheKey = "pricing:btc_usd"

// Cache is a string key/value store with expiry.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// RedisConfig holds the connection settings of the price cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisClient creates a go-redis client for the price cache.
func NewRedisClient(cfg RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// RedisCache implements Cache on top of Redis.
type RedisCache struct {
	Client redis.Cmdable
}

// NewRedisCache creates a new RedisCache.
func NewRedisCache(client redis.Cmdable) *RedisCache {
	return &RedisCache{Client: client}
}

// Make sure we conform to the interface
var _ Cache = (*RedisCache)(nil)

func (c *RedisCache) Get(ctx context.Context, key string) (string, error) {
	val, err := c.Client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCacheMiss
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s from redis: %w", key, err)
	}
	return val, nil
}

func (c *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := c.Client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write %s to redis: %w", key, err)
	}
	return nil
}

// CachedSource serves the price from Cache for TTL before asking Source again.
// A cache failure falls through to Source; a Source failure is never masked
// by a stale value.
type CachedSource struct {
	Source Source
	Cache  Cache
	TTL    time.Duration
	Logger *slog.Logger
}

// NewCachedSource creates a new CachedSource.
func NewCachedSource(source Source, cache Cache, ttl time.Duration, logger *slog.Logger) *CachedSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedSource{Source: source, Cache: cache, TTL: ttl, Logger: logger}
}

// Make sure we conform to the interface
var _ Source = (*CachedSource)(nil)

func (c *CachedSource) BTCUSDPrice(ctx context.Context) (float64, error) {
	cached, err := c.Cache.Get(ctx, priceCacheKey)
	switch {
	case err == nil:
		if price, parseErr := strconv.ParseFloat(cached, 64); parseErr == nil && price > 0 {
			return price, nil
		}
		c.Logger.Warn("discarding unreadable cached price", "value", cached)
	case !errors.Is(err, ErrCacheMiss):
		c.Logger.Warn("price cache unavailable", "error", err)
	}

	price, err := c.Source.BTCUSDPrice(ctx)
	if err != nil {
		return 0, err
	}

	if err := c.Cache.Set(ctx, priceCacheKey, strconv.FormatFloat(price, 'f', -1, 64), c.TTL); err != nil {
		c.Logger.Warn("failed to cache price", "error", err)
	}
	return price, nil
}
