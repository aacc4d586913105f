package cache

import (
	"Linkly-Backend/internal/domain"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// ShortLinkPrefix is the prefix for short-link keys in Redis
	ShortLinkPrefix = "link:code:"
	// ProfilePrefix is the prefix for profile keys in Redis
	ProfilePrefix = "profile:username:"
	// DefaultTTL is the default TTL for cached items
	DefaultTTL = 24 * time.Hour
)

// RedisCache wraps the Redis client used to keep resolver lookups off the
// database on the redirect hot path.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache creates a new Redis cache instance and verifies connectivity.
func NewRedisCache(addr, password string, db, poolSize int) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
		PoolSize: poolSize,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisCache{client: client, ttl: DefaultTTL}, nil
}

// GetShortLink retrieves a cached short link, (nil, nil) on cache miss.
func (r *RedisCache) GetShortLink(ctx context.Context, shortCode string) (*domain.ShortLink, error) {
	val, err := r.client.Get(ctx, ShortLinkPrefix+shortCode).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get from Redis: %w", err)
	}

	var link domain.ShortLink
	if err := json.Unmarshal([]byte(val), &link); err != nil {
		return nil, fmt.Errorf("failed to decode cached short link: %w", err)
	}
	return &link, nil
}

// SetShortLink caches a short link with the default TTL.
func (r *RedisCache) SetShortLink(ctx context.Context, link *domain.ShortLink) error {
	data, err := json.Marshal(link)
	if err != nil {
		return fmt.Errorf("failed to encode short link: %w", err)
	}
	if err := r.client.Set(ctx, ShortLinkPrefix+link.ShortCode, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set in Redis: %w", err)
	}
	return nil
}

// DeleteShortLink removes a short link from the cache.
func (r *RedisCache) DeleteShortLink(ctx context.Context, shortCode string) error {
	if err := r.client.Del(ctx, ShortLinkPrefix+shortCode).Err(); err != nil {
		return fmt.Errorf("failed to delete from Redis: %w", err)
	}
	return nil
}

// GetProfile retrieves a cached profile, (nil, nil) on cache miss.
func (r *RedisCache) GetProfile(ctx context.Context, username string) (*domain.Profile, error) {
	val, err := r.client.Get(ctx, ProfilePrefix+username).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get from Redis: %w", err)
	}

	var profile domain.Profile
	if err := json.Unmarshal([]byte(val), &profile); err != nil {
		return nil, fmt.Errorf("failed to decode cached profile: %w", err)
	}
	return &profile, nil
}

// SetProfile caches a profile with the default TTL.
func (r *RedisCache) SetProfile(ctx context.Context, profile *domain.Profile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	if err := r.client.Set(ctx, ProfilePrefix+profile.Username, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set in Redis: %w", err)
	}
	return nil
}

// Close closes the Redis connection.
func (r *RedisCache) Close() error {
	return r.client.Close()
}
