package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/freightline/quoting-system/internal/core/domain"
)

const defaultRateTTL = 5 * time.Minute

// RateCache caches resolved "as of now" tariff rates in Redis.
// Key format: rate:<origin_country>:<classification_code>
//
// Entries are short-lived and invalidated on every rate update, so a stale
// read is bounded by the TTL even if an invalidation is lost.
type RateCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRateCache wraps the given Redis client. A non-positive ttl falls back to
// the default.
func NewRateCache(client *redis.Client, ttl time.Duration) *RateCache {
	if ttl <= 0 {
		ttl = defaultRateTTL
	}
	return &RateCache{client: client, ttl: ttl}
}

// Get returns the cached rate for the key, or (nil, nil) on a miss.
func (c *RateCache) Get(ctx context.Context, originCountry, classificationCode string) (*domain.TariffRate, error) {
	raw, err := c.client.Get(ctx, c.key(originCountry, classificationCode)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("rate cache get: %w", err)
	}

	var rate domain.TariffRate
	if err := json.Unmarshal(raw, &rate); err != nil {
		// A corrupt entry behaves like a miss; the resolver refreshes it.
		return nil, nil
	}
	return &rate, nil
}

// Set stores the rate under its own key with the configured TTL.
func (c *RateCache) Set(ctx context.Context, rate *domain.TariffRate) error {
	raw, err := json.Marshal(rate)
	if err != nil {
		return fmt.Errorf("rate cache marshal: %w", err)
	}
	return c.client.Set(ctx, c.key(rate.OriginCountry, rate.ClassificationCode), raw, c.ttl).Err()
}

// Invalidate drops the cached rate for the key.
func (c *RateCache) Invalidate(ctx context.Context, originCountry, classificationCode string) error {
	return c.client.Del(ctx, c.key(originCountry, classificationCode)).Err()
}

func (c *RateCache) key(originCountry, classificationCode string) string {
	return fmt.Sprintf("rate:%s:%s", originCountry, classificationCode)
}
