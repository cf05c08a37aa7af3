package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/carelink/hospital-portal/internal/core/domain"
)

const defaultCacheTTL = 5 * time.Minute

// SpecialityCache stores each hospital source's raw speciality listing for a
// short TTL so repeated searches do not hammer the upstream endpoints.
// Key format: specialities:<source>
type SpecialityCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSpecialityCache creates a SpecialityCache wrapping the given Redis client.
func NewSpecialityCache(client *redis.Client) *SpecialityCache {
	return &SpecialityCache{client: client, ttl: defaultCacheTTL}
}

// WithTTL overrides the default cache TTL.
func (c *SpecialityCache) WithTTL(ttl time.Duration) *SpecialityCache {
	if ttl > 0 {
		c.ttl = ttl
	}
	return c
}

// Get returns the cached listing for a source, reporting whether it was found.
func (c *SpecialityCache) Get(ctx context.Context, source string) ([]domain.Speciality, bool, error) {
	raw, err := c.client.Get(ctx, c.key(source)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("speciality cache get: %w", err)
	}

	var specs []domain.Speciality
	if err := json.Unmarshal(raw, &specs); err != nil {
		return nil, false, fmt.Errorf("speciality cache decode: %w", err)
	}
	return specs, true, nil
}

// Set stores a source's listing, expiring after the configured TTL.
func (c *SpecialityCache) Set(ctx context.Context, source string, specs []domain.Speciality) error {
	raw, err := json.Marshal(specs)
	if err != nil {
		return fmt.Errorf("speciality cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(source), raw, c.ttl).Err()
}

func (c *SpecialityCache) key(source string) string {
	return "specialities:" + source
}
