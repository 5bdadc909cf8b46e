package storage

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

// ListingCache holds the public-facing representation of listings in Redis
// with an explicit TTL and an invalidation hook. It replaces the ambient
// in-process cache the portal previously kept across requests.
type ListingCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewListingCache(rdb *redis.Client) *ListingCache {
	ttl := 5 * time.Minute
	if raw := os.Getenv("LISTING_CACHE_TTL_SECONDS"); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			ttl = time.Duration(secs) * time.Second
		}
	}
	return &ListingCache{rdb: rdb, ttl: ttl}
}

func listingKey(propertyID uint) string {
	return fmt.Sprintf("listing:%d", propertyID)
}

// Get returns the cached JSON payload for a listing, or "" on a miss.
func (c *ListingCache) Get(ctx context.Context, propertyID uint) string {
	if c == nil || c.rdb == nil {
		return ""
	}
	val, err := c.rdb.Get(ctx, listingKey(propertyID)).Result()
	if err != nil {
		return ""
	}
	return val
}

func (c *ListingCache) Set(ctx context.Context, propertyID uint, payload string) {
	if c == nil || c.rdb == nil {
		return
	}
	c.rdb.Set(ctx, listingKey(propertyID), payload, c.ttl)
}

// Invalidate drops the cached listing. Called after every status or price
// mutation; a miss is harmless.
func (c *ListingCache) Invalidate(ctx context.Context, propertyID uint) {
	if c == nil || c.rdb == nil {
		return
	}
	c.rdb.Del(ctx, listingKey(propertyID))
}
