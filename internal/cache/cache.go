// Package cache is the Redis view cache behind the action layer. It holds
// serialized document and listing views and carries the invalidation signal
// emitted after every mutation.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/TshiamoTodd/live-docs/internal/metrics"
	"github.com/TshiamoTodd/live-docs/internal/models"
)

const viewTTL = 5 * time.Minute

// ViewCache caches rendered document views. A nil *ViewCache is valid and
// disables caching, so callers never need to branch on configuration.
type ViewCache struct {
	client *redis.Client
}

// New creates a view cache on an existing Redis client.
func New(client *redis.Client) *ViewCache {
	return &ViewCache{client: client}
}

// NewFromURL connects to Redis and verifies the connection.
func NewFromURL(ctx context.Context, redisURL string) (*ViewCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return &ViewCache{client: client}, nil
}

// Close closes the Redis connection.
func (c *ViewCache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// Ping checks the Redis connection.
func (c *ViewCache) Ping(ctx context.Context) error {
	if c == nil || c.client == nil {
		return fmt.Errorf("cache not configured")
	}
	return c.client.Ping(ctx).Err()
}

// Client exposes the underlying Redis client for components sharing the
// connection (rate limiter, notification inboxes).
func (c *ViewCache) Client() *redis.Client {
	if c == nil {
		return nil
	}
	return c.client
}

// documentKey returns the key for a single document view.
func documentKey(id string) string {
	return "views:document:" + id
}

// listingGenKey holds the generation counter for listing views. Bumping it
// orphans every cached listing at once; orphans expire with their TTL.
const listingGenKey = "views:documents:gen"

// listingKey returns the key for one user's listing view at a generation.
func listingKey(gen int64, email string) string {
	return fmt.Sprintf("views:documents:%d:%s", gen, email)
}

// GetDocument returns the cached document view, or nil on miss or error.
func (c *ViewCache) GetDocument(ctx context.Context, id string) *models.Room {
	if c == nil || c.client == nil {
		return nil
	}

	data, err := c.client.Get(ctx, documentKey(id)).Bytes()
	if err != nil {
		metrics.CacheMisses.WithLabelValues("document").Inc()
		return nil
	}

	var room models.Room
	if err := json.Unmarshal(data, &room); err != nil {
		metrics.CacheMisses.WithLabelValues("document").Inc()
		return nil
	}
	metrics.CacheHits.WithLabelValues("document").Inc()
	return &room
}

// SetDocument stores a document view. Failures are silent; the cache is
// best-effort.
func (c *ViewCache) SetDocument(ctx context.Context, room *models.Room) {
	if c == nil || c.client == nil || room == nil {
		return
	}
	data, err := json.Marshal(room)
	if err != nil {
		return
	}
	c.client.Set(ctx, documentKey(room.ID), data, viewTTL)
}

// InvalidateDocument drops the cached view for one document.
func (c *ViewCache) InvalidateDocument(ctx context.Context, id string) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Del(ctx, documentKey(id))
}

// GetListing returns the cached listing view for a user at the current
// generation.
func (c *ViewCache) GetListing(ctx context.Context, email string) ([]models.Room, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	gen, err := c.client.Get(ctx, listingGenKey).Int64()
	if err != nil && err != redis.Nil {
		return nil, false
	}

	data, err := c.client.Get(ctx, listingKey(gen, email)).Bytes()
	if err != nil {
		metrics.CacheMisses.WithLabelValues("listing").Inc()
		return nil, false
	}

	var rooms []models.Room
	if err := json.Unmarshal(data, &rooms); err != nil {
		metrics.CacheMisses.WithLabelValues("listing").Inc()
		return nil, false
	}
	metrics.CacheHits.WithLabelValues("listing").Inc()
	return rooms, true
}

// SetListing stores a user's listing view at the current generation.
func (c *ViewCache) SetListing(ctx context.Context, email string, rooms []models.Room) {
	if c == nil || c.client == nil {
		return
	}

	gen, err := c.client.Get(ctx, listingGenKey).Int64()
	if err != nil && err != redis.Nil {
		return
	}
	data, err := json.Marshal(rooms)
	if err != nil {
		return
	}
	c.client.Set(ctx, listingKey(gen, email), data, viewTTL)
}

// InvalidateListings bumps the generation counter, invalidating every
// cached listing view in one operation.
func (c *ViewCache) InvalidateListings(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Incr(ctx, listingGenKey)
}
