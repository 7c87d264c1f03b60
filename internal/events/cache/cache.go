package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"ms-events/internal/logger"
	"ms-events/internal/models"
)

// RedisClient is the slice of the go-redis API the cache needs, so tests
// can swap in a map-backed double.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// ListCache holds recent list responses keyed per host filter. Every
// operation is best-effort: a Redis error is logged and treated as a miss.
type ListCache struct {
	Client RedisClient
	TTL    time.Duration
	Logger *logger.Logger
}

func NewListCache(client RedisClient, ttl time.Duration, log *logger.Logger) *ListCache {
	return &ListCache{Client: client, TTL: ttl, Logger: log}
}

func listKey(hostID string) string {
	if hostID == "" {
		return "events:all"
	}
	return "events:host:" + hostID
}

// Get returns the cached list for the filter, or ok=false on a miss.
func (c *ListCache) Get(ctx context.Context, hostID string) ([]models.EventListItem, bool) {
	raw, err := c.Client.Get(ctx, listKey(hostID)).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logError(fmt.Sprintf("Cache read failed for %s: %v", listKey(hostID), err))
		return nil, false
	}

	var items []models.EventListItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		c.logError(fmt.Sprintf("Cache entry for %s is corrupt: %v", listKey(hostID), err))
		return nil, false
	}
	return items, true
}

// Put stores the list response for the filter with the configured TTL.
func (c *ListCache) Put(ctx context.Context, hostID string, items []models.EventListItem) {
	raw, err := json.Marshal(items)
	if err != nil {
		c.logError(fmt.Sprintf("Failed to marshal list for cache: %v", err))
		return
	}
	if err := c.Client.Set(ctx, listKey(hostID), raw, c.TTL).Err(); err != nil {
		c.logError(fmt.Sprintf("Cache write failed for %s: %v", listKey(hostID), err))
	}
}

// Invalidate drops the entries a new event makes stale: the host's own
// list and the unfiltered one.
func (c *ListCache) Invalidate(ctx context.Context, hostID string) {
	keys := []string{listKey("")}
	if hostID != "" {
		keys = append(keys, listKey(hostID))
	}
	if err := c.Client.Del(ctx, keys...).Err(); err != nil {
		c.logError(fmt.Sprintf("Cache invalidation failed: %v", err))
	}
}

func (c *ListCache) logError(message string) {
	if c.Logger != nil {
		c.Logger.Error("CACHE", message)
	}
}
