package cache

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ms-events/internal/models"
)

// MockRedisClient is a map-backed stand-in for the redis client.
type MockRedisClient struct {
	store   map[string]string
	failing bool
}

func NewMockRedisClient() *MockRedisClient {
	return &MockRedisClient{store: make(map[string]string)}
}

func (m *MockRedisClient) Get(ctx context.Context, key string) *redis.StringCmd {
	cmd := new(redis.StringCmd)
	if m.failing {
		cmd.SetErr(assertError{})
		return cmd
	}
	if val, exists := m.store[key]; exists {
		cmd.SetVal(val)
	} else {
		cmd.SetErr(redis.Nil)
	}
	return cmd
}

func (m *MockRedisClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	cmd := new(redis.StatusCmd)
	if m.failing {
		cmd.SetErr(assertError{})
		return cmd
	}
	switch v := value.(type) {
	case []byte:
		m.store[key] = string(v)
	case string:
		m.store[key] = v
	}
	cmd.SetVal("OK")
	return cmd
}

func (m *MockRedisClient) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	cmd := new(redis.IntCmd)
	if m.failing {
		cmd.SetErr(assertError{})
		return cmd
	}
	var removed int64
	for _, key := range keys {
		if _, exists := m.store[key]; exists {
			delete(m.store, key)
			removed++
		}
	}
	cmd.SetVal(removed)
	return cmd
}

type assertError struct{}

func (assertError) Error() string { return "redis unavailable" }

func sampleItems() []models.EventListItem {
	return []models.EventListItem{
		{ID: "id-1", Name: "Launch Party", Date: "Feb 20, 2026 6:30 PM", Status: models.StatusDraft},
	}
}

func TestListCacheRoundTrip(t *testing.T) {
	client := NewMockRedisClient()
	c := NewListCache(client, 30*time.Second, nil)
	ctx := context.Background()

	_, ok := c.Get(ctx, "alice")
	assert.False(t, ok, "cold cache misses")

	c.Put(ctx, "alice", sampleItems())

	items, ok := c.Get(ctx, "alice")
	require.True(t, ok)
	require.Len(t, items, 1)
	assert.Equal(t, "Launch Party", items[0].Name)
}

func TestListCacheKeysAreScopedPerHost(t *testing.T) {
	client := NewMockRedisClient()
	c := NewListCache(client, 30*time.Second, nil)
	ctx := context.Background()

	c.Put(ctx, "alice", sampleItems())

	_, ok := c.Get(ctx, "bob")
	assert.False(t, ok)
	_, ok = c.Get(ctx, "")
	assert.False(t, ok)
}

func TestListCacheInvalidateDropsHostAndAll(t *testing.T) {
	client := NewMockRedisClient()
	c := NewListCache(client, 30*time.Second, nil)
	ctx := context.Background()

	c.Put(ctx, "alice", sampleItems())
	c.Put(ctx, "bob", sampleItems())
	c.Put(ctx, "", sampleItems())

	c.Invalidate(ctx, "alice")

	_, ok := c.Get(ctx, "alice")
	assert.False(t, ok)
	_, ok = c.Get(ctx, "")
	assert.False(t, ok, "the unfiltered list is stale after any create")
	_, ok = c.Get(ctx, "bob")
	assert.True(t, ok, "other hosts' entries survive")
}

func TestListCacheTreatsErrorsAsMisses(t *testing.T) {
	client := NewMockRedisClient()
	client.failing = true
	c := NewListCache(client, 30*time.Second, nil)
	ctx := context.Background()

	c.Put(ctx, "alice", sampleItems())
	_, ok := c.Get(ctx, "alice")
	assert.False(t, ok)

	// Invalidation on a failing backend must not panic.
	c.Invalidate(ctx, "alice")
}

func TestListCacheIgnoresCorruptEntries(t *testing.T) {
	client := NewMockRedisClient()
	client.store["events:host:alice"] = "{not json"
	c := NewListCache(client, 30*time.Second, nil)

	_, ok := c.Get(context.Background(), "alice")
	assert.False(t, ok)
}
