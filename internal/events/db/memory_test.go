package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ms-events/internal/models"
)

func demoDoc(name, hostID string, date time.Time) models.EventDocument {
	return models.EventDocument{
		Name:          name,
		HostID:        hostID,
		Date:          date,
		Status:        models.StatusDraft,
		AttendeeCount: 0,
		Capacity:      100,
	}
}

func TestMemoryDBInsertAssignsDistinctIDs(t *testing.T) {
	store := NewMemoryDB()
	ctx := context.Background()
	doc := demoDoc("Duplicate", "alice", time.Now())

	first, err := store.InsertEvent(ctx, doc)
	require.NoError(t, err)
	second, err := store.InsertEvent(ctx, doc)
	require.NoError(t, err)

	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)
}

func TestMemoryDBListOrdersByDateDescending(t *testing.T) {
	store := NewMemoryDB()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.Local)

	_, err := store.InsertEvent(ctx, demoDoc("oldest", "alice", base.AddDate(0, 0, -2)))
	require.NoError(t, err)
	_, err = store.InsertEvent(ctx, demoDoc("newest", "alice", base))
	require.NoError(t, err)
	_, err = store.InsertEvent(ctx, demoDoc("middle", "alice", base.AddDate(0, 0, -1)))
	require.NoError(t, err)

	events, err := store.ListEvents(ctx, "")
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "newest", events[0].Name)
	assert.Equal(t, "middle", events[1].Name)
	assert.Equal(t, "oldest", events[2].Name)
}

func TestMemoryDBListFiltersByHost(t *testing.T) {
	store := NewMemoryDB()
	ctx := context.Background()
	now := time.Now()

	_, err := store.InsertEvent(ctx, demoDoc("alice event", "alice", now))
	require.NoError(t, err)
	_, err = store.InsertEvent(ctx, demoDoc("bob event", "bob", now.Add(time.Hour)))
	require.NoError(t, err)
	_, err = store.InsertEvent(ctx, demoDoc("Alice uppercase host", "Alice", now))
	require.NoError(t, err)

	events, err := store.ListEvents(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "alice event", events[0].Name)
	assert.Equal(t, "alice", events[0].HostID)

	all, err := store.ListEvents(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestMemoryDBListUnknownHostIsEmpty(t *testing.T) {
	store := NewMemoryDB()

	events, err := store.ListEvents(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, events)
}
