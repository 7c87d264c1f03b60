package db

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"ms-events/internal/models"
)

// MemoryDB keeps events in process memory. It backs demo mode (no
// MONGO_URI configured) and tests. Each store owns its records and its
// identifier sequence; nothing is shared across instances.
type MemoryDB struct {
	mu     sync.RWMutex
	events []memoryEvent
}

type memoryEvent struct {
	id  string
	doc models.EventDocument
}

func NewMemoryDB() *MemoryDB {
	return &MemoryDB{}
}

func (m *MemoryDB) ListEvents(ctx context.Context, hostID string) ([]models.StoredEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var events []models.StoredEvent
	for _, e := range m.events {
		if hostID != "" && e.doc.HostID != hostID {
			continue
		}
		events = append(events, models.StoredEvent{
			ID:            e.id,
			Name:          e.doc.Name,
			Date:          e.doc.Date,
			Status:        e.doc.Status,
			Location:      e.doc.Location,
			AttendeeCount: e.doc.AttendeeCount,
			Code:          e.doc.Code,
			QRData:        e.doc.QRData,
			HostID:        e.doc.HostID,
			CompanyName:   e.doc.CompanyName,
			Category:      e.doc.Category,
			Description:   e.doc.Description,
			IsOnline:      e.doc.IsOnline,
			Capacity:      e.doc.Capacity,
			Price:         e.doc.Price,
			IsPopular:     e.doc.IsPopular,
			Speakers:      e.doc.Speakers,
		})
	}

	sort.SliceStable(events, func(i, j int) bool {
		di, _ := events[i].Date.(time.Time)
		dj, _ := events[j].Date.(time.Time)
		return di.After(dj)
	})
	return events, nil
}

func (m *MemoryDB) InsertEvent(ctx context.Context, doc models.EventDocument) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.NewString()
	m.events = append(m.events, memoryEvent{id: id, doc: doc})
	return id, nil
}
