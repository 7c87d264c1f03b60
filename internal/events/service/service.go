package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ms-events/internal/events/cache"
	"ms-events/internal/logger"
	"ms-events/internal/models"
	"ms-events/internal/utils"
)

// EventDBLayer is what a store gateway must provide. Both the Mongo
// gateway and the in-memory store satisfy it.
type EventDBLayer interface {
	ListEvents(ctx context.Context, hostID string) ([]models.StoredEvent, error)
	InsertEvent(ctx context.Context, doc models.EventDocument) (string, error)
}

// EventPublisher is the slice of the Kafka producer the service uses.
type EventPublisher interface {
	Publish(topic string, key string, value []byte) error
}

type EventService struct {
	DB       EventDBLayer
	Cache    *cache.ListCache // nil disables caching
	Producer EventPublisher   // nil disables publication
	Topic    string
	BaseURL  string
	Logger   *logger.Logger
}

func NewEventService(db EventDBLayer, baseURL string) *EventService {
	return &EventService{DB: db, BaseURL: baseURL}
}

// ListEvents returns the dashboard rows for a host filter, newest first.
// The empty hostID means all hosts.
func (s *EventService) ListEvents(ctx context.Context, hostID string) ([]models.EventListItem, error) {
	if s.Cache != nil {
		if items, ok := s.Cache.Get(ctx, hostID); ok {
			return items, nil
		}
	}

	stored, err := s.DB.ListEvents(ctx, hostID)
	if err != nil {
		return nil, err
	}

	items := make([]models.EventListItem, 0, len(stored))
	for _, ev := range stored {
		items = append(items, toListItem(ev))
	}

	if s.Cache != nil {
		s.Cache.Put(ctx, hostID, items)
	}
	return items, nil
}

// toListItem shapes one stored record for the table: the timestamp is
// coerced then formatted (empty string when absent or unparseable) and
// a missing status falls back to draft.
func toListItem(ev models.StoredEvent) models.EventListItem {
	date := ""
	if t, ok := utils.CoerceTimestamp(ev.Date); ok {
		date = utils.FormatForTable(t)
	}

	status := ev.Status
	if status == "" {
		status = models.StatusDraft
	}

	return models.EventListItem{
		ID:            ev.ID,
		Name:          ev.Name,
		Date:          date,
		Status:        status,
		Location:      ev.Location,
		AttendeeCount: ev.AttendeeCount,
		Code:          ev.Code,
		QRData:        ev.QRData,
		HostID:        ev.HostID,
		CompanyName:   ev.CompanyName,
		Category:      ev.Category,
		Description:   ev.Description,
		IsOnline:      ev.IsOnline,
		Capacity:      ev.Capacity,
		Price:         ev.Price,
		IsPopular:     ev.IsPopular,
		Speakers:      ev.Speakers,
	}
}

// CreateEvent persists a validated event: generates the join code and
// URL, writes the document, invalidates cached lists and announces the
// creation on Kafka. The input must already be normalized by the caller.
func (s *EventService) CreateEvent(ctx context.Context, in models.CreateEventInput) (*models.CreateEventResult, error) {
	code := utils.MakeEventCode(in.Name)
	qrData := utils.MakeJoinURL(s.BaseURL, code)

	now := time.Now()
	doc := models.EventDocument{
		Name:          in.Name,
		Code:          code,
		QRData:        qrData,
		Date:          in.StartsAt,
		Location:      in.Location,
		Status:        models.StatusDraft,
		AttendeeCount: 0,
		CompanyName:   in.CompanyName,
		Category:      in.Category,
		Description:   in.Description,
		IsOnline:      in.IsOnline,
		Capacity:      in.Capacity,
		Price:         in.Price,
		IsPopular:     in.IsPopular,
		Speakers:      in.Speakers,
		HostID:        in.HostID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	id, err := s.DB.InsertEvent(ctx, doc)
	if err != nil {
		return nil, err
	}

	if s.Cache != nil {
		s.Cache.Invalidate(ctx, in.HostID)
	}
	s.publishCreated(id, doc)

	return &models.CreateEventResult{EventID: id, Code: code, QRData: qrData}, nil
}

// publishCreated is best-effort: a broker outage must not fail a create
// that already committed to the store.
func (s *EventService) publishCreated(id string, doc models.EventDocument) {
	if s.Producer == nil {
		return
	}

	payload := struct {
		EventID string `json:"eventId"`
		models.EventDocument
	}{EventID: id, EventDocument: doc}

	value, err := json.Marshal(payload)
	if err != nil {
		s.logWarn(fmt.Sprintf("Failed to marshal created event %s: %v", id, err))
		return
	}
	if err := s.Producer.Publish(s.Topic, id, value); err != nil {
		s.logWarn(fmt.Sprintf("Failed to publish created event %s: %v", id, err))
		return
	}
	if s.Logger != nil {
		s.Logger.LogKafka("PUBLISH", s.Topic, fmt.Sprintf("event %s announced", id))
	}
}

func (s *EventService) logWarn(message string) {
	if s.Logger != nil {
		s.Logger.Warn("EVENT", message)
	}
}
