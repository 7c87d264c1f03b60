package models

import (
	"time"
)

const (
	StatusDraft = "draft"
	StatusLive  = "live"
	StatusEnded = "ended"
)

// Speaker is embedded in an event document, never stored on its own.
type Speaker struct {
	Name  string `bson:"name" json:"name"`
	Title string `bson:"title,omitempty" json:"title,omitempty"`
}

// EventDocument is the write-side shape persisted to the "events" collection.
type EventDocument struct {
	Name          string    `bson:"name"`
	Code          string    `bson:"code"`
	QRData        string    `bson:"qrData"`
	Date          time.Time `bson:"date"`
	Location      string    `bson:"location"`
	Status        string    `bson:"status"`
	AttendeeCount int       `bson:"attendeeCount"`
	CompanyName   string    `bson:"companyName"`
	Category      string    `bson:"category"`
	Description   string    `bson:"description"`
	IsOnline      bool      `bson:"isOnline"`
	Capacity      int       `bson:"capacity"`
	Price         float64   `bson:"price"`
	IsPopular     bool      `bson:"isPopular,omitempty"`
	Speakers      []Speaker `bson:"speakers,omitempty"`
	HostID        string    `bson:"hostId"`
	CreatedAt     time.Time `bson:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt"`
}

// StoredEvent is the read-side shape handed back by a store gateway.
// Date stays untyped: documents written by older dashboard versions carry
// the timestamp as a store wrapper or a plain string, so the service runs
// it through utils.CoerceTimestamp instead of trusting the decoder.
type StoredEvent struct {
	ID            string
	Name          string
	Date          any
	Status        string
	Location      string
	AttendeeCount int
	Code          string
	QRData        string
	HostID        string
	CompanyName   string
	Category      string
	Description   string
	IsOnline      bool
	Capacity      int
	Price         float64
	IsPopular     bool
	Speakers      []Speaker
}

// CreateEventBody is the JSON body accepted by POST /api/events.
type CreateEventBody struct {
	EventName   string         `json:"eventName"`
	CompanyName string         `json:"companyName"`
	Category    string         `json:"category"`
	Description string         `json:"description"`
	Location    string         `json:"location"`
	IsOnline    bool           `json:"isOnline"`
	HostID      string         `json:"hostId"`
	Capacity    float64        `json:"capacity"`
	Price       float64        `json:"price"`
	Date        string         `json:"date"` // YYYY-MM-DD
	Time        string         `json:"time"` // HH:mm
	IsPopular   bool           `json:"isPopular"`
	Speakers    []SpeakerInput `json:"speakers"`
}

type SpeakerInput struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

// CreateEventInput is the validated, normalized form of CreateEventBody
// that the handler passes to the service.
type CreateEventInput struct {
	Name        string
	CompanyName string
	Category    string
	Description string
	Location    string
	IsOnline    bool
	HostID      string
	Capacity    int
	Price       float64
	StartsAt    time.Time
	IsPopular   bool
	Speakers    []Speaker
}

// CreateEventResult is what the create handler returns on success.
type CreateEventResult struct {
	EventID string `json:"eventId"`
	Code    string `json:"code"`
	QRData  string `json:"qrData"`
}

// EventListItem is one row of the list response, dates already formatted
// for the dashboard table.
type EventListItem struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Date          string    `json:"date"`
	Status        string    `json:"status"`
	Location      string    `json:"location,omitempty"`
	AttendeeCount int       `json:"attendeeCount"`
	Code          string    `json:"code,omitempty"`
	QRData        string    `json:"qrData,omitempty"`
	HostID        string    `json:"hostId,omitempty"`
	CompanyName   string    `json:"companyName,omitempty"`
	Category      string    `json:"category,omitempty"`
	Description   string    `json:"description,omitempty"`
	IsOnline      bool      `json:"isOnline,omitempty"`
	Capacity      int       `json:"capacity,omitempty"`
	Price         float64   `json:"price,omitempty"`
	IsPopular     bool      `json:"isPopular,omitempty"`
	Speakers      []Speaker `json:"speakers,omitempty"`
}
