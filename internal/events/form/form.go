package form

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"ms-events/internal/models"
)

// State tracks where a creation form is in its lifecycle.
type State int

const (
	StateEditing State = iota
	StateSubmitting
	StateSuccess
)

func (s State) String() string {
	switch s {
	case StateEditing:
		return "editing"
	case StateSubmitting:
		return "submitting"
	case StateSuccess:
		return "success"
	default:
		return "unknown"
	}
}

// ErrSubmitInFlight is returned when Submit is called while a previous
// submission has not finished; the UI disables the button for the same
// reason.
var ErrSubmitInFlight = errors.New("a submission is already in progress")

// Fields mirrors the creation form inputs. Capacity and price stay raw
// strings until submission, exactly as they sit in the input elements.
type Fields struct {
	EventName        string
	OrganizationName string
	Category         string
	Description      string
	StartDate        string // YYYY-MM-DD
	EndDate          string // YYYY-MM-DD, multi-day only
	Time             string // HH:mm
	IsMultiDay       bool
	IsOnline         bool
	Location         string
	Capacity         string
	Price            string
	Speakers         []models.SpeakerInput
}

// EventForm drives the create-event flow against a running API server:
// editing -> submitting -> success, or back to editing with the server's
// error message when the request fails.
type EventForm struct {
	client  *http.Client
	baseURL string
	hostID  string

	state    State
	errorMsg string
	Fields   Fields
}

func New(client *http.Client, baseURL, hostID string) *EventForm {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &EventForm{
		client:  client,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		hostID:  hostID,
		Fields:  Fields{Price: "0"},
	}
}

func (f *EventForm) State() State {
	return f.state
}

// ErrorMessage is the inline error from the last failed submission,
// empty once editing resumes cleanly or a submission succeeds.
func (f *EventForm) ErrorMessage() string {
	return f.errorMsg
}

// SetMultiDay toggles the multi-day mode. Turning it off clears the end
// date, matching the form control that disappears with it.
func (f *EventForm) SetMultiDay(on bool) {
	f.Fields.IsMultiDay = on
	if !on {
		f.Fields.EndDate = ""
	}
}

// validate applies the checks the form enforces before any network call:
// required fields, numeric ranges and date ordering.
func (f *EventForm) validate() string {
	required := []struct {
		value, label string
	}{
		{f.Fields.EventName, "event name"},
		{f.Fields.OrganizationName, "organization name"},
		{f.Fields.Category, "category"},
		{f.Fields.Description, "description"},
		{f.Fields.StartDate, "start date"},
		{f.Fields.Time, "time"},
		{f.Fields.Location, "location"},
		{f.Fields.Capacity, "capacity"},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return fmt.Sprintf("Please fill in the %s.", field.label)
		}
	}

	capacity, err := strconv.Atoi(strings.TrimSpace(f.Fields.Capacity))
	if err != nil || capacity < 1 {
		return "Capacity must be a whole number of at least 1."
	}
	if price, err := parsePrice(f.Fields.Price); err != nil || price < 0 {
		return "Price must be 0 or more."
	}

	if f.Fields.IsMultiDay && f.Fields.StartDate != "" && f.Fields.EndDate != "" {
		start, startErr := time.Parse("2006-01-02", f.Fields.StartDate)
		end, endErr := time.Parse("2006-01-02", f.Fields.EndDate)
		if startErr == nil && endErr == nil && end.Before(start) {
			return "End date cannot be before start date."
		}
	}
	return ""
}

func parsePrice(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseFloat(raw, 64)
}

// buildPayload shapes the form fields into the create handler's body:
// organizationName becomes companyName and startDate becomes date.
func (f *EventForm) buildPayload() models.CreateEventBody {
	capacity, _ := strconv.ParseFloat(strings.TrimSpace(f.Fields.Capacity), 64)
	price, _ := parsePrice(f.Fields.Price)

	return models.CreateEventBody{
		EventName:   f.Fields.EventName,
		CompanyName: f.Fields.OrganizationName,
		Category:    f.Fields.Category,
		Description: f.Fields.Description,
		Location:    f.Fields.Location,
		IsOnline:    f.Fields.IsOnline,
		HostID:      f.hostID,
		Capacity:    capacity,
		Price:       price,
		Date:        f.Fields.StartDate,
		Time:        f.Fields.Time,
		Speakers:    f.Fields.Speakers,
	}
}

// Submit runs the full submission: local validation, the POST to the
// API, and the state transition. On failure the form returns to editing
// with the server's message available inline; on success the fields
// reset.
func (f *EventForm) Submit(ctx context.Context) (*models.CreateEventResult, error) {
	if f.state == StateSubmitting {
		return nil, ErrSubmitInFlight
	}

	if msg := f.validate(); msg != "" {
		f.state = StateEditing
		f.errorMsg = msg
		return nil, errors.New(msg)
	}

	f.state = StateSubmitting
	f.errorMsg = ""

	result, err := f.post(ctx)
	if err != nil {
		f.state = StateEditing
		f.errorMsg = err.Error()
		return nil, err
	}

	f.state = StateSuccess
	f.Fields = Fields{Price: "0"}
	return result, nil
}

func (f *EventForm) post(ctx context.Context) (*models.CreateEventResult, error) {
	payload, err := json.Marshal(f.buildPayload())
	if err != nil {
		return nil, fmt.Errorf("failed to encode event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.baseURL+"/api/events", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("network error: %w", err)
	}
	defer func(body io.ReadCloser) {
		_ = body.Close()
	}(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var serverErr struct {
			Error string `json:"error"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&serverErr); decodeErr == nil && serverErr.Error != "" {
			return nil, errors.New(serverErr.Error)
		}
		return nil, fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	var result struct {
		OK      bool   `json:"ok"`
		EventID string `json:"eventId"`
		Code    string `json:"code"`
		QRData  string `json:"qrData"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if !result.OK {
		return nil, errors.New("server did not confirm the event")
	}

	return &models.CreateEventResult{
		EventID: result.EventID,
		Code:    result.Code,
		QRData:  result.QRData,
	}, nil
}

// Reset returns a successful or errored form to a clean editing state.
func (f *EventForm) Reset() {
	f.state = StateEditing
	f.errorMsg = ""
	f.Fields = Fields{Price: "0"}
}
