package event_api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"ms-events/internal/events/qr"
	"ms-events/internal/events/service"
	"ms-events/internal/logger"
	"ms-events/internal/models"
	"ms-events/internal/utils"
)

type Handler struct {
	EventService *service.EventService
	QRGenerator  *qr.Generator
	Logger       *logger.Logger
}

func NewHandler(eventService *service.EventService, log *logger.Logger) *Handler {
	return &Handler{
		EventService: eventService,
		QRGenerator:  qr.NewGenerator(),
		Logger:       log,
	}
}

// ListEvents handles GET /api/events. The optional hostId query param
// restricts the result to one host; blank after trimming means all.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	hostID := strings.TrimSpace(r.URL.Query().Get("hostId"))
	h.Logger.Info("API", fmt.Sprintf("ListEvents: hostId=%q", hostID))

	events, err := h.EventService.ListEvents(r.Context(), hostID)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ListEvents: %v", err))
		utils.WriteError(w, http.StatusInternalServerError, utils.ErrorMessage(err))
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"ok":     true,
		"events": events,
	})
}

// CreateEvent handles POST /api/events. Checks run in a fixed order and
// the first failure is the whole answer; nothing is aggregated.
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var body models.CreateEventBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.Logger.Error("API", fmt.Sprintf("CreateEvent: failed to decode body: %v", err))
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	in, errMsg := validateCreateBody(body)
	if errMsg != "" {
		h.Logger.Warn("API", fmt.Sprintf("CreateEvent: rejected: %s", errMsg))
		utils.WriteError(w, http.StatusBadRequest, errMsg)
		return
	}

	result, err := h.EventService.CreateEvent(r.Context(), *in)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("CreateEvent: %v", err))
		utils.WriteError(w, http.StatusInternalServerError, utils.ErrorMessage(err))
		return
	}

	h.Logger.LogEvent("CREATE", result.EventID, fmt.Sprintf("code=%s host=%s", result.Code, in.HostID))
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"ok":      true,
		"eventId": result.EventID,
		"code":    result.Code,
		"qrData":  result.QRData,
	})
}

// validateCreateBody normalizes and validates a create request. It
// returns the input for the service, or the message for a 400 response.
func validateCreateBody(body models.CreateEventBody) (*models.CreateEventInput, string) {
	eventName := strings.TrimSpace(body.EventName)
	companyName := strings.TrimSpace(body.CompanyName)
	category := strings.TrimSpace(body.Category)
	description := strings.TrimSpace(body.Description)
	location := strings.TrimSpace(body.Location)
	hostID := strings.TrimSpace(body.HostID)

	if eventName == "" {
		return nil, "eventName is required"
	}
	if companyName == "" {
		return nil, "companyName is required"
	}
	if category == "" {
		return nil, "category is required"
	}
	if description == "" {
		return nil, "description is required"
	}
	if location == "" {
		return nil, "location is required"
	}
	if hostID == "" {
		return nil, "hostId is required"
	}

	// A missing or non-numeric capacity decoded to zero, which fails here.
	if body.Capacity != float64(int(body.Capacity)) || body.Capacity < 1 {
		return nil, "capacity must be >= 1"
	}
	if body.Price < 0 {
		return nil, "price must be >= 0"
	}

	dateStr := strings.TrimSpace(body.Date)
	timeStr := strings.TrimSpace(body.Time)
	if dateStr == "" {
		return nil, "date is required"
	}
	if timeStr == "" {
		return nil, "time is required"
	}

	startsAt, err := utils.CombineDateTime(dateStr, timeStr)
	if err != nil {
		return nil, "Invalid date/time"
	}

	return &models.CreateEventInput{
		Name:        eventName,
		CompanyName: companyName,
		Category:    category,
		Description: description,
		Location:    location,
		IsOnline:    body.IsOnline,
		HostID:      hostID,
		Capacity:    int(body.Capacity),
		Price:       body.Price,
		StartsAt:    startsAt,
		IsPopular:   body.IsPopular,
		Speakers:    normalizeSpeakers(body.Speakers),
	}, ""
}

// normalizeSpeakers drops entries without a usable name and trims the
// survivors. The order of the remaining speakers is preserved.
func normalizeSpeakers(in []models.SpeakerInput) []models.Speaker {
	var out []models.Speaker
	for _, sp := range in {
		name := strings.TrimSpace(sp.Name)
		if name == "" {
			continue
		}
		out = append(out, models.Speaker{
			Name:  name,
			Title: strings.TrimSpace(sp.Title),
		})
	}
	return out
}

// EventQR handles GET /api/events/{code}/qr: the join URL rendered as a
// PNG, sized for either the table preview or the download button.
func (h *Handler) EventQR(w http.ResponseWriter, r *http.Request) {
	code := strings.TrimSpace(chi.URLParam(r, "code"))
	if code == "" {
		utils.WriteError(w, http.StatusBadRequest, "code is required")
		return
	}

	size := qr.DefaultSize
	if raw := r.URL.Query().Get("size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < qr.MinSize || parsed > qr.MaxSize {
			utils.WriteError(w, http.StatusBadRequest, fmt.Sprintf("size must be an integer between %d and %d", qr.MinSize, qr.MaxSize))
			return
		}
		size = parsed
	}

	joinURL := utils.MakeJoinURL(h.EventService.BaseURL, code)
	png, err := h.QRGenerator.JoinPNG(joinURL, size)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("EventQR: failed to render QR for %s: %v", code, err))
		utils.WriteError(w, http.StatusInternalServerError, utils.ErrorMessage(err))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=event-%s-qr.png", code))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
