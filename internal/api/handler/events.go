package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mcoot/clubroster/internal/api/request"
	"github.com/mcoot/clubroster/internal/api/response"
	"github.com/mcoot/clubroster/internal/model"
	"github.com/mcoot/clubroster/internal/services/roster"
)

// EventHandler handles fixture endpoints
type EventHandler struct {
	store  *roster.Store
	logger *slog.Logger
}

// NewEventHandler creates a new event handler
func NewEventHandler(store *roster.Store, logger *slog.Logger) *EventHandler {
	return &EventHandler{
		store:  store,
		logger: logger,
	}
}

// Summaries handles GET /api/events
func (h *EventHandler) Summaries(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.store.EventSummaries(r.Context())
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, response.EventSummariesResponse{Events: summaries})
}

// List handles GET /api/admin/events
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	events, err := h.store.Events(r.Context())
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, response.EventsResponse{Events: events})
}

// Create handles POST /api/admin/events
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(h.logger, w, r, NewInvalidRequestError("invalid request body"))
		return
	}

	if strings.TrimSpace(req.Title) == "" || req.Category == "" ||
		strings.TrimSpace(req.StartTime) == "" || strings.TrimSpace(req.Location) == "" {
		writeError(h.logger, w, r, NewInvalidRequestError("Missing required fields"))
		return
	}

	startTime, err := request.ParseStartTime(req.StartTime)
	if err != nil {
		writeError(h.logger, w, r, NewInvalidRequestError("startTime must be an ISO 8601 date-time"))
		return
	}

	event, err := h.store.AddEvent(r.Context(), roster.NewEvent{
		Title:     req.Title,
		Category:  model.Category(req.Category),
		StartTime: startTime,
		Location:  req.Location,
		Notes:     req.Notes,
	})
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, response.EventResponse{Event: *event})
}
