package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mcoot/clubroster/internal/api/middleware"
	"github.com/mcoot/clubroster/internal/api/request"
	"github.com/mcoot/clubroster/internal/api/response"
	"github.com/mcoot/clubroster/internal/model"
	"github.com/mcoot/clubroster/internal/services/roster"
)

// AttendanceHandler handles attendance endpoints
type AttendanceHandler struct {
	store  *roster.Store
	logger *slog.Logger
}

// NewAttendanceHandler creates a new attendance handler
func NewAttendanceHandler(store *roster.Store, logger *slog.Logger) *AttendanceHandler {
	return &AttendanceHandler{
		store:  store,
		logger: logger,
	}
}

// List handles GET /api/admin/attendance?eventId=
func (h *AttendanceHandler) List(w http.ResponseWriter, r *http.Request) {
	eventID := r.URL.Query().Get("eventId")
	if eventID == "" {
		writeError(h.logger, w, r, NewInvalidRequestError("Missing eventId"))
		return
	}

	records, err := h.store.AttendanceForEvent(r.Context(), model.EventID(eventID))
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AttendanceResponse{Attendance: records})
}

// Record handles POST /api/admin/attendance
func (h *AttendanceHandler) Record(w http.ResponseWriter, r *http.Request) {
	claims := middleware.MustGetClaims(r.Context())

	var req request.RecordAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(h.logger, w, r, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.EventID == "" || len(req.Records) == 0 {
		writeError(h.logger, w, r, NewInvalidRequestError("Missing attendance data"))
		return
	}

	entries := make([]roster.AttendanceEntry, len(req.Records))
	for i, rec := range req.Records {
		entries[i] = roster.AttendanceEntry{
			PlayerID: model.PlayerID(rec.PlayerID),
			Status:   model.AttendanceStatus(rec.Status),
		}
	}

	result, err := h.store.BulkRecordAttendance(r.Context(), roster.AttendanceBatch{
		EventID:    model.EventID(req.EventID),
		RecordedBy: claims.UserID,
		Entries:    entries,
	})
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RecordAttendanceResponse{
		Success:    true,
		BulkResult: *result,
	})
}
