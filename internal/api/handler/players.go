package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/clubroster/internal/api/request"
	"github.com/mcoot/clubroster/internal/api/response"
	"github.com/mcoot/clubroster/internal/model"
	"github.com/mcoot/clubroster/internal/services/auth"
	"github.com/mcoot/clubroster/internal/services/roster"
)

// PlayerHandler handles roster administration endpoints
type PlayerHandler struct {
	store       *roster.Store
	authService *auth.Service
	logger      *slog.Logger
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(store *roster.Store, authService *auth.Service, logger *slog.Logger) *PlayerHandler {
	return &PlayerHandler{
		store:       store,
		authService: authService,
		logger:      logger,
	}
}

// List handles GET /api/admin/players
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	players, err := h.store.Players(r.Context())
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayersResponse{
		Players: response.PlayersFromModel(players),
	})
}

// Create handles POST /api/admin/players
func (h *PlayerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreatePlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(h.logger, w, r, NewInvalidRequestError("invalid request body"))
		return
	}

	provisioned, err := h.authService.ProvisionPlayer(r.Context(), auth.ProvisionRequest{
		FullName: req.FullName,
		Email:    req.Email,
		Position: req.Position,
		Username: req.Username,
		IsAdmin:  req.IsAdmin,
	})
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, response.CreatePlayerResponse{
		Player:            response.PlayerFromModel(&provisioned.Player),
		TemporaryPassword: provisioned.TemporaryPassword,
	})
}

// Delete handles DELETE /api/admin/players/{id}
func (h *PlayerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := model.PlayerID(mux.Vars(r)["id"])

	if err := h.store.DeletePlayer(r.Context(), id); err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SuccessResponse{Success: true})
}
