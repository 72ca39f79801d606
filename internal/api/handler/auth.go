package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mcoot/clubroster/internal/api/middleware"
	"github.com/mcoot/clubroster/internal/api/request"
	"github.com/mcoot/clubroster/internal/api/response"
	"github.com/mcoot/clubroster/internal/services/auth"
	"github.com/mcoot/clubroster/internal/services/session"
)

// AuthHandler handles login, logout and the current player's overview
type AuthHandler struct {
	authService *auth.Service
	sessions    *session.Service
	logger      *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *auth.Service, sessions *session.Service, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
		logger:      logger,
	}
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(h.logger, w, r, NewInvalidRequestError("invalid request body"))
		return
	}

	sess, err := h.authService.Login(r.Context(), req.Identifier, req.Password)
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	h.sessions.SetCookie(w, sess.Token, sess.ExpiresAt)
	response.JSON(w, http.StatusOK, response.LoginResponseFromModel(&sess.Player))
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.ClearCookie(w)
	response.JSON(w, http.StatusOK, response.SuccessResponse{Success: true})
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := middleware.MustGetClaims(r.Context())

	overview, err := h.authService.Overview(r.Context(), claims)
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MeResponseFromOverview(overview))
}
