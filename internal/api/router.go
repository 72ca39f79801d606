package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/mcoot/clubroster/internal/api/apierr"
	"github.com/mcoot/clubroster/internal/api/handler"
	apimiddleware "github.com/mcoot/clubroster/internal/api/middleware"
	"github.com/mcoot/clubroster/internal/api/response"
	"github.com/mcoot/clubroster/internal/middleware"
	"github.com/mcoot/clubroster/internal/services/auth"
	"github.com/mcoot/clubroster/internal/services/roster"
	"github.com/mcoot/clubroster/internal/services/session"
)

// AdminPrefix is the path prefix of the administrator-only endpoints
const AdminPrefix = "/api/admin"

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger      *slog.Logger
	Store       *roster.Store
	AuthService *auth.Service
	Sessions    *session.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := newMuxRouter()

	// Create handlers
	authHandler := handler.NewAuthHandler(cfg.AuthService, cfg.Sessions, cfg.Logger)
	playerHandler := handler.NewPlayerHandler(cfg.Store, cfg.AuthService, cfg.Logger)
	eventHandler := handler.NewEventHandler(cfg.Store, cfg.Logger)
	attendanceHandler := handler.NewAttendanceHandler(cfg.Store, cfg.Logger)

	// Create middleware
	authMiddleware := apimiddleware.Auth(cfg.Sessions)
	adminMiddleware := apimiddleware.RequireAdmin()

	// Admin routes live on their own router. Auth and the role check wrap the
	// whole prefix, so they run before any routing, validation or body parsing.
	admin := newMuxRouter()
	admin.HandleFunc(AdminPrefix+"/players", playerHandler.List).Methods(http.MethodGet)
	admin.HandleFunc(AdminPrefix+"/players", playerHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc(AdminPrefix+"/players/{id}", playerHandler.Delete).Methods(http.MethodDelete)
	admin.HandleFunc(AdminPrefix+"/events", eventHandler.List).Methods(http.MethodGet)
	admin.HandleFunc(AdminPrefix+"/events", eventHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc(AdminPrefix+"/attendance", attendanceHandler.List).Methods(http.MethodGet)
	admin.HandleFunc(AdminPrefix+"/attendance", attendanceHandler.Record).Methods(http.MethodPost)

	r.MatcherFunc(underAdminPrefix).Handler(authMiddleware(adminMiddleware(admin)))

	// Public routes
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/logout", authHandler.Logout).Methods(http.MethodPost)
	r.HandleFunc("/api/health", healthHandler).Methods(http.MethodGet)

	// Routes for any signed-in player
	protected := r.NewRoute().Subrouter()
	protected.Use(authMiddleware)
	protected.HandleFunc("/api/auth/me", authHandler.Me).Methods(http.MethodGet)
	protected.HandleFunc("/api/events", eventHandler.Summaries).Methods(http.MethodGet)

	var h http.Handler = r
	h = middleware.Logging(cfg.Logger)(h)
	h = apimiddleware.Recovery(cfg.Logger)(h)
	return h
}

func newMuxRouter() *mux.Router {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		apierr.WriteError(w, apierr.NewNotFoundError())
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		apierr.WriteError(w, apierr.NewMethodNotAllowedError())
	})
	return r
}

func underAdminPrefix(r *http.Request, _ *mux.RouteMatch) bool {
	return r.URL.Path == AdminPrefix || strings.HasPrefix(r.URL.Path, AdminPrefix+"/")
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.HealthResponse{Status: "ok"})
}
