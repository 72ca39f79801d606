package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/clubroster/internal/middleware"
	"github.com/mcoot/clubroster/internal/services/session"
	"github.com/mcoot/clubroster/internal/web/handler"
	webmiddleware "github.com/mcoot/clubroster/internal/web/middleware"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger    *slog.Logger
	Sessions  *session.Service
	StaticDir string // Path to static files directory
}

// NewRouter creates the web router. The gate wraps the whole router so it
// also runs for paths no route matches.
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	pages := handler.NewPageHandler(cfg.Logger)

	// Static files
	if cfg.StaticDir != "" {
		staticHandler := http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir)))
		r.PathPrefix("/static/").Handler(staticHandler)
	}

	r.HandleFunc("/healthz", healthHandler).Methods(http.MethodGet)
	r.HandleFunc("/favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	r.HandleFunc("/", pages.Root).Methods(http.MethodGet)
	r.HandleFunc("/login", pages.Login).Methods(http.MethodGet)

	r.HandleFunc("/dashboard", pages.Dashboard).Methods(http.MethodGet)
	r.PathPrefix("/dashboard/").HandlerFunc(pages.Dashboard).Methods(http.MethodGet)

	r.HandleFunc("/admin", pages.Admin).Methods(http.MethodGet)
	r.PathPrefix("/admin/").HandlerFunc(pages.Admin).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(pages.NotFound)

	var h http.Handler = r
	h = webmiddleware.Gate(cfg.Sessions)(h)
	h = middleware.Logging(cfg.Logger)(h)
	h = webmiddleware.Recovery(cfg.Logger)(h)
	return h
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}
