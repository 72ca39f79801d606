package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/clubroster/internal/middleware"
	"github.com/mcoot/clubroster/internal/web/templates/layout"
	"github.com/mcoot/clubroster/internal/web/templates/pages"
)

// Recovery creates panic recovery middleware for the web interface.
// It renders the shared error page.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, webPanicHandler)
}

func webPanicHandler(w http.ResponseWriter, r *http.Request, _ any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_ = pages.Error(layout.PageData{Title: "Error"}).Render(r.Context(), w)
}
