package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/clubroster/internal/api/apierr"
	"github.com/mcoot/clubroster/internal/middleware"
)

// Recovery creates panic recovery middleware for the JSON API.
// The 500 body quotes the request ID that the panic was logged under.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, apiPanicHandler)
}

func apiPanicHandler(w http.ResponseWriter, r *http.Request, _ any) {
	apierr.WriteError(w, apierr.NewInternalError(middleware.GetRequestID(r.Context())))
}
