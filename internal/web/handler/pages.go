package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/a-h/templ"

	"github.com/mcoot/clubroster/internal/web/gate"
	"github.com/mcoot/clubroster/internal/web/middleware"
	"github.com/mcoot/clubroster/internal/web/templates/layout"
	"github.com/mcoot/clubroster/internal/web/templates/pages"
)

// PageHandler serves the HTML shells. Access control has already been
// applied by the gate when these handlers run.
type PageHandler struct {
	logger *slog.Logger
}

// NewPageHandler creates a new PageHandler
func NewPageHandler(logger *slog.Logger) *PageHandler {
	return &PageHandler{logger: logger}
}

// Root sends a signed-in player to their landing area
func (h *PageHandler) Root(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		http.Redirect(w, r, gate.LoginPath, http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, gate.Landing(claims.IsAdmin), http.StatusSeeOther)
}

// Login renders the login page
func (h *PageHandler) Login(w http.ResponseWriter, r *http.Request) {
	data := pages.LoginData{
		PageData:       layout.PageData{Title: "Sign in"},
		RedirectedFrom: safeRedirect(r.URL.Query().Get(gate.RedirectParam)),
	}
	h.render(w, r, http.StatusOK, "login", pages.Login(data))
}

// Dashboard renders the player area
func (h *PageHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "dashboard", pages.Dashboard(h.pageData(r, "Dashboard")))
}

// Admin renders the admin area
func (h *PageHandler) Admin(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "admin", pages.Admin(h.pageData(r, "Administration")))
}

// NotFound renders the 404 page
func (h *PageHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, "not_found", pages.NotFound(h.pageData(r, "Not found")))
}

func (h *PageHandler) pageData(r *http.Request, title string) layout.PageData {
	data := layout.PageData{Title: title}
	if claims := middleware.GetClaims(r.Context()); claims != nil {
		data.FullName = claims.FullName
		data.IsAdmin = claims.IsAdmin
	}
	return data
}

func (h *PageHandler) render(w http.ResponseWriter, r *http.Request, status int, page string, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		h.logger.Error("failed to render page",
			slog.String("page", page),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
	}
}

// safeRedirect keeps only same-site absolute paths
func safeRedirect(target string) string {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return ""
	}
	return target
}
