package ui

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/futig/churn-console/internal/ui/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

// ParseTemplates loads the embedded page templates.
func ParseTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"pct": func(v float64) string { return fmt.Sprintf("%.0f%%", v*100) },
		"deref": func(v *float64) float64 {
			if v == nil {
				return 0
			}
			return *v
		},
	}

	templates, err := template.New("").Funcs(funcMap).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return templates, nil
}

// SetupRouter creates and configures the HTTP router
func SetupRouter(h *Handler, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Logger(logger))
	// Multi-agent runs can take minutes; the timeout covers the whole
	// submit round trip.
	r.Use(chimiddleware.Timeout(3 * time.Minute))

	r.Get("/", h.Index)
	r.Post("/submit", h.Submit)
	r.Get("/evaluation", h.Evaluation)
	r.Get("/api/status", h.Status)
	r.Get("/export/{format}", h.Export)

	return r
}
