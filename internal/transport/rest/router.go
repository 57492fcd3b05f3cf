package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/freeup86/trainingpulse-sub004/internal/config"
	"github.com/freeup86/trainingpulse-sub004/internal/transport/middleware"
)

// RouterDeps holds everything the HTTP surface is assembled from.
type RouterDeps struct {
	Log     *slog.Logger
	Health  *HealthHandler
	Bulk    *BulkHandler
	Courses *CourseHandler
	Feed    *FeedHandler

	// Auth resolves bearer tokens into the request context.
	Auth middleware.Middleware
	// BulkRoles may call /bulk and /courses.
	BulkRoles []string
	CORS      config.CORSConfig

	// ExecuteLimit throttles POST /bulk/execute. Nil disables throttling.
	ExecuteLimit middleware.Middleware

	// Metrics instruments every route and is served on MetricsPath. Nil
	// disables both.
	Metrics     MetricsExporter
	MetricsPath string
}

// MetricsExporter records per-route HTTP metrics and serves the exposition.
type MetricsExporter interface {
	Middleware(next http.Handler) http.Handler
	Handler() http.Handler
}

// NewRouter builds the chi router for the public API.
func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(d.Log))
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware)
	}
	r.Use(middleware.Chain(
		middleware.CORS(d.CORS),
		d.Auth,
		middleware.Logger(d.Log),
	))

	r.Get("/live", d.Health.Live)
	r.Get("/ready", d.Health.Ready)
	r.Get("/health", d.Health.Health)
	if d.Metrics != nil && d.MetricsPath != "" {
		r.Method(http.MethodGet, d.MetricsPath, d.Metrics.Handler())
	}

	r.Route("/me", func(r chi.Router) {
		r.Use(middleware.RequireAuth())

		r.Get("/notifications", d.Feed.Notifications)
		r.Get("/activity", d.Feed.Activity)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(d.BulkRoles...))

		r.Get("/courses", d.Courses.List)
		r.Get("/courses/{id}/activity", d.Courses.Activity)

		r.Route("/bulk", func(r chi.Router) {
			r.Post("/validate", d.Bulk.Validate)
			r.Post("/preview", d.Bulk.Preview)
			r.Get("/preview/{previewId}", d.Bulk.GetPreview)

			r.With(middleware.Chain(d.ExecuteLimit)).Post("/execute", d.Bulk.Execute)

			r.Delete("/cancel/{previewId}", d.Bulk.Cancel)
			r.Get("/history", d.Bulk.History)
			r.Get("/history/{id}", d.Bulk.GetHistoryEntry)

			r.Get("/templates", d.Bulk.ListTemplates)
			r.Post("/templates", d.Bulk.CreateTemplate)
			r.Get("/templates/{id}", d.Bulk.GetTemplate)
			r.Put("/templates/{id}", d.Bulk.UpdateTemplate)
			r.Delete("/templates/{id}", d.Bulk.DeleteTemplate)

			r.Post("/template/{templateId}", d.Bulk.ApplyTemplate)
		})
	})

	return r
}
