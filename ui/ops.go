package ui

import (
	"net/http"
	"time"

	"incosedss/internal/metrics"
	"incosedss/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

// HealthStatus is the /healthz body
type HealthStatus struct {
	Status   string    `json:"status"`
	Sessions int       `json:"sessions"`
	Time     time.Time `json:"time"`
}

// NewOpsRouter serves health, Prometheus metrics and pprof on the ops listener
func NewOpsRouter(m *metrics.Metrics, store session.Store) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		render.JSON(w, req, HealthStatus{
			Status:   "ok",
			Sessions: store.Len(),
			Time:     time.Now().UTC(),
		})
	})
	r.Method(http.MethodGet, "/metrics", m.Handler())
	r.Mount("/debug", middleware.Profiler())

	return r
}
