// Package api exposes the rotation engine over a REST/JSON interface.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/movieclubhq/backend/internal/storage"
	"github.com/movieclubhq/backend/internal/timeline"
)

// Server routes API requests to the timeline service and the store.
type Server struct {
	store  storage.Store
	svc    *timeline.Service
	logger *slog.Logger
}

// NewServer creates an API server over the given store and service.
func NewServer(store storage.Store, svc *timeline.Service, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		store:  store,
		svc:    svc,
		logger: logger.With("component", "api"),
	}
}

// Handler builds the route table. The caller owns the listener, so the
// handler can be wrapped (h2c, tests) as needed.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/v1/timeline", s.handleTimeline)
	mux.HandleFunc("GET /api/v1/months/{month}", s.handleMonth)
	mux.HandleFunc("POST /api/v1/months/{month}/event", s.handleCreateEvent)

	mux.HandleFunc("GET /api/v1/participants", s.handleListParticipants)
	mux.HandleFunc("POST /api/v1/participants", s.handleCreateParticipant)
	mux.HandleFunc("DELETE /api/v1/participants/{id}", s.handleDeleteParticipant)

	mux.HandleFunc("GET /api/v1/settings", s.handleGetSettings)
	mux.HandleFunc("PUT /api/v1/settings", s.handlePutSettings)

	mux.HandleFunc("POST /api/v1/rotation/refresh", s.handleRefresh)

	return s.loggingMiddleware(mux)
}

// loggingMiddleware logs every request with its duration.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		s.logger.Info("request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
