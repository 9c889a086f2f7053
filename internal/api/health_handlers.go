package api

import (
	"net/http"

	"github.com/vytor/ivanachess/internal/logger"
)

// handleHealth is the liveness check, always 200 OK.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeText(w, r, "text/plain; charset=utf-8", []byte("OK"))
}

// handleReady returns 200 when the database answers a ping, 503 otherwise.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	if s.DB != nil {
		if err := s.DB.Ping(ctx); err != nil {
			log.Warn("readiness check failed - database: %v", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("Database unavailable"))
			return
		}
	}
	writeText(w, r, "text/plain; charset=utf-8", []byte("Ready"))
}
