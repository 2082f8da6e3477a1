package api

import (
	"net/http"
	"time"
)

// HealthHandler responds with a simple status check.
func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	const endpoint = "health"

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))

	s.observe(endpoint, r, http.StatusOK, start)
}

// NotFoundHandler answers every unrouted request.
func (s *Server) NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	const endpoint = "not_found"

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte("Not Found"))

	s.observe(endpoint, r, http.StatusNotFound, start)
}
