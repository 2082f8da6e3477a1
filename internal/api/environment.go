package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/patrickwarner/smartdocs/internal/environment"
	"github.com/patrickwarner/smartdocs/internal/logic"
	"github.com/patrickwarner/smartdocs/internal/middleware"
	"github.com/patrickwarner/smartdocs/internal/models"
)

// EnvironmentHandler reports the detected environment as pretty-printed JSON.
func (s *Server) EnvironmentHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	const endpoint = "environment"

	env := logic.ResolveEnvironment(r, s.Location, logic.DiagnosticDefaults)
	s.Metrics.IncrementDetections(string(env.OS), string(env.Browser))

	s.writeJSON(w, r, env.Report())
	s.observe(endpoint, r, http.StatusOK, start)
}

// EnvironmentDetailsHandler extends the diagnostic report with the OS
// profile and a full User-Agent parse.
func (s *Server) EnvironmentDetailsHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	const endpoint = "environment_details"

	env := logic.ResolveEnvironment(r, s.Location, logic.DiagnosticDefaults)
	s.Metrics.IncrementDetections(string(env.OS), string(env.Browser))

	s.writeJSON(w, r, models.EnvironmentDetails{
		EnvironmentReport: env.Report(),
		Profile:           environment.Describe(env.OS),
		Agent:             environment.Inspect(env.UserAgent),
	})
	s.observe(endpoint, r, http.StatusOK, start)
}

// writeJSON writes v indented by two spaces with caching disabled. HTML
// characters are left unescaped so the raw User-Agent round-trips.
func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		middleware.LoggerFromRequest(r, s.Logger).Error("encode environment", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
}
