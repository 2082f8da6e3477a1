package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/patrickwarner/smartdocs/internal/middleware"
)

// Router registers every route. Page and diagnostic routes accept any
// method; unknown paths and methods get a plain-text 404. Paths are matched
// as sent, so uncleaned paths are not redirected.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter().SkipClean(true)

	r.HandleFunc("/", s.DocumentationHandler)
	r.HandleFunc("/index.html", s.DocumentationHandler)
	r.HandleFunc("/demo", s.DemoHandler)
	r.HandleFunc("/cloudflare-demo", s.DemoHandler)
	r.HandleFunc("/api/environment", s.EnvironmentHandler)
	r.HandleFunc("/api/environment/details", s.EnvironmentDetailsHandler).Methods(http.MethodGet)
	r.HandleFunc("/health", s.HealthHandler).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(s.NotFoundHandler)
	r.MethodNotAllowedHandler = http.HandlerFunc(s.NotFoundHandler)
	return r
}

// Handler returns the router wrapped in tracing, request ID and access
// logging middleware.
func (s *Server) Handler() http.Handler {
	var h http.Handler = s.Router()
	h = middleware.AccessLog(s.Logger)(h)
	h = middleware.WithRequestID(s.Logger)(h)
	h = middleware.WithTraceLogger(s.Logger)(h)
	return otelhttp.NewHandler(h, s.Config.ServiceName)
}
