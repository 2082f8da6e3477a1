package api

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/patrickwarner/smartdocs/internal/content"
	"github.com/patrickwarner/smartdocs/internal/logic"
	"github.com/patrickwarner/smartdocs/internal/middleware"
	"github.com/patrickwarner/smartdocs/internal/models"
	"github.com/patrickwarner/smartdocs/internal/observability"
	"github.com/patrickwarner/smartdocs/internal/personalize"
)

const htmlContentType = "text/html;charset=UTF-8"

// DocumentationHandler serves the primary documentation page personalized
// for the client OS.
func (s *Server) DocumentationHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	const endpoint = "documentation"

	env := logic.ResolveEnvironment(r, s.Location, logic.PageDefaults)
	s.Metrics.IncrementDetections(string(env.OS), string(env.Browser))

	src := content.Documentation()
	if s.DocPolicy.Name == personalize.Silent.Name {
		src = content.SilentDocumentation()
	}

	s.render(w, r, s.DocPolicy, env, src)
	s.observe(endpoint, r, http.StatusOK, start)
}

// DemoHandler serves the remote demo page, or its local fallback, with the
// demo policy applied.
func (s *Server) DemoHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	const endpoint = "demo"

	env := logic.ResolveEnvironment(r, s.Location, logic.PageDefaults)
	s.Metrics.IncrementDetections(string(env.OS), string(env.Browser))

	doc, origin := s.Demo.Document(r.Context())
	w.Header().Set("X-Demo-Origin", string(origin))

	s.render(w, r, personalize.Demo, env, bytes.NewReader(doc))
	s.observe(endpoint, r, http.StatusOK, start)
}

// render streams src through the policy rules into w. Headers are already
// sent when a rewrite error surfaces, so errors are only logged.
func (s *Server) render(w http.ResponseWriter, r *http.Request, p personalize.Policy, env models.Environment, src io.Reader) {
	_, span := observability.Tracer().Start(r.Context(), "personalize.render",
		trace.WithAttributes(
			attribute.String("policy", p.Name),
			attribute.String("os", string(env.OS)),
		))
	defer span.End()

	logger := middleware.LoggerFromRequest(r, s.Logger)

	rw, err := personalize.NewRewriter(p, env)
	if err != nil {
		// Rules are static; a bad selector is a programming error.
		logger.Error("build rewriter", zap.String("policy", p.Name), zap.Error(err))
		s.Metrics.IncrementRenderErrors(p.Name)
	}

	w.Header().Set("Content-Type", htmlContentType)
	w.WriteHeader(http.StatusOK)

	if rw == nil {
		_, _ = io.Copy(w, src)
		return
	}
	if err := rw.Transform(w, src); err != nil {
		span.RecordError(err)
		logger.Warn("render page",
			zap.String("policy", p.Name),
			zap.String("os", string(env.OS)),
			zap.Error(err))
		s.Metrics.IncrementRenderErrors(p.Name)
		return
	}
	s.Metrics.IncrementRenders(p.Name, string(env.OS))
	logger.Debug("rendered page",
		zap.String("policy", p.Name),
		zap.String("os", string(env.OS)),
		zap.String("browser", string(env.Browser)))
}
