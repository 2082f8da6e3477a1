package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/patrickwarner/smartdocs/internal/config"
	"github.com/patrickwarner/smartdocs/internal/demo"
	"github.com/patrickwarner/smartdocs/internal/logic"
	"github.com/patrickwarner/smartdocs/internal/observability"
	"github.com/patrickwarner/smartdocs/internal/personalize"
)

// DemoSource supplies the demo page. Implementations never fail; they fall
// back to a local document instead.
type DemoSource interface {
	Document(ctx context.Context) ([]byte, demo.Origin)
}

// Server groups dependencies for HTTP handlers. It holds no per-request
// state and is safe for concurrent use.
type Server struct {
	Logger    *zap.Logger
	Metrics   observability.MetricsRegistry
	Location  logic.LocationResolver
	Demo      DemoSource
	DocPolicy personalize.Policy
	Config    config.Config
}

// NewServer constructs a Server. The documentation policy is taken from
// cfg.PersonalizationMode.
func NewServer(logger *zap.Logger, metrics observability.MetricsRegistry, location logic.LocationResolver, demoSrc DemoSource, cfg config.Config) (*Server, error) {
	policy, err := personalize.ParsePolicy(cfg.PersonalizationMode)
	if err != nil {
		return nil, fmt.Errorf("personalization mode: %w", err)
	}
	if policy.Name == personalize.Demo.Name {
		return nil, fmt.Errorf("personalization mode %q is reserved for the demo page", policy.Name)
	}

	return &Server{
		Logger:    logger,
		Metrics:   metrics,
		Location:  location,
		Demo:      demoSrc,
		DocPolicy: policy,
		Config:    cfg,
	}, nil
}

// observe records request count and latency for endpoint.
func (s *Server) observe(endpoint string, r *http.Request, status int, start time.Time) {
	s.Metrics.IncrementRequests(endpoint, r.Method, fmt.Sprint(status))
	s.Metrics.RecordRequestLatency(endpoint, r.Method, time.Since(start))
}
