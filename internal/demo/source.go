// Package demo loads the remote demo page, falling back to a local document
// whenever the remote copy is unavailable.
package demo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/patrickwarner/smartdocs/internal/content"
	"github.com/patrickwarner/smartdocs/internal/observability"
)

// Origin reports where a demo document came from.
type Origin string

const (
	OriginRemote   Origin = "remote"
	OriginCache    Origin = "cache"
	OriginFallback Origin = "fallback"
)

// Cache stores fetched demo documents.
type Cache interface {
	GetDocument(ctx context.Context, key string) ([]byte, bool, error)
	SetDocument(ctx context.Context, key string, doc []byte, ttl time.Duration) error
}

// Source fetches the demo document from a fixed URL.
type Source struct {
	url        string
	httpClient *http.Client
	maxBytes   int64
	cache      Cache
	cacheTTL   time.Duration
	logger     *zap.Logger
	metrics    observability.MetricsRegistry
}

// Options configures a Source. A nil Cache disables caching.
type Options struct {
	URL      string
	Timeout  time.Duration
	MaxBytes int64
	Cache    Cache
	CacheTTL time.Duration
}

// NewSource creates a Source. The HTTP client timeout bounds the whole
// fetch, including reading the body.
func NewSource(opts Options, logger *zap.Logger, metrics observability.MetricsRegistry) *Source {
	return &Source{
		url: opts.URL,
		httpClient: &http.Client{
			Timeout:   opts.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		maxBytes: opts.MaxBytes,
		cache:    opts.Cache,
		cacheTTL: opts.CacheTTL,
		logger:   logger,
		metrics:  metrics,
	}
}

func (s *Source) cacheKey() string {
	return "demo:document:" + s.url
}

// Document returns the demo page. It never fails: any cache miss followed by
// a failed fetch yields the fallback document. Fetches are not retried.
func (s *Source) Document(ctx context.Context) ([]byte, Origin) {
	if s.url == "" {
		return content.DemoFallback(), OriginFallback
	}

	if s.cache != nil {
		doc, ok, err := s.cache.GetDocument(ctx, s.cacheKey())
		switch {
		case err != nil:
			s.metrics.IncrementDemoCache("error")
			s.logger.Warn("demo cache read failed", zap.Error(err))
		case ok:
			s.metrics.IncrementDemoCache("hit")
			return doc, OriginCache
		default:
			s.metrics.IncrementDemoCache("miss")
		}
	}

	doc, err := s.fetch(ctx)
	if err != nil {
		s.logger.Warn("demo fetch failed, serving fallback",
			zap.String("url", s.url),
			zap.Error(err))
		return content.DemoFallback(), OriginFallback
	}

	if s.cache != nil {
		if err := s.cache.SetDocument(ctx, s.cacheKey(), doc, s.cacheTTL); err != nil {
			s.logger.Warn("demo cache write failed", zap.Error(err))
		}
	}
	return doc, OriginRemote
}

// fetch performs the HTTP request for the remote document.
func (s *Source) fetch(ctx context.Context) ([]byte, error) {
	start := time.Now()
	outcome := "success"
	defer func() {
		s.metrics.RecordDemoFetchLatency(time.Since(start))
		s.metrics.IncrementDemoFetches(outcome)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		outcome = "error"
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "text/html")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		outcome = "error"
		return nil, fmt.Errorf("get demo document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		outcome = "bad_status"
		return nil, fmt.Errorf("demo document returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBytes+1))
	if err != nil {
		outcome = "error"
		return nil, fmt.Errorf("read demo document: %w", err)
	}
	if int64(len(body)) > s.maxBytes {
		outcome = "too_large"
		return nil, fmt.Errorf("demo document exceeds %d bytes", s.maxBytes)
	}
	return body, nil
}
