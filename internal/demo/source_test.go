package demo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/patrickwarner/smartdocs/internal/content"
	"github.com/patrickwarner/smartdocs/internal/db"
	"github.com/patrickwarner/smartdocs/internal/observability"
)

const remoteDoc = `<html><body><div class="os-mac">brew</div></body></html>`

func newSource(t *testing.T, url string, cache Cache, metrics observability.MetricsRegistry) *Source {
	return NewSource(Options{
		URL:      url,
		Timeout:  200 * time.Millisecond,
		MaxBytes: 1024,
		Cache:    cache,
		CacheTTL: time.Minute,
	}, zaptest.NewLogger(t), metrics)
}

func TestDocument_Remote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = w.Write([]byte(remoteDoc))
	}))
	defer server.Close()

	metrics := observability.NewMockMetricsRegistry()
	doc, origin := newSource(t, server.URL, nil, metrics).Document(context.Background())
	assert.Equal(t, OriginRemote, origin)
	assert.Equal(t, remoteDoc, string(doc))
	assert.Equal(t, 1, metrics.Count(metrics.Fetches, "success"))
}

func TestDocument_FallbackCases(t *testing.T) {
	notFound := httptest.NewServer(http.NotFoundHandler())
	defer notFound.Close()

	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer slow.Close()

	huge := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(make([]byte, 4096))
	}))
	defer huge.Close()

	closed := httptest.NewServer(http.NotFoundHandler())
	closedURL := closed.URL
	closed.Close()

	tests := []struct {
		name    string
		url     string
		outcome string
	}{
		{"non-success status", notFound.URL, "bad_status"},
		{"timeout", slow.URL, "error"},
		{"too large", huge.URL, "too_large"},
		{"connection refused", closedURL, "error"},
		{"invalid url", "http://[::1]:namedport", "error"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			metrics := observability.NewMockMetricsRegistry()
			doc, origin := newSource(t, tc.url, nil, metrics).Document(context.Background())
			assert.Equal(t, OriginFallback, origin)
			assert.Equal(t, content.DemoFallback(), doc)
			assert.Equal(t, 1, metrics.Count(metrics.Fetches, tc.outcome))
		})
	}
}

func TestDocument_EmptyURL(t *testing.T) {
	metrics := observability.NewMockMetricsRegistry()
	doc, origin := newSource(t, "", nil, metrics).Document(context.Background())
	assert.Equal(t, OriginFallback, origin)
	assert.Equal(t, content.DemoFallback(), doc)
	assert.Empty(t, metrics.Fetches)
}

func TestDocument_RedisCache(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(remoteDoc))
	}))
	defer server.Close()

	mr := miniredis.RunT(t)
	store, err := db.InitRedis(context.Background(), mr.Addr())
	require.NoError(t, err)
	defer store.Close()

	metrics := observability.NewMockMetricsRegistry()
	src := newSource(t, server.URL, store, metrics)

	doc, origin := src.Document(context.Background())
	assert.Equal(t, OriginRemote, origin)
	assert.Equal(t, remoteDoc, string(doc))

	doc, origin = src.Document(context.Background())
	assert.Equal(t, OriginCache, origin)
	assert.Equal(t, remoteDoc, string(doc))

	assert.Equal(t, int32(1), hits.Load())
	assert.Equal(t, 1, metrics.Count(metrics.Cache, "miss"))
	assert.Equal(t, 1, metrics.Count(metrics.Cache, "hit"))
	assert.Equal(t, time.Minute, mr.TTL("demo:document:"+server.URL))
}

func TestDocument_FallbackIsNotCached(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	mr := miniredis.RunT(t)
	store, err := db.InitRedis(context.Background(), mr.Addr())
	require.NoError(t, err)
	defer store.Close()

	_, origin := newSource(t, server.URL, store, observability.NewNoOpRegistry()).Document(context.Background())
	assert.Equal(t, OriginFallback, origin)
	assert.Empty(t, mr.Keys())
}

type brokenCache struct{}

func (brokenCache) GetDocument(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("cache down")
}

func (brokenCache) SetDocument(context.Context, string, []byte, time.Duration) error {
	return errors.New("cache down")
}

func TestDocument_CacheErrorsAreIgnored(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(remoteDoc))
	}))
	defer server.Close()

	metrics := observability.NewMockMetricsRegistry()
	doc, origin := newSource(t, server.URL, brokenCache{}, metrics).Document(context.Background())
	assert.Equal(t, OriginRemote, origin)
	assert.Equal(t, remoteDoc, string(doc))
	assert.Equal(t, 1, metrics.Count(metrics.Cache, "error"))
}
