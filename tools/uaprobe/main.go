package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/patrickwarner/smartdocs/internal/environment"
	"github.com/patrickwarner/smartdocs/internal/middleware"
	"github.com/patrickwarner/smartdocs/internal/models"
	"github.com/patrickwarner/smartdocs/internal/observability"
)

var (
	server   string
	totalReq int
	conc     int
	debug    bool
	label    string
)

var logger *zap.Logger

var httpClient *http.Client

var (
	userAgents = []string{
		// Mobile
		"Mozilla/5.0 (iPhone; CPU iPhone OS 16_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.0 Mobile/15E148 Safari/604.1",
		"Mozilla/5.0 (Linux; Android 12; Pixel 6 Pro) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/114.0.5735.196 Mobile Safari/537.36",
		"Mozilla/5.0 (Linux; Android 11; SAMSUNG SM-G991B) AppleWebKit/537.36 (KHTML, like Gecko) SamsungBrowser/15.0 Chrome/94.0.4606.61 Mobile Safari/537.36",
		"Mozilla/5.0 (iPad; CPU OS 15_2 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/15.2 Mobile/15E148 Safari/604.1",

		// Desktop
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 13_3_1) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.1 Safari/605.1.15",
		"Mozilla/5.0 (X11; Ubuntu; Linux x86_64; rv:111.0) Gecko/20100101 Firefox/111.0",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36 Edg/122.0.2365.66",

		// Other
		"curl/8.4.0",
		"",
	}
	userIPs = []string{
		"192.0.2.1",
		"198.51.100.1",
		"203.0.113.1",
	}
)

var (
	countSent     uint64
	countMatch    uint64
	countMismatch uint64
	countErrors   uint64
)

func main() {
	flag.StringVar(&server, "server", "http://localhost:8787", "smartdocs server base URL")
	flag.IntVar(&totalReq, "requests", 100, "total requests to send")
	flag.IntVar(&conc, "concurrency", 10, "concurrent requests")
	flag.BoolVar(&debug, "debug", false, "enable verbose debug logs")
	flag.StringVar(&label, "label", "", "label to identify this run")
	flag.Parse()

	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}
	var err error
	logger, err = observability.InitLoggerWithLevel(level, "uaprobe")
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	httpClient = &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   10 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			ResponseHeaderTimeout: 10 * time.Second,
			MaxIdleConns:          100,
			MaxIdleConnsPerHost:   10,
			MaxConnsPerHost:       50,
			IdleConnTimeout:       90 * time.Second,
		},
	}

	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	var rmu sync.Mutex
	pick := func(list []string) string {
		rmu.Lock()
		defer rmu.Unlock()
		return list[r.Intn(len(list))]
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, conc)
	for i := 0; i < totalReq; i++ {
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			atomic.AddUint64(&countSent, 1)

			ua := pick(userAgents)
			report, err := probe(ua, pick(userIPs))
			if err != nil {
				logger.Warn("probe failed", zap.Error(err))
				atomic.AddUint64(&countErrors, 1)
				return
			}

			want := environment.ClassifyOS(ua)
			if report.OS != want {
				logger.Warn("os mismatch",
					zap.String("user_agent", ua),
					zap.String("want", string(want)),
					zap.String("got", string(report.OS)))
				atomic.AddUint64(&countMismatch, 1)
				return
			}
			logger.Debug("probe ok",
				zap.String("os", string(report.OS)),
				zap.String("browser", string(report.Browser)),
				zap.String("country", report.Country))
			atomic.AddUint64(&countMatch, 1)
		}()
	}
	wg.Wait()
	printStats()

	if atomic.LoadUint64(&countMismatch) > 0 {
		os.Exit(1)
	}
}

// probe sends one diagnostic request and decodes the report.
func probe(ua, ip string) (models.EnvironmentReport, error) {
	var report models.EnvironmentReport

	req, err := http.NewRequest(http.MethodGet, server+"/api/environment", nil)
	if err != nil {
		return report, err
	}
	if ua != "" {
		req.Header.Set("User-Agent", ua)
	}
	req.Header.Set("X-Forwarded-For", ip)
	req.Header.Set(middleware.RequestIDHeader, uuid.NewString())

	resp, err := httpClient.Do(req)
	if err != nil {
		return report, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return report, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return report, fmt.Errorf("decode report: %w", err)
	}
	return report, nil
}

func printStats() {
	logger.Info("stats",
		zap.String("run", label),
		zap.Uint64("sent", atomic.LoadUint64(&countSent)),
		zap.Uint64("match", atomic.LoadUint64(&countMatch)),
		zap.Uint64("mismatch", atomic.LoadUint64(&countMismatch)),
		zap.Uint64("errors", atomic.LoadUint64(&countErrors)))
}
