package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/patrickwarner/smartdocs/internal/api"
	"github.com/patrickwarner/smartdocs/internal/config"
	"github.com/patrickwarner/smartdocs/internal/db"
	"github.com/patrickwarner/smartdocs/internal/demo"
	"github.com/patrickwarner/smartdocs/internal/geoip"
	"github.com/patrickwarner/smartdocs/internal/logic"
	"github.com/patrickwarner/smartdocs/internal/observability"
)

func main() {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	logger, err := observability.InitLoggerWithService(cfg.ServiceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}

	defer func() {
		if err := logger.Sync(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to sync logger: %v\n", err)
		}
	}()

	if err := run(logger, cfg); err != nil {
		logger.Error("server error", zap.Error(err))
		os.Exit(1)
	}
}

func run(logger *zap.Logger, cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.TracingEnabled {
		shutdown, err := observability.InitTracing(ctx, logger, cfg.ServiceName, cfg.TempoEndpoint, cfg.Environment, cfg.TracingSampleRate)
		if err != nil {
			return fmt.Errorf("init tracing: %w", err)
		}
		defer shutdown()
	}

	metricsRegistry := observability.NewPrometheusRegistry()

	demoOpts := demo.Options{
		URL:      cfg.DemoURL,
		Timeout:  cfg.DemoFetchTimeout,
		MaxBytes: cfg.DemoMaxBytes,
		CacheTTL: cfg.DemoCacheTTL,
	}
	if cfg.RedisAddr != "" {
		store, err := db.InitRedis(ctx, cfg.RedisAddr)
		if err != nil {
			return fmt.Errorf("failed to connect redis: %w", err)
		}
		defer store.Close()
		demoOpts.Cache = store
		logger.Info("demo cache enabled", zap.String("redis_addr", cfg.RedisAddr), zap.Duration("ttl", cfg.DemoCacheTTL))
	}

	location := logic.LocationResolver{
		CountryHeader: cfg.GeoCountryHeader,
		CityHeader:    cfg.GeoCityHeader,
	}
	if cfg.GeoIPDB != "" {
		geoSvc, err := geoip.Init(cfg.GeoIPDB)
		if err != nil {
			return fmt.Errorf("failed to load geoip db: %w", err)
		}
		defer func() { _ = geoSvc.Close() }()
		location.GeoIP = geoSvc
	}

	srvDeps, err := api.NewServer(logger, metricsRegistry, location, demo.NewSource(demoOpts, logger, metricsRegistry), cfg)
	if err != nil {
		return err
	}

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      srvDeps.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	logger.Info("Smart docs server running",
		zap.String("addr", addr),
		zap.String("mode", srvDeps.DocPolicy.Name),
		zap.String("demo_url", cfg.DemoURL))

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("listen: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	return nil
}
