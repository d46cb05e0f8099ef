package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/reception-gateway/internal/auth"
	"github.com/jwalitptl/reception-gateway/internal/config"
	healthHandler "github.com/jwalitptl/reception-gateway/internal/handler/health"
	scheduleHandler "github.com/jwalitptl/reception-gateway/internal/handler/schedule"
	statusHandler "github.com/jwalitptl/reception-gateway/internal/handler/status"
	"github.com/jwalitptl/reception-gateway/internal/middleware"
	"github.com/jwalitptl/reception-gateway/internal/proxy"
	"github.com/jwalitptl/reception-gateway/internal/router"
	"github.com/jwalitptl/reception-gateway/internal/upstream"
	"github.com/jwalitptl/reception-gateway/pkg/logger"
	"github.com/jwalitptl/reception-gateway/pkg/metrics"
)

func main() {
	// Local development convenience; deployments set real env vars.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	upstreamHost, err := cfg.Upstream.Host()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid upstream configuration")
	}

	appLogger := logger.NewLogger(nil)
	appMetrics := metrics.New("reception_gateway")
	if err := appMetrics.Register(prometheus.DefaultRegisterer); err != nil {
		log.Fatal().Err(err).Msg("failed to register metrics")
	}

	timeout := time.Duration(cfg.Upstream.TimeoutSeconds) * time.Second
	resolver := auth.NewResolver(cfg.Upstream.Token)

	client := upstream.NewClient(
		cfg.Upstream.BaseURL,
		upstreamHost,
		timeout,
		appLogger,
		upstream.WithMetrics(appMetrics),
	)

	proxyH, err := proxy.NewHandler(proxy.Config{
		BaseURL:     cfg.Upstream.BaseURL,
		Host:        upstreamHost,
		Prefix:      "/api/v1",
		Timeout:     timeout,
		CacheMaxAge: time.Duration(cfg.Upstream.CacheMaxAgeSeconds) * time.Second,
		CacheStale:  time.Duration(cfg.Upstream.CacheStaleSeconds) * time.Second,
	}, resolver, proxy.DefaultHeaderPolicy(), appMetrics)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build proxy handler")
	}

	scheduleH := scheduleHandler.NewHandler(client, resolver, scheduleHandler.Config{
		ClinicCategoryIDs: cfg.BFF.ClinicCategoryIDs,
		ClinicsPerPage:    cfg.BFF.ClinicsPerPage,
		SchedulesPerPage:  cfg.BFF.SchedulesPerPage,
	})
	healthH := healthHandler.NewHandler(client)
	statusH := statusHandler.NewHandler(client, cfg.Upstream.Token)

	r := router.NewRouter(proxyH, scheduleH, healthH, statusH, router.Config{
		RateLimitRPS:   cfg.Server.RateLimitRPS,
		RateLimitBurst: cfg.Server.RateLimitBurst,
		CORSConfig:     middleware.DefaultCORSConfig(),
		MetricsPrefix:  "reception_gateway_http",
		Diagnostics:    cfg.Diagnostics.Enabled,
	})
	if err := r.Register(prometheus.DefaultRegisterer); err != nil {
		log.Fatal().Err(err).Msg("failed to register router metrics")
	}
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Server.Port).Str("upstream", upstreamHost).Msg("gateway started")

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
