package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.opentelemetry.io/otel/attribute"

	"github.com/noah-isme/discount-function/internal/config"
	"github.com/noah-isme/discount-function/internal/discount"
	"github.com/noah-isme/discount-function/internal/health"
	"github.com/noah-isme/discount-function/internal/obs"
	"github.com/noah-isme/discount-function/internal/ratelimit"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := obs.NewLogger(os.Stdout, cfg.LogFormat, cfg.LogLevel).With().Str("env", cfg.AppEnv).Logger()

	if cfg.MetricsEnabled {
		obs.MustRegisterDomainMetrics(cfg.MetricsNamespace, nil)
	}

	policy, ok := discount.ParseExclusionPolicy(cfg.ExclusionPolicy)
	if !ok {
		logger.Warn().Str("policy", cfg.ExclusionPolicy).Msg("unknown exclusion policy, using tag")
	}

	tracingEnabled := cfg.TracingEnabled
	if tracingEnabled {
		shutdown, err := obs.InitTracer(context.Background(), obs.TracingConfig{
			ServiceName:   "discount-api",
			Endpoint:      cfg.OTLPEndpoint,
			Exporter:      cfg.TracingExporter,
			SamplingRatio: cfg.TracingSamplingRatio,
			Environment:   cfg.AppEnv,
			Attributes:    []attribute.KeyValue{attribute.String("discount.exclusion_policy", string(policy))},
		})
		if err != nil {
			logger.Error().Err(err).Msg("initialise tracing")
			tracingEnabled = false
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					logger.Error().Err(err).Msg("shutdown tracer")
				}
			}()
		}
	}

	lim, err := ratelimit.NewMemoryLimiter(cfg.RateLimit)
	if err != nil {
		logger.Fatal().Err(err).Msg("initialise rate limiter")
	}

	var httpMetrics *obs.HTTPMetrics
	if cfg.MetricsEnabled {
		httpMetrics = obs.NewHTTPMetrics(cfg.MetricsNamespace, obs.ParseBucketsCSV(cfg.MetricsBuckets), nil)
	}

	r := newRouter(routerDeps{
		cfg:            cfg,
		logger:         logger,
		service:        discount.NewService(policy, logger),
		limiter:        lim,
		httpMetrics:    httpMetrics,
		tracingEnabled: tracingEnabled,
	})

	srv := &http.Server{
		Addr:    cfg.HTTPAddr(),
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		health.SetReady(false)
		logger.Info().Msg("server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("graceful shutdown")
		}
	}()

	logger.Info().Str("addr", srv.Addr).Str("policy", string(policy)).Msg("server starting")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("server exited unexpectedly")
	}
	<-done
	logger.Info().Msg("server stopped")
}
