package main

import (
	"crypto/subtle"
	"net/http"
	"net/http/pprof"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	limiter "github.com/ulule/limiter/v3"

	"github.com/noah-isme/discount-function/internal/config"
	"github.com/noah-isme/discount-function/internal/discount"
	"github.com/noah-isme/discount-function/internal/health"
	"github.com/noah-isme/discount-function/internal/obs"
	"github.com/noah-isme/discount-function/internal/ratelimit"
	"github.com/noah-isme/discount-function/internal/security"
)

type routerDeps struct {
	cfg            *config.Config
	logger         zerolog.Logger
	service        *discount.Service
	limiter        *limiter.Limiter
	httpMetrics    *obs.HTTPMetrics
	tracingEnabled bool
}

func newRouter(d routerDeps) http.Handler {
	cfg := d.cfg

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(obs.RoutePatternMiddleware)
	if d.tracingEnabled {
		r.Use(obs.TracingMiddleware)
	}
	if d.httpMetrics != nil {
		r.Use(obs.HTTPObs{Metrics: d.httpMetrics}.Middleware)
	}
	r.Use(obs.RequestLogger{Logger: d.logger}.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins(),
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		MaxAge:         300,
	}))
	r.Use(security.Headers{Enable: cfg.SecurityHeadersEnabled, EnableHSTS: true}.Middleware)

	if d.httpMetrics != nil {
		r.Handle("/metrics", promhttp.Handler())
	}
	if cfg.PprofEnabled {
		r.Mount("/debug/pprof", protectPprof(newPprofMux(), cfg.PprofBasicUser, cfg.PprofBasicPass))
	}

	healthHandler := health.Handler{}
	r.Get("/health/live", healthHandler.Live)
	r.Get("/health/ready", healthHandler.Ready)

	discountHandler := &discount.Handler{Svc: d.service}
	r.Route("/api/v1/discounts", func(v chi.Router) {
		v.Use(security.BodyLimit{Max: cfg.BodyLimitBytes}.Middleware)
		if d.limiter != nil {
			v.Use(ratelimit.Handler{
				Limiter: d.limiter,
				Config:  ratelimit.Config{Key: ratelimit.ClientIP},
				OnError: func(err error) { d.logger.Error().Err(err).Msg("rate limit store") },
			}.Middleware)
		}
		discountHandler.Routes(v)
	})

	return r
}

func newPprofMux() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", pprof.Index)
	mux.HandleFunc("/cmdline", pprof.Cmdline)
	mux.HandleFunc("/profile", pprof.Profile)
	mux.HandleFunc("/symbol", pprof.Symbol)
	mux.HandleFunc("/trace", pprof.Trace)
	mux.Handle("/allocs", pprof.Handler("allocs"))
	mux.Handle("/goroutine", pprof.Handler("goroutine"))
	mux.Handle("/heap", pprof.Handler("heap"))
	return mux
}

func protectPprof(handler http.Handler, user, pass string) http.Handler {
	user = strings.TrimSpace(user)
	pass = strings.TrimSpace(pass)
	if user == "" {
		return handler
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, p, ok := r.BasicAuth()
		if !ok || subtle.ConstantTimeCompare([]byte(u), []byte(user)) != 1 || subtle.ConstantTimeCompare([]byte(p), []byte(pass)) != 1 {
			w.Header().Set("WWW-Authenticate", "Basic realm=restricted")
			http.Error(w, "unauthorised", http.StatusUnauthorized)
			return
		}
		handler.ServeHTTP(w, r)
	})
}
