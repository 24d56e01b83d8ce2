package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	AppEnv string
	Port   string

	LogFormat string
	LogLevel  string

	MetricsEnabled   bool
	MetricsNamespace string
	MetricsBuckets   string

	TracingEnabled       bool
	TracingExporter      string
	OTLPEndpoint         string
	TracingSamplingRatio float64

	PprofEnabled   bool
	PprofBasicUser string
	PprofBasicPass string

	CORSAllowedOrigins     []string
	SecurityHeadersEnabled bool
	BodyLimitBytes         int64
	RateLimit              string
	ShutdownTimeout        time.Duration

	ExclusionPolicy string
}

// Load reads configuration from environment variables and optional .env files.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{
		AppEnv:                 valueOrDefault(k.String("APP_ENV"), "development"),
		Port:                   valueOrDefault(k.String("PORT"), "8080"),
		LogFormat:              valueOrDefault(k.String("OBS_LOG_FORMAT"), "json"),
		LogLevel:               valueOrDefault(k.String("OBS_LOG_LEVEL"), "info"),
		MetricsEnabled:         parseBool(k.String("OBS_ENABLE_PROMETHEUS"), true),
		MetricsNamespace:       valueOrDefault(k.String("OBS_METRICS_NAMESPACE"), "discount"),
		MetricsBuckets:         strings.TrimSpace(k.String("OBS_METRICS_BUCKETS_MS")),
		TracingEnabled:         parseBool(k.String("OBS_ENABLE_TRACING"), false),
		TracingExporter:        valueOrDefault(k.String("OBS_TRACING_EXPORTER"), "otlp"),
		OTLPEndpoint:           strings.TrimSpace(k.String("OBS_OTLP_ENDPOINT")),
		TracingSamplingRatio:   parseFloat(k.String("OBS_TRACING_SAMPLING_RATIO"), 1.0),
		PprofEnabled:           parseBool(k.String("OBS_ENABLE_PPROF"), false),
		PprofBasicUser:         strings.TrimSpace(k.String("SECURE_PPROF_BASIC_AUTH_USER")),
		PprofBasicPass:         strings.TrimSpace(k.String("SECURE_PPROF_BASIC_AUTH_PASS")),
		CORSAllowedOrigins:     splitAndTrim(k.String("CORS_ALLOWED_ORIGINS")),
		SecurityHeadersEnabled: parseBool(k.String("SECURITY_HEADERS_ENABLED"), true),
		BodyLimitBytes:         parseInt64(k.String("HTTP_BODY_LIMIT_BYTES"), 1<<20),
		RateLimit:              valueOrDefault(k.String("RATE_LIMIT"), "600-M"),
		ShutdownTimeout:        parseDuration(k.String("SHUTDOWN_TIMEOUT"), "10s"),
		ExclusionPolicy:        valueOrDefault(k.String("DISCOUNT_EXCLUSION_POLICY"), "tag"),
	}
	return cfg, nil
}

// HTTPAddr returns the address the HTTP server should bind to.
func (c *Config) HTTPAddr() string {
	port := strings.TrimSpace(c.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

// AllowedOrigins returns the configured CORS origins, or a wildcard when none are set.
func (c *Config) AllowedOrigins() []string {
	if len(c.CORSAllowedOrigins) == 0 {
		return []string{"*"}
	}
	return c.CORSAllowedOrigins
}

func splitAndTrim(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func valueOrDefault(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}

func parseDuration(value, fallback string) time.Duration {
	base := strings.TrimSpace(value)
	if base == "" {
		base = fallback
	}
	d, err := time.ParseDuration(base)
	if err != nil {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}

func parseBool(value string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "t", "true", "yes", "on":
		return true
	case "0", "f", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func parseFloat(value string, fallback float64) float64 {
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseInt64(value string, fallback int64) int64 {
	parsed, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad behaves like Load but panics on error. Useful for tests and command entrypoints.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// LoadForTests allows tests to override environment variables without touching the real environment.
func LoadForTests(env map[string]string) (*Config, error) {
	original := make(map[string]string, len(env))
	for key := range env {
		original[key] = os.Getenv(key)
		if err := setEnvVar(key, env[key]); err != nil {
			return nil, err
		}
	}
	cfg, err := Load()
	restoreErr := restoreEnv(original)
	if err != nil {
		return nil, err
	}
	return cfg, restoreErr
}

func setEnvVar(key, value string) error {
	if value == "" {
		return os.Unsetenv(key)
	}
	return os.Setenv(key, value)
}

func restoreEnv(values map[string]string) error {
	var errs []string
	for key, value := range values {
		if err := setEnvVar(key, value); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("restore env: %s", strings.Join(errs, "; "))
	}
	return nil
}
