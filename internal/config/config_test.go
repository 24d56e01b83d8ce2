package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadForTests(map[string]string{
		"PORT":                      "",
		"OBS_ENABLE_PROMETHEUS":     "",
		"OBS_ENABLE_TRACING":        "",
		"HTTP_BODY_LIMIT_BYTES":     "",
		"RATE_LIMIT":                "",
		"SHUTDOWN_TIMEOUT":          "",
		"DISCOUNT_EXCLUSION_POLICY": "",
		"CORS_ALLOWED_ORIGINS":      "",
	})
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.HTTPAddr())
	require.True(t, cfg.MetricsEnabled)
	require.False(t, cfg.TracingEnabled)
	require.Equal(t, int64(1<<20), cfg.BodyLimitBytes)
	require.Equal(t, "600-M", cfg.RateLimit)
	require.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	require.Equal(t, "tag", cfg.ExclusionPolicy)
	require.Equal(t, []string{"*"}, cfg.AllowedOrigins())
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := LoadForTests(map[string]string{
		"PORT":                       ":9090",
		"OBS_ENABLE_PROMETHEUS":      "off",
		"OBS_ENABLE_TRACING":         "true",
		"OBS_TRACING_SAMPLING_RATIO": "0.25",
		"HTTP_BODY_LIMIT_BYTES":      "2048",
		"SHUTDOWN_TIMEOUT":           "bogus",
		"DISCOUNT_EXCLUSION_POLICY":  "any_tag",
		"CORS_ALLOWED_ORIGINS":       "https://a.example, ,https://b.example",
	})
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTPAddr())
	require.False(t, cfg.MetricsEnabled)
	require.True(t, cfg.TracingEnabled)
	require.InDelta(t, 0.25, cfg.TracingSamplingRatio, 1e-9)
	require.Equal(t, int64(2048), cfg.BodyLimitBytes)
	require.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	require.Equal(t, "any_tag", cfg.ExclusionPolicy)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins())
}
