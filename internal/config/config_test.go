package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "uva", cfg.Subreddit)
	assert.Equal(t, "https://api.reddit.com", cfg.Collector.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Collector.Timeout)
	assert.Equal(t, time.Duration(0), cfg.Collector.Interval)
	assert.Empty(t, cfg.Dashboard)
	assert.False(t, cfg.IsProduction())

	lvl, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, lvl)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "PROD")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("REDDIT_SUBREDDIT", "golang")
	t.Setenv("REDDIT_BASE_URL", "http://127.0.0.1:9000")
	t.Setenv("REQUEST_INTERVAL", "2s")
	t.Setenv("DASHBOARD_ADDR", ":8080")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "golang", cfg.Subreddit)
	assert.Equal(t, "http://127.0.0.1:9000", cfg.Collector.BaseURL)
	assert.Equal(t, 2*time.Second, cfg.Collector.Interval)
	assert.Equal(t, ":8080", cfg.Dashboard)

	lvl, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string][2]string{
		"relative base url": {"REDDIT_BASE_URL", "api.reddit.com"},
		"ftp base url":      {"REDDIT_BASE_URL", "ftp://api.reddit.com"},
		"zero timeout":      {"REQUEST_TIMEOUT", "0s"},
		"negative interval": {"REQUEST_INTERVAL", "-1s"},
		"bad level":         {"LOG_LEVEL", "loud"},
		"blank user agent":  {"REDDIT_USER_AGENT", "   "},
	}

	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestMustLoad_Panics(t *testing.T) {
	t.Setenv("REQUEST_TIMEOUT", "-5s")
	assert.Panics(t, func() { MustLoad() })
}
