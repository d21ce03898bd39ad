// Package config loads runtime settings from the environment, optionally
// seeded from a .env file in the working directory.
package config

import (
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

const (
	EnvDevelopment = "DEV"
	EnvProduction  = "PROD"
)

type Config struct {
	AppEnv    string `env:"APP_ENV" env-default:"DEV"`
	LogLevel  string `env:"LOG_LEVEL" env-default:"INFO"`
	Subreddit string `env:"REDDIT_SUBREDDIT" env-default:"uva"`
	Dashboard string `env:"DASHBOARD_ADDR"`
	Collector Collector
}

// Collector holds the settings of the listing client.
type Collector struct {
	BaseURL   string        `env:"REDDIT_BASE_URL" env-default:"https://api.reddit.com"`
	UserAgent string        `env:"REDDIT_USER_AGENT" env-default:"reddit-uva/1.0"`
	Timeout   time.Duration `env:"REQUEST_TIMEOUT" env-default:"15s"`
	// Minimum spacing between requests; zero disables pacing.
	Interval time.Duration `env:"REQUEST_INTERVAL" env-default:"0s"`
}

// Load reads .env (if present) and then the process environment.
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, errors.Wrap(err, "read env")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// MustLoad is Load that panics on error.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func (c *Config) validate() error {
	u, err := url.Parse(c.Collector.BaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return errors.Errorf("REDDIT_BASE_URL must be an absolute http(s) url, got %q", c.Collector.BaseURL)
	}
	if strings.TrimSpace(c.Collector.UserAgent) == "" {
		return errors.New("REDDIT_USER_AGENT must not be blank")
	}
	if c.Collector.Timeout <= 0 {
		return errors.New("REQUEST_TIMEOUT must be > 0")
	}
	if c.Collector.Interval < 0 {
		return errors.New("REQUEST_INTERVAL must be >= 0")
	}
	if strings.TrimSpace(c.Subreddit) == "" {
		return errors.New("REDDIT_SUBREDDIT must not be blank")
	}
	if _, err := c.Level(); err != nil {
		return errors.Wrap(err, "LOG_LEVEL")
	}
	return nil
}

// Level parses LogLevel into a slog level.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(c.LogLevel))
	return level, err
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == EnvProduction
}
