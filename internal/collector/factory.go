package collector

import (
	"log/slog"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/huynhtran1509/reddit-uva/internal/config"
)

// New builds a Client from configuration. A zero Interval disables pacing.
func New(cfg config.Collector, logger *slog.Logger) (*Client, error) {
	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.Interval > 0 {
		limiter = rate.NewLimiter(rate.Every(cfg.Interval), 1)
	}

	return NewClient(
		&http.Client{Timeout: cfg.Timeout},
		cfg.BaseURL,
		WithUserAgent(cfg.UserAgent),
		WithLimiter(limiter),
		WithLogger(logger),
	)
}
