package collector

import (
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/huynhtran1509/reddit-uva/internal/domain"
)

const (
	outcomeSuccess         = "success"
	outcomeHTTPError       = "http_error"
	outcomeDecodeError     = "decode_error"
	outcomeInvalidResponse = "invalid_response"
	outcomeCancelled       = "cancelled"
)

var (
	fetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "reddit_uva",
		Name:      "fetch_total",
		Help:      "Hot listing fetches by outcome.",
	}, []string{"outcome"})

	fetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "reddit_uva",
		Name:      "fetch_duration_seconds",
		Help:      "Time from issuing a fetch to having its result.",
		Buckets:   prometheus.DefBuckets,
	})
)

func observe(outcome string, elapsed time.Duration) {
	fetchTotal.WithLabelValues(outcome).Inc()
	fetchDuration.Observe(elapsed.Seconds())
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return outcomeSuccess
	case errors.Is(err, ErrHTTP):
		return outcomeHTTPError
	case errors.Is(err, domain.ErrInvalidJSONData),
		errors.Is(err, domain.ErrInvalidDictionaryContents),
		errors.Is(err, domain.ErrInvalidArrayContents):
		return outcomeDecodeError
	default:
		return outcomeInvalidResponse
	}
}
