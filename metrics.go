package opensearch

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	errs "github.com/boostfield/ali-opensearch-sdk/internal/errors"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "opensearch_client",
			Name:      "requests_total",
			Help:      "Signed requests sent, by HTTP method and outcome.",
		},
		[]string{"method", "outcome"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "opensearch_client",
			Name:      "request_duration_seconds",
			Help:      "Round-trip time of signed requests.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method"},
	)
)

func observeRequest(method string, kind errs.Kind, elapsed time.Duration) {
	requestsTotal.WithLabelValues(method, outcome(kind)).Inc()
	requestDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}

func outcome(kind errs.Kind) string {
	switch kind {
	case 0:
		return "ok"
	case errs.KindNotFound:
		return "not_found"
	case errs.KindHTTP:
		return "http_error"
	case errs.KindInvalidResponse:
		return "invalid_response"
	case errs.KindTransport:
		return "transport_error"
	default:
		return "other"
	}
}
