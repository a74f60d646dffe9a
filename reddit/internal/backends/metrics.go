package backends

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "reddit_data",
			Name:      "backend_requests_total",
			Help:      "Backend fetches by adapter, operation and outcome.",
		},
		[]string{"backend", "op", "outcome"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "reddit_data",
			Name:      "backend_request_seconds",
			Help:      "Wall time of one backend HTTP round trip.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"backend", "op"},
	)
)

func observeRequest(backend, op string, seconds float64, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	requestsTotal.WithLabelValues(backend, op, outcome).Inc()
	requestDuration.WithLabelValues(backend, op).Observe(seconds)
}
