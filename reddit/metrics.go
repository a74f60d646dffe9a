package reddit

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	searchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "reddit_data",
			Name:      "searches_total",
			Help:      "Search pipeline runs by outcome.",
		},
		[]string{"outcome"},
	)

	fallbacksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "reddit_data",
			Name:      "archival_fallbacks_total",
			Help:      "Subreddit searches where the archive was empty and the live lane answered.",
		},
	)
)
