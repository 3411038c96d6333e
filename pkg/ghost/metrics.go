package ghost

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	generationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ghostllm",
			Subsystem: "gen",
			Name:      "generations_total",
			Help:      "Total number of Generate calls",
		},
		[]string{"outcome"},
	)

	generationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "ghostllm",
			Subsystem: "gen",
			Name:      "generation_duration_seconds",
			Help:      "Duration of successful Generate calls in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	tokensStreamedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "ghostllm",
			Subsystem: "gen",
			Name:      "tokens_streamed_total",
			Help:      "Total tokens delivered through streaming callbacks",
		},
	)

	contextsLive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "ghostllm",
			Subsystem: "ctx",
			Name:      "live_contexts",
			Help:      "Currently live Contexts",
		},
	)
)

func init() {
	prometheus.MustRegister(generationsTotal, generationDuration, tokensStreamedTotal, contextsLive)
}
