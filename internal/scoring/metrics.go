package scoring

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels used on the request counter.
const (
	resultSuccess   = "success"
	resultRejected  = "rejected"
	resultTransport = "transport_error"
)

var (
	requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "risk",
		Subsystem: "scoring",
		Name:      "requests_total",
		Help:      "Total scoring service requests by endpoint and result.",
	}, []string{"endpoint", "result"}) // result: "success", "rejected", "transport_error"

	requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "risk",
		Subsystem: "scoring",
		Name:      "request_duration_seconds",
		Help:      "Scoring service round-trip latency in seconds.",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 15},
	}, []string{"endpoint"})

	serverProcessing = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "risk",
		Subsystem: "scoring",
		Name:      "server_processing_ms",
		Help:      "Processing time reported by the scoring service in milliseconds.",
		Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 1000},
	})
)

func init() {
	prometheus.MustRegister(requestsTotal, requestDuration, serverProcessing)
}
