package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the frame ingestion HTTP handler
	FrameIngestLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "frame_ingest_latency_seconds",
		Help:    "Latency of the landmark frame ingestion handler",
		Buckets: prometheus.DefBuckets,
	})

	// Total number of coaching sessions started
	SessionsStarted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "coaching_sessions_started_total",
		Help: "Total number of coaching sessions started",
	})
)

func Init() {
	prometheus.MustRegister(
		FrameIngestLatency,
		SessionsStarted,
	)
}
