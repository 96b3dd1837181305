package engine

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	FramesProcessedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engine_frames_processed_total",
			Help: "Count of landmark frames processed, by scoring profile.",
		},
		[]string{"profile"},
	)

	BlinksDetectedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "engine_blinks_detected_total",
			Help: "Count of debounced blink events across all sessions.",
		},
	)
)

func init() {
	prometheus.MustRegister(FramesProcessedTotal, BlinksDetectedTotal)
}
