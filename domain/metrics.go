package domain

import "time"

type MetricType string

const (
	MetricPosture    MetricType = "posture"
	MetricGesture    MetricType = "gesture"
	MetricEyeContact MetricType = "eye_contact"
)

// MetricTypes lists the scored metrics in their canonical order.
var MetricTypes = []MetricType{MetricPosture, MetricGesture, MetricEyeContact}

// FrameMetrics is the per-frame output event: smoothed scores inside their
// configured bounds plus the feedback selected for each metric.
type FrameMetrics struct {
	PostureScore    float64   `json:"posture_score"`
	GestureScore    float64   `json:"gesture_score"`
	EyeContactScore float64   `json:"eye_contact_score"`
	OverallScore    float64   `json:"overall_score"`
	Feedback        []string  `json:"feedback"`
	BlinkRate       float64   `json:"blink_rate"`
	Timestamp       time.Time `json:"timestamp"`
}

// ScoreSet is one (posture, gesture, eye_contact, overall) tuple. The session
// history is an ordered sequence of these, one per processed frame.
type ScoreSet struct {
	Posture    float64 `json:"posture"`
	Gesture    float64 `json:"gesture"`
	EyeContact float64 `json:"eye_contact"`
	Overall    float64 `json:"overall"`
}

// MetricStats summarizes one metric's smoothed history for the status endpoint.
type MetricStats struct {
	Current float64 `json:"current"`
	Average float64 `json:"average"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Trend   string  `json:"trend"` // "improving" or "stable"
}
