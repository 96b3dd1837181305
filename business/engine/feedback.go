package engine

import (
	"math"

	"commCoach/domain"
)

// SelectFeedback maps a smoothed score to one feedback message, purely from
// the tier boundaries in config. A score exactly on a boundary resolves to
// the upper tier.
func SelectFeedback(cfg Config, metric domain.MetricType, score float64) string {
	var f FeedbackConfig
	switch metric {
	case domain.MetricPosture:
		f = cfg.Posture.Feedback
	case domain.MetricGesture:
		f = cfg.Gesture.Feedback
	case domain.MetricEyeContact:
		f = cfg.EyeContact.Feedback
	}

	switch {
	case score >= f.Good:
		return f.ExcellentMessage
	case score >= f.Poor:
		return f.GoodMessage
	default:
		return f.PoorMessage
	}
}

// Combine folds the three smoothed scores into the overall score. It relies
// on the convention that the weights sum to 1 and does not enforce it.
func Combine(w Weights, posture, gesture, eyeContact float64) float64 {
	return posture*w.Posture + gesture*w.Gesture + eyeContact*w.EyeContact
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
