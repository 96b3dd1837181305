package engine

import (
	"errors"

	"commCoach/domain"
)

// ErrEmptySession marks an aggregation attempt over zero processed frames.
// It is a distinct no-data outcome, never a zero-filled report.
var ErrEmptySession = errors.New("no frames processed in session")

func meanOf(history []domain.ScoreSet, pick func(domain.ScoreSet) float64) float64 {
	if len(history) == 0 {
		return 0
	}
	sum := 0.0
	for _, t := range history {
		sum += pick(t)
	}
	return sum / float64(len(history))
}

var seriesPickers = map[domain.MetricType]func(domain.ScoreSet) float64{
	domain.MetricPosture:    func(t domain.ScoreSet) float64 { return t.Posture },
	domain.MetricGesture:    func(t domain.ScoreSet) float64 { return t.Gesture },
	domain.MetricEyeContact: func(t domain.ScoreSet) float64 { return t.EyeContact },
}

func pickOverall(t domain.ScoreSet) float64 { return t.Overall }

// Aggregate folds the full ordered score history of a stopped session into
// its report: per-series means, first/second-half trend deltas, strengths,
// weaknesses, recommendations, a performance tier, and next steps. All
// thresholds and messages come from cfg.
func Aggregate(sessionID string, info domain.SessionInfo, history []domain.ScoreSet, cfg ReportConfig) (domain.SessionReport, error) {
	if len(history) == 0 {
		return domain.SessionReport{}, ErrEmptySession
	}

	averages := domain.ScoreSet{
		Posture:    meanOf(history, seriesPickers[domain.MetricPosture]),
		Gesture:    meanOf(history, seriesPickers[domain.MetricGesture]),
		EyeContact: meanOf(history, seriesPickers[domain.MetricEyeContact]),
		Overall:    meanOf(history, pickOverall),
	}

	improvements, insufficient := halfSplitImprovements(history)

	var strengths, weaknesses, recommendations []string
	weakMetrics := map[domain.MetricType]bool{}

	for _, m := range domain.MetricTypes {
		avg := meanOf(history, seriesPickers[m])

		if avg >= cfg.StrongThresholds[m] {
			strengths = append(strengths, cfg.Messages.Strengths[m])
		} else if avg < cfg.WeakThresholds[m] {
			weaknesses = append(weaknesses, cfg.Messages.Weaknesses[m])
			weakMetrics[m] = true
		}

		if avg < cfg.RecommendThresholds[m] {
			recommendations = append(recommendations, cfg.Messages.Recommendations[m])
		}
	}

	if averages.Overall < cfg.OverallFloor {
		recommendations = append(recommendations, cfg.Messages.OverallRecommendation)
	}

	var progress []string
	if !insufficient {
		deltas := map[domain.MetricType]float64{
			domain.MetricPosture:    improvements.Posture,
			domain.MetricGesture:    improvements.Gesture,
			domain.MetricEyeContact: improvements.EyeContact,
		}
		for _, m := range domain.MetricTypes {
			if deltas[m] > cfg.ImprovementDelta {
				progress = append(progress, cfg.Messages.Progress[m])
			}
		}
	}

	return domain.SessionReport{
		SessionID:   sessionID,
		SessionInfo: info,
		AverageScores: domain.ScoreSet{
			Posture:    round1(averages.Posture),
			Gesture:    round1(averages.Gesture),
			EyeContact: round1(averages.EyeContact),
			Overall:    round1(averages.Overall),
		},
		Improvements: domain.ScoreSet{
			Posture:    round1(improvements.Posture),
			Gesture:    round1(improvements.Gesture),
			EyeContact: round1(improvements.EyeContact),
			Overall:    round1(improvements.Overall),
		},
		InsufficientTrendData: insufficient,
		Strengths:             strengths,
		Weaknesses:            weaknesses,
		Recommendations:       recommendations,
		ProgressIndicators:    progress,
		PerformanceLevel:      PerformanceLevel(cfg, averages.Overall),
		NextSteps:             nextSteps(cfg, averages.Overall, weakMetrics),
	}, nil
}

// halfSplitImprovements reports second-half mean minus first-half mean per
// series. Sessions of ten frames or fewer get zeros with the insufficient
// flag instead of a misleadingly precise delta.
func halfSplitImprovements(history []domain.ScoreSet) (domain.ScoreSet, bool) {
	if len(history) <= 10 {
		return domain.ScoreSet{}, true
	}

	half := len(history) / 2
	first, second := history[:half], history[half:]

	diff := func(pick func(domain.ScoreSet) float64) float64 {
		return meanOf(second, pick) - meanOf(first, pick)
	}

	return domain.ScoreSet{
		Posture:    diff(seriesPickers[domain.MetricPosture]),
		Gesture:    diff(seriesPickers[domain.MetricGesture]),
		EyeContact: diff(seriesPickers[domain.MetricEyeContact]),
		Overall:    diff(pickOverall),
	}, false
}

// PerformanceLevel resolves the overall mean against the ordered tier bands
// (highest minimum first, closed-open).
func PerformanceLevel(cfg ReportConfig, overall float64) string {
	for _, tier := range cfg.Tiers {
		if overall >= tier.Min {
			return tier.Label
		}
	}
	if len(cfg.Tiers) == 0 {
		return ""
	}
	return cfg.Tiers[len(cfg.Tiers)-1].Label
}

// nextSteps derives follow-ups deterministically from the weakness set and
// the overall mean.
func nextSteps(cfg ReportConfig, overall float64, weak map[domain.MetricType]bool) []string {
	var steps []string

	if overall < cfg.LowOverallGate {
		steps = append(steps, cfg.Messages.NextStepsLowOverall...)
	}

	for _, m := range domain.MetricTypes {
		if weak[m] {
			steps = append(steps, cfg.Messages.NextSteps[m])
		}
	}

	steps = append(steps, cfg.Messages.NextStepFinal)
	return steps
}
