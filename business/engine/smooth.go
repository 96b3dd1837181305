package engine

import (
	"math"

	"commCoach/domain"
)

type smootherState struct {
	lastScore float64
	history   []float64
}

// Smoother applies exponential smoothing with clamping and a capped FIFO
// history, one state per metric. It is the shared stabilizing mechanism for
// every metric.
type Smoother struct {
	cfg    SmoothingConfig
	states map[domain.MetricType]*smootherState
}

func NewSmoother(cfg SmoothingConfig) *Smoother {
	return &Smoother{
		cfg:    cfg,
		states: make(map[domain.MetricType]*smootherState),
	}
}

// Smooth blends the raw value with the previous smoothed score
// (α·last + (1−α)·raw), clamps the result to [min, max], and records it.
// With no history the raw value passes through (clamped).
func (s *Smoother) Smooth(metric domain.MetricType, raw, min, max float64) float64 {
	st, ok := s.states[metric]
	if !ok {
		st = &smootherState{}
		s.states[metric] = st
	}

	smoothed := raw
	if len(st.history) > 0 {
		smoothed = s.cfg.Factor*st.lastScore + (1-s.cfg.Factor)*raw
	}

	smoothed = math.Max(min, math.Min(max, smoothed))

	st.lastScore = smoothed
	st.history = appendCapped(st.history, smoothed, s.cfg.HistorySize)

	return smoothed
}

// History returns a copy of the smoothed history for one metric.
func (s *Smoother) History(metric domain.MetricType) []float64 {
	st, ok := s.states[metric]
	if !ok {
		return nil
	}
	out := make([]float64, len(st.history))
	copy(out, st.history)
	return out
}

// Stats summarizes one metric's history. The trend is "improving" when more
// than ten samples exist and the latest exceeds the mean of the last ten.
func (s *Smoother) Stats(metric domain.MetricType) (domain.MetricStats, bool) {
	st, ok := s.states[metric]
	if !ok || len(st.history) == 0 {
		return domain.MetricStats{}, false
	}

	min, max := st.history[0], st.history[0]
	for _, v := range st.history {
		min = math.Min(min, v)
		max = math.Max(max, v)
	}

	trend := "stable"
	if len(st.history) > 10 {
		tail := st.history[len(st.history)-10:]
		if st.lastScore > mean(tail) {
			trend = "improving"
		}
	}

	return domain.MetricStats{
		Current: st.lastScore,
		Average: mean(st.history),
		Min:     min,
		Max:     max,
		Trend:   trend,
	}, true
}
