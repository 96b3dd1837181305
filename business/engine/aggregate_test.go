package engine

import (
	"errors"
	"testing"
	"time"

	"commCoach/domain"
)

func uniformHistory(n int, score float64) []domain.ScoreSet {
	history := make([]domain.ScoreSet, n)
	for i := range history {
		history[i] = domain.ScoreSet{Posture: score, Gesture: score, EyeContact: score, Overall: score}
	}
	return history
}

func testSessionInfo(frames int) domain.SessionInfo {
	start := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	return domain.SessionInfo{
		StartTime:       start,
		EndTime:         start.Add(5 * time.Minute),
		DurationMinutes: 5,
		TotalFrames:     frames,
	}
}

func TestAggregateEmptySession(t *testing.T) {
	cfg := defaultReportConfig()

	_, err := Aggregate("s1", testSessionInfo(0), nil, cfg)
	if !errors.Is(err, ErrEmptySession) {
		t.Fatalf("err = %v, want ErrEmptySession", err)
	}
}

func TestAggregateShortSessionHasNoTrend(t *testing.T) {
	cfg := defaultReportConfig()

	rep, err := Aggregate("s1", testSessionInfo(8), uniformHistory(8, 80), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !rep.InsufficientTrendData {
		t.Fatal("eight frames must flag insufficient trend data")
	}
	if rep.Improvements != (domain.ScoreSet{}) {
		t.Fatalf("improvements = %+v, want zeros", rep.Improvements)
	}
	if len(rep.ProgressIndicators) != 0 {
		t.Fatalf("progress = %v, want none", rep.ProgressIndicators)
	}
}

func TestAggregateHalfSplitImprovement(t *testing.T) {
	cfg := defaultReportConfig()

	history := append(uniformHistory(10, 50), uniformHistory(10, 65)...)

	rep, err := Aggregate("s1", testSessionInfo(20), history, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rep.InsufficientTrendData {
		t.Fatal("twenty frames is enough for the trend")
	}
	if !almostEqual(rep.AverageScores.Overall, 57.5) {
		t.Fatalf("overall mean = %v, want 57.5", rep.AverageScores.Overall)
	}
	if !almostEqual(rep.Improvements.Overall, 15) {
		t.Fatalf("overall improvement = %v, want 15", rep.Improvements.Overall)
	}
	if rep.PerformanceLevel != "Fair" {
		t.Fatalf("performance level = %q, want Fair", rep.PerformanceLevel)
	}

	// +15 clears the improvement delta on every series
	if len(rep.ProgressIndicators) != 3 {
		t.Fatalf("progress = %v, want 3 entries", rep.ProgressIndicators)
	}
}

func TestAggregateOddHistorySplit(t *testing.T) {
	cfg := defaultReportConfig()

	// 11 frames: first half 5, second half 6
	history := append(uniformHistory(5, 40), uniformHistory(6, 60)...)

	rep, err := Aggregate("s1", testSessionInfo(11), history, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rep.InsufficientTrendData {
		t.Fatal("eleven frames is above the minimum")
	}
	if !almostEqual(rep.Improvements.Posture, 20) {
		t.Fatalf("posture improvement = %v, want 20", rep.Improvements.Posture)
	}
}

func TestAggregateStrengthsAndWeaknesses(t *testing.T) {
	cfg := defaultReportConfig()

	history := make([]domain.ScoreSet, 12)
	for i := range history {
		// posture strong, gesture weak, eye contact in between
		history[i] = domain.ScoreSet{Posture: 85, Gesture: 30, EyeContact: 65, Overall: 62}
	}

	rep, err := Aggregate("s1", testSessionInfo(12), history, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(rep.Strengths) != 1 || rep.Strengths[0] != cfg.Messages.Strengths[domain.MetricPosture] {
		t.Fatalf("strengths = %v", rep.Strengths)
	}
	if len(rep.Weaknesses) != 1 || rep.Weaknesses[0] != cfg.Messages.Weaknesses[domain.MetricGesture] {
		t.Fatalf("weaknesses = %v", rep.Weaknesses)
	}

	// gesture below its recommend threshold; posture and eye contact are not
	found := false
	for _, r := range rep.Recommendations {
		if r == cfg.Messages.Recommendations[domain.MetricGesture] {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing gesture recommendation in %v", rep.Recommendations)
	}
}

func TestAggregateLowOverallNextSteps(t *testing.T) {
	cfg := defaultReportConfig()

	rep, err := Aggregate("s1", testSessionInfo(12), uniformHistory(12, 35), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// low-overall steps + one per weak metric + the closing step
	wantSteps := len(cfg.Messages.NextStepsLowOverall) + 3 + 1
	if len(rep.NextSteps) != wantSteps {
		t.Fatalf("next steps = %v, want %d entries", rep.NextSteps, wantSteps)
	}
	if rep.NextSteps[len(rep.NextSteps)-1] != cfg.Messages.NextStepFinal {
		t.Fatalf("last step = %q", rep.NextSteps[len(rep.NextSteps)-1])
	}
}

func TestAggregateHighOverallNextSteps(t *testing.T) {
	cfg := defaultReportConfig()

	rep, err := Aggregate("s1", testSessionInfo(12), uniformHistory(12, 90), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(rep.NextSteps) != 1 || rep.NextSteps[0] != cfg.Messages.NextStepFinal {
		t.Fatalf("next steps = %v, want only the closing step", rep.NextSteps)
	}
	if rep.PerformanceLevel != "Excellent" {
		t.Fatalf("performance level = %q", rep.PerformanceLevel)
	}
}

func TestPerformanceLevelBands(t *testing.T) {
	cfg := defaultReportConfig()

	cases := []struct {
		overall float64
		want    string
	}{
		{95, "Excellent"},
		{85, "Excellent"},
		{84.9, "Good"},
		{70, "Good"},
		{55, "Fair"},
		{54.9, "Needs improvement"},
		{0, "Needs improvement"},
	}
	for _, c := range cases {
		if got := PerformanceLevel(cfg, c.overall); got != c.want {
			t.Fatalf("PerformanceLevel(%v) = %q, want %q", c.overall, got, c.want)
		}
	}
}
