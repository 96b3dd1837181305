package engine

import (
	"testing"

	"commCoach/domain"
)

func TestSelectFeedbackTiers(t *testing.T) {
	cfg := GenerousConfig()
	f := cfg.Posture.Feedback // poor=40, good=65

	if got := SelectFeedback(cfg, domain.MetricPosture, 30); got != f.PoorMessage {
		t.Fatalf("below poor: got %q", got)
	}
	if got := SelectFeedback(cfg, domain.MetricPosture, 50); got != f.GoodMessage {
		t.Fatalf("middle tier: got %q", got)
	}
	if got := SelectFeedback(cfg, domain.MetricPosture, 90); got != f.ExcellentMessage {
		t.Fatalf("top tier: got %q", got)
	}
}

func TestSelectFeedbackBoundaryResolvesUp(t *testing.T) {
	cfg := GenerousConfig()
	f := cfg.Gesture.Feedback // poor=45, good=70

	if got := SelectFeedback(cfg, domain.MetricGesture, f.Poor); got != f.GoodMessage {
		t.Fatalf("score == poor boundary must be middle tier, got %q", got)
	}
	if got := SelectFeedback(cfg, domain.MetricGesture, f.Good); got != f.ExcellentMessage {
		t.Fatalf("score == good boundary must be top tier, got %q", got)
	}
}

func TestSelectFeedbackDeterministic(t *testing.T) {
	cfg := StrictConfig()

	first := SelectFeedback(cfg, domain.MetricEyeContact, 62.5)
	for i := 0; i < 10; i++ {
		if got := SelectFeedback(cfg, domain.MetricEyeContact, 62.5); got != first {
			t.Fatalf("same score gave different feedback: %q vs %q", first, got)
		}
	}
}

func TestCombineWeightedAverage(t *testing.T) {
	w := Weights{Posture: 0.35, Gesture: 0.30, EyeContact: 0.35}

	got := Combine(w, 80, 60, 70)
	want := 80*0.35 + 60*0.30 + 70*0.35
	if !almostEqual(got, want) {
		t.Fatalf("Combine = %v, want %v", got, want)
	}

	// equal scores pass through untouched when weights sum to 1
	if got := Combine(w, 75, 75, 75); !almostEqual(got, 75) {
		t.Fatalf("uniform inputs = %v, want 75", got)
	}
}

func TestRound1(t *testing.T) {
	if got := round1(78.25); !almostEqual(got, 78.3) {
		t.Fatalf("round1(78.25) = %v", got)
	}
	if got := round1(-1.24); !almostEqual(got, -1.2) {
		t.Fatalf("round1(-1.24) = %v", got)
	}
}
