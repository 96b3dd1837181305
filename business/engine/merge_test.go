package engine

import (
	"testing"
)

func TestMergeAppliesValidKeys(t *testing.T) {
	base := GenerousConfig()

	merged, verr := Merge(base, ConfigPatch{
		"posture":   {"min_score": 40},
		"weights":   {"gesture": 0.4},
		"smoothing": {"factor": 0.6},
	})
	if verr != nil {
		t.Fatalf("unexpected rejections: %v", verr.Rejected)
	}

	if merged.Posture.MinScore != 40 {
		t.Fatalf("posture.min_score = %v, want 40", merged.Posture.MinScore)
	}
	if merged.Weights.Gesture != 0.4 {
		t.Fatalf("weights.gesture = %v, want 0.4", merged.Weights.Gesture)
	}
	if merged.Smoothing.Factor != 0.6 {
		t.Fatalf("smoothing.factor = %v, want 0.6", merged.Smoothing.Factor)
	}

	// untouched keys keep their values
	if merged.Posture.MaxScore != base.Posture.MaxScore {
		t.Fatalf("max_score changed: %v", merged.Posture.MaxScore)
	}

	if err := merged.Validate(); err != nil {
		t.Fatalf("merged config invalid: %v", err)
	}
}

func TestMergeRejectsInvalidAndKeepsPrevious(t *testing.T) {
	base := GenerousConfig()

	merged, verr := Merge(base, ConfigPatch{
		"smoothing": {"factor": 1.5},
	})
	if verr == nil {
		t.Fatal("expected a validation error")
	}
	if len(verr.Rejected) != 1 || verr.Rejected[0] != "smoothing.factor" {
		t.Fatalf("rejected = %v", verr.Rejected)
	}

	if merged.Smoothing.Factor != base.Smoothing.Factor {
		t.Fatalf("rejected key mutated the config: %v", merged.Smoothing.Factor)
	}
}

func TestMergePartialAcceptance(t *testing.T) {
	base := GenerousConfig()

	merged, verr := Merge(base, ConfigPatch{
		"posture": {
			"min_score": 40,  // valid
			"max_score": 200, // out of bounds
		},
	})
	if verr == nil {
		t.Fatal("expected a validation error for the bad key")
	}
	if len(verr.Rejected) != 1 || verr.Rejected[0] != "posture.max_score" {
		t.Fatalf("rejected = %v", verr.Rejected)
	}

	if merged.Posture.MinScore != 40 {
		t.Fatalf("valid key was not applied: %v", merged.Posture.MinScore)
	}
	if merged.Posture.MaxScore != base.Posture.MaxScore {
		t.Fatalf("invalid key was applied: %v", merged.Posture.MaxScore)
	}
	if err := merged.Validate(); err != nil {
		t.Fatalf("merged config invalid: %v", err)
	}
}

func TestMergeUnknownSectionAndKey(t *testing.T) {
	base := GenerousConfig()

	_, verr := Merge(base, ConfigPatch{
		"bogus":   {"x": 1},
		"gesture": {"nonexistent": 5},
	})
	if verr == nil {
		t.Fatal("expected rejections")
	}
	if len(verr.Rejected) != 2 {
		t.Fatalf("rejected = %v, want 2 entries", verr.Rejected)
	}
}

func TestMergeResultAlwaysValid(t *testing.T) {
	base := StrictConfig()

	merged, _ := Merge(base, ConfigPatch{
		"eye_contact": {"center_tolerance": -1, "mid_tolerance": 0.9},
		"blink":       {"ear_threshold": 0, "window_seconds": 10},
		"weights":     {"posture": -2},
	})

	if err := merged.Validate(); err != nil {
		t.Fatalf("merge produced invalid config: %v", err)
	}
	if merged.EyeContact.MidTolerance != 0.9 {
		t.Fatalf("valid mid_tolerance not applied: %v", merged.EyeContact.MidTolerance)
	}
	if merged.Blink.WindowSeconds != 10 {
		t.Fatalf("valid window_seconds not applied: %v", merged.Blink.WindowSeconds)
	}
}
