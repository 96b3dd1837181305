package engine

import (
	"errors"
	"testing"
	"time"

	"commCoach/domain"
)

// quietConfig is the generous profile with jitter disabled so expected
// values are exact.
func quietConfig() Config {
	cfg := GenerousConfig()
	cfg.Posture.VariationFactor = 0
	cfg.Gesture.VariationFactor = 0
	cfg.EyeContact.VariationFactor = 0
	return cfg
}

func TestSessionProcessEmptyFrameUsesBaselines(t *testing.T) {
	cfg := quietConfig()
	now := time.Now()
	sess := NewSession("s1", cfg, 1, now)

	m, err := sess.ProcessFrame(domain.LandmarkFrame{}, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !almostEqual(m.PostureScore, 75) {
		t.Fatalf("posture = %v, want neutral 75", m.PostureScore)
	}
	if !almostEqual(m.GestureScore, 80) {
		t.Fatalf("gesture = %v, want neutral 80", m.GestureScore)
	}
	if !almostEqual(m.EyeContactScore, 80) {
		t.Fatalf("eye contact = %v, want neutral 80", m.EyeContactScore)
	}

	// 0.35*75 + 0.30*80 + 0.35*80, rounded to one decimal
	if !almostEqual(m.OverallScore, 78.3) {
		t.Fatalf("overall = %v, want 78.3", m.OverallScore)
	}

	if len(m.Feedback) != 3 {
		t.Fatalf("feedback = %v, want one entry per metric", m.Feedback)
	}
}

func TestSessionScoresStayInBounds(t *testing.T) {
	cfg := GenerousConfig() // jitter on
	now := time.Now()
	sess := NewSession("s1", cfg, 42, now)

	for i := 0; i < 200; i++ {
		m, err := sess.ProcessFrame(domain.LandmarkFrame{Pose: levelPose()}, now.Add(time.Duration(i)*33*time.Millisecond))
		if err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
		if m.PostureScore < cfg.Posture.MinScore || m.PostureScore > cfg.Posture.MaxScore {
			t.Fatalf("posture %v outside [%v, %v]", m.PostureScore, cfg.Posture.MinScore, cfg.Posture.MaxScore)
		}
		if m.GestureScore < cfg.Gesture.MinScore || m.GestureScore > cfg.Gesture.MaxScore {
			t.Fatalf("gesture %v outside bounds", m.GestureScore)
		}
		if m.EyeContactScore < cfg.EyeContact.MinScore || m.EyeContactScore > cfg.EyeContact.MaxScore {
			t.Fatalf("eye contact %v outside bounds", m.EyeContactScore)
		}
	}
}

func TestSessionStopIsIdempotent(t *testing.T) {
	cfg := quietConfig()
	now := time.Now()
	sess := NewSession("s1", cfg, 1, now)

	if _, err := sess.ProcessFrame(domain.LandmarkFrame{}, now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sess.Stop(now.Add(time.Minute))
	sess.Stop(now.Add(2 * time.Minute))

	if _, err := sess.ProcessFrame(domain.LandmarkFrame{}, now.Add(time.Minute)); !errors.Is(err, ErrSessionStopped) {
		t.Fatalf("err = %v, want ErrSessionStopped", err)
	}

	rep, err := sess.Report()
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if rep.SessionInfo.TotalFrames != 1 {
		t.Fatalf("total frames = %d, want 1", rep.SessionInfo.TotalFrames)
	}
	// the first Stop call fixed the end time
	if !almostEqual(rep.SessionInfo.DurationMinutes, 1) {
		t.Fatalf("duration = %v, want 1", rep.SessionInfo.DurationMinutes)
	}
}

func TestSessionEmptyReport(t *testing.T) {
	cfg := quietConfig()
	now := time.Now()
	sess := NewSession("s1", cfg, 1, now)
	sess.Stop(now)

	if _, err := sess.Report(); !errors.Is(err, ErrEmptySession) {
		t.Fatalf("err = %v, want ErrEmptySession", err)
	}
}

func TestSessionResetClearsState(t *testing.T) {
	cfg := quietConfig()
	now := time.Now()
	sess := NewSession("s1", cfg, 1, now)

	for i := 0; i < 5; i++ {
		if _, err := sess.ProcessFrame(domain.LandmarkFrame{}, now); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	sess.Stop(now.Add(time.Minute))

	sess.Reset(now.Add(2 * time.Minute))

	status := sess.Status()
	if status.TotalFrames != 0 {
		t.Fatalf("frames after reset = %d, want 0", status.TotalFrames)
	}
	if status.Stopped {
		t.Fatal("reset must reopen the session")
	}
	if len(status.Stats) != 0 {
		t.Fatalf("stats after reset = %v, want empty", status.Stats)
	}

	// a reset session processes frames again
	if _, err := sess.ProcessFrame(domain.LandmarkFrame{}, now.Add(2*time.Minute)); err != nil {
		t.Fatalf("frame after reset: %v", err)
	}
}

func TestSessionStatusSnapshot(t *testing.T) {
	cfg := quietConfig()
	now := time.Now()
	sess := NewSession("s1", cfg, 1, now)

	for i := 0; i < 3; i++ {
		if _, err := sess.ProcessFrame(domain.LandmarkFrame{}, now); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	status := sess.Status()
	if status.SessionID != "s1" {
		t.Fatalf("session id = %q", status.SessionID)
	}
	if status.TotalFrames != 3 {
		t.Fatalf("total frames = %d, want 3", status.TotalFrames)
	}
	for _, m := range domain.MetricTypes {
		if _, ok := status.Stats[m]; !ok {
			t.Fatalf("missing stats for %s", m)
		}
	}
}

func TestSessionJitterIsSeeded(t *testing.T) {
	cfg := GenerousConfig()
	now := time.Now()

	a := NewSession("a", cfg, 7, now)
	b := NewSession("b", cfg, 7, now)

	for i := 0; i < 10; i++ {
		ma, err := a.ProcessFrame(domain.LandmarkFrame{Pose: levelPose()}, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		mb, err := b.ProcessFrame(domain.LandmarkFrame{Pose: levelPose()}, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ma.PostureScore != mb.PostureScore {
			t.Fatalf("same seed diverged: %v vs %v", ma.PostureScore, mb.PostureScore)
		}
	}
}
