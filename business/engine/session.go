package engine

import (
	"fmt"
	"sync"
	"time"

	"commCoach/domain"
)

var (
	ErrSessionStopped = fmt.Errorf("session already stopped")
)

// Session owns all mutable per-session state: smoothing, blink and movement
// trackers, and the accumulated score history. Everything is guarded by one
// mutex; frame cadence dominates, so coarse locking is enough.
type Session struct {
	mu sync.Mutex

	id  string
	cfg Config

	smoother *Smoother
	blink    *BlinkDetector
	movement *MovementTracker
	noise    *Noise

	history     []domain.ScoreSet
	latest      domain.FrameMetrics
	startTime   time.Time
	endTime     time.Time
	totalFrames int
	stopped     bool
}

// SessionStatus is a point-in-time snapshot for concurrent readers.
type SessionStatus struct {
	SessionID    string                                   `json:"session_id"`
	StartTime    time.Time                                `json:"start_time"`
	TotalFrames  int                                      `json:"total_frames"`
	Stopped      bool                                     `json:"stopped"`
	Latest       domain.FrameMetrics                      `json:"latest"`
	Stats        map[domain.MetricType]domain.MetricStats `json:"stats"`
	BlinkRate    float64                                  `json:"blink_rate"`
	HandMovement float64                                  `json:"hand_movement"`
	HeadMovement float64                                  `json:"head_movement"`
}

// NewSession builds a session with a config snapshot. The noise seed is
// injectable for deterministic tests.
func NewSession(id string, cfg Config, noiseSeed int64, now time.Time) *Session {
	return &Session{
		id:        id,
		cfg:       cfg,
		smoother:  NewSmoother(cfg.Smoothing),
		blink:     NewBlinkDetector(cfg.Blink),
		movement:  NewMovementTracker(cfg.Smoothing.HistorySize),
		noise:     NewNoise(noiseSeed),
		startTime: now,
	}
}

func (s *Session) ID() string { return s.id }

// ProcessFrame runs one landmark frame through the full metric pipeline:
// extract → jitter → smooth/clamp → feedback + overall, and appends the
// smoothed tuple to the session history.
func (s *Session) ProcessFrame(frame domain.LandmarkFrame, now time.Time) (domain.FrameMetrics, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return domain.FrameMetrics{}, ErrSessionStopped
	}

	rawPosture := s.noise.Apply(extractPosture(s.cfg.Posture, frame), s.cfg.Posture.VariationFactor)
	rawGesture := s.noise.Apply(extractGesture(s.cfg.Gesture, frame), s.cfg.Gesture.VariationFactor)
	rawEye := s.noise.Apply(extractEyeContact(s.cfg.EyeContact, frame), s.cfg.EyeContact.VariationFactor)

	posture := s.smoother.Smooth(domain.MetricPosture, rawPosture, s.cfg.Posture.MinScore, s.cfg.Posture.MaxScore)
	gesture := s.smoother.Smooth(domain.MetricGesture, rawGesture, s.cfg.Gesture.MinScore, s.cfg.Gesture.MaxScore)
	eye := s.smoother.Smooth(domain.MetricEyeContact, rawEye, s.cfg.EyeContact.MinScore, s.cfg.EyeContact.MaxScore)

	overall := Combine(s.cfg.Weights, posture, gesture, eye)

	_, blinked := s.blink.Process(frame, now)
	s.movement.Process(frame)

	metrics := domain.FrameMetrics{
		PostureScore:    round1(posture),
		GestureScore:    round1(gesture),
		EyeContactScore: round1(eye),
		OverallScore:    round1(overall),
		Feedback: []string{
			SelectFeedback(s.cfg, domain.MetricPosture, posture),
			SelectFeedback(s.cfg, domain.MetricGesture, gesture),
			SelectFeedback(s.cfg, domain.MetricEyeContact, eye),
		},
		BlinkRate: s.blink.Rate(),
		Timestamp: now,
	}

	s.history = append(s.history, domain.ScoreSet{
		Posture:    posture,
		Gesture:    gesture,
		EyeContact: eye,
		Overall:    overall,
	})
	s.totalFrames++
	s.latest = metrics

	if blinked {
		BlinksDetectedTotal.Inc()
	}
	FramesProcessedTotal.WithLabelValues(s.cfg.Profile).Inc()

	return metrics, nil
}

// Status returns a consistent snapshot without blocking frame processing
// for longer than one lock hold.
func (s *Session) Status() SessionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := make(map[domain.MetricType]domain.MetricStats)
	for _, m := range domain.MetricTypes {
		if st, ok := s.smoother.Stats(m); ok {
			stats[m] = st
		}
	}

	return SessionStatus{
		SessionID:    s.id,
		StartTime:    s.startTime,
		TotalFrames:  s.totalFrames,
		Stopped:      s.stopped,
		Latest:       s.latest,
		Stats:        stats,
		BlinkRate:    s.blink.Rate(),
		HandMovement: s.movement.TrailingHandAverage(),
		HeadMovement: s.movement.TrailingHeadAverage(),
	}
}

// Reset atomically replaces the mutable state. A concurrent reader sees
// either the old session state or a fresh one, never a partial clear.
func (s *Session) Reset(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.smoother = NewSmoother(s.cfg.Smoothing)
	s.blink = NewBlinkDetector(s.cfg.Blink)
	s.movement = NewMovementTracker(s.cfg.Smoothing.HistorySize)
	s.history = nil
	s.latest = domain.FrameMetrics{}
	s.totalFrames = 0
	s.startTime = now
	s.endTime = time.Time{}
	s.stopped = false
}

// Stop flips the cooperative stop flag. Safe to call at any point between
// frames; the history stays readable for aggregation. Idempotent.
func (s *Session) Stop(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}
	s.stopped = true
	s.endTime = now
}

// Report aggregates the session history into the final report. The session
// must be stopped first so the history is no longer appended to.
func (s *Session) Report() (domain.SessionReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	end := s.endTime
	if end.IsZero() {
		end = time.Now()
	}

	info := domain.SessionInfo{
		StartTime:       s.startTime,
		EndTime:         end,
		DurationMinutes: round1(end.Sub(s.startTime).Minutes()),
		TotalFrames:     s.totalFrames,
	}

	return Aggregate(s.id, info, s.history, s.cfg.Report)
}
