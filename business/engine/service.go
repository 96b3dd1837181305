package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"commCoach/domain"
	"commCoach/pkg/logger"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("session not found")

// ReportRepository persists finished session reports.
type ReportRepository interface {
	SaveReport(ctx context.Context, report domain.SessionReport) error
}

// ConfigRepository stores the runtime-merged calibration per profile so
// admin updates survive restarts.
type ConfigRepository interface {
	GetConfig(ctx context.Context, profile string) (Config, bool, error)
	SaveConfig(ctx context.Context, cfg Config) error
}

// EngineService owns the active sessions and the current calibration. It has
// no knowledge of transport: handlers call it and translate outcomes.
type EngineService struct {
	mu       sync.Mutex
	cfg      Config
	sessions map[string]*Session

	reportRepo ReportRepository
	cfgRepo    ConfigRepository
}

func NewEngineService(defaultCfg Config, reportRepo ReportRepository, cfgRepo ConfigRepository) *EngineService {
	return &EngineService{
		cfg:        defaultCfg,
		sessions:   make(map[string]*Session),
		reportRepo: reportRepo,
		cfgRepo:    cfgRepo,
	}
}

// RestoreConfig overlays a previously stored calibration for the active
// profile, if one exists. Called once at startup.
func (s *EngineService) RestoreConfig(ctx context.Context) error {
	if s.cfgRepo == nil {
		return nil
	}

	stored, ok, err := s.cfgRepo.GetConfig(ctx, s.cfg.Profile)
	if err != nil {
		return fmt.Errorf("load stored config: %w", err)
	}
	if !ok {
		return nil
	}

	if err := stored.Validate(); err != nil {
		logger.Warn("Stored config invalid, keeping profile defaults", "profile", s.cfg.Profile, "error", err)
		return nil
	}

	s.mu.Lock()
	s.cfg = stored
	s.mu.Unlock()

	logger.Info("Restored stored scoring config", "profile", stored.Profile)
	return nil
}

// StartSession creates a new session with a snapshot of the current config.
func (s *EngineService) StartSession(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("context error: %w", err)
	}

	id := uuid.New().String()
	now := time.Now()

	s.mu.Lock()
	sess := NewSession(id, s.cfg, now.UnixNano(), now)
	s.sessions[id] = sess
	s.mu.Unlock()

	logger.Info("Session started", "session_id", id, "profile", sess.cfg.Profile)
	return id, nil
}

func (s *EngineService) session(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// ProcessFrame runs one landmark frame through the session pipeline.
func (s *EngineService) ProcessFrame(ctx context.Context, id string, frame domain.LandmarkFrame) (domain.FrameMetrics, error) {
	if err := ctx.Err(); err != nil {
		return domain.FrameMetrics{}, fmt.Errorf("context error: %w", err)
	}

	sess, err := s.session(id)
	if err != nil {
		return domain.FrameMetrics{}, err
	}

	result, err := sess.ProcessFrame(frame, time.Now())
	if err != nil {
		return domain.FrameMetrics{}, err
	}

	logger.Debug("engine_frame_processed",
		"trace_id", TraceIDFromContext(ctx),
		"session_id", id,
		"posture", result.PostureScore,
		"gesture", result.GestureScore,
		"eye_contact", result.EyeContactScore,
		"overall", result.OverallScore,
	)

	return result, nil
}

func (s *EngineService) SessionStatus(ctx context.Context, id string) (SessionStatus, error) {
	sess, err := s.session(id)
	if err != nil {
		return SessionStatus{}, err
	}
	return sess.Status(), nil
}

func (s *EngineService) ResetSession(ctx context.Context, id string) error {
	sess, err := s.session(id)
	if err != nil {
		return err
	}

	sess.Reset(time.Now())
	logger.Info("Session reset", "session_id", id)
	return nil
}

// StopSession stops the session, aggregates its report, persists it, and
// releases the session state. An empty session surfaces ErrEmptySession.
func (s *EngineService) StopSession(ctx context.Context, id string) (domain.SessionReport, error) {
	sess, err := s.session(id)
	if err != nil {
		return domain.SessionReport{}, err
	}

	sess.Stop(time.Now())

	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()

	report, err := sess.Report()
	if err != nil {
		return domain.SessionReport{}, err
	}

	if s.reportRepo != nil {
		if err := s.reportRepo.SaveReport(ctx, report); err != nil {
			// The caller still gets the report; persistence is degraded, not fatal.
			logger.Error("Failed to persist session report", "session_id", id, "error", err)
		}
	}

	logger.Info("Session stopped",
		"trace_id", TraceIDFromContext(ctx),
		"session_id", id,
		"total_frames", report.SessionInfo.TotalFrames,
		"overall", report.AverageScores.Overall,
		"performance_level", report.PerformanceLevel,
	)

	return report, nil
}

func (s *EngineService) GetConfig() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// UpdateConfig merges a partial calibration patch onto the current config.
// Accepted keys take effect for new sessions; rejected keys keep their
// previous values and are reported back via *ConfigValidationError.
func (s *EngineService) UpdateConfig(ctx context.Context, patch ConfigPatch) (Config, error) {
	s.mu.Lock()
	merged, verr := Merge(s.cfg, patch)
	s.cfg = merged
	s.mu.Unlock()

	if s.cfgRepo != nil {
		if err := s.cfgRepo.SaveConfig(ctx, merged); err != nil {
			logger.Error("Failed to persist scoring config", "profile", merged.Profile, "error", err)
		}
	}

	if verr != nil {
		return merged, verr
	}
	return merged, nil
}
