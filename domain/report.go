package domain

import (
	"time"

	"gorm.io/datatypes"
)

type SessionInfo struct {
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	DurationMinutes float64   `json:"duration_minutes"`
	TotalFrames     int       `json:"total_frames"`
}

// SessionReport is the end-of-session summary. It is immutable once produced.
type SessionReport struct {
	SessionID     string      `json:"session_id"`
	SessionInfo   SessionInfo `json:"session_info"`
	AverageScores ScoreSet    `json:"average_scores"`
	Improvements  ScoreSet    `json:"improvements"`

	// True when the session was too short (≤10 frames) for the half-split
	// trend; Improvements are zero in that case rather than a misleading number.
	InsufficientTrendData bool `json:"insufficient_trend_data"`

	Strengths          []string `json:"strengths"`
	Weaknesses         []string `json:"weaknesses"`
	Recommendations    []string `json:"recommendations"`
	ProgressIndicators []string `json:"progress_indicators"`
	PerformanceLevel   string   `json:"performance_level"`
	NextSteps          []string `json:"next_steps"`
}

// SessionReportRecord is the persisted row for one report. The full report
// document lives in Payload; the scalar columns exist for listing and stats.
type SessionReportRecord struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	SessionID        string    `gorm:"column:session_id;uniqueIndex;not null" json:"session_id"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	DurationMinutes  float64   `gorm:"column:duration_minutes" json:"duration_minutes"`
	TotalFrames      int       `gorm:"column:total_frames" json:"total_frames"`
	OverallScore     float64   `gorm:"column:overall_score" json:"overall_score"`
	PerformanceLevel string    `gorm:"column:performance_level" json:"performance_level"`

	Payload datatypes.JSONMap `gorm:"column:payload;type:jsonb" json:"payload"`
}

func (SessionReportRecord) TableName() string {
	return "session_reports"
}

// ReportStatistics aggregates the whole report history.
type ReportStatistics struct {
	TotalAnalyses           int            `json:"total_analyses"`
	AverageScore            float64        `json:"average_score"`
	BestScore               float64        `json:"best_score"`
	TotalDurationMinutes    float64        `json:"total_duration_minutes"`
	PerformanceDistribution map[string]int `json:"performance_distribution"`
	LastAnalysis            *time.Time     `json:"last_analysis,omitempty"`
}

// ScoringConfigRecord stores a runtime-merged scoring config per profile name.
type ScoringConfigRecord struct {
	Profile   string            `gorm:"column:profile;primaryKey" json:"profile"`
	UpdatedAt time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	Payload   datatypes.JSONMap `gorm:"column:payload;type:jsonb" json:"payload"`
}

func (ScoringConfigRecord) TableName() string {
	return "scoring_configs"
}
