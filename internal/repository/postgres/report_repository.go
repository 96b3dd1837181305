package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"commCoach/business/engine"
	"commCoach/business/report"
	"commCoach/domain"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReportRepository struct {
	DB *gorm.DB
}

var (
	_ engine.ReportRepository = (*ReportRepository)(nil)
	_ report.ReportRepository = (*ReportRepository)(nil)
)

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{DB: db}
}

func (r *ReportRepository) SaveReport(ctx context.Context, rep domain.SessionReport) error {
	payload, err := toJSONMap(rep)
	if err != nil {
		return fmt.Errorf("serialize report: %w", err)
	}

	rec := domain.SessionReportRecord{
		SessionID:        rep.SessionID,
		DurationMinutes:  rep.SessionInfo.DurationMinutes,
		TotalFrames:      rep.SessionInfo.TotalFrames,
		OverallScore:     rep.AverageScores.Overall,
		PerformanceLevel: rep.PerformanceLevel,
		Payload:          payload,
	}

	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "session_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"duration_minutes",
				"total_frames",
				"overall_score",
				"performance_level",
				"payload",
			}),
		}).
		Create(&rec).Error
}

func (r *ReportRepository) FindAll(ctx context.Context, limit int) ([]domain.SessionReportRecord, error) {
	var records []domain.SessionReportRecord

	q := r.DB.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *ReportRepository) FindBySessionID(ctx context.Context, sessionID string) (domain.SessionReportRecord, bool, error) {
	var rec domain.SessionReportRecord

	err := r.DB.WithContext(ctx).
		Where("session_id = ?", sessionID).
		First(&rec).Error
	if err == gorm.ErrRecordNotFound {
		return domain.SessionReportRecord{}, false, nil
	}
	if err != nil {
		return domain.SessionReportRecord{}, false, err
	}
	return rec, true, nil
}

func (r *ReportRepository) FindLatest(ctx context.Context) (domain.SessionReportRecord, bool, error) {
	var rec domain.SessionReportRecord

	err := r.DB.WithContext(ctx).
		Order("created_at DESC").
		First(&rec).Error
	if err == gorm.ErrRecordNotFound {
		return domain.SessionReportRecord{}, false, nil
	}
	if err != nil {
		return domain.SessionReportRecord{}, false, err
	}
	return rec, true, nil
}

func (r *ReportRepository) Delete(ctx context.Context, sessionID string) (bool, error) {
	res := r.DB.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Delete(&domain.SessionReportRecord{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func toJSONMap(v any) (datatypes.JSONMap, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m datatypes.JSONMap
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}
