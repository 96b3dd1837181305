package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"commCoach/domain"

	"github.com/xuri/excelize/v2"
)

var ErrReportNotFound = errors.New("report not found")

// ReportRepository is the persistence surface the service needs. The engine
// writes records on session stop; this side only reads and deletes.
type ReportRepository interface {
	FindAll(ctx context.Context, limit int) ([]domain.SessionReportRecord, error)
	FindBySessionID(ctx context.Context, sessionID string) (domain.SessionReportRecord, bool, error)
	FindLatest(ctx context.Context) (domain.SessionReportRecord, bool, error)
	Delete(ctx context.Context, sessionID string) (bool, error)
}

type ReportService struct {
	repo ReportRepository
}

func NewReportService(repo ReportRepository) *ReportService {
	return &ReportService{repo: repo}
}

func (s *ReportService) List(ctx context.Context, limit int) ([]domain.SessionReportRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.repo.FindAll(ctx, limit)
}

func (s *ReportService) GetBySessionID(ctx context.Context, sessionID string) (domain.SessionReportRecord, error) {
	rec, ok, err := s.repo.FindBySessionID(ctx, sessionID)
	if err != nil {
		return domain.SessionReportRecord{}, err
	}
	if !ok {
		return domain.SessionReportRecord{}, ErrReportNotFound
	}
	return rec, nil
}

func (s *ReportService) GetLatest(ctx context.Context) (domain.SessionReportRecord, error) {
	rec, ok, err := s.repo.FindLatest(ctx)
	if err != nil {
		return domain.SessionReportRecord{}, err
	}
	if !ok {
		return domain.SessionReportRecord{}, ErrReportNotFound
	}
	return rec, nil
}

func (s *ReportService) Delete(ctx context.Context, sessionID string) error {
	ok, err := s.repo.Delete(ctx, sessionID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrReportNotFound
	}
	return nil
}

// Statistics folds the whole stored history into one summary.
func (s *ReportService) Statistics(ctx context.Context) (domain.ReportStatistics, error) {
	records, err := s.repo.FindAll(ctx, 0)
	if err != nil {
		return domain.ReportStatistics{}, err
	}

	stats := domain.ReportStatistics{
		PerformanceDistribution: map[string]int{},
	}
	if len(records) == 0 {
		return stats, nil
	}

	var sum float64
	var last time.Time
	for _, r := range records {
		sum += r.OverallScore
		if r.OverallScore > stats.BestScore {
			stats.BestScore = r.OverallScore
		}
		stats.TotalDurationMinutes += r.DurationMinutes
		if r.PerformanceLevel != "" {
			stats.PerformanceDistribution[r.PerformanceLevel]++
		}
		if r.CreatedAt.After(last) {
			last = r.CreatedAt
		}
	}

	stats.TotalAnalyses = len(records)
	stats.AverageScore = sum / float64(len(records))
	stats.LastAnalysis = &last
	return stats, nil
}

var exportHeader = []string{
	"Session ID", "Date", "Duration (min)", "Frames",
	"Overall", "Posture", "Gesture", "Eye Contact", "Performance",
}

// ExportHistory renders the stored history as an xlsx workbook and returns
// its bytes, newest session first.
func (s *ReportService) ExportHistory(ctx context.Context) ([]byte, error) {
	records, err := s.repo.FindAll(ctx, 0)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "History"
	f.SetSheetName(f.GetSheetName(0), sheet)

	for col, title := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	for i, r := range records {
		row := []any{
			r.SessionID,
			r.CreatedAt.Format(time.RFC3339),
			r.DurationMinutes,
			r.TotalFrames,
			r.OverallScore,
			payloadScore(r, "posture"),
			payloadScore(r, "gesture"),
			payloadScore(r, "eye_contact"),
			r.PerformanceLevel,
		}
		for col, v := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("write row %d: %w", i+2, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// payloadScore digs a per-series average out of the stored report document.
// Missing or malformed payloads export as zero rather than failing the file.
func payloadScore(r domain.SessionReportRecord, key string) float64 {
	avg, ok := r.Payload["average_scores"].(map[string]any)
	if !ok {
		return 0
	}
	v, ok := avg[key].(float64)
	if !ok {
		return 0
	}
	return v
}
