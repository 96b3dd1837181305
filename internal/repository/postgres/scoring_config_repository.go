package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"commCoach/business/engine"
	"commCoach/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ScoringConfigRepository struct {
	DB *gorm.DB
}

var _ engine.ConfigRepository = (*ScoringConfigRepository)(nil)

func NewScoringConfigRepository(db *gorm.DB) *ScoringConfigRepository {
	return &ScoringConfigRepository{DB: db}
}

func (r *ScoringConfigRepository) GetConfig(ctx context.Context, profile string) (engine.Config, bool, error) {
	var rec domain.ScoringConfigRecord

	err := r.DB.WithContext(ctx).
		Where("profile = ?", profile).
		First(&rec).Error
	if err == gorm.ErrRecordNotFound {
		return engine.Config{}, false, nil
	}
	if err != nil {
		return engine.Config{}, false, err
	}

	raw, err := json.Marshal(rec.Payload)
	if err != nil {
		return engine.Config{}, false, fmt.Errorf("serialize stored config: %w", err)
	}

	var cfg engine.Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return engine.Config{}, false, fmt.Errorf("decode stored config: %w", err)
	}
	cfg.Profile = profile
	return cfg, true, nil
}

func (r *ScoringConfigRepository) SaveConfig(ctx context.Context, cfg engine.Config) error {
	payload, err := toJSONMap(cfg)
	if err != nil {
		return fmt.Errorf("serialize config: %w", err)
	}

	rec := domain.ScoringConfigRecord{
		Profile: cfg.Profile,
		Payload: payload,
	}

	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "profile"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(&rec).Error
}
