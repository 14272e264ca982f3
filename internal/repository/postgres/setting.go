package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sitecms/internal/model"
	"sitecms/internal/repository"
)

// SettingPostgres is a PostgreSQL implementation of repository.SettingRepository.
type SettingPostgres struct {
	db *gorm.DB
}

// NewSettingPostgres creates a new SettingPostgres repository.
func NewSettingPostgres(db *gorm.DB) *SettingPostgres {
	return &SettingPostgres{db: db}
}

var _ repository.SettingRepository = (*SettingPostgres)(nil)

// List returns settings ordered by key.
func (r *SettingPostgres) List(ctx context.Context, publicOnly bool) ([]model.Setting, error) {
	q := r.db.WithContext(ctx).Order("key ASC")
	if publicOnly {
		q = q.Where("is_public = ?", true)
	}
	out := make([]model.Setting, 0)
	if err := q.Find(&out).Error; err != nil {
		return nil, mapErr(err)
	}
	return out, nil
}

// FindByKey returns a setting by key.
func (r *SettingPostgres) FindByKey(ctx context.Context, key string) (*model.Setting, error) {
	var s model.Setting
	if err := r.db.WithContext(ctx).Where("key = ?", key).Take(&s).Error; err != nil {
		return nil, mapErr(err)
	}
	return &s, nil
}

// Upsert inserts settings, overwriting value and visibility on key conflicts.
func (r *SettingPostgres) Upsert(ctx context.Context, settings []model.Setting) error {
	if len(settings) == 0 {
		return nil
	}
	now := time.Now().UTC()
	for i := range settings {
		settings[i].UpdatedAt = now
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "is_public", "updated_at"}),
	}).Create(&settings).Error
	return mapErr(err)
}
