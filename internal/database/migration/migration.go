package migration

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"sitecms/internal/model"
)

type migrationStep struct {
	Name string
	Run  func(tx *gorm.DB) error
}

var steps = []migrationStep{
	{
		Name: "create_extension_pgcrypto",
		Run: func(tx *gorm.DB) error {
			return tx.Exec(`CREATE EXTENSION IF NOT EXISTS "pgcrypto";`).Error
		},
	},
	{
		Name: "auto_migrate_entities",
		Run: func(tx *gorm.DB) error {
			return tx.AutoMigrate(model.All()...)
		},
	},
	{
		Name: "create_index_contact_submissions_created_at",
		Run: func(tx *gorm.DB) error {
			return tx.Exec(`CREATE INDEX IF NOT EXISTS idx_contact_submissions_created_at ON contact_submissions (created_at DESC);`).Error
		},
	},
	{
		Name: "create_index_audit_logs_created_at",
		Run: func(tx *gorm.DB) error {
			return tx.Exec(`CREATE INDEX IF NOT EXISTS idx_audit_logs_created_at ON audit_logs (created_at DESC);`).Error
		},
	},
	{
		Name: "seed_roles",
		Run:  seedRoles,
	},
	{
		Name: "seed_about_content",
		Run:  seedAbout,
	},
}

var defaultRoles = []model.Role{
	{Name: model.RoleAdmin, Description: "Full access including user management"},
	{Name: model.RoleEditor, Description: "Manage site content"},
}

func seedRoles(tx *gorm.DB) error {
	for _, r := range defaultRoles {
		role := r
		if err := tx.Where(model.Role{Name: role.Name}).FirstOrCreate(&role).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedAbout(tx *gorm.DB) error {
	var about model.AboutContent
	err := tx.First(&about).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return tx.Create(&model.AboutContent{}).Error
	}
	return err
}

// Run applies every migration step. Steps are idempotent so Run is safe on every boot.
func Run(ctx context.Context, db *gorm.DB, lggr *zap.Logger, dbHost string) error {
	start := time.Now()
	lggr = lggr.With(zap.String("component", "database"), zap.String("db_host", dbHost))

	lggr.Info("db_migration_start", zap.String("status", "in_progress"), zap.Int("steps", len(steps)))

	tx := db.WithContext(ctx)
	for _, step := range steps {
		stepStart := time.Now()
		if err := step.Run(tx); err != nil {
			lggr.Error("db_migration_failed",
				zap.String("status", "error"),
				zap.String("migration_step", step.Name),
				zap.Error(err),
				zap.Int64("duration_ms", time.Since(start).Milliseconds()),
				zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		lggr.Info("db_migration_step",
			zap.String("status", "success"),
			zap.String("migration_step", step.Name),
			zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
		)
	}

	lggr.Info("db_migration_success",
		zap.String("status", "success"),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
	)
	return nil
}
