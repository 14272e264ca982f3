package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"sitecms/internal/model"
	"sitecms/internal/repository"
)

// ResetCodePostgres is a PostgreSQL implementation of repository.ResetCodeRepository.
type ResetCodePostgres struct {
	db *gorm.DB
}

// NewResetCodePostgres creates a new ResetCodePostgres repository.
func NewResetCodePostgres(db *gorm.DB) *ResetCodePostgres {
	return &ResetCodePostgres{db: db}
}

var _ repository.ResetCodeRepository = (*ResetCodePostgres)(nil)

// Create stores a new code.
func (r *ResetCodePostgres) Create(ctx context.Context, code *model.PasswordResetCode) (*model.PasswordResetCode, error) {
	if err := r.db.WithContext(ctx).Create(code).Error; err != nil {
		return nil, mapErr(err)
	}
	return code, nil
}

// LatestActive returns the newest open code of a user.
func (r *ResetCodePostgres) LatestActive(ctx context.Context, userID string, now time.Time) (*model.PasswordResetCode, error) {
	var code model.PasswordResetCode
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND used_at IS NULL AND expires_at > ?", userID, now).
		Order("created_at DESC").
		Take(&code).Error
	if err != nil {
		return nil, mapErr(err)
	}
	return &code, nil
}

// IncrementAttempts bumps the attempt counter.
func (r *ResetCodePostgres) IncrementAttempts(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Model(&model.PasswordResetCode{}).
		Where("id = ?", id).
		Update("attempts", gorm.Expr("attempts + 1"))
	if res.Error != nil {
		return mapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// MarkUsed consumes the code and every other open code of the same user.
func (r *ResetCodePostgres) MarkUsed(ctx context.Context, code *model.PasswordResetCode, now time.Time) error {
	err := r.db.WithContext(ctx).
		Model(&model.PasswordResetCode{}).
		Where("user_id = ? AND used_at IS NULL", code.UserID).
		Update("used_at", now).Error
	if err != nil {
		return mapErr(err)
	}
	code.UsedAt = &now
	return nil
}
