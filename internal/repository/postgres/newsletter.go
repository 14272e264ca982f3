package postgres

import (
	"context"

	"gorm.io/gorm"

	"sitecms/internal/model"
	"sitecms/internal/repository"
)

// NewsletterPostgres is a PostgreSQL implementation of repository.NewsletterRepository.
type NewsletterPostgres struct {
	*Store[model.NewsletterSubscription]
	db *gorm.DB
}

// NewNewsletterPostgres creates a new NewsletterPostgres repository.
func NewNewsletterPostgres(db *gorm.DB) *NewsletterPostgres {
	return &NewsletterPostgres{
		Store: NewStore[model.NewsletterSubscription](db, WithDefaultOrder("subscribed_at DESC, id DESC")),
		db:    db,
	}
}

var _ repository.NewsletterRepository = (*NewsletterPostgres)(nil)

// FindByEmailWithDeleted looks a subscription up by email, soft-deleted rows included.
func (r *NewsletterPostgres) FindByEmailWithDeleted(ctx context.Context, email string) (*model.NewsletterSubscription, error) {
	var sub model.NewsletterSubscription
	if err := r.db.WithContext(ctx).Unscoped().Where("email = ?", email).Take(&sub).Error; err != nil {
		return nil, mapErr(err)
	}
	return &sub, nil
}

// Restore revives a soft-deleted subscription and saves its current fields.
func (r *NewsletterPostgres) Restore(ctx context.Context, sub *model.NewsletterSubscription) (*model.NewsletterSubscription, error) {
	sub.DeletedAt = gorm.DeletedAt{}
	res := r.db.WithContext(ctx).Unscoped().
		Model(sub).
		Select("status", "unsubscribe_token", "subscribed_at", "unsubscribed_at", "deleted_at", "updated_at").
		Updates(sub)
	if res.Error != nil {
		return nil, mapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, repository.ErrNotFound
	}
	return sub, nil
}

// ListAll returns every live subscription, oldest first.
func (r *NewsletterPostgres) ListAll(ctx context.Context, status string) ([]model.NewsletterSubscription, error) {
	q := r.db.WithContext(ctx).Order("subscribed_at ASC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	out := make([]model.NewsletterSubscription, 0)
	if err := q.Find(&out).Error; err != nil {
		return nil, mapErr(err)
	}
	return out, nil
}
