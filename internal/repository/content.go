package repository

import (
	"context"
	"time"

	"sitecms/internal/model"
)

// ProjectRepository adds the project queries that join other tables.
type ProjectRepository interface {
	Store[model.Project]

	// FindWithImages loads a project by the given equality conditions with its
	// images ordered by sort_order and its service joined.
	FindWithImages(ctx context.Context, where map[string]any) (*model.Project, error)

	// ListByService returns projects joined to services, filtered by the service slug when set.
	ListByService(ctx context.Context, serviceSlug string, q ListQuery) (*PageResult[model.Project], error)
}

// SettingRepository stores key/value settings.
type SettingRepository interface {
	// List returns settings ordered by key; publicOnly restricts to is_public rows.
	List(ctx context.Context, publicOnly bool) ([]model.Setting, error)

	// FindByKey returns one setting.
	FindByKey(ctx context.Context, key string) (*model.Setting, error)

	// Upsert inserts or overwrites settings by key.
	Upsert(ctx context.Context, settings []model.Setting) error
}

// NewsletterRepository adds lookups that see soft-deleted subscriptions,
// since the email column stays unique across deleted rows.
type NewsletterRepository interface {
	Store[model.NewsletterSubscription]

	// FindByEmailWithDeleted returns a subscription by email including soft-deleted rows.
	FindByEmailWithDeleted(ctx context.Context, email string) (*model.NewsletterSubscription, error)

	// Restore clears deleted_at and overwrites the row.
	Restore(ctx context.Context, sub *model.NewsletterSubscription) (*model.NewsletterSubscription, error)

	// ListAll returns every live subscription with the given status ("" for any), oldest first.
	ListAll(ctx context.Context, status string) ([]model.NewsletterSubscription, error)
}

// ResetCodeRepository stores password reset codes.
type ResetCodeRepository interface {
	Create(ctx context.Context, code *model.PasswordResetCode) (*model.PasswordResetCode, error)

	// LatestActive returns the newest unused, unexpired code for the user.
	LatestActive(ctx context.Context, userID string, now time.Time) (*model.PasswordResetCode, error)

	// IncrementAttempts bumps the attempt counter of a code.
	IncrementAttempts(ctx context.Context, id string) error

	// MarkUsed stamps used_at on the code and invalidates every other open code of the user.
	MarkUsed(ctx context.Context, code *model.PasswordResetCode, now time.Time) error
}
