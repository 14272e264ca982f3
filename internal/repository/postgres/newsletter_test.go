package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"sitecms/internal/model"
	"sitecms/internal/repository"
)

var subscriberColumns = []string{"id", "created_at", "updated_at", "deleted_at", "email", "status", "unsubscribe_token", "subscribed_at", "unsubscribed_at"}

func TestNewsletterPostgres_FindByEmailWithDeleted(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewNewsletterPostgres(db)
	deletedAt := time.Now()

	rows := sqlmock.NewRows(subscriberColumns).
		AddRow("sub-1", time.Now(), time.Now(), deletedAt, "a@example.com", model.NewsletterUnsubscribed, "tok", time.Now(), nil)
	mock.ExpectQuery(`SELECT \* FROM "newsletter_subscriptions" WHERE email = \$1`).
		WillReturnRows(rows)

	sub, err := repo.FindByEmailWithDeleted(context.Background(), "a@example.com")

	require.NoError(t, err)
	assert.Equal(t, "sub-1", sub.ID)
	assert.True(t, sub.DeletedAt.Valid)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewsletterPostgres_Restore(t *testing.T) {
	ctx := context.Background()

	t.Run("clears deleted_at", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewNewsletterPostgres(db)
		mock.ExpectExec(`UPDATE "newsletter_subscriptions" SET .*"deleted_at"=\$`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		sub := &model.NewsletterSubscription{Base: model.Base{ID: "sub-1"}, Email: "a@example.com", Status: model.NewsletterSubscribed}
		sub.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}

		out, err := repo.Restore(ctx, sub)

		require.NoError(t, err)
		assert.False(t, out.DeletedAt.Valid)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewNewsletterPostgres(db)
		mock.ExpectExec(`UPDATE "newsletter_subscriptions"`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		_, err := repo.Restore(ctx, &model.NewsletterSubscription{Base: model.Base{ID: "gone"}})

		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestNewsletterPostgres_ListAll(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewNewsletterPostgres(db)

	rows := sqlmock.NewRows(subscriberColumns).
		AddRow("sub-1", time.Now(), time.Now(), nil, "a@example.com", model.NewsletterSubscribed, "t1", time.Now(), nil).
		AddRow("sub-2", time.Now(), time.Now(), nil, "b@example.com", model.NewsletterSubscribed, "t2", time.Now(), nil)
	mock.ExpectQuery(`SELECT \* FROM "newsletter_subscriptions" WHERE status = \$1 AND "newsletter_subscriptions"."deleted_at" IS NULL ORDER BY subscribed_at ASC`).
		WithArgs(model.NewsletterSubscribed).
		WillReturnRows(rows)

	out, err := repo.ListAll(context.Background(), model.NewsletterSubscribed)

	require.NoError(t, err)
	assert.Len(t, out, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}
