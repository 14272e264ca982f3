package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitecms/internal/model"
	"sitecms/internal/repository"
)

var faqColumns = []string{"id", "created_at", "updated_at", "deleted_at", "sort_order", "question", "answer", "category", "is_active"}

func TestStore_Create(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewStore[model.FAQ](db)
	ctx := context.Background()

	t.Run("assigns id", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO "faqs"`).WillReturnResult(sqlmock.NewResult(0, 1))

		faq, err := store.Create(ctx, &model.FAQ{Question: "Q?", Answer: "A."})

		require.NoError(t, err)
		assert.NotEmpty(t, faq.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("inserts an inactive flag as false", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO "faqs" \("id","created_at","updated_at","deleted_at","sort_order","question","answer","category","is_active"\)`).
			WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), nil, 0, "Q?", "A.", "billing", false).
			WillReturnResult(sqlmock.NewResult(0, 1))

		faq, err := store.Create(ctx, &model.FAQ{Question: "Q?", Answer: "A.", Category: "billing", IsActive: false})

		require.NoError(t, err)
		assert.False(t, faq.IsActive)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO "faqs"`).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "idx_faqs_question"})

		_, err := store.Create(ctx, &model.FAQ{Question: "Q?", Answer: "A."})

		assert.ErrorIs(t, err, repository.ErrDuplicate)
		assert.Contains(t, err.Error(), "idx_faqs_question")
	})
}

func TestStore_CreateKeepsHiddenFlags(t *testing.T) {
	ctx := context.Background()

	t.Run("service", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(`INSERT INTO "services" .*"is_active"\) VALUES`).
			WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), nil, 0, "T", "t", "", "", "", "", false).
			WillReturnResult(sqlmock.NewResult(0, 1))

		_, err := NewStore[model.Service](db).Create(ctx, &model.Service{Title: "T", Slug: "t", IsActive: false})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("gallery item", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(`INSERT INTO "gallery_items" .*"is_published"\) VALUES`).
			WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), nil, 0, "Office", "", "", "https://cdn.example.com/a.png", "", false).
			WillReturnResult(sqlmock.NewResult(0, 1))

		_, err := NewStore[model.GalleryItem](db).Create(ctx, &model.GalleryItem{
			Title:    "Office",
			ImageURL: "https://cdn.example.com/a.png",
		})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestStore_FindByID(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewStore[model.FAQ](db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows(faqColumns).
			AddRow("faq-1", time.Now(), time.Now(), nil, 2, "Q?", "A.", "general", true)
		mock.ExpectQuery(`SELECT \* FROM "faqs" WHERE "id" = \$1 AND "faqs"."deleted_at" IS NULL`).
			WillReturnRows(rows)

		faq, err := store.FindByID(ctx, "faq-1")

		require.NoError(t, err)
		assert.Equal(t, "faq-1", faq.ID)
		assert.Equal(t, 2, faq.SortOrder)
		assert.True(t, faq.IsActive)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT \* FROM "faqs"`).
			WillReturnRows(sqlmock.NewRows(faqColumns))

		faq, err := store.FindByID(ctx, "missing")

		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.Nil(t, faq)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_List(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewStore[model.FAQ](db, WithDefaultOrder(SortedOrder))
	ctx := context.Background()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "faqs" WHERE "is_active" = \$1 AND .*question ILIKE \$2 OR answer ILIKE \$3.* AND "faqs"."deleted_at" IS NULL`).
		WithArgs(true, "%price\\%%", "%price\\%%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	rows := sqlmock.NewRows(faqColumns).
		AddRow("faq-1", time.Now(), time.Now(), nil, 0, "What is the price%?", "A.", "", true)
	mock.ExpectQuery(`SELECT \* FROM "faqs" WHERE .* ORDER BY sort_order ASC, created_at DESC`).
		WillReturnRows(rows)

	res, err := store.List(ctx, repository.ListQuery{
		PageQuery:     repository.PageQuery{Limit: 10},
		Where:         map[string]any{"is_active": true},
		Search:        "price%",
		SearchColumns: []string{"question", "answer"},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	assert.Len(t, res.Items, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Update(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewStore[model.FAQ](db)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec(`UPDATE "faqs" SET .*"faqs"."deleted_at" IS NULL`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		faq := &model.FAQ{Base: model.Base{ID: "faq-1"}, Question: "Q?", Answer: "A.", IsActive: false}
		out, err := store.Update(ctx, faq)

		require.NoError(t, err)
		assert.Equal(t, "faq-1", out.ID)
	})

	t.Run("missing row", func(t *testing.T) {
		mock.ExpectExec(`UPDATE "faqs"`).WillReturnResult(sqlmock.NewResult(0, 0))

		_, err := store.Update(ctx, &model.FAQ{Base: model.Base{ID: "gone"}})

		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	ctx := context.Background()

	t.Run("soft delete", func(t *testing.T) {
		store := NewStore[model.FAQ](db)
		mock.ExpectExec(`UPDATE "faqs" SET "deleted_at"=\$1 WHERE id = \$2 AND "faqs"."deleted_at" IS NULL`).
			WithArgs(sqlmock.AnyArg(), "faq-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, store.Delete(ctx, "faq-1"))
	})

	t.Run("hard delete for entities without deleted_at", func(t *testing.T) {
		store := NewStore[model.ProjectImage](db)
		mock.ExpectExec(`DELETE FROM "project_images" WHERE id = \$1`).
			WithArgs("img-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, store.Delete(ctx, "img-1"))
	})

	t.Run("not found", func(t *testing.T) {
		store := NewStore[model.FAQ](db)
		mock.ExpectExec(`UPDATE "faqs" SET "deleted_at"`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, store.Delete(ctx, "missing"), repository.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Reorder(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewStore[model.FAQ](db)
	ctx := context.Background()

	t.Run("commits", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "faqs" SET "sort_order"=\$1`).
			WithArgs(0, sqlmock.AnyArg(), "b").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE "faqs" SET "sort_order"=\$1`).
			WithArgs(1, sqlmock.AnyArg(), "a").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		assert.NoError(t, store.Reorder(ctx, []string{"b", "a"}))
	})

	t.Run("rolls back on unknown id", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "faqs" SET "sort_order"=\$1`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		assert.ErrorIs(t, store.Reorder(ctx, []string{"ghost"}), repository.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Count(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewStore[model.ContactSubmission](db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "contact_submissions" WHERE "status" = \$1`).
		WithArgs("pending").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	n, err := store.Count(context.Background(), map[string]any{"status": "pending"})

	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMapErr(t *testing.T) {
	assert.Nil(t, mapErr(nil))

	other := errors.New("connection reset")
	assert.Equal(t, other, mapErr(other))

	assert.False(t, errors.Is(mapErr(&pgconn.PgError{Code: "23503"}), repository.ErrDuplicate))
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\% off\_now \\o/`, escapeLike(`50% off_now \o/`))
}
