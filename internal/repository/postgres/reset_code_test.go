package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitecms/internal/model"
	"sitecms/internal/repository"
)

func TestResetCodePostgres_LatestActive(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewResetCodePostgres(db)
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{"id", "created_at", "updated_at", "user_id", "code_hash", "expires_at", "used_at", "attempts"}).
		AddRow("c-1", now, now, "u-1", "hash", now.Add(10*time.Minute), nil, 1)
	mock.ExpectQuery(`SELECT \* FROM "password_reset_codes" WHERE user_id = \$1 AND used_at IS NULL AND expires_at > \$2 ORDER BY created_at DESC`).
		WillReturnRows(rows)

	code, err := repo.LatestActive(context.Background(), "u-1", now)

	require.NoError(t, err)
	assert.Equal(t, "c-1", code.ID)
	assert.Equal(t, 1, code.Attempts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResetCodePostgres_IncrementAttempts(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewResetCodePostgres(db)
	ctx := context.Background()

	mock.ExpectExec(`UPDATE "password_reset_codes" SET "attempts"=attempts \+ 1`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.IncrementAttempts(ctx, "c-1"))

	mock.ExpectExec(`UPDATE "password_reset_codes" SET "attempts"=attempts \+ 1`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.IncrementAttempts(ctx, "ghost"), repository.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResetCodePostgres_MarkUsed(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewResetCodePostgres(db)
	now := time.Now().UTC()

	mock.ExpectExec(`UPDATE "password_reset_codes" SET "used_at"=\$1,"updated_at"=\$2 WHERE user_id = \$3 AND used_at IS NULL`).
		WithArgs(now, sqlmock.AnyArg(), "u-1").
		WillReturnResult(sqlmock.NewResult(0, 2))

	code := &model.PasswordResetCode{Base: model.Base{ID: "c-1"}, UserID: "u-1"}
	require.NoError(t, repo.MarkUsed(context.Background(), code, now))

	require.NotNil(t, code.UsedAt)
	assert.Equal(t, now, *code.UsedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}
