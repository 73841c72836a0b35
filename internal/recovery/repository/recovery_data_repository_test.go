package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/delegations/internal/recovery/domain"
)

var (
	recoveryColumns = []string{"id", "rev", "recipient", "encrypted_self", "type", "expiration_instant", "created_at"}
	now             = time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

func TestPostgreSQLRecoveryDataRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	db, mock := newMockDB(t)
	repo := NewPostgreSQLRecoveryDataRepository(db)
	expiration := now.Add(24 * time.Hour)
	r := &domain.RecoveryData{
		ID:                "r-1",
		Rev:               1,
		Recipient:         "patient-1",
		EncryptedSelf:     "ZW5j",
		Type:              domain.TypeExchangeKeyRecovery,
		ExpirationInstant: &expiration,
		CreatedAt:         now,
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO recovery_data")).
		WithArgs("r-1", 1, "patient-1", "ZW5j", "EXCHANGE_KEY_RECOVERY", sqlmock.AnyArg(), now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM recovery_data WHERE id = $1")).
		WithArgs("r-1").
		WillReturnRows(sqlmock.NewRows(recoveryColumns).
			AddRow("r-1", 1, "patient-1", "ZW5j", "EXCHANGE_KEY_RECOVERY", expiration, now))
	mock.ExpectQuery(regexp.QuoteMeta("FROM recovery_data WHERE id = $1")).
		WithArgs("r-2").
		WillReturnRows(sqlmock.NewRows(recoveryColumns))

	require.NoError(t, repo.Create(ctx, r))

	got, err := repo.Get(ctx, "r-1")
	require.NoError(t, err)
	assert.Equal(t, r, got)

	_, err = repo.Get(ctx, "r-2")
	assert.ErrorIs(t, err, domain.ErrRecoveryDataNotFound)
}

func TestPostgreSQLRecoveryDataRepository_ListByRecipient(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgreSQLRecoveryDataRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE recipient = $1 AND ($2::text IS NULL OR type = $2)")).
		WithArgs("patient-1", "KEYPAIR_RECOVERY").
		WillReturnRows(sqlmock.NewRows(recoveryColumns).
			AddRow("r-1", 1, "patient-1", "ZW5j", "KEYPAIR_RECOVERY", nil, now))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE recipient = $1")).
		WithArgs("patient-1", nil).
		WillReturnRows(sqlmock.NewRows(recoveryColumns))

	list, err := repo.ListByRecipient(context.Background(), "patient-1", lo.ToPtr(domain.TypeKeypairRecovery))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Nil(t, list[0].ExpirationInstant)

	list, err = repo.ListByRecipient(context.Background(), "patient-1", nil)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestPostgreSQLRecoveryDataRepository_Delete(t *testing.T) {
	ctx := context.Background()
	db, mock := newMockDB(t)
	repo := NewPostgreSQLRecoveryDataRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM recovery_data WHERE id = $1")).
		WithArgs("r-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM recovery_data WHERE recipient = $1")).
		WithArgs("patient-1", nil).
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec(regexp.QuoteMeta("FOR UPDATE SKIP LOCKED")).
		WithArgs(now, 100).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM recovery_data")).
		WithArgs(now).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(9))

	deleted, err := repo.DeleteByID(ctx, "r-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	deleted, err = repo.DeleteByRecipient(ctx, "patient-1", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(4), deleted)

	deleted, err = repo.DeleteExpired(ctx, now, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	count, err := repo.CountExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(9), count)
}

func TestMySQLRecoveryDataRepository(t *testing.T) {
	ctx := context.Background()
	db, mock := newMockDB(t)
	repo := NewMySQLRecoveryDataRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE recipient = ? AND (? IS NULL OR type = ?)")).
		WithArgs("patient-1", "KEYPAIR_RECOVERY", "KEYPAIR_RECOVERY").
		WillReturnRows(sqlmock.NewRows(recoveryColumns))
	mock.ExpectExec(regexp.QuoteMeta("ORDER BY expiration_instant")).
		WithArgs(now, 50).
		WillReturnResult(sqlmock.NewResult(0, 3))

	list, err := repo.ListByRecipient(ctx, "patient-1", lo.ToPtr(domain.TypeKeypairRecovery))
	require.NoError(t, err)
	assert.Empty(t, list)

	deleted, err := repo.DeleteExpired(ctx, now, 50)
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
}
