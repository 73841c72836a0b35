package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/allisson/delegations/internal/database"
	apperrors "github.com/allisson/delegations/internal/errors"
	"github.com/allisson/delegations/internal/recovery/domain"
)

// MySQLRecoveryDataRepository implements RecoveryData persistence for MySQL databases.
type MySQLRecoveryDataRepository struct {
	db *sql.DB
}

// NewMySQLRecoveryDataRepository creates a new MySQL RecoveryData repository instance.
func NewMySQLRecoveryDataRepository(db *sql.DB) *MySQLRecoveryDataRepository {
	return &MySQLRecoveryDataRepository{db: db}
}

// Create inserts a new recovery record.
func (m *MySQLRecoveryDataRepository) Create(ctx context.Context, r *domain.RecoveryData) error {
	query := `INSERT INTO recovery_data (` + recoveryDataColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := database.GetTx(ctx, m.db).ExecContext(
		ctx,
		query,
		r.ID,
		r.Rev,
		r.Recipient,
		r.EncryptedSelf,
		string(r.Type),
		r.ExpirationInstant,
		r.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create recovery data")
	}
	return nil
}

// Get retrieves a recovery record by id, expired or not.
func (m *MySQLRecoveryDataRepository) Get(ctx context.Context, id string) (*domain.RecoveryData, error) {
	query := `SELECT ` + recoveryDataColumns + ` FROM recovery_data WHERE id = ?`
	return scanRecoveryData(database.GetTx(ctx, m.db).QueryRowContext(ctx, query, id))
}

// ListByRecipient retrieves the records of recipient, optionally of a single type.
func (m *MySQLRecoveryDataRepository) ListByRecipient(
	ctx context.Context,
	recipient string,
	recoveryType *domain.Type,
) ([]*domain.RecoveryData, error) {
	query := `SELECT ` + recoveryDataColumns + `
			  FROM recovery_data
			  WHERE recipient = ? AND (? IS NULL OR type = ?)
			  ORDER BY created_at, id`

	t := typeArg(recoveryType)
	rows, err := database.GetTx(ctx, m.db).QueryContext(ctx, query, recipient, t, t)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list recovery data")
	}
	return collectRecoveryData(rows)
}

// DeleteByID removes a record and returns the number of removed rows.
func (m *MySQLRecoveryDataRepository) DeleteByID(ctx context.Context, id string) (int64, error) {
	result, err := database.GetTx(ctx, m.db).ExecContext(ctx, `DELETE FROM recovery_data WHERE id = ?`, id)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete recovery data")
	}
	return result.RowsAffected()
}

// DeleteByRecipient removes every record of recipient, optionally of a single type.
func (m *MySQLRecoveryDataRepository) DeleteByRecipient(
	ctx context.Context,
	recipient string,
	recoveryType *domain.Type,
) (int64, error) {
	t := typeArg(recoveryType)
	result, err := database.GetTx(ctx, m.db).ExecContext(
		ctx,
		`DELETE FROM recovery_data WHERE recipient = ? AND (? IS NULL OR type = ?)`,
		recipient,
		t,
		t,
	)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete recovery data of recipient")
	}
	return result.RowsAffected()
}

// DeleteExpired removes up to limit records expired at or before now.
func (m *MySQLRecoveryDataRepository) DeleteExpired(ctx context.Context, now time.Time, limit int) (int64, error) {
	query := `DELETE FROM recovery_data
			  WHERE expiration_instant IS NOT NULL AND expiration_instant <= ?
			  ORDER BY expiration_instant
			  LIMIT ?`

	result, err := database.GetTx(ctx, m.db).ExecContext(ctx, query, now, limit)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete expired recovery data")
	}
	return result.RowsAffected()
}

// CountExpired counts the records expired at or before now.
func (m *MySQLRecoveryDataRepository) CountExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `SELECT COUNT(*) FROM recovery_data
			  WHERE expiration_instant IS NOT NULL AND expiration_instant <= ?`

	var count int64
	if err := database.GetTx(ctx, m.db).QueryRowContext(ctx, query, now).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count expired recovery data")
	}
	return count, nil
}
