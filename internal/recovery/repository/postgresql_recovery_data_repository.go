// Package repository implements recovery data persistence for PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/allisson/delegations/internal/database"
	apperrors "github.com/allisson/delegations/internal/errors"
	"github.com/allisson/delegations/internal/recovery/domain"
)

const recoveryDataColumns = `id, rev, recipient, encrypted_self, type, expiration_instant, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

// PostgreSQLRecoveryDataRepository implements RecoveryData persistence for PostgreSQL databases.
type PostgreSQLRecoveryDataRepository struct {
	db *sql.DB
}

// NewPostgreSQLRecoveryDataRepository creates a new PostgreSQL RecoveryData repository instance.
func NewPostgreSQLRecoveryDataRepository(db *sql.DB) *PostgreSQLRecoveryDataRepository {
	return &PostgreSQLRecoveryDataRepository{db: db}
}

// Create inserts a new recovery record.
func (p *PostgreSQLRecoveryDataRepository) Create(ctx context.Context, r *domain.RecoveryData) error {
	query := `INSERT INTO recovery_data (` + recoveryDataColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := database.GetTx(ctx, p.db).ExecContext(
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
func (p *PostgreSQLRecoveryDataRepository) Get(ctx context.Context, id string) (*domain.RecoveryData, error) {
	query := `SELECT ` + recoveryDataColumns + ` FROM recovery_data WHERE id = $1`
	return scanRecoveryData(database.GetTx(ctx, p.db).QueryRowContext(ctx, query, id))
}

// ListByRecipient retrieves the records of recipient, optionally of a single type.
func (p *PostgreSQLRecoveryDataRepository) ListByRecipient(
	ctx context.Context,
	recipient string,
	recoveryType *domain.Type,
) ([]*domain.RecoveryData, error) {
	query := `SELECT ` + recoveryDataColumns + `
			  FROM recovery_data
			  WHERE recipient = $1 AND ($2::text IS NULL OR type = $2)
			  ORDER BY created_at, id`

	rows, err := database.GetTx(ctx, p.db).QueryContext(ctx, query, recipient, typeArg(recoveryType))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list recovery data")
	}
	return collectRecoveryData(rows)
}

// DeleteByID removes a record and returns the number of removed rows.
func (p *PostgreSQLRecoveryDataRepository) DeleteByID(ctx context.Context, id string) (int64, error) {
	result, err := database.GetTx(ctx, p.db).ExecContext(ctx, `DELETE FROM recovery_data WHERE id = $1`, id)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete recovery data")
	}
	return result.RowsAffected()
}

// DeleteByRecipient removes every record of recipient, optionally of a single type.
func (p *PostgreSQLRecoveryDataRepository) DeleteByRecipient(
	ctx context.Context,
	recipient string,
	recoveryType *domain.Type,
) (int64, error) {
	query := `DELETE FROM recovery_data WHERE recipient = $1 AND ($2::text IS NULL OR type = $2)`

	result, err := database.GetTx(ctx, p.db).ExecContext(ctx, query, recipient, typeArg(recoveryType))
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete recovery data of recipient")
	}
	return result.RowsAffected()
}

// DeleteExpired removes up to limit records expired at or before now.
func (p *PostgreSQLRecoveryDataRepository) DeleteExpired(
	ctx context.Context,
	now time.Time,
	limit int,
) (int64, error) {
	query := `DELETE FROM recovery_data
			  WHERE id IN (
			      SELECT id FROM recovery_data
			      WHERE expiration_instant IS NOT NULL AND expiration_instant <= $1
			      LIMIT $2
			      FOR UPDATE SKIP LOCKED
			  )`

	result, err := database.GetTx(ctx, p.db).ExecContext(ctx, query, now, limit)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete expired recovery data")
	}
	return result.RowsAffected()
}

// CountExpired counts the records expired at or before now.
func (p *PostgreSQLRecoveryDataRepository) CountExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `SELECT COUNT(*) FROM recovery_data
			  WHERE expiration_instant IS NOT NULL AND expiration_instant <= $1`

	var count int64
	if err := database.GetTx(ctx, p.db).QueryRowContext(ctx, query, now).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count expired recovery data")
	}
	return count, nil
}

func typeArg(recoveryType *domain.Type) any {
	if recoveryType == nil {
		return nil
	}
	return string(*recoveryType)
}

func scanRecoveryData(row rowScanner) (*domain.RecoveryData, error) {
	var r domain.RecoveryData
	var recoveryType string
	var expiration sql.NullTime

	err := row.Scan(
		&r.ID,
		&r.Rev,
		&r.Recipient,
		&r.EncryptedSelf,
		&recoveryType,
		&expiration,
		&r.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRecoveryDataNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get recovery data")
	}

	r.Type = domain.Type(recoveryType)
	if expiration.Valid {
		r.ExpirationInstant = &expiration.Time
	}
	return &r, nil
}

func collectRecoveryData(rows *sql.Rows) ([]*domain.RecoveryData, error) {
	defer func() {
		_ = rows.Close()
	}()

	list := make([]*domain.RecoveryData, 0)
	for rows.Next() {
		r, err := scanRecoveryData(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, r)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate recovery data")
	}
	return list, nil
}
