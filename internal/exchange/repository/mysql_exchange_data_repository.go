package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/samber/lo"

	"github.com/allisson/delegations/internal/database"
	apperrors "github.com/allisson/delegations/internal/errors"
	"github.com/allisson/delegations/internal/exchange/domain"
)

// MySQLExchangeDataRepository implements ExchangeData persistence for MySQL databases.
type MySQLExchangeDataRepository struct {
	db *sql.DB
}

// NewMySQLExchangeDataRepository creates a new MySQL ExchangeData repository instance.
func NewMySQLExchangeDataRepository(db *sql.DB) *MySQLExchangeDataRepository {
	return &MySQLExchangeDataRepository{db: db}
}

// Create inserts new exchange data.
func (m *MySQLExchangeDataRepository) Create(ctx context.Context, ed *domain.ExchangeData) error {
	keyed, err := keyedColumns(ed)
	if err != nil {
		return err
	}

	query := `INSERT INTO exchange_data (` + exchangeDataColumns + `)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	args := append([]any{ed.ID, ed.Rev, ed.Delegator, ed.Delegate}, keyed...)
	args = append(args, ed.SharedSignature, ed.CreatedAt, ed.UpdatedAt)

	if _, err := database.GetTx(ctx, m.db).ExecContext(ctx, query, args...); err != nil {
		return apperrors.Wrap(err, "failed to create exchange data")
	}
	return nil
}

// Update replaces the exchange data whose stored revision is ed.Rev-1.
func (m *MySQLExchangeDataRepository) Update(ctx context.Context, ed *domain.ExchangeData) error {
	keyed, err := keyedColumns(ed)
	if err != nil {
		return err
	}

	query := `UPDATE exchange_data
			  SET rev = ?, exchange_key = ?, access_control_secret = ?, shared_signature_key = ?,
			      delegator_signature = ?, shared_signature = ?, updated_at = ?
			  WHERE id = ? AND rev = ?`

	args := append([]any{ed.Rev}, keyed...)
	args = append(args, ed.SharedSignature, ed.UpdatedAt, ed.ID, ed.Rev-1)

	result, err := database.GetTx(ctx, m.db).ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.Wrap(err, "failed to update exchange data")
	}
	return checkRevisionApplied(result)
}

// Get retrieves exchange data by id.
func (m *MySQLExchangeDataRepository) Get(ctx context.Context, id string) (*domain.ExchangeData, error) {
	query := `SELECT ` + exchangeDataColumns + ` FROM exchange_data WHERE id = ?`
	return scanExchangeData(database.GetTx(ctx, m.db).QueryRowContext(ctx, query, id))
}

// GetForUpdate retrieves exchange data by id and locks its row.
func (m *MySQLExchangeDataRepository) GetForUpdate(ctx context.Context, id string) (*domain.ExchangeData, error) {
	query := `SELECT ` + exchangeDataColumns + ` FROM exchange_data WHERE id = ? FOR UPDATE`
	return scanExchangeData(database.GetTx(ctx, m.db).QueryRowContext(ctx, query, id))
}

// ListByParticipants retrieves the exchange data from delegator to delegate.
func (m *MySQLExchangeDataRepository) ListByParticipants(
	ctx context.Context,
	delegator, delegate string,
) ([]*domain.ExchangeData, error) {
	query := `SELECT ` + exchangeDataColumns + `
			  FROM exchange_data
			  WHERE delegator = ? AND delegate = ?
			  ORDER BY created_at, id`

	rows, err := database.GetTx(ctx, m.db).QueryContext(ctx, query, delegator, delegate)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list exchange data")
	}
	return collectExchangeData(rows)
}

// ListByParticipant retrieves a page of the exchange data where ownerID is delegator or delegate.
func (m *MySQLExchangeDataRepository) ListByParticipant(
	ctx context.Context,
	ownerID string,
	offset, limit int,
) ([]*domain.ExchangeData, error) {
	query := `SELECT ` + exchangeDataColumns + `
			  FROM exchange_data
			  WHERE delegator = ? OR delegate = ?
			  ORDER BY created_at, id
			  LIMIT ? OFFSET ?`

	rows, err := database.GetTx(ctx, m.db).QueryContext(ctx, query, ownerID, ownerID, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list exchange data")
	}
	return collectExchangeData(rows)
}

// MySQLExchangeDataMapRepository implements ExchangeDataMap persistence for MySQL databases.
type MySQLExchangeDataMapRepository struct {
	db *sql.DB
}

// NewMySQLExchangeDataMapRepository creates a new MySQL ExchangeDataMap repository instance.
func NewMySQLExchangeDataMapRepository(db *sql.DB) *MySQLExchangeDataMapRepository {
	return &MySQLExchangeDataMapRepository{db: db}
}

// Create inserts a new exchange data map.
func (m *MySQLExchangeDataMapRepository) Create(ctx context.Context, edm *domain.ExchangeDataMap) error {
	entries, err := marshalEntries(edm)
	if err != nil {
		return err
	}

	query := `INSERT INTO exchange_data_maps (` + exchangeDataMapColumns + `) VALUES (?, ?, ?, ?, ?)`

	_, err = database.GetTx(ctx, m.db).ExecContext(ctx, query, edm.ID, edm.Rev, entries, edm.CreatedAt, edm.UpdatedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to create exchange data map")
	}
	return nil
}

// Update replaces the map whose stored revision is edm.Rev-1.
func (m *MySQLExchangeDataMapRepository) Update(ctx context.Context, edm *domain.ExchangeDataMap) error {
	entries, err := marshalEntries(edm)
	if err != nil {
		return err
	}

	query := `UPDATE exchange_data_maps
			  SET rev = ?, encrypted_exchange_data_ids = ?, updated_at = ?
			  WHERE id = ? AND rev = ?`

	result, err := database.GetTx(ctx, m.db).
		ExecContext(ctx, query, edm.Rev, entries, edm.UpdatedAt, edm.ID, edm.Rev-1)
	if err != nil {
		return apperrors.Wrap(err, "failed to update exchange data map")
	}
	return checkRevisionApplied(result)
}

// Get retrieves an exchange data map by id.
func (m *MySQLExchangeDataMapRepository) Get(ctx context.Context, id string) (*domain.ExchangeDataMap, error) {
	query := `SELECT ` + exchangeDataMapColumns + ` FROM exchange_data_maps WHERE id = ?`
	return scanExchangeDataMap(database.GetTx(ctx, m.db).QueryRowContext(ctx, query, id))
}

// GetForUpdate retrieves an exchange data map by id and locks its row.
func (m *MySQLExchangeDataMapRepository) GetForUpdate(
	ctx context.Context,
	id string,
) (*domain.ExchangeDataMap, error) {
	query := `SELECT ` + exchangeDataMapColumns + ` FROM exchange_data_maps WHERE id = ? FOR UPDATE`
	return scanExchangeDataMap(database.GetTx(ctx, m.db).QueryRowContext(ctx, query, id))
}

// GetMany retrieves the existing maps among ids.
func (m *MySQLExchangeDataMapRepository) GetMany(
	ctx context.Context,
	ids []string,
) ([]*domain.ExchangeDataMap, error) {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ")
	query := `SELECT ` + exchangeDataMapColumns + `
			  FROM exchange_data_maps
			  WHERE id IN (` + placeholders + `)
			  ORDER BY id`

	args := lo.Map(ids, func(id string, _ int) any { return id })

	rows, err := database.GetTx(ctx, m.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get exchange data maps")
	}
	return collectExchangeDataMaps(rows)
}
