package repository

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"github.com/allisson/delegations/internal/database"
	apperrors "github.com/allisson/delegations/internal/errors"
	"github.com/allisson/delegations/internal/exchange/domain"
)

// PostgreSQLExchangeDataRepository implements ExchangeData persistence for PostgreSQL databases.
type PostgreSQLExchangeDataRepository struct {
	db *sql.DB
}

// NewPostgreSQLExchangeDataRepository creates a new PostgreSQL ExchangeData repository instance.
func NewPostgreSQLExchangeDataRepository(db *sql.DB) *PostgreSQLExchangeDataRepository {
	return &PostgreSQLExchangeDataRepository{db: db}
}

// Create inserts new exchange data.
func (p *PostgreSQLExchangeDataRepository) Create(ctx context.Context, ed *domain.ExchangeData) error {
	querier := database.GetTx(ctx, p.db)

	keyed, err := keyedColumns(ed)
	if err != nil {
		return err
	}

	query := `INSERT INTO exchange_data (` + exchangeDataColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	args := append([]any{ed.ID, ed.Rev, ed.Delegator, ed.Delegate}, keyed...)
	args = append(args, ed.SharedSignature, ed.CreatedAt, ed.UpdatedAt)

	if _, err := querier.ExecContext(ctx, query, args...); err != nil {
		return apperrors.Wrap(err, "failed to create exchange data")
	}
	return nil
}

// Update replaces the exchange data whose stored revision is ed.Rev-1.
func (p *PostgreSQLExchangeDataRepository) Update(ctx context.Context, ed *domain.ExchangeData) error {
	querier := database.GetTx(ctx, p.db)

	keyed, err := keyedColumns(ed)
	if err != nil {
		return err
	}

	query := `UPDATE exchange_data
			  SET rev = $1, exchange_key = $2, access_control_secret = $3, shared_signature_key = $4,
			      delegator_signature = $5, shared_signature = $6, updated_at = $7
			  WHERE id = $8 AND rev = $9`

	args := append([]any{ed.Rev}, keyed...)
	args = append(args, ed.SharedSignature, ed.UpdatedAt, ed.ID, ed.Rev-1)

	result, err := querier.ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.Wrap(err, "failed to update exchange data")
	}
	return checkRevisionApplied(result)
}

// Get retrieves exchange data by id.
func (p *PostgreSQLExchangeDataRepository) Get(ctx context.Context, id string) (*domain.ExchangeData, error) {
	query := `SELECT ` + exchangeDataColumns + ` FROM exchange_data WHERE id = $1`
	return scanExchangeData(database.GetTx(ctx, p.db).QueryRowContext(ctx, query, id))
}

// GetForUpdate retrieves exchange data by id and locks its row.
func (p *PostgreSQLExchangeDataRepository) GetForUpdate(
	ctx context.Context,
	id string,
) (*domain.ExchangeData, error) {
	query := `SELECT ` + exchangeDataColumns + ` FROM exchange_data WHERE id = $1 FOR UPDATE`
	return scanExchangeData(database.GetTx(ctx, p.db).QueryRowContext(ctx, query, id))
}

// ListByParticipants retrieves the exchange data from delegator to delegate.
func (p *PostgreSQLExchangeDataRepository) ListByParticipants(
	ctx context.Context,
	delegator, delegate string,
) ([]*domain.ExchangeData, error) {
	query := `SELECT ` + exchangeDataColumns + `
			  FROM exchange_data
			  WHERE delegator = $1 AND delegate = $2
			  ORDER BY created_at, id`

	rows, err := database.GetTx(ctx, p.db).QueryContext(ctx, query, delegator, delegate)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list exchange data")
	}
	return collectExchangeData(rows)
}

// ListByParticipant retrieves a page of the exchange data where ownerID is delegator or delegate.
func (p *PostgreSQLExchangeDataRepository) ListByParticipant(
	ctx context.Context,
	ownerID string,
	offset, limit int,
) ([]*domain.ExchangeData, error) {
	query := `SELECT ` + exchangeDataColumns + `
			  FROM exchange_data
			  WHERE delegator = $1 OR delegate = $1
			  ORDER BY created_at, id
			  LIMIT $2 OFFSET $3`

	rows, err := database.GetTx(ctx, p.db).QueryContext(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list exchange data")
	}
	return collectExchangeData(rows)
}

// PostgreSQLExchangeDataMapRepository implements ExchangeDataMap persistence for PostgreSQL databases.
type PostgreSQLExchangeDataMapRepository struct {
	db *sql.DB
}

// NewPostgreSQLExchangeDataMapRepository creates a new PostgreSQL ExchangeDataMap repository instance.
func NewPostgreSQLExchangeDataMapRepository(db *sql.DB) *PostgreSQLExchangeDataMapRepository {
	return &PostgreSQLExchangeDataMapRepository{db: db}
}

// Create inserts a new exchange data map.
func (p *PostgreSQLExchangeDataMapRepository) Create(ctx context.Context, m *domain.ExchangeDataMap) error {
	entries, err := marshalEntries(m)
	if err != nil {
		return err
	}

	query := `INSERT INTO exchange_data_maps (` + exchangeDataMapColumns + `)
			  VALUES ($1, $2, $3, $4, $5)`

	_, err = database.GetTx(ctx, p.db).ExecContext(ctx, query, m.ID, m.Rev, entries, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to create exchange data map")
	}
	return nil
}

// Update replaces the map whose stored revision is m.Rev-1.
func (p *PostgreSQLExchangeDataMapRepository) Update(ctx context.Context, m *domain.ExchangeDataMap) error {
	entries, err := marshalEntries(m)
	if err != nil {
		return err
	}

	query := `UPDATE exchange_data_maps
			  SET rev = $1, encrypted_exchange_data_ids = $2, updated_at = $3
			  WHERE id = $4 AND rev = $5`

	result, err := database.GetTx(ctx, p.db).ExecContext(ctx, query, m.Rev, entries, m.UpdatedAt, m.ID, m.Rev-1)
	if err != nil {
		return apperrors.Wrap(err, "failed to update exchange data map")
	}
	return checkRevisionApplied(result)
}

// Get retrieves an exchange data map by id.
func (p *PostgreSQLExchangeDataMapRepository) Get(ctx context.Context, id string) (*domain.ExchangeDataMap, error) {
	query := `SELECT ` + exchangeDataMapColumns + ` FROM exchange_data_maps WHERE id = $1`
	return scanExchangeDataMap(database.GetTx(ctx, p.db).QueryRowContext(ctx, query, id))
}

// GetForUpdate retrieves an exchange data map by id and locks its row.
func (p *PostgreSQLExchangeDataMapRepository) GetForUpdate(
	ctx context.Context,
	id string,
) (*domain.ExchangeDataMap, error) {
	query := `SELECT ` + exchangeDataMapColumns + ` FROM exchange_data_maps WHERE id = $1 FOR UPDATE`
	return scanExchangeDataMap(database.GetTx(ctx, p.db).QueryRowContext(ctx, query, id))
}

// GetMany retrieves the existing maps among ids.
func (p *PostgreSQLExchangeDataMapRepository) GetMany(
	ctx context.Context,
	ids []string,
) ([]*domain.ExchangeDataMap, error) {
	query := `SELECT ` + exchangeDataMapColumns + `
			  FROM exchange_data_maps
			  WHERE id = ANY($1)
			  ORDER BY id`

	rows, err := database.GetTx(ctx, p.db).QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get exchange data maps")
	}
	return collectExchangeDataMaps(rows)
}
