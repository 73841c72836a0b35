package repository

import (
	"context"
	"database/sql"

	"github.com/allisson/delegations/internal/database"
	"github.com/allisson/delegations/internal/dataowner/domain"
	apperrors "github.com/allisson/delegations/internal/errors"
)

// MySQLCryptoActorRepository implements crypto actor persistence for MySQL databases.
type MySQLCryptoActorRepository struct {
	db *sql.DB
}

// NewMySQLCryptoActorRepository creates a new MySQL crypto actor repository instance.
func NewMySQLCryptoActorRepository(db *sql.DB) *MySQLCryptoActorRepository {
	return &MySQLCryptoActorRepository{db: db}
}

// Create inserts a new crypto actor.
func (m *MySQLCryptoActorRepository) Create(ctx context.Context, actor *domain.CryptoActorStubWithType) error {
	keys, err := marshalKeyMaterial(&actor.Stub)
	if err != nil {
		return err
	}

	query := `INSERT INTO crypto_actors (id, rev, owner_type, parent_id, key_material) VALUES (?, ?, ?, ?, ?)`

	_, err = database.GetTx(ctx, m.db).ExecContext(
		ctx,
		query,
		actor.Stub.ID,
		actor.Stub.Rev,
		string(actor.Type),
		actor.Stub.ParentID,
		keys,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create crypto actor")
	}
	return nil
}

// Update replaces the crypto actor whose stored revision is actor.Stub.Rev-1.
func (m *MySQLCryptoActorRepository) Update(ctx context.Context, actor *domain.CryptoActorStubWithType) error {
	keys, err := marshalKeyMaterial(&actor.Stub)
	if err != nil {
		return err
	}

	query := `UPDATE crypto_actors SET rev = ?, parent_id = ?, key_material = ? WHERE id = ? AND rev = ?`

	result, err := database.GetTx(ctx, m.db).ExecContext(
		ctx,
		query,
		actor.Stub.Rev,
		actor.Stub.ParentID,
		keys,
		actor.Stub.ID,
		actor.Stub.Rev-1,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update crypto actor")
	}
	return checkRevisionApplied(result)
}

// GetByID retrieves a crypto actor of any type.
func (m *MySQLCryptoActorRepository) GetByID(ctx context.Context, id string) (*domain.CryptoActorStubWithType, error) {
	query := `SELECT id, rev, owner_type, parent_id, key_material FROM crypto_actors WHERE id = ?`
	return scanCryptoActor(database.GetTx(ctx, m.db).QueryRowContext(ctx, query, id))
}

// GetForUpdate retrieves a crypto actor and locks its row.
func (m *MySQLCryptoActorRepository) GetForUpdate(
	ctx context.Context,
	id string,
) (*domain.CryptoActorStubWithType, error) {
	query := `SELECT id, rev, owner_type, parent_id, key_material FROM crypto_actors WHERE id = ? FOR UPDATE`
	return scanCryptoActor(database.GetTx(ctx, m.db).QueryRowContext(ctx, query, id))
}
