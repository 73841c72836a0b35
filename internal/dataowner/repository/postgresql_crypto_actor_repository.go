// Package repository implements crypto actor persistence for PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/allisson/delegations/internal/database"
	"github.com/allisson/delegations/internal/dataowner/domain"
	apperrors "github.com/allisson/delegations/internal/errors"
)

// keyMaterial is the stored form of the key collections of a stub.
type keyMaterial struct {
	PublicKey                   string                                  `json:"publicKey,omitempty"`
	PublicKeysForOaepWithSha256 []string                                `json:"publicKeysForOaepWithSha256,omitempty"`
	HcPartyKeys                 map[string][]string                     `json:"hcPartyKeys,omitempty"`
	AesExchangeKeys             map[string]map[string]map[string]string `json:"aesExchangeKeys,omitempty"`
	TransferKeys                map[string]map[string]string            `json:"transferKeys,omitempty"`
	PrivateKeyShamirPartitions  map[string]string                       `json:"privateKeyShamirPartitions,omitempty"`
}

type rowScanner interface {
	Scan(dest ...any) error
}

func marshalKeyMaterial(stub *domain.CryptoActorStub) ([]byte, error) {
	encoded, err := json.Marshal(keyMaterial{
		PublicKey:                   stub.PublicKey,
		PublicKeysForOaepWithSha256: stub.PublicKeysForOaepWithSha256,
		HcPartyKeys:                 stub.HcPartyKeys,
		AesExchangeKeys:             stub.AesExchangeKeys,
		TransferKeys:                stub.TransferKeys,
		PrivateKeyShamirPartitions:  stub.PrivateKeyShamirPartitions,
	})
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal key material")
	}
	return encoded, nil
}

func scanCryptoActor(row rowScanner) (*domain.CryptoActorStubWithType, error) {
	var actor domain.CryptoActorStubWithType
	var ownerType string
	var parentID sql.NullString
	var raw []byte

	if err := row.Scan(&actor.Stub.ID, &actor.Stub.Rev, &ownerType, &parentID, &raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCryptoActorNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get crypto actor")
	}

	var keys keyMaterial
	if err := json.Unmarshal(raw, &keys); err != nil {
		return nil, apperrors.Wrapf(err, "stored key material of %s is invalid", actor.Stub.ID)
	}

	actor.Type = domain.DataOwnerType(ownerType)
	actor.Stub.PublicKey = keys.PublicKey
	actor.Stub.PublicKeysForOaepWithSha256 = keys.PublicKeysForOaepWithSha256
	actor.Stub.HcPartyKeys = keys.HcPartyKeys
	actor.Stub.AesExchangeKeys = keys.AesExchangeKeys
	actor.Stub.TransferKeys = keys.TransferKeys
	actor.Stub.PrivateKeyShamirPartitions = keys.PrivateKeyShamirPartitions
	if parentID.Valid {
		actor.Stub.ParentID = &parentID.String
	}
	return &actor, nil
}

func checkRevisionApplied(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read affected rows")
	}
	if affected == 0 {
		return domain.ErrStaleCryptoActor
	}
	return nil
}

// PostgreSQLCryptoActorRepository implements crypto actor persistence for PostgreSQL databases.
type PostgreSQLCryptoActorRepository struct {
	db *sql.DB
}

// NewPostgreSQLCryptoActorRepository creates a new PostgreSQL crypto actor repository instance.
func NewPostgreSQLCryptoActorRepository(db *sql.DB) *PostgreSQLCryptoActorRepository {
	return &PostgreSQLCryptoActorRepository{db: db}
}

// Create inserts a new crypto actor.
func (p *PostgreSQLCryptoActorRepository) Create(ctx context.Context, actor *domain.CryptoActorStubWithType) error {
	keys, err := marshalKeyMaterial(&actor.Stub)
	if err != nil {
		return err
	}

	query := `INSERT INTO crypto_actors (id, rev, owner_type, parent_id, key_material)
			  VALUES ($1, $2, $3, $4, $5)`

	_, err = database.GetTx(ctx, p.db).ExecContext(
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
func (p *PostgreSQLCryptoActorRepository) Update(ctx context.Context, actor *domain.CryptoActorStubWithType) error {
	keys, err := marshalKeyMaterial(&actor.Stub)
	if err != nil {
		return err
	}

	query := `UPDATE crypto_actors
			  SET rev = $1, parent_id = $2, key_material = $3
			  WHERE id = $4 AND rev = $5`

	result, err := database.GetTx(ctx, p.db).ExecContext(
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
func (p *PostgreSQLCryptoActorRepository) GetByID(
	ctx context.Context,
	id string,
) (*domain.CryptoActorStubWithType, error) {
	query := `SELECT id, rev, owner_type, parent_id, key_material FROM crypto_actors WHERE id = $1`
	return scanCryptoActor(database.GetTx(ctx, p.db).QueryRowContext(ctx, query, id))
}

// GetForUpdate retrieves a crypto actor and locks its row.
func (p *PostgreSQLCryptoActorRepository) GetForUpdate(
	ctx context.Context,
	id string,
) (*domain.CryptoActorStubWithType, error) {
	query := `SELECT id, rev, owner_type, parent_id, key_material FROM crypto_actors WHERE id = $1 FOR UPDATE`
	return scanCryptoActor(database.GetTx(ctx, p.db).QueryRowContext(ctx, query, id))
}
