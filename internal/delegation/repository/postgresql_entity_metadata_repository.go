// Package repository persists entity security metadata as JSON documents in PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/allisson/delegations/internal/database"
	"github.com/allisson/delegations/internal/delegation/domain"
	apperrors "github.com/allisson/delegations/internal/errors"
)

// PostgreSQLEntityMetadataRepository implements EntityMetadata persistence for PostgreSQL databases.
type PostgreSQLEntityMetadataRepository struct {
	db *sql.DB
}

// NewPostgreSQLEntityMetadataRepository creates a new PostgreSQL EntityMetadata repository instance.
func NewPostgreSQLEntityMetadataRepository(db *sql.DB) *PostgreSQLEntityMetadataRepository {
	return &PostgreSQLEntityMetadataRepository{db: db}
}

// Create inserts a new metadata document.
func (p *PostgreSQLEntityMetadataRepository) Create(ctx context.Context, doc *domain.EntityMetadata) error {
	querier := database.GetTx(ctx, p.db)

	metadata, err := json.Marshal(doc.Metadata)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal security metadata")
	}

	query := `INSERT INTO entity_metadata (entity_type, entity_id, rev, metadata, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err = querier.ExecContext(
		ctx,
		query,
		doc.EntityType,
		doc.EntityID,
		doc.Rev,
		metadata,
		doc.CreatedAt,
		doc.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create entity metadata")
	}
	return nil
}

// Update replaces the document whose stored revision is doc.Rev-1.
func (p *PostgreSQLEntityMetadataRepository) Update(ctx context.Context, doc *domain.EntityMetadata) error {
	querier := database.GetTx(ctx, p.db)

	metadata, err := json.Marshal(doc.Metadata)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal security metadata")
	}

	query := `UPDATE entity_metadata
			  SET rev = $1, metadata = $2, updated_at = $3
			  WHERE entity_type = $4 AND entity_id = $5 AND rev = $6`

	result, err := querier.ExecContext(
		ctx,
		query,
		doc.Rev,
		metadata,
		doc.UpdatedAt,
		doc.EntityType,
		doc.EntityID,
		doc.Rev-1,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update entity metadata")
	}
	return checkRevisionApplied(result)
}

// Get retrieves the document of an entity.
func (p *PostgreSQLEntityMetadataRepository) Get(
	ctx context.Context,
	entityType, entityID string,
) (*domain.EntityMetadata, error) {
	query := `SELECT entity_type, entity_id, rev, metadata, created_at, updated_at
			  FROM entity_metadata
			  WHERE entity_type = $1 AND entity_id = $2`
	return scanEntityMetadata(database.GetTx(ctx, p.db).QueryRowContext(ctx, query, entityType, entityID))
}

// GetForUpdate retrieves the document of an entity and locks its row.
func (p *PostgreSQLEntityMetadataRepository) GetForUpdate(
	ctx context.Context,
	entityType, entityID string,
) (*domain.EntityMetadata, error) {
	query := `SELECT entity_type, entity_id, rev, metadata, created_at, updated_at
			  FROM entity_metadata
			  WHERE entity_type = $1 AND entity_id = $2
			  FOR UPDATE`
	return scanEntityMetadata(database.GetTx(ctx, p.db).QueryRowContext(ctx, query, entityType, entityID))
}

func scanEntityMetadata(row *sql.Row) (*domain.EntityMetadata, error) {
	var doc domain.EntityMetadata
	var metadata []byte

	err := row.Scan(
		&doc.EntityType,
		&doc.EntityID,
		&doc.Rev,
		&metadata,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEntityMetadataNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get entity metadata")
	}

	if err := json.Unmarshal(metadata, &doc.Metadata); err != nil {
		return nil, apperrors.Wrapf(err, "stored metadata of %s/%s is invalid", doc.EntityType, doc.EntityID)
	}
	return &doc, nil
}

func checkRevisionApplied(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read affected rows")
	}
	if affected == 0 {
		return domain.ErrStaleRevision
	}
	return nil
}
