package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/allisson/delegations/internal/database"
	"github.com/allisson/delegations/internal/delegation/domain"
	apperrors "github.com/allisson/delegations/internal/errors"
)

// MySQLEntityMetadataRepository implements EntityMetadata persistence for MySQL databases.
type MySQLEntityMetadataRepository struct {
	db *sql.DB
}

// NewMySQLEntityMetadataRepository creates a new MySQL EntityMetadata repository instance.
func NewMySQLEntityMetadataRepository(db *sql.DB) *MySQLEntityMetadataRepository {
	return &MySQLEntityMetadataRepository{db: db}
}

// Create inserts a new metadata document.
func (m *MySQLEntityMetadataRepository) Create(ctx context.Context, doc *domain.EntityMetadata) error {
	querier := database.GetTx(ctx, m.db)

	metadata, err := json.Marshal(doc.Metadata)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal security metadata")
	}

	query := `INSERT INTO entity_metadata (entity_type, entity_id, rev, metadata, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

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
func (m *MySQLEntityMetadataRepository) Update(ctx context.Context, doc *domain.EntityMetadata) error {
	querier := database.GetTx(ctx, m.db)

	metadata, err := json.Marshal(doc.Metadata)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal security metadata")
	}

	query := `UPDATE entity_metadata
			  SET rev = ?, metadata = ?, updated_at = ?
			  WHERE entity_type = ? AND entity_id = ? AND rev = ?`

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
func (m *MySQLEntityMetadataRepository) Get(
	ctx context.Context,
	entityType, entityID string,
) (*domain.EntityMetadata, error) {
	query := `SELECT entity_type, entity_id, rev, metadata, created_at, updated_at
			  FROM entity_metadata
			  WHERE entity_type = ? AND entity_id = ?`
	return scanEntityMetadata(database.GetTx(ctx, m.db).QueryRowContext(ctx, query, entityType, entityID))
}

// GetForUpdate retrieves the document of an entity and locks its row.
func (m *MySQLEntityMetadataRepository) GetForUpdate(
	ctx context.Context,
	entityType, entityID string,
) (*domain.EntityMetadata, error) {
	query := `SELECT entity_type, entity_id, rev, metadata, created_at, updated_at
			  FROM entity_metadata
			  WHERE entity_type = ? AND entity_id = ?
			  FOR UPDATE`
	return scanEntityMetadata(database.GetTx(ctx, m.db).QueryRowContext(ctx, query, entityType, entityID))
}
