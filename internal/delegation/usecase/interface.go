// Package usecase orchestrates the storage of per-entity security metadata. Concurrent
// writers never overwrite each other: diverging revisions are reconciled with the
// commutative version merge before being persisted.
package usecase

import (
	"context"

	"github.com/allisson/delegations/internal/delegation/domain"
)

// EntityMetadataRepository persists one security metadata document per entity.
type EntityMetadataRepository interface {
	Create(ctx context.Context, doc *domain.EntityMetadata) error
	// Update persists doc if the stored revision is doc.Rev-1, else returns domain.ErrStaleRevision.
	Update(ctx context.Context, doc *domain.EntityMetadata) error
	Get(ctx context.Context, entityType, entityID string) (*domain.EntityMetadata, error)
	// GetForUpdate is Get holding a row lock until the surrounding transaction ends.
	GetForUpdate(ctx context.Context, entityType, entityID string) (*domain.EntityMetadata, error)
}

// SecurityMetadataUseCase defines the access-control metadata operations.
type SecurityMetadataUseCase interface {
	Get(ctx context.Context, entityType, entityID string) (*domain.EntityMetadata, error)
	// Save stores doc. When doc was based on an older revision than the stored one, both
	// are merged as versions of the same entity.
	Save(ctx context.Context, doc *domain.EntityMetadata) (*domain.EntityMetadata, error)
	// ResolveConflicts folds conflicting revisions into the stored document.
	ResolveConflicts(
		ctx context.Context,
		entityType, entityID string,
		revisions []domain.SecurityMetadata,
	) (*domain.EntityMetadata, error)
	// MergeDuplicates merges the metadata of fromID into intoID.
	MergeDuplicates(ctx context.Context, entityType, intoID, fromID string) (*domain.EntityMetadata, error)
	// ShareWith grants delegation under key, creating the document if needed.
	ShareWith(
		ctx context.Context,
		entityType, entityID, key string,
		delegation domain.SecureDelegation,
		aliases []string,
	) (*domain.EntityMetadata, error)
	GetDelegation(
		ctx context.Context,
		entityType, entityID, hashOrAlias string,
	) (string, domain.SecureDelegation, error)
	AllAliasesOf(ctx context.Context, entityType, entityID, hash string) ([]string, error)
}
