package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/allisson/delegations/internal/database"
	"github.com/allisson/delegations/internal/delegation/domain"
	apperrors "github.com/allisson/delegations/internal/errors"
)

type securityMetadataUseCase struct {
	txManager database.TxManager
	repo      EntityMetadataRepository
	logger    *slog.Logger
}

// NewSecurityMetadataUseCase creates a SecurityMetadataUseCase.
func NewSecurityMetadataUseCase(
	txManager database.TxManager,
	repo EntityMetadataRepository,
	logger *slog.Logger,
) SecurityMetadataUseCase {
	return &securityMetadataUseCase{
		txManager: txManager,
		repo:      repo,
		logger:    logger,
	}
}

func (u *securityMetadataUseCase) Get(
	ctx context.Context,
	entityType, entityID string,
) (*domain.EntityMetadata, error) {
	return u.repo.Get(ctx, entityType, entityID)
}

func (u *securityMetadataUseCase) Save(
	ctx context.Context,
	doc *domain.EntityMetadata,
) (*domain.EntityMetadata, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	var saved *domain.EntityMetadata
	err := u.txManager.WithTx(ctx, func(ctx context.Context) error {
		stored, err := u.repo.GetForUpdate(ctx, doc.EntityType, doc.EntityID)
		if apperrors.Is(err, domain.ErrEntityMetadataNotFound) {
			saved, err = u.create(ctx, doc.EntityType, doc.EntityID, doc.Metadata)
			return err
		}
		if err != nil {
			return err
		}

		metadata := doc.Metadata
		if doc.Rev != stored.Rev {
			u.logger.Info("merging diverged security metadata revisions",
				slog.String("entity_type", doc.EntityType),
				slog.String("entity_id", doc.EntityID),
				slog.Uint64("stored_rev", uint64(stored.Rev)),
				slog.Uint64("incoming_rev", uint64(doc.Rev)),
			)
			if metadata, err = stored.Metadata.MergeForDifferentVersionsOfEntity(doc.Metadata); err != nil {
				return err
			}
		}

		saved, err = u.update(ctx, stored, metadata)
		return err
	})
	if err != nil {
		return nil, err
	}

	return saved, nil
}

func (u *securityMetadataUseCase) ResolveConflicts(
	ctx context.Context,
	entityType, entityID string,
	revisions []domain.SecurityMetadata,
) (*domain.EntityMetadata, error) {
	var saved *domain.EntityMetadata
	err := u.txManager.WithTx(ctx, func(ctx context.Context) error {
		stored, err := u.repo.GetForUpdate(ctx, entityType, entityID)
		if err != nil {
			return err
		}

		merged, err := domain.MergeRevisions(append([]domain.SecurityMetadata{stored.Metadata}, revisions...)...)
		if err != nil {
			return err
		}

		u.logger.Info("resolved security metadata conflicts",
			slog.String("entity_type", entityType),
			slog.String("entity_id", entityID),
			slog.Int("revisions", len(revisions)),
		)

		saved, err = u.update(ctx, stored, merged)
		return err
	})
	if err != nil {
		return nil, err
	}

	return saved, nil
}

func (u *securityMetadataUseCase) MergeDuplicates(
	ctx context.Context,
	entityType, intoID, fromID string,
) (*domain.EntityMetadata, error) {
	if intoID == fromID {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "an entity cannot be merged into itself")
	}

	var saved *domain.EntityMetadata
	err := u.txManager.WithTx(ctx, func(ctx context.Context) error {
		into, err := u.repo.GetForUpdate(ctx, entityType, intoID)
		if err != nil {
			return err
		}
		from, err := u.repo.Get(ctx, entityType, fromID)
		if err != nil {
			return err
		}

		merged, err := into.Metadata.MergeForDuplicatedEntityIntoThisFrom(from.Metadata)
		if err != nil {
			return err
		}

		saved, err = u.update(ctx, into, merged)
		return err
	})
	if err != nil {
		return nil, err
	}

	return saved, nil
}

func (u *securityMetadataUseCase) ShareWith(
	ctx context.Context,
	entityType, entityID, key string,
	delegation domain.SecureDelegation,
	aliases []string,
) (*domain.EntityMetadata, error) {
	var saved *domain.EntityMetadata
	err := u.txManager.WithTx(ctx, func(ctx context.Context) error {
		stored, err := u.repo.GetForUpdate(ctx, entityType, entityID)
		if apperrors.Is(err, domain.ErrEntityMetadataNotFound) {
			metadata, err := domain.SecurityMetadata{}.WithSecureDelegation(key, delegation, aliases...)
			if err != nil {
				return err
			}
			saved, err = u.create(ctx, entityType, entityID, metadata)
			return err
		}
		if err != nil {
			return err
		}

		metadata, err := stored.Metadata.WithSecureDelegation(key, delegation, aliases...)
		if err != nil {
			return err
		}

		saved, err = u.update(ctx, stored, metadata)
		return err
	})
	if err != nil {
		return nil, err
	}

	return saved, nil
}

func (u *securityMetadataUseCase) GetDelegation(
	ctx context.Context,
	entityType, entityID, hashOrAlias string,
) (string, domain.SecureDelegation, error) {
	doc, err := u.repo.Get(ctx, entityType, entityID)
	if err != nil {
		return "", domain.SecureDelegation{}, err
	}

	canonical, delegation, ok := doc.Metadata.GetDelegation(hashOrAlias)
	if !ok {
		return "", domain.SecureDelegation{}, apperrors.Wrapf(domain.ErrUnknownDelegationKey, "%q", hashOrAlias)
	}
	return canonical, delegation, nil
}

func (u *securityMetadataUseCase) AllAliasesOf(
	ctx context.Context,
	entityType, entityID, hash string,
) ([]string, error) {
	doc, err := u.repo.Get(ctx, entityType, entityID)
	if err != nil {
		return nil, err
	}
	return doc.Metadata.AllAliasesOf(hash)
}

func (u *securityMetadataUseCase) create(
	ctx context.Context,
	entityType, entityID string,
	metadata domain.SecurityMetadata,
) (*domain.EntityMetadata, error) {
	now := time.Now().UTC()
	doc := &domain.EntityMetadata{
		EntityType: entityType,
		EntityID:   entityID,
		Rev:        1,
		Metadata:   metadata,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := u.repo.Create(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (u *securityMetadataUseCase) update(
	ctx context.Context,
	stored *domain.EntityMetadata,
	metadata domain.SecurityMetadata,
) (*domain.EntityMetadata, error) {
	doc := &domain.EntityMetadata{
		EntityType: stored.EntityType,
		EntityID:   stored.EntityID,
		Rev:        stored.Rev + 1,
		Metadata:   metadata,
		CreatedAt:  stored.CreatedAt,
		UpdatedAt:  time.Now().UTC(),
	}
	if err := u.repo.Update(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}
