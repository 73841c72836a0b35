// Package usecase implements the crypto actor operations.
package usecase

import (
	"context"
	"log/slog"

	"github.com/allisson/delegations/internal/database"
	"github.com/allisson/delegations/internal/dataowner/domain"
	apperrors "github.com/allisson/delegations/internal/errors"
)

// CryptoActorRepository defines the persistence operations for crypto actors.
type CryptoActorRepository interface {
	Create(ctx context.Context, actor *domain.CryptoActorStubWithType) error
	// Update persists actor if the stored revision is actor.Stub.Rev-1.
	Update(ctx context.Context, actor *domain.CryptoActorStubWithType) error
	GetByID(ctx context.Context, id string) (*domain.CryptoActorStubWithType, error)
	GetForUpdate(ctx context.Context, id string) (*domain.CryptoActorStubWithType, error)
}

// CryptoActorUseCase defines the crypto actor business operations.
type CryptoActorUseCase interface {
	// GetCryptoActor returns the actor with id if it is of the given type.
	GetCryptoActor(ctx context.Context, ownerType domain.DataOwnerType, id string) (*domain.CryptoActorStubWithType, error)
	// PutCryptoActor creates the actor or replaces it when actor.Stub.Rev is the stored revision.
	PutCryptoActor(ctx context.Context, actor *domain.CryptoActorStubWithType) (*domain.CryptoActorStubWithType, error)
}

type cryptoActorUseCase struct {
	txManager database.TxManager
	repo      CryptoActorRepository
	logger    *slog.Logger
}

// NewCryptoActorUseCase creates a CryptoActorUseCase.
func NewCryptoActorUseCase(
	txManager database.TxManager,
	repo CryptoActorRepository,
	logger *slog.Logger,
) CryptoActorUseCase {
	return &cryptoActorUseCase{txManager: txManager, repo: repo, logger: logger}
}

func (u *cryptoActorUseCase) GetCryptoActor(
	ctx context.Context,
	ownerType domain.DataOwnerType,
	id string,
) (*domain.CryptoActorStubWithType, error) {
	if err := ownerType.Validate(); err != nil {
		return nil, err
	}

	actor, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Type != ownerType {
		return nil, domain.ErrCryptoActorNotFound
	}
	return actor, nil
}

func (u *cryptoActorUseCase) PutCryptoActor(
	ctx context.Context,
	actor *domain.CryptoActorStubWithType,
) (*domain.CryptoActorStubWithType, error) {
	if err := actor.Validate(); err != nil {
		return nil, err
	}

	saved := *actor
	err := u.txManager.WithTx(ctx, func(ctx context.Context) error {
		stored, err := u.repo.GetForUpdate(ctx, actor.Stub.ID)
		if apperrors.Is(err, domain.ErrCryptoActorNotFound) {
			saved.Stub.Rev = 1
			return u.repo.Create(ctx, &saved)
		}
		if err != nil {
			return err
		}

		if stored.Type != actor.Type {
			return apperrors.Wrapf(
				domain.ErrStaleCryptoActor,
				"%q is a %s, not a %s",
				actor.Stub.ID,
				stored.Type,
				actor.Type,
			)
		}
		if stored.Stub.Rev != actor.Stub.Rev {
			u.logger.Debug("rejecting crypto actor update",
				slog.String("id", actor.Stub.ID),
				slog.Uint64("stored_rev", uint64(stored.Stub.Rev)),
				slog.Uint64("incoming_rev", uint64(actor.Stub.Rev)),
			)
			return domain.ErrStaleCryptoActor
		}

		saved.Stub.Rev = stored.Stub.Rev + 1
		return u.repo.Update(ctx, &saved)
	})
	if err != nil {
		return nil, err
	}

	return &saved, nil
}
