package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/delegations/internal/database"
	apperrors "github.com/allisson/delegations/internal/errors"
	"github.com/allisson/delegations/internal/exchange/domain"
)

type exchangeDataUseCase struct {
	txManager     database.TxManager
	repo          ExchangeDataRepository
	dataOwnerRepo DataOwnerRepository
	logger        *slog.Logger
}

// NewExchangeDataUseCase creates an ExchangeDataUseCase.
func NewExchangeDataUseCase(
	txManager database.TxManager,
	repo ExchangeDataRepository,
	dataOwnerRepo DataOwnerRepository,
	logger *slog.Logger,
) ExchangeDataUseCase {
	return &exchangeDataUseCase{
		txManager:     txManager,
		repo:          repo,
		dataOwnerRepo: dataOwnerRepo,
		logger:        logger,
	}
}

func (u *exchangeDataUseCase) Create(ctx context.Context, ed *domain.ExchangeData) (*domain.ExchangeData, error) {
	if err := ed.Validate(); err != nil {
		return nil, err
	}

	for _, ownerID := range []string{ed.Delegator, ed.Delegate} {
		if _, err := u.dataOwnerRepo.GetByID(ctx, ownerID); err != nil {
			if apperrors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.Wrapf(domain.ErrUnknownParticipant, "%q", ownerID)
			}
			return nil, err
		}
	}

	now := time.Now().UTC()
	created := *ed
	if created.ID == "" {
		created.ID = uuid.Must(uuid.NewV7()).String()
	}
	created.Rev = 1
	created.CreatedAt = now
	created.UpdatedAt = now

	if err := u.repo.Create(ctx, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (u *exchangeDataUseCase) Get(ctx context.Context, id string) (*domain.ExchangeData, error) {
	return u.repo.Get(ctx, id)
}

func (u *exchangeDataUseCase) ListByParticipants(
	ctx context.Context,
	delegator, delegate string,
) ([]*domain.ExchangeData, error) {
	return u.repo.ListByParticipants(ctx, delegator, delegate)
}

func (u *exchangeDataUseCase) ListByParticipant(
	ctx context.Context,
	ownerID string,
	offset, limit int,
) ([]*domain.ExchangeData, error) {
	return u.repo.ListByParticipant(ctx, ownerID, offset, limit)
}

func (u *exchangeDataUseCase) Update(ctx context.Context, ed *domain.ExchangeData) (*domain.ExchangeData, error) {
	if err := ed.Validate(); err != nil {
		return nil, err
	}

	var saved *domain.ExchangeData
	err := u.txManager.WithTx(ctx, func(ctx context.Context) error {
		stored, err := u.repo.GetForUpdate(ctx, ed.ID)
		if err != nil {
			return err
		}

		next := ed
		if ed.Rev != stored.Rev {
			if next, err = stored.SolveConflictsWith(ed); err != nil {
				return err
			}
			if next.SignaturesNeedRevalidation() {
				u.logger.Warn("merged exchange data signatures must be revalidated by a participant",
					slog.String("exchange_data_id", ed.ID),
					slog.Uint64("stored_rev", uint64(stored.Rev)),
					slog.Uint64("incoming_rev", uint64(ed.Rev)),
				)
			}
		} else if stored.Delegator != ed.Delegator || stored.Delegate != ed.Delegate {
			return apperrors.Wrap(domain.ErrIncompatibleExchangeData, "participants cannot change")
		}

		updated := *next
		updated.Rev = stored.Rev + 1
		updated.CreatedAt = stored.CreatedAt
		updated.UpdatedAt = time.Now().UTC()

		if err := u.repo.Update(ctx, &updated); err != nil {
			return err
		}
		saved = &updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	return saved, nil
}
