package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/allisson/delegations/internal/database"
	apperrors "github.com/allisson/delegations/internal/errors"
	"github.com/allisson/delegations/internal/recovery/domain"
)

// defaultPurgeBatchSize bounds the rows removed by a single DELETE while purging.
const defaultPurgeBatchSize = 500

type recoveryDataUseCase struct {
	txManager database.TxManager
	repo      RecoveryDataRepository
	batchSize int
	logger    *slog.Logger
}

// NewRecoveryDataUseCase creates a RecoveryDataUseCase. A non-positive batchSize uses the default.
func NewRecoveryDataUseCase(
	txManager database.TxManager,
	repo RecoveryDataRepository,
	batchSize int,
	logger *slog.Logger,
) RecoveryDataUseCase {
	if batchSize <= 0 {
		batchSize = defaultPurgeBatchSize
	}
	return &recoveryDataUseCase{
		txManager: txManager,
		repo:      repo,
		batchSize: batchSize,
		logger:    logger,
	}
}

func (u *recoveryDataUseCase) Create(ctx context.Context, r *domain.RecoveryData) (*domain.RecoveryData, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if r.IsExpired(now) {
		return nil, apperrors.Wrap(domain.ErrInvalidRecoveryData, "expiration instant is in the past")
	}

	created := *r
	if created.ID == "" {
		created.ID = uuid.Must(uuid.NewV7()).String()
	}
	created.Rev = 1
	created.CreatedAt = now

	if err := u.repo.Create(ctx, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (u *recoveryDataUseCase) Get(ctx context.Context, id string) (*domain.RecoveryData, error) {
	r, err := u.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.IsExpired(time.Now().UTC()) {
		return nil, domain.ErrRecoveryDataNotFound
	}
	return r, nil
}

func (u *recoveryDataUseCase) ListByRecipient(
	ctx context.Context,
	recipient string,
	recoveryType *domain.Type,
) ([]*domain.RecoveryData, error) {
	if recoveryType != nil {
		if err := recoveryType.Validate(); err != nil {
			return nil, err
		}
	}

	list, err := u.repo.ListByRecipient(ctx, recipient, recoveryType)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return lo.Filter(list, func(r *domain.RecoveryData, _ int) bool {
		return !r.IsExpired(now)
	}), nil
}

func (u *recoveryDataUseCase) Delete(ctx context.Context, id string) error {
	return domain.ErrSoftDeleteNotSupported
}

func (u *recoveryDataUseCase) Purge(ctx context.Context, id string) error {
	deleted, err := u.repo.DeleteByID(ctx, id)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return domain.ErrRecoveryDataNotFound
	}
	return nil
}

func (u *recoveryDataUseCase) PurgeAllFor(
	ctx context.Context,
	recipient string,
	recoveryType *domain.Type,
) (int64, error) {
	if recoveryType != nil {
		if err := recoveryType.Validate(); err != nil {
			return 0, err
		}
	}
	return u.repo.DeleteByRecipient(ctx, recipient, recoveryType)
}

func (u *recoveryDataUseCase) PurgeExpired(ctx context.Context, now time.Time, dryRun bool) (int64, error) {
	if dryRun {
		return u.repo.CountExpired(ctx, now)
	}

	var total int64
	for {
		var deleted int64
		err := u.txManager.WithTx(ctx, func(ctx context.Context) error {
			var err error
			deleted, err = u.repo.DeleteExpired(ctx, now, u.batchSize)
			return err
		})
		if err != nil {
			return total, err
		}

		total += deleted
		if deleted < int64(u.batchSize) {
			break
		}
	}

	if total > 0 {
		u.logger.Info("purged expired recovery data", slog.Int64("count", total))
	}
	return total, nil
}
