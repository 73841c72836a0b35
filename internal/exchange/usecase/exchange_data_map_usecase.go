package usecase

import (
	"context"
	"time"

	"github.com/allisson/delegations/internal/database"
	apperrors "github.com/allisson/delegations/internal/errors"
	"github.com/allisson/delegations/internal/exchange/domain"
)

type exchangeDataMapUseCase struct {
	txManager database.TxManager
	repo      ExchangeDataMapRepository
}

// NewExchangeDataMapUseCase creates an ExchangeDataMapUseCase.
func NewExchangeDataMapUseCase(txManager database.TxManager, repo ExchangeDataMapRepository) ExchangeDataMapUseCase {
	return &exchangeDataMapUseCase{
		txManager: txManager,
		repo:      repo,
	}
}

func (u *exchangeDataMapUseCase) CreateOrAppendMaps(
	ctx context.Context,
	maps []*domain.ExchangeDataMap,
) ([]*domain.ExchangeDataMap, error) {
	for _, m := range maps {
		if err := m.Validate(); err != nil {
			return nil, err
		}
	}

	result := make([]*domain.ExchangeDataMap, 0, len(maps))
	err := u.txManager.WithTx(ctx, func(ctx context.Context) error {
		for _, m := range maps {
			saved, err := u.createOrAppend(ctx, m)
			if err != nil {
				return apperrors.Wrapf(err, "exchange data map %q", m.ID)
			}
			result = append(result, saved)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (u *exchangeDataMapUseCase) createOrAppend(
	ctx context.Context,
	m *domain.ExchangeDataMap,
) (*domain.ExchangeDataMap, error) {
	now := time.Now().UTC()

	stored, err := u.repo.GetForUpdate(ctx, m.ID)
	if apperrors.Is(err, domain.ErrExchangeDataMapNotFound) {
		created := &domain.ExchangeDataMap{
			ID:                       m.ID,
			Rev:                      1,
			EncryptedExchangeDataIDs: m.EncryptedExchangeDataIDs,
			CreatedAt:                now,
			UpdatedAt:                now,
		}
		if err := u.repo.Create(ctx, created); err != nil {
			return nil, err
		}
		return created, nil
	}
	if err != nil {
		return nil, err
	}

	appended, changed := stored.AppendFrom(m)
	if !changed {
		return stored, nil
	}

	appended.Rev = stored.Rev + 1
	appended.UpdatedAt = now
	if err := u.repo.Update(ctx, appended); err != nil {
		return nil, err
	}
	return appended, nil
}

func (u *exchangeDataMapUseCase) GetMap(ctx context.Context, id string) (*domain.ExchangeDataMap, error) {
	return u.repo.Get(ctx, id)
}

func (u *exchangeDataMapUseCase) GetMaps(ctx context.Context, ids []string) ([]*domain.ExchangeDataMap, error) {
	if len(ids) == 0 {
		return []*domain.ExchangeDataMap{}, nil
	}
	return u.repo.GetMany(ctx, ids)
}
