// Package usecase implements the exchange data and exchange data map operations.
package usecase

import (
	"context"

	dataownerDomain "github.com/allisson/delegations/internal/dataowner/domain"
	"github.com/allisson/delegations/internal/exchange/domain"
)

// ExchangeDataRepository defines the persistence operations for exchange data.
type ExchangeDataRepository interface {
	Create(ctx context.Context, ed *domain.ExchangeData) error
	// Update persists ed if the stored revision is ed.Rev-1.
	Update(ctx context.Context, ed *domain.ExchangeData) error
	Get(ctx context.Context, id string) (*domain.ExchangeData, error)
	GetForUpdate(ctx context.Context, id string) (*domain.ExchangeData, error)
	ListByParticipants(ctx context.Context, delegator, delegate string) ([]*domain.ExchangeData, error)
	ListByParticipant(ctx context.Context, ownerID string, offset, limit int) ([]*domain.ExchangeData, error)
}

// ExchangeDataMapRepository defines the persistence operations for exchange data maps.
type ExchangeDataMapRepository interface {
	Create(ctx context.Context, m *domain.ExchangeDataMap) error
	Update(ctx context.Context, m *domain.ExchangeDataMap) error
	Get(ctx context.Context, id string) (*domain.ExchangeDataMap, error)
	GetForUpdate(ctx context.Context, id string) (*domain.ExchangeDataMap, error)
	GetMany(ctx context.Context, ids []string) ([]*domain.ExchangeDataMap, error)
}

// DataOwnerRepository resolves the data owners taking part in exchange data.
type DataOwnerRepository interface {
	GetByID(ctx context.Context, id string) (*dataownerDomain.CryptoActorStubWithType, error)
}

// ExchangeDataUseCase defines the exchange data business operations.
type ExchangeDataUseCase interface {
	Create(ctx context.Context, ed *domain.ExchangeData) (*domain.ExchangeData, error)
	Get(ctx context.Context, id string) (*domain.ExchangeData, error)
	ListByParticipants(ctx context.Context, delegator, delegate string) ([]*domain.ExchangeData, error)
	ListByParticipant(ctx context.Context, ownerID string, offset, limit int) ([]*domain.ExchangeData, error)
	// Update stores ed. When ed was based on an outdated revision both revisions are
	// reconciled with SolveConflictsWith.
	Update(ctx context.Context, ed *domain.ExchangeData) (*domain.ExchangeData, error)
}

// ExchangeDataMapUseCase defines the exchange data map business operations.
type ExchangeDataMapUseCase interface {
	// CreateOrAppendMaps creates missing maps and appends new entries to existing ones.
	CreateOrAppendMaps(ctx context.Context, maps []*domain.ExchangeDataMap) ([]*domain.ExchangeDataMap, error)
	GetMap(ctx context.Context, id string) (*domain.ExchangeDataMap, error)
	GetMaps(ctx context.Context, ids []string) ([]*domain.ExchangeDataMap, error)
}
