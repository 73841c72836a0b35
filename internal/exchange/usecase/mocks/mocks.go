// Package mocks provides mock implementations of the exchange use case interfaces.
package mocks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	dataownerDomain "github.com/allisson/delegations/internal/dataowner/domain"
	"github.com/allisson/delegations/internal/exchange/domain"
)

func exchangeData(args mock.Arguments) (*domain.ExchangeData, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeData), args.Error(1)
}

func exchangeDataList(args mock.Arguments) ([]*domain.ExchangeData, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ExchangeData), args.Error(1)
}

func exchangeDataMap(args mock.Arguments) (*domain.ExchangeDataMap, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeDataMap), args.Error(1)
}

func exchangeDataMaps(args mock.Arguments) ([]*domain.ExchangeDataMap, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ExchangeDataMap), args.Error(1)
}

// MockExchangeDataRepository is a mock implementation of ExchangeDataRepository.
type MockExchangeDataRepository struct {
	mock.Mock
}

// NewMockExchangeDataRepository creates a mock whose expectations are asserted on cleanup.
func NewMockExchangeDataRepository(t *testing.T) *MockExchangeDataRepository {
	m := &MockExchangeDataRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockExchangeDataRepository) Create(ctx context.Context, ed *domain.ExchangeData) error {
	return m.Called(ctx, ed).Error(0)
}

func (m *MockExchangeDataRepository) Update(ctx context.Context, ed *domain.ExchangeData) error {
	return m.Called(ctx, ed).Error(0)
}

func (m *MockExchangeDataRepository) Get(ctx context.Context, id string) (*domain.ExchangeData, error) {
	return exchangeData(m.Called(ctx, id))
}

func (m *MockExchangeDataRepository) GetForUpdate(ctx context.Context, id string) (*domain.ExchangeData, error) {
	return exchangeData(m.Called(ctx, id))
}

func (m *MockExchangeDataRepository) ListByParticipants(
	ctx context.Context,
	delegator, delegate string,
) ([]*domain.ExchangeData, error) {
	return exchangeDataList(m.Called(ctx, delegator, delegate))
}

func (m *MockExchangeDataRepository) ListByParticipant(
	ctx context.Context,
	ownerID string,
	offset, limit int,
) ([]*domain.ExchangeData, error) {
	return exchangeDataList(m.Called(ctx, ownerID, offset, limit))
}

// MockExchangeDataMapRepository is a mock implementation of ExchangeDataMapRepository.
type MockExchangeDataMapRepository struct {
	mock.Mock
}

// NewMockExchangeDataMapRepository creates a mock whose expectations are asserted on cleanup.
func NewMockExchangeDataMapRepository(t *testing.T) *MockExchangeDataMapRepository {
	m := &MockExchangeDataMapRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockExchangeDataMapRepository) Create(ctx context.Context, edm *domain.ExchangeDataMap) error {
	return m.Called(ctx, edm).Error(0)
}

func (m *MockExchangeDataMapRepository) Update(ctx context.Context, edm *domain.ExchangeDataMap) error {
	return m.Called(ctx, edm).Error(0)
}

func (m *MockExchangeDataMapRepository) Get(ctx context.Context, id string) (*domain.ExchangeDataMap, error) {
	return exchangeDataMap(m.Called(ctx, id))
}

func (m *MockExchangeDataMapRepository) GetForUpdate(
	ctx context.Context,
	id string,
) (*domain.ExchangeDataMap, error) {
	return exchangeDataMap(m.Called(ctx, id))
}

func (m *MockExchangeDataMapRepository) GetMany(
	ctx context.Context,
	ids []string,
) ([]*domain.ExchangeDataMap, error) {
	return exchangeDataMaps(m.Called(ctx, ids))
}

// MockDataOwnerRepository is a mock implementation of DataOwnerRepository.
type MockDataOwnerRepository struct {
	mock.Mock
}

// NewMockDataOwnerRepository creates a mock whose expectations are asserted on cleanup.
func NewMockDataOwnerRepository(t *testing.T) *MockDataOwnerRepository {
	m := &MockDataOwnerRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockDataOwnerRepository) GetByID(
	ctx context.Context,
	id string,
) (*dataownerDomain.CryptoActorStubWithType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dataownerDomain.CryptoActorStubWithType), args.Error(1)
}

// MockExchangeDataUseCase is a mock implementation of ExchangeDataUseCase.
type MockExchangeDataUseCase struct {
	mock.Mock
}

// NewMockExchangeDataUseCase creates a mock whose expectations are asserted on cleanup.
func NewMockExchangeDataUseCase(t *testing.T) *MockExchangeDataUseCase {
	m := &MockExchangeDataUseCase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockExchangeDataUseCase) Create(ctx context.Context, ed *domain.ExchangeData) (*domain.ExchangeData, error) {
	return exchangeData(m.Called(ctx, ed))
}

func (m *MockExchangeDataUseCase) Get(ctx context.Context, id string) (*domain.ExchangeData, error) {
	return exchangeData(m.Called(ctx, id))
}

func (m *MockExchangeDataUseCase) ListByParticipants(
	ctx context.Context,
	delegator, delegate string,
) ([]*domain.ExchangeData, error) {
	return exchangeDataList(m.Called(ctx, delegator, delegate))
}

func (m *MockExchangeDataUseCase) ListByParticipant(
	ctx context.Context,
	ownerID string,
	offset, limit int,
) ([]*domain.ExchangeData, error) {
	return exchangeDataList(m.Called(ctx, ownerID, offset, limit))
}

func (m *MockExchangeDataUseCase) Update(ctx context.Context, ed *domain.ExchangeData) (*domain.ExchangeData, error) {
	return exchangeData(m.Called(ctx, ed))
}

// MockExchangeDataMapUseCase is a mock implementation of ExchangeDataMapUseCase.
type MockExchangeDataMapUseCase struct {
	mock.Mock
}

// NewMockExchangeDataMapUseCase creates a mock whose expectations are asserted on cleanup.
func NewMockExchangeDataMapUseCase(t *testing.T) *MockExchangeDataMapUseCase {
	m := &MockExchangeDataMapUseCase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockExchangeDataMapUseCase) CreateOrAppendMaps(
	ctx context.Context,
	maps []*domain.ExchangeDataMap,
) ([]*domain.ExchangeDataMap, error) {
	return exchangeDataMaps(m.Called(ctx, maps))
}

func (m *MockExchangeDataMapUseCase) GetMap(ctx context.Context, id string) (*domain.ExchangeDataMap, error) {
	return exchangeDataMap(m.Called(ctx, id))
}

func (m *MockExchangeDataMapUseCase) GetMaps(
	ctx context.Context,
	ids []string,
) ([]*domain.ExchangeDataMap, error) {
	return exchangeDataMaps(m.Called(ctx, ids))
}
