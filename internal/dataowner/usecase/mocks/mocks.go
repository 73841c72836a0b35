// Package mocks provides mock implementations of the crypto actor use case interfaces.
package mocks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/allisson/delegations/internal/dataowner/domain"
)

func cryptoActor(args mock.Arguments) (*domain.CryptoActorStubWithType, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CryptoActorStubWithType), args.Error(1)
}

// MockCryptoActorRepository is a mock implementation of CryptoActorRepository.
type MockCryptoActorRepository struct {
	mock.Mock
}

// NewMockCryptoActorRepository creates a mock whose expectations are asserted on cleanup.
func NewMockCryptoActorRepository(t *testing.T) *MockCryptoActorRepository {
	m := &MockCryptoActorRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockCryptoActorRepository) Create(ctx context.Context, actor *domain.CryptoActorStubWithType) error {
	return m.Called(ctx, actor).Error(0)
}

func (m *MockCryptoActorRepository) Update(ctx context.Context, actor *domain.CryptoActorStubWithType) error {
	return m.Called(ctx, actor).Error(0)
}

func (m *MockCryptoActorRepository) GetByID(
	ctx context.Context,
	id string,
) (*domain.CryptoActorStubWithType, error) {
	return cryptoActor(m.Called(ctx, id))
}

func (m *MockCryptoActorRepository) GetForUpdate(
	ctx context.Context,
	id string,
) (*domain.CryptoActorStubWithType, error) {
	return cryptoActor(m.Called(ctx, id))
}

// MockCryptoActorUseCase is a mock implementation of CryptoActorUseCase.
type MockCryptoActorUseCase struct {
	mock.Mock
}

// NewMockCryptoActorUseCase creates a mock whose expectations are asserted on cleanup.
func NewMockCryptoActorUseCase(t *testing.T) *MockCryptoActorUseCase {
	m := &MockCryptoActorUseCase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockCryptoActorUseCase) GetCryptoActor(
	ctx context.Context,
	ownerType domain.DataOwnerType,
	id string,
) (*domain.CryptoActorStubWithType, error) {
	return cryptoActor(m.Called(ctx, ownerType, id))
}

func (m *MockCryptoActorUseCase) PutCryptoActor(
	ctx context.Context,
	actor *domain.CryptoActorStubWithType,
) (*domain.CryptoActorStubWithType, error) {
	return cryptoActor(m.Called(ctx, actor))
}
