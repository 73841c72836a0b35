// Package mocks provides mock implementations of the recovery use case interfaces.
package mocks

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/allisson/delegations/internal/recovery/domain"
)

func recoveryData(args mock.Arguments) (*domain.RecoveryData, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecoveryData), args.Error(1)
}

func recoveryDataList(args mock.Arguments) ([]*domain.RecoveryData, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.RecoveryData), args.Error(1)
}

// MockRecoveryDataRepository is a mock implementation of RecoveryDataRepository.
type MockRecoveryDataRepository struct {
	mock.Mock
}

// NewMockRecoveryDataRepository creates a mock whose expectations are asserted on cleanup.
func NewMockRecoveryDataRepository(t *testing.T) *MockRecoveryDataRepository {
	m := &MockRecoveryDataRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockRecoveryDataRepository) Create(ctx context.Context, r *domain.RecoveryData) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockRecoveryDataRepository) Get(ctx context.Context, id string) (*domain.RecoveryData, error) {
	return recoveryData(m.Called(ctx, id))
}

func (m *MockRecoveryDataRepository) ListByRecipient(
	ctx context.Context,
	recipient string,
	recoveryType *domain.Type,
) ([]*domain.RecoveryData, error) {
	return recoveryDataList(m.Called(ctx, recipient, recoveryType))
}

func (m *MockRecoveryDataRepository) DeleteByID(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRecoveryDataRepository) DeleteByRecipient(
	ctx context.Context,
	recipient string,
	recoveryType *domain.Type,
) (int64, error) {
	args := m.Called(ctx, recipient, recoveryType)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRecoveryDataRepository) DeleteExpired(ctx context.Context, now time.Time, limit int) (int64, error) {
	args := m.Called(ctx, now, limit)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRecoveryDataRepository) CountExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// MockRecoveryDataUseCase is a mock implementation of RecoveryDataUseCase.
type MockRecoveryDataUseCase struct {
	mock.Mock
}

// NewMockRecoveryDataUseCase creates a mock whose expectations are asserted on cleanup.
func NewMockRecoveryDataUseCase(t *testing.T) *MockRecoveryDataUseCase {
	m := &MockRecoveryDataUseCase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockRecoveryDataUseCase) Create(ctx context.Context, r *domain.RecoveryData) (*domain.RecoveryData, error) {
	return recoveryData(m.Called(ctx, r))
}

func (m *MockRecoveryDataUseCase) Get(ctx context.Context, id string) (*domain.RecoveryData, error) {
	return recoveryData(m.Called(ctx, id))
}

func (m *MockRecoveryDataUseCase) ListByRecipient(
	ctx context.Context,
	recipient string,
	recoveryType *domain.Type,
) ([]*domain.RecoveryData, error) {
	return recoveryDataList(m.Called(ctx, recipient, recoveryType))
}

func (m *MockRecoveryDataUseCase) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRecoveryDataUseCase) Purge(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRecoveryDataUseCase) PurgeAllFor(
	ctx context.Context,
	recipient string,
	recoveryType *domain.Type,
) (int64, error) {
	args := m.Called(ctx, recipient, recoveryType)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRecoveryDataUseCase) PurgeExpired(ctx context.Context, now time.Time, dryRun bool) (int64, error) {
	args := m.Called(ctx, now, dryRun)
	return args.Get(0).(int64), args.Error(1)
}
