// Package mocks provides mock implementations of the delegation use case interfaces.
package mocks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/allisson/delegations/internal/delegation/domain"
)

// MockEntityMetadataRepository is a mock implementation of EntityMetadataRepository.
type MockEntityMetadataRepository struct {
	mock.Mock
}

// NewMockEntityMetadataRepository creates a mock whose expectations are asserted on cleanup.
func NewMockEntityMetadataRepository(t *testing.T) *MockEntityMetadataRepository {
	m := &MockEntityMetadataRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockEntityMetadataRepository) Create(ctx context.Context, doc *domain.EntityMetadata) error {
	return m.Called(ctx, doc).Error(0)
}

func (m *MockEntityMetadataRepository) Update(ctx context.Context, doc *domain.EntityMetadata) error {
	return m.Called(ctx, doc).Error(0)
}

func (m *MockEntityMetadataRepository) Get(
	ctx context.Context,
	entityType, entityID string,
) (*domain.EntityMetadata, error) {
	args := m.Called(ctx, entityType, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EntityMetadata), args.Error(1)
}

func (m *MockEntityMetadataRepository) GetForUpdate(
	ctx context.Context,
	entityType, entityID string,
) (*domain.EntityMetadata, error) {
	args := m.Called(ctx, entityType, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EntityMetadata), args.Error(1)
}

// MockSecurityMetadataUseCase is a mock implementation of SecurityMetadataUseCase.
type MockSecurityMetadataUseCase struct {
	mock.Mock
}

// NewMockSecurityMetadataUseCase creates a mock whose expectations are asserted on cleanup.
func NewMockSecurityMetadataUseCase(t *testing.T) *MockSecurityMetadataUseCase {
	m := &MockSecurityMetadataUseCase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockSecurityMetadataUseCase) entity(args mock.Arguments) (*domain.EntityMetadata, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EntityMetadata), args.Error(1)
}

func (m *MockSecurityMetadataUseCase) Get(
	ctx context.Context,
	entityType, entityID string,
) (*domain.EntityMetadata, error) {
	return m.entity(m.Called(ctx, entityType, entityID))
}

func (m *MockSecurityMetadataUseCase) Save(
	ctx context.Context,
	doc *domain.EntityMetadata,
) (*domain.EntityMetadata, error) {
	return m.entity(m.Called(ctx, doc))
}

func (m *MockSecurityMetadataUseCase) ResolveConflicts(
	ctx context.Context,
	entityType, entityID string,
	revisions []domain.SecurityMetadata,
) (*domain.EntityMetadata, error) {
	return m.entity(m.Called(ctx, entityType, entityID, revisions))
}

func (m *MockSecurityMetadataUseCase) MergeDuplicates(
	ctx context.Context,
	entityType, intoID, fromID string,
) (*domain.EntityMetadata, error) {
	return m.entity(m.Called(ctx, entityType, intoID, fromID))
}

func (m *MockSecurityMetadataUseCase) ShareWith(
	ctx context.Context,
	entityType, entityID, key string,
	delegation domain.SecureDelegation,
	aliases []string,
) (*domain.EntityMetadata, error) {
	return m.entity(m.Called(ctx, entityType, entityID, key, delegation, aliases))
}

func (m *MockSecurityMetadataUseCase) GetDelegation(
	ctx context.Context,
	entityType, entityID, hashOrAlias string,
) (string, domain.SecureDelegation, error) {
	args := m.Called(ctx, entityType, entityID, hashOrAlias)
	return args.String(0), args.Get(1).(domain.SecureDelegation), args.Error(2)
}

func (m *MockSecurityMetadataUseCase) AllAliasesOf(
	ctx context.Context,
	entityType, entityID, hash string,
) ([]string, error) {
	args := m.Called(ctx, entityType, entityID, hash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
