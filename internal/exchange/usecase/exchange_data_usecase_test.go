package usecase

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	dataownerDomain "github.com/allisson/delegations/internal/dataowner/domain"
	databaseMocks "github.com/allisson/delegations/internal/database/mocks"
	apperrors "github.com/allisson/delegations/internal/errors"
	"github.com/allisson/delegations/internal/exchange/domain"
	exchangeMocks "github.com/allisson/delegations/internal/exchange/usecase/mocks"
)

func newExchangeData(id string, rev uint) *domain.ExchangeData {
	return &domain.ExchangeData{
		ID:                  id,
		Rev:                 rev,
		Delegator:           "hcp-1",
		Delegate:            "patient-1",
		ExchangeKey:         map[string]string{"fp-a": "ZWs="},
		AccessControlSecret: map[string]string{"fp-a": "YWNz"},
		SharedSignatureKey:  map[string]string{"fp-a": "c3Nr"},
		DelegatorSignature:  map[string]string{"fp-a": "ZHM="},
		SharedSignature:     "c3M=",
		CreatedAt:           time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func actor(id string) *dataownerDomain.CryptoActorStubWithType {
	return &dataownerDomain.CryptoActorStubWithType{
		Type: dataownerDomain.DataOwnerTypeHcp,
		Stub: dataownerDomain.CryptoActorStub{ID: id},
	}
}

type exchangeFixture struct {
	txManager     *databaseMocks.MockTxManager
	repo          *exchangeMocks.MockExchangeDataRepository
	dataOwnerRepo *exchangeMocks.MockDataOwnerRepository
	useCase       ExchangeDataUseCase
}

func newExchangeFixture(t *testing.T) exchangeFixture {
	txManager := databaseMocks.NewMockTxManager(t)
	repo := exchangeMocks.NewMockExchangeDataRepository(t)
	dataOwnerRepo := exchangeMocks.NewMockDataOwnerRepository(t)
	return exchangeFixture{
		txManager:     txManager,
		repo:          repo,
		dataOwnerRepo: dataOwnerRepo,
		useCase: NewExchangeDataUseCase(
			txManager,
			repo,
			dataOwnerRepo,
			slog.New(slog.DiscardHandler),
		),
	}
}

func TestExchangeDataUseCase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newExchangeFixture(t)
		f.dataOwnerRepo.On("GetByID", ctx, "hcp-1").Return(actor("hcp-1"), nil).Once()
		f.dataOwnerRepo.On("GetByID", ctx, "patient-1").Return(actor("patient-1"), nil).Once()
		f.repo.On("Create", ctx, mock.MatchedBy(func(ed *domain.ExchangeData) bool {
			return ed.Rev == 1 && ed.ID != ""
		})).Return(nil).Once()

		created, err := f.useCase.Create(ctx, newExchangeData("", 0))

		require.NoError(t, err)
		assert.Equal(t, uint(1), created.Rev)
		_, parseErr := uuid.Parse(created.ID)
		assert.NoError(t, parseErr)
		assert.False(t, created.UpdatedAt.IsZero())
	})

	t.Run("Success_KeepsProvidedID", func(t *testing.T) {
		f := newExchangeFixture(t)
		f.dataOwnerRepo.On("GetByID", ctx, mock.Anything).Return(actor("x"), nil).Twice()
		f.repo.On("Create", ctx, mock.Anything).Return(nil).Once()

		created, err := f.useCase.Create(ctx, newExchangeData("ed-1", 0))

		require.NoError(t, err)
		assert.Equal(t, "ed-1", created.ID)
	})

	t.Run("Error_InvalidExchangeData", func(t *testing.T) {
		f := newExchangeFixture(t)
		ed := newExchangeData("", 0)
		ed.ExchangeKey = nil

		created, err := f.useCase.Create(ctx, ed)

		assert.Nil(t, created)
		assert.ErrorIs(t, err, domain.ErrInvalidExchangeData)
	})

	t.Run("Error_UnknownDelegate", func(t *testing.T) {
		f := newExchangeFixture(t)
		f.dataOwnerRepo.On("GetByID", ctx, "hcp-1").Return(actor("hcp-1"), nil).Once()
		f.dataOwnerRepo.On("GetByID", ctx, "patient-1").
			Return(nil, dataownerDomain.ErrCryptoActorNotFound).Once()

		created, err := f.useCase.Create(ctx, newExchangeData("", 0))

		assert.Nil(t, created)
		assert.ErrorIs(t, err, domain.ErrUnknownParticipant)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("Error_LookupFailure", func(t *testing.T) {
		f := newExchangeFixture(t)
		dbErr := errors.New("connection reset")
		f.dataOwnerRepo.On("GetByID", ctx, "hcp-1").Return(nil, dbErr).Once()

		_, err := f.useCase.Create(ctx, newExchangeData("", 0))

		assert.ErrorIs(t, err, dbErr)
	})
}

func TestExchangeDataUseCase_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_SameRevision", func(t *testing.T) {
		f := newExchangeFixture(t)
		stored := newExchangeData("ed-1", 3)
		incoming := newExchangeData("ed-1", 3)
		incoming.ExchangeKey = map[string]string{"fp-b": "bmV3"}

		f.txManager.On("WithTx", ctx, mock.Anything).Return(nil).Once()
		f.repo.On("GetForUpdate", ctx, "ed-1").Return(stored, nil).Once()
		f.repo.On("Update", ctx, mock.MatchedBy(func(ed *domain.ExchangeData) bool {
			return ed.Rev == 4 && len(ed.ExchangeKey) == 1
		})).Return(nil).Once()

		updated, err := f.useCase.Update(ctx, incoming)

		require.NoError(t, err)
		assert.Equal(t, uint(4), updated.Rev)
		assert.Equal(t, map[string]string{"fp-b": "bmV3"}, updated.ExchangeKey)
		assert.Equal(t, stored.CreatedAt, updated.CreatedAt)
		assert.False(t, updated.SignaturesNeedRevalidation())
	})

	t.Run("Success_OutdatedRevisionIsMerged", func(t *testing.T) {
		f := newExchangeFixture(t)
		stored := newExchangeData("ed-1", 5)
		incoming := newExchangeData("ed-1", 3)
		incoming.ExchangeKey = map[string]string{"fp-b": "bmV3"}
		incoming.DelegatorSignature = map[string]string{"fp-b": "c2ln"}

		f.txManager.On("WithTx", ctx, mock.Anything).Return(nil).Once()
		f.repo.On("GetForUpdate", ctx, "ed-1").Return(stored, nil).Once()
		f.repo.On("Update", ctx, mock.Anything).Return(nil).Once()

		updated, err := f.useCase.Update(ctx, incoming)

		require.NoError(t, err)
		assert.Equal(t, uint(6), updated.Rev)
		assert.Equal(t, []string{"fp-a", "fp-b"}, updated.Fingerprints())
		assert.True(t, updated.SignaturesNeedRevalidation())
	})

	t.Run("Error_ParticipantsChanged", func(t *testing.T) {
		f := newExchangeFixture(t)
		incoming := newExchangeData("ed-1", 3)
		incoming.Delegate = "patient-2"

		f.txManager.On("WithTx", ctx, mock.Anything).Return(nil).Once()
		f.repo.On("GetForUpdate", ctx, "ed-1").Return(newExchangeData("ed-1", 3), nil).Once()

		updated, err := f.useCase.Update(ctx, incoming)

		assert.Nil(t, updated)
		assert.ErrorIs(t, err, domain.ErrIncompatibleExchangeData)
	})

	t.Run("Error_ParticipantsChangedOnOutdatedRevision", func(t *testing.T) {
		f := newExchangeFixture(t)
		incoming := newExchangeData("ed-1", 1)
		incoming.Delegator = "hcp-2"

		f.txManager.On("WithTx", ctx, mock.Anything).Return(nil).Once()
		f.repo.On("GetForUpdate", ctx, "ed-1").Return(newExchangeData("ed-1", 3), nil).Once()

		_, err := f.useCase.Update(ctx, incoming)

		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		f := newExchangeFixture(t)

		f.txManager.On("WithTx", ctx, mock.Anything).Return(nil).Once()
		f.repo.On("GetForUpdate", ctx, "ed-1").Return(nil, domain.ErrExchangeDataNotFound).Once()

		_, err := f.useCase.Update(ctx, newExchangeData("ed-1", 1))

		assert.ErrorIs(t, err, domain.ErrExchangeDataNotFound)
	})
}

func TestExchangeDataUseCase_Queries(t *testing.T) {
	ctx := context.Background()
	f := newExchangeFixture(t)
	ed := newExchangeData("ed-1", 1)

	f.repo.On("Get", ctx, "ed-1").Return(ed, nil).Once()
	f.repo.On("ListByParticipants", ctx, "hcp-1", "patient-1").Return([]*domain.ExchangeData{ed}, nil).Once()
	f.repo.On("ListByParticipant", ctx, "patient-1", 0, 50).Return([]*domain.ExchangeData{ed}, nil).Once()

	got, err := f.useCase.Get(ctx, "ed-1")
	require.NoError(t, err)
	assert.Equal(t, ed, got)

	list, err := f.useCase.ListByParticipants(ctx, "hcp-1", "patient-1")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	list, err = f.useCase.ListByParticipant(ctx, "patient-1", 0, 50)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
