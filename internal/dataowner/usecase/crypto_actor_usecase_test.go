package usecase

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	databaseMocks "github.com/allisson/delegations/internal/database/mocks"
	"github.com/allisson/delegations/internal/dataowner/domain"
	dataownerMocks "github.com/allisson/delegations/internal/dataowner/usecase/mocks"
	apperrors "github.com/allisson/delegations/internal/errors"
)

func hcp(rev uint) *domain.CryptoActorStubWithType {
	return &domain.CryptoActorStubWithType{
		Type: domain.DataOwnerTypeHcp,
		Stub: domain.CryptoActorStub{
			ID:        "hcp-1",
			Rev:       rev,
			PublicKey: "30820122300d06092a864886f70d01010105000382010f00",
		},
	}
}

func TestCryptoActorUseCase_GetCryptoActor(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := dataownerMocks.NewMockCryptoActorRepository(t)
		useCase := NewCryptoActorUseCase(databaseMocks.NewMockTxManager(t), repo, slog.New(slog.DiscardHandler))
		repo.On("GetByID", ctx, "hcp-1").Return(hcp(1), nil).Once()

		actor, err := useCase.GetCryptoActor(ctx, domain.DataOwnerTypeHcp, "hcp-1")

		require.NoError(t, err)
		assert.Equal(t, "hcp-1", actor.Stub.ID)
	})

	t.Run("Error_OtherTypeIsNotFound", func(t *testing.T) {
		repo := dataownerMocks.NewMockCryptoActorRepository(t)
		useCase := NewCryptoActorUseCase(databaseMocks.NewMockTxManager(t), repo, slog.New(slog.DiscardHandler))
		repo.On("GetByID", ctx, "hcp-1").Return(hcp(1), nil).Once()

		actor, err := useCase.GetCryptoActor(ctx, domain.DataOwnerTypePatient, "hcp-1")

		assert.Nil(t, actor)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("Error_UnknownType", func(t *testing.T) {
		useCase := NewCryptoActorUseCase(
			databaseMocks.NewMockTxManager(t),
			dataownerMocks.NewMockCryptoActorRepository(t),
			slog.New(slog.DiscardHandler),
		)

		_, err := useCase.GetCryptoActor(ctx, domain.DataOwnerType("robot"), "hcp-1")

		assert.ErrorIs(t, err, domain.ErrInvalidCryptoActor)
	})
}

func TestCryptoActorUseCase_PutCryptoActor(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*databaseMocks.MockTxManager, *dataownerMocks.MockCryptoActorRepository, CryptoActorUseCase) {
		txManager := databaseMocks.NewMockTxManager(t)
		repo := dataownerMocks.NewMockCryptoActorRepository(t)
		return txManager, repo, NewCryptoActorUseCase(txManager, repo, slog.New(slog.DiscardHandler))
	}

	t.Run("Success_Create", func(t *testing.T) {
		txManager, repo, useCase := setup(t)
		txManager.On("WithTx", ctx, mock.Anything).Return(nil).Once()
		repo.On("GetForUpdate", ctx, "hcp-1").Return(nil, domain.ErrCryptoActorNotFound).Once()
		repo.On("Create", ctx, mock.MatchedBy(func(a *domain.CryptoActorStubWithType) bool {
			return a.Stub.Rev == 1
		})).Return(nil).Once()

		saved, err := useCase.PutCryptoActor(ctx, hcp(0))

		require.NoError(t, err)
		assert.Equal(t, uint(1), saved.Stub.Rev)
	})

	t.Run("Success_Update", func(t *testing.T) {
		txManager, repo, useCase := setup(t)
		txManager.On("WithTx", ctx, mock.Anything).Return(nil).Once()
		repo.On("GetForUpdate", ctx, "hcp-1").Return(hcp(3), nil).Once()
		repo.On("Update", ctx, mock.Anything).Return(nil).Once()

		saved, err := useCase.PutCryptoActor(ctx, hcp(3))

		require.NoError(t, err)
		assert.Equal(t, uint(4), saved.Stub.Rev)
	})

	t.Run("Error_StaleRevision", func(t *testing.T) {
		txManager, repo, useCase := setup(t)
		txManager.On("WithTx", ctx, mock.Anything).Return(nil).Once()
		repo.On("GetForUpdate", ctx, "hcp-1").Return(hcp(4), nil).Once()

		saved, err := useCase.PutCryptoActor(ctx, hcp(3))

		assert.Nil(t, saved)
		assert.ErrorIs(t, err, domain.ErrStaleCryptoActor)
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})

	t.Run("Error_TypeChange", func(t *testing.T) {
		txManager, repo, useCase := setup(t)
		patient := hcp(1)
		patient.Type = domain.DataOwnerTypePatient
		txManager.On("WithTx", ctx, mock.Anything).Return(nil).Once()
		repo.On("GetForUpdate", ctx, "hcp-1").Return(hcp(1), nil).Once()

		_, err := useCase.PutCryptoActor(ctx, patient)

		assert.ErrorIs(t, err, domain.ErrStaleCryptoActor)
	})

	t.Run("Error_InvalidPublicKey", func(t *testing.T) {
		_, _, useCase := setup(t)
		actor := hcp(0)
		actor.Stub.PublicKey = "not-hex"

		_, err := useCase.PutCryptoActor(ctx, actor)

		assert.ErrorIs(t, err, domain.ErrInvalidCryptoActor)
	})
}
