package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/allisson/delegations/internal/recovery/domain"
	"github.com/allisson/delegations/internal/recovery/http/dto"
	"github.com/allisson/delegations/internal/recovery/usecase/mocks"
)

func setupTestHandler(t *testing.T) (*RecoveryDataHandler, *mocks.MockRecoveryDataUseCase) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	mockUseCase := mocks.NewMockRecoveryDataUseCase(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewRecoveryDataHandler(mockUseCase, logger), mockUseCase
}

func createTestContext(method, path, body string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var bodyReader io.Reader
	if body != "" {
		bodyReader = bytes.NewReader([]byte(body))
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	return c, w
}

func storedRecord() *domain.RecoveryData {
	return &domain.RecoveryData{
		ID:            "r-1",
		Rev:           1,
		Recipient:     "patient-1",
		EncryptedSelf: "ZW5j",
		Type:          domain.TypeKeypairRecovery,
		CreatedAt:     time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestRecoveryDataHandler_CreateHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		expiration := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
		mockUseCase.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.RecoveryData) bool {
			return r.Recipient == "patient-1" && r.Type == domain.TypeExchangeKeyRecovery &&
				r.ExpirationInstant != nil && r.ExpirationInstant.Equal(expiration)
		})).Return(storedRecord(), nil).Once()

		c, w := createTestContext(http.MethodPost, "/v1/recovery-data",
			`{"recipient":"patient-1","encryptedSelf":"ZW5j","type":"EXCHANGE_KEY_RECOVERY",`+
				`"expirationInstant":"2027-01-01T00:00:00Z"}`)
		handler.CreateHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		var response dto.RecoveryDataResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "r-1", response.ID)
		assert.Nil(t, response.ExpirationInstant)
	})

	t.Run("Error_UnknownType", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodPost, "/v1/recovery-data",
			`{"recipient":"patient-1","encryptedSelf":"ZW5j","type":"SOMETHING"}`)
		handler.CreateHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_AlreadyExpired", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("Create", mock.Anything, mock.Anything).Return(nil, domain.ErrInvalidRecoveryData).Once()

		c, w := createTestContext(http.MethodPost, "/v1/recovery-data",
			`{"recipient":"patient-1","encryptedSelf":"ZW5j","type":"KEYPAIR_RECOVERY",`+
				`"expirationInstant":"2001-01-01T00:00:00Z"}`)
		handler.CreateHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestRecoveryDataHandler_GetHandler(t *testing.T) {
	handler, mockUseCase := setupTestHandler(t)
	mockUseCase.On("Get", mock.Anything, "r-1").Return(nil, domain.ErrRecoveryDataNotFound).Once()

	c, w := createTestContext(http.MethodGet, "/v1/recovery-data/r-1", "")
	c.Params = gin.Params{{Key: "id", Value: "r-1"}}
	handler.GetHandler(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecoveryDataHandler_ListHandler(t *testing.T) {
	t.Run("Success_FilteredByType", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("ListByRecipient", mock.Anything, "patient-1", lo.ToPtr(domain.TypeKeypairRecovery)).
			Return([]*domain.RecoveryData{storedRecord()}, nil).
			Once()

		c, w := createTestContext(http.MethodGet, "/v1/recovery-data?recipient=patient-1&type=KEYPAIR_RECOVERY", "")
		handler.ListHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var response dto.ListRecoveryDataResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Len(t, response.Data, 1)
	})

	t.Run("Success_AllTypes", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("ListByRecipient", mock.Anything, "patient-1", (*domain.Type)(nil)).
			Return([]*domain.RecoveryData{}, nil).
			Once()

		c, w := createTestContext(http.MethodGet, "/v1/recovery-data?recipient=patient-1", "")
		handler.ListHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"data":[]}`, w.Body.String())
	})

	t.Run("Error_MissingRecipient", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodGet, "/v1/recovery-data", "")
		handler.ListHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestRecoveryDataHandler_PurgeHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("Purge", mock.Anything, "r-1").Return(nil).Once()

		c, w := createTestContext(http.MethodDelete, "/v1/recovery-data/r-1", "")
		c.Params = gin.Params{{Key: "id", Value: "r-1"}}
		handler.PurgeHandler(c)
		c.Writer.WriteHeaderNow()

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		mockUseCase.On("Purge", mock.Anything, "r-9").Return(domain.ErrRecoveryDataNotFound).Once()

		c, w := createTestContext(http.MethodDelete, "/v1/recovery-data/r-9", "")
		c.Params = gin.Params{{Key: "id", Value: "r-9"}}
		handler.PurgeHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestRecoveryDataHandler_PurgeAllForHandler(t *testing.T) {
	handler, mockUseCase := setupTestHandler(t)
	mockUseCase.On("PurgeAllFor", mock.Anything, "patient-1", lo.ToPtr(domain.TypeExchangeKeyRecovery)).
		Return(int64(3), nil).
		Once()

	c, w := createTestContext(http.MethodDelete, "/v1/recovery-data/recipient/patient-1?type=EXCHANGE_KEY_RECOVERY", "")
	c.Params = gin.Params{{Key: "recipient", Value: "patient-1"}}
	handler.PurgeAllForHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"deleted":3}`, w.Body.String())
}
