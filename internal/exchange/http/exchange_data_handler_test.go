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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/allisson/delegations/internal/exchange/domain"
	"github.com/allisson/delegations/internal/exchange/http/dto"
	"github.com/allisson/delegations/internal/exchange/usecase/mocks"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// createTestContext creates a test Gin context with the given request.
func createTestContext(method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var bodyReader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		bodyReader = bytes.NewReader([]byte(b))
	default:
		bodyBytes, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	return c, w
}

func sampleRequest() dto.ExchangeDataRequest {
	return dto.ExchangeDataRequest{
		Delegator:           "hcp-1",
		Delegate:            "patient-1",
		ExchangeKey:         map[string]string{"fp-a": "ek"},
		AccessControlSecret: map[string]string{"fp-a": "acs"},
		SharedSignatureKey:  map[string]string{"fp-a": "ssk"},
		DelegatorSignature:  map[string]string{"fp-a": "sig"},
		SharedSignature:     "hmac",
	}
}

func storedExchangeData(id string, rev uint) *domain.ExchangeData {
	req := sampleRequest()
	ed := req.ToDomain(id)
	ed.Rev = rev
	ed.CreatedAt = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	ed.UpdatedAt = ed.CreatedAt
	return ed
}

func TestExchangeDataHandler_CreateHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockUseCase := mocks.NewMockExchangeDataUseCase(t)
		handler := NewExchangeDataHandler(mockUseCase, testLogger())
		mockUseCase.On("Create", mock.Anything, mock.MatchedBy(func(ed *domain.ExchangeData) bool {
			return ed.ID == "" && ed.Delegator == "hcp-1" && ed.Delegate == "patient-1"
		})).Return(storedExchangeData("ed-1", 1), nil).Once()

		c, w := createTestContext(http.MethodPost, "/v1/exchange-data", sampleRequest())
		handler.CreateHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		var response dto.ExchangeDataResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "ed-1", response.ID)
		assert.Equal(t, uint(1), response.Rev)
		assert.Equal(t, map[string]string{"fp-a": "ek"}, response.ExchangeKey)
	})

	t.Run("Error_MissingSignature", func(t *testing.T) {
		handler := NewExchangeDataHandler(mocks.NewMockExchangeDataUseCase(t), testLogger())
		req := sampleRequest()
		req.SharedSignature = ""

		c, w := createTestContext(http.MethodPost, "/v1/exchange-data", req)
		handler.CreateHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_UnknownParticipant", func(t *testing.T) {
		mockUseCase := mocks.NewMockExchangeDataUseCase(t)
		handler := NewExchangeDataHandler(mockUseCase, testLogger())
		mockUseCase.On("Create", mock.Anything, mock.Anything).Return(nil, domain.ErrUnknownParticipant).Once()

		c, w := createTestContext(http.MethodPost, "/v1/exchange-data", sampleRequest())
		handler.CreateHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestExchangeDataHandler_GetHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockUseCase := mocks.NewMockExchangeDataUseCase(t)
		handler := NewExchangeDataHandler(mockUseCase, testLogger())
		mockUseCase.On("Get", mock.Anything, "ed-1").Return(storedExchangeData("ed-1", 2), nil).Once()

		c, w := createTestContext(http.MethodGet, "/v1/exchange-data/ed-1", nil)
		c.Params = gin.Params{{Key: "id", Value: "ed-1"}}
		handler.GetHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		mockUseCase := mocks.NewMockExchangeDataUseCase(t)
		handler := NewExchangeDataHandler(mockUseCase, testLogger())
		mockUseCase.On("Get", mock.Anything, "ed-9").Return(nil, domain.ErrExchangeDataNotFound).Once()

		c, w := createTestContext(http.MethodGet, "/v1/exchange-data/ed-9", nil)
		c.Params = gin.Params{{Key: "id", Value: "ed-9"}}
		handler.GetHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestExchangeDataHandler_UpdateHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockUseCase := mocks.NewMockExchangeDataUseCase(t)
		handler := NewExchangeDataHandler(mockUseCase, testLogger())
		mockUseCase.On("Update", mock.Anything, mock.MatchedBy(func(ed *domain.ExchangeData) bool {
			return ed.ID == "ed-1" && ed.Rev == 1
		})).Return(storedExchangeData("ed-1", 2), nil).Once()

		req := sampleRequest()
		req.Rev = 1
		c, w := createTestContext(http.MethodPut, "/v1/exchange-data/ed-1", req)
		c.Params = gin.Params{{Key: "id", Value: "ed-1"}}
		handler.UpdateHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Error_IncompatibleParticipants", func(t *testing.T) {
		mockUseCase := mocks.NewMockExchangeDataUseCase(t)
		handler := NewExchangeDataHandler(mockUseCase, testLogger())
		mockUseCase.On("Update", mock.Anything, mock.Anything).Return(nil, domain.ErrIncompatibleExchangeData).Once()

		c, w := createTestContext(http.MethodPut, "/v1/exchange-data/ed-1", sampleRequest())
		c.Params = gin.Params{{Key: "id", Value: "ed-1"}}
		handler.UpdateHandler(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestExchangeDataHandler_ListByParticipantsHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockUseCase := mocks.NewMockExchangeDataUseCase(t)
		handler := NewExchangeDataHandler(mockUseCase, testLogger())
		mockUseCase.On("ListByParticipants", mock.Anything, "hcp-1", "patient-1").
			Return([]*domain.ExchangeData{storedExchangeData("ed-1", 1)}, nil).
			Once()

		c, w := createTestContext(http.MethodGet, "/v1/exchange-data?delegator=hcp-1&delegate=patient-1", nil)
		handler.ListByParticipantsHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var response dto.ListExchangeDataResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Len(t, response.Data, 1)
	})

	t.Run("Error_MissingDelegate", func(t *testing.T) {
		handler := NewExchangeDataHandler(mocks.NewMockExchangeDataUseCase(t), testLogger())

		c, w := createTestContext(http.MethodGet, "/v1/exchange-data?delegator=hcp-1", nil)
		handler.ListByParticipantsHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestExchangeDataHandler_ListByParticipantHandler(t *testing.T) {
	t.Run("Success_EmptyPage", func(t *testing.T) {
		mockUseCase := mocks.NewMockExchangeDataUseCase(t)
		handler := NewExchangeDataHandler(mockUseCase, testLogger())
		mockUseCase.On("ListByParticipant", mock.Anything, "patient-1", 20, 10).
			Return([]*domain.ExchangeData{}, nil).
			Once()

		c, w := createTestContext(http.MethodGet, "/v1/exchange-data/participant/patient-1?offset=20&limit=10", nil)
		c.Params = gin.Params{{Key: "ownerId", Value: "patient-1"}}
		handler.ListByParticipantHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"data":[]}`, w.Body.String())
	})

	t.Run("Error_InvalidLimit", func(t *testing.T) {
		handler := NewExchangeDataHandler(mocks.NewMockExchangeDataUseCase(t), testLogger())

		c, w := createTestContext(http.MethodGet, "/v1/exchange-data/participant/patient-1?limit=500", nil)
		c.Params = gin.Params{{Key: "ownerId", Value: "patient-1"}}
		handler.ListByParticipantHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}
