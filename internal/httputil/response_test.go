package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/delegations/internal/errors"
)

func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHandleErrorGin(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedError  string
		expectedMsg    string
	}{
		{
			name:           "not found",
			err:            apperrors.Wrap(apperrors.ErrNotFound, "exchange data not found"),
			expectedStatus: http.StatusNotFound,
			expectedError:  "not_found",
			expectedMsg:    "The requested resource was not found",
		},
		{
			name:           "conflict keeps the detail",
			err:            apperrors.Wrap(apperrors.ErrConflict, "merge conflict on key k1"),
			expectedStatus: http.StatusConflict,
			expectedError:  "conflict",
			expectedMsg:    "merge conflict on key k1: conflict",
		},
		{
			name:           "invalid input",
			err:            apperrors.Wrap(apperrors.ErrInvalidInput, "invalid access level"),
			expectedStatus: http.StatusUnprocessableEntity,
			expectedError:  "invalid_input",
			expectedMsg:    "invalid access level: invalid input",
		},
		{
			name:           "unsupported operation",
			err:            apperrors.Wrap(apperrors.ErrUnsupportedOperation, "soft delete"),
			expectedStatus: http.StatusMethodNotAllowed,
			expectedError:  "unsupported_operation",
			expectedMsg:    "soft delete: unsupported operation",
		},
		{
			name:           "unknown error is hidden",
			err:            errors.New("connection refused"),
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "internal_error",
			expectedMsg:    "An internal error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext()

			HandleErrorGin(c, tt.err, nil)

			assert.Equal(t, tt.expectedStatus, w.Code)
			resp := decodeError(t, w)
			assert.Equal(t, tt.expectedError, resp.Error)
			assert.Equal(t, tt.expectedMsg, resp.Message)
		})
	}

	t.Run("nil error writes nothing", func(t *testing.T) {
		c, w := newTestContext()
		HandleErrorGin(c, nil, nil)
		assert.Empty(t, w.Body.String())
	})
}

func TestHandleBadRequestGin(t *testing.T) {
	c, w := newTestContext()

	HandleBadRequestGin(c, errors.New("unexpected EOF"), nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, ErrorResponse{Error: "bad_request", Message: "unexpected EOF"}, decodeError(t, w))
}

func TestHandleValidationErrorGin(t *testing.T) {
	c, w := newTestContext()

	HandleValidationErrorGin(c, errors.New("delegator: cannot be blank."), nil)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "validation_error", decodeError(t, w).Error)
}
