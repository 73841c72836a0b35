package httputil

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	customValidation "github.com/allisson/delegations/internal/validation"
)

// Validator is implemented by request DTOs.
type Validator interface {
	Validate() error
}

// BindJSON decodes the request body into req and validates it. On failure the 422 response
// is already written and false is returned.
func BindJSON(c *gin.Context, req Validator, logger *slog.Logger) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		HandleValidationErrorGin(c, err, logger)
		return false
	}
	if err := req.Validate(); err != nil {
		HandleValidationErrorGin(c, customValidation.WrapValidationError(err), logger)
		return false
	}
	return true
}
