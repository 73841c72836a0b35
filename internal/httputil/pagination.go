package httputil

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/delegations/internal/errors"
)

// PageLimits bounds the page size a list endpoint accepts.
type PageLimits struct {
	Default int
	Max     int
}

// ParsePagination reads the offset and limit query parameters. A missing limit falls back
// to limits.Default. Errors wrap ErrInvalidInput.
func ParsePagination(c *gin.Context, limits PageLimits) (offset, limit int, err error) {
	offset, err = queryInt(c, "offset", 0)
	if err != nil || offset < 0 {
		return 0, 0, apperrors.Wrap(apperrors.ErrInvalidInput, "offset must be a non-negative integer")
	}

	limit, err = queryInt(c, "limit", limits.Default)
	if err != nil || limit < 1 || limit > limits.Max {
		return 0, 0, apperrors.Wrapf(apperrors.ErrInvalidInput, "limit must be between 1 and %d", limits.Max)
	}

	return offset, limit, nil
}

func queryInt(c *gin.Context, key string, fallback int) (int, error) {
	raw, ok := c.GetQuery(key)
	if !ok {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
