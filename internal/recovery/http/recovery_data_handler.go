// Package http provides HTTP handlers for recovery data. Records can be purged but never
// soft-deleted, so no endpoint marks them as deleted.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/allisson/delegations/internal/httputil"
	"github.com/allisson/delegations/internal/recovery/domain"
	"github.com/allisson/delegations/internal/recovery/http/dto"
	recoveryUseCase "github.com/allisson/delegations/internal/recovery/usecase"
)

// RecoveryDataHandler handles HTTP requests for recovery data operations.
type RecoveryDataHandler struct {
	useCase recoveryUseCase.RecoveryDataUseCase
	logger  *slog.Logger
}

// NewRecoveryDataHandler creates a new recovery data handler with required dependencies.
func NewRecoveryDataHandler(useCase recoveryUseCase.RecoveryDataUseCase, logger *slog.Logger) *RecoveryDataHandler {
	return &RecoveryDataHandler{
		useCase: useCase,
		logger:  logger,
	}
}

// CreateHandler stores a new recovery record.
// POST /v1/recovery-data
// Returns 201 Created.
func (h *RecoveryDataHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateRecoveryDataRequest
	if !httputil.BindJSON(c, &req, h.logger) {
		return
	}

	created, err := h.useCase.Create(c.Request.Context(), req.ToDomain())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapRecoveryDataToResponse(created))
}

// GetHandler retrieves a recovery record. Expired records are reported as not found.
// GET /v1/recovery-data/:id
func (h *RecoveryDataHandler) GetHandler(c *gin.Context) {
	r, err := h.useCase.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapRecoveryDataToResponse(r))
}

// ListHandler retrieves the live records of a recipient.
// GET /v1/recovery-data?recipient=&type=
func (h *RecoveryDataHandler) ListHandler(c *gin.Context) {
	recipient := c.Query("recipient")
	if recipient == "" {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("recipient query parameter is required"), h.logger)
		return
	}

	list, err := h.useCase.ListByRecipient(c.Request.Context(), recipient, typeQuery(c))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapRecoveryDataToListResponse(list))
}

// PurgeHandler permanently removes a recovery record.
// DELETE /v1/recovery-data/:id
// Returns 204 No Content.
func (h *RecoveryDataHandler) PurgeHandler(c *gin.Context) {
	if err := h.useCase.Purge(c.Request.Context(), c.Param("id")); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// PurgeAllForHandler permanently removes every record of a recipient, optionally of one type.
// DELETE /v1/recovery-data/recipient/:recipient?type=
func (h *RecoveryDataHandler) PurgeAllForHandler(c *gin.Context) {
	deleted, err := h.useCase.PurgeAllFor(c.Request.Context(), c.Param("recipient"), typeQuery(c))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.PurgeResponse{Deleted: deleted})
}

func typeQuery(c *gin.Context) *domain.Type {
	t, ok := c.GetQuery("type")
	if !ok {
		return nil
	}
	return lo.ToPtr(domain.Type(t))
}
