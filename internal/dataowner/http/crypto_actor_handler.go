// Package http provides HTTP handlers for the crypto material of data owners.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/delegations/internal/dataowner/domain"
	"github.com/allisson/delegations/internal/dataowner/http/dto"
	dataownerUseCase "github.com/allisson/delegations/internal/dataowner/usecase"
	"github.com/allisson/delegations/internal/httputil"
)

// CryptoActorHandler handles HTTP requests for crypto actor operations.
type CryptoActorHandler struct {
	useCase dataownerUseCase.CryptoActorUseCase
	logger  *slog.Logger
}

// NewCryptoActorHandler creates a new crypto actor handler with required dependencies.
func NewCryptoActorHandler(useCase dataownerUseCase.CryptoActorUseCase, logger *slog.Logger) *CryptoActorHandler {
	return &CryptoActorHandler{
		useCase: useCase,
		logger:  logger,
	}
}

// GetHandler retrieves the crypto material of a data owner of the given type.
// GET /v1/crypto-actors/:type/:id
func (h *CryptoActorHandler) GetHandler(c *gin.Context) {
	actor, err := h.useCase.GetCryptoActor(c.Request.Context(), domain.DataOwnerType(c.Param("type")), c.Param("id"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapCryptoActorToResponse(actor))
}

// PutHandler creates or replaces the crypto material of a data owner.
// PUT /v1/crypto-actors/:type/:id
func (h *CryptoActorHandler) PutHandler(c *gin.Context) {
	var req dto.PutCryptoActorRequest
	if !httputil.BindJSON(c, &req, h.logger) {
		return
	}

	saved, err := h.useCase.PutCryptoActor(c.Request.Context(), req.ToDomain(c.Param("type"), c.Param("id")))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapCryptoActorToResponse(saved))
}
