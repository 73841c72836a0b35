// Package http provides HTTP handlers for exchange data and exchange data maps.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/delegations/internal/exchange/http/dto"
	exchangeUseCase "github.com/allisson/delegations/internal/exchange/usecase"
	"github.com/allisson/delegations/internal/httputil"
)

// participantPage bounds the exchange data returned per ListByParticipant page.
var participantPage = httputil.PageLimits{Default: 50, Max: 100}

// ExchangeDataHandler handles HTTP requests for exchange data operations.
type ExchangeDataHandler struct {
	useCase exchangeUseCase.ExchangeDataUseCase
	logger  *slog.Logger
}

// NewExchangeDataHandler creates a new exchange data handler with required dependencies.
func NewExchangeDataHandler(useCase exchangeUseCase.ExchangeDataUseCase, logger *slog.Logger) *ExchangeDataHandler {
	return &ExchangeDataHandler{
		useCase: useCase,
		logger:  logger,
	}
}

// CreateHandler creates exchange data between two existing data owners.
// POST /v1/exchange-data
// Returns 201 Created.
func (h *ExchangeDataHandler) CreateHandler(c *gin.Context) {
	var req dto.ExchangeDataRequest
	if !httputil.BindJSON(c, &req, h.logger) {
		return
	}

	created, err := h.useCase.Create(c.Request.Context(), req.ToDomain(""))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapExchangeDataToResponse(created))
}

// GetHandler retrieves exchange data by id.
// GET /v1/exchange-data/:id
func (h *ExchangeDataHandler) GetHandler(c *gin.Context) {
	ed, err := h.useCase.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapExchangeDataToResponse(ed))
}

// UpdateHandler stores a new revision of exchange data. Outdated revisions are reconciled
// with the stored one.
// PUT /v1/exchange-data/:id
func (h *ExchangeDataHandler) UpdateHandler(c *gin.Context) {
	var req dto.ExchangeDataRequest
	if !httputil.BindJSON(c, &req, h.logger) {
		return
	}

	updated, err := h.useCase.Update(c.Request.Context(), req.ToDomain(c.Param("id")))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapExchangeDataToResponse(updated))
}

// ListByParticipantsHandler retrieves the exchange data from a delegator to a delegate.
// GET /v1/exchange-data?delegator=&delegate=
func (h *ExchangeDataHandler) ListByParticipantsHandler(c *gin.Context) {
	delegator := c.Query("delegator")
	delegate := c.Query("delegate")
	if delegator == "" || delegate == "" {
		httputil.HandleValidationErrorGin(
			c,
			fmt.Errorf("delegator and delegate query parameters are required"),
			h.logger,
		)
		return
	}

	list, err := h.useCase.ListByParticipants(c.Request.Context(), delegator, delegate)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapExchangeDataToListResponse(list))
}

// ListByParticipantHandler retrieves a page of the exchange data a data owner takes part in.
// GET /v1/exchange-data/participant/:ownerId?offset=0&limit=50
func (h *ExchangeDataHandler) ListByParticipantHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c, participantPage)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	list, err := h.useCase.ListByParticipant(c.Request.Context(), c.Param("ownerId"), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapExchangeDataToListResponse(list))
}
