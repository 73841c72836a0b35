package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/delegations/internal/exchange/http/dto"
	exchangeUseCase "github.com/allisson/delegations/internal/exchange/usecase"
	"github.com/allisson/delegations/internal/httputil"
)

// ExchangeDataMapHandler handles HTTP requests for exchange data map operations.
type ExchangeDataMapHandler struct {
	useCase exchangeUseCase.ExchangeDataMapUseCase
	logger  *slog.Logger
}

// NewExchangeDataMapHandler creates a new exchange data map handler with required dependencies.
func NewExchangeDataMapHandler(
	useCase exchangeUseCase.ExchangeDataMapUseCase,
	logger *slog.Logger,
) *ExchangeDataMapHandler {
	return &ExchangeDataMapHandler{
		useCase: useCase,
		logger:  logger,
	}
}

// CreateOrAppendHandler creates missing maps and appends new entries to existing ones.
// PUT /v1/exchange-data-map/batch
func (h *ExchangeDataMapHandler) CreateOrAppendHandler(c *gin.Context) {
	var req dto.CreateOrAppendMapsRequest
	if !httputil.BindJSON(c, &req, h.logger) {
		return
	}

	maps, err := h.useCase.CreateOrAppendMaps(c.Request.Context(), req.ToDomain())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapExchangeDataMapsToListResponse(maps))
}

// GetHandler retrieves an exchange data map by id.
// GET /v1/exchange-data-map/:id
func (h *ExchangeDataMapHandler) GetHandler(c *gin.Context) {
	m, err := h.useCase.GetMap(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapExchangeDataMapToResponse(m))
}

// GetManyHandler retrieves the existing maps among the requested ids.
// POST /v1/exchange-data-map/batch/get
func (h *ExchangeDataMapHandler) GetManyHandler(c *gin.Context) {
	var req dto.GetMapsRequest
	if !httputil.BindJSON(c, &req, h.logger) {
		return
	}

	maps, err := h.useCase.GetMaps(c.Request.Context(), req.IDs)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapExchangeDataMapsToListResponse(maps))
}
