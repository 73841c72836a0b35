// Package http provides HTTP handlers for the security metadata of shared entities.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/delegations/internal/delegation/domain"
	"github.com/allisson/delegations/internal/delegation/http/dto"
	delegationUseCase "github.com/allisson/delegations/internal/delegation/usecase"
	"github.com/allisson/delegations/internal/httputil"
)

// SecurityMetadataHandler handles HTTP requests for security metadata operations.
type SecurityMetadataHandler struct {
	useCase delegationUseCase.SecurityMetadataUseCase
	logger  *slog.Logger
}

// NewSecurityMetadataHandler creates a new security metadata handler with required dependencies.
func NewSecurityMetadataHandler(
	useCase delegationUseCase.SecurityMetadataUseCase,
	logger *slog.Logger,
) *SecurityMetadataHandler {
	return &SecurityMetadataHandler{
		useCase: useCase,
		logger:  logger,
	}
}

// GetHandler retrieves the security metadata of an entity.
// GET /v1/security-metadata/:entityType/:entityId
func (h *SecurityMetadataHandler) GetHandler(c *gin.Context) {
	doc, err := h.useCase.Get(c.Request.Context(), c.Param("entityType"), c.Param("entityId"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapEntityMetadataToResponse(doc))
}

// SaveHandler stores a new revision of the security metadata of an entity. Revisions based
// on an outdated document are merged with the stored one.
// PUT /v1/security-metadata/:entityType/:entityId
func (h *SecurityMetadataHandler) SaveHandler(c *gin.Context) {
	var req dto.SaveSecurityMetadataRequest
	if !httputil.BindJSON(c, &req, h.logger) {
		return
	}

	doc, err := h.useCase.Save(c.Request.Context(), &domain.EntityMetadata{
		EntityType: c.Param("entityType"),
		EntityID:   c.Param("entityId"),
		Rev:        req.Rev,
		Metadata:   *req.Metadata,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapEntityMetadataToResponse(doc))
}

// ResolveConflictsHandler folds conflicting revisions into the stored metadata.
// POST /v1/security-metadata/:entityType/:entityId/conflicts
func (h *SecurityMetadataHandler) ResolveConflictsHandler(c *gin.Context) {
	var req dto.ResolveConflictsRequest
	if !httputil.BindJSON(c, &req, h.logger) {
		return
	}

	doc, err := h.useCase.ResolveConflicts(
		c.Request.Context(),
		c.Param("entityType"),
		c.Param("entityId"),
		req.Revisions,
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapEntityMetadataToResponse(doc))
}

// MergeDuplicatesHandler merges the metadata of a duplicated entity into this one.
// POST /v1/security-metadata/:entityType/:entityId/duplicates
func (h *SecurityMetadataHandler) MergeDuplicatesHandler(c *gin.Context) {
	var req dto.MergeDuplicatesRequest
	if !httputil.BindJSON(c, &req, h.logger) {
		return
	}

	doc, err := h.useCase.MergeDuplicates(
		c.Request.Context(),
		c.Param("entityType"),
		c.Param("entityId"),
		req.FromID,
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapEntityMetadataToResponse(doc))
}

// ShareWithHandler grants a delegation on an entity.
// POST /v1/security-metadata/:entityType/:entityId/delegations
func (h *SecurityMetadataHandler) ShareWithHandler(c *gin.Context) {
	var req dto.ShareWithRequest
	if !httputil.BindJSON(c, &req, h.logger) {
		return
	}

	doc, err := h.useCase.ShareWith(
		c.Request.Context(),
		c.Param("entityType"),
		c.Param("entityId"),
		req.Key,
		*req.Delegation,
		req.Aliases,
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapEntityMetadataToResponse(doc))
}

// GetDelegationHandler resolves a delegation by canonical key or alias.
// GET /v1/security-metadata/:entityType/:entityId/delegations/:key
func (h *SecurityMetadataHandler) GetDelegationHandler(c *gin.Context) {
	key, delegation, err := h.useCase.GetDelegation(
		c.Request.Context(),
		c.Param("entityType"),
		c.Param("entityId"),
		c.Param("key"),
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.DelegationResponse{Key: key, Delegation: delegation})
}

// GetAliasesHandler lists the aliases of a canonical key.
// GET /v1/security-metadata/:entityType/:entityId/aliases/:key
func (h *SecurityMetadataHandler) GetAliasesHandler(c *gin.Context) {
	key := c.Param("key")
	aliases, err := h.useCase.AllAliasesOf(c.Request.Context(), c.Param("entityType"), c.Param("entityId"), key)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	if aliases == nil {
		aliases = []string{}
	}

	c.JSON(http.StatusOK, dto.AliasesResponse{Key: key, Aliases: aliases})
}
