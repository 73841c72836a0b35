package dto

import (
	"time"

	"github.com/allisson/delegations/internal/delegation/domain"
)

// SecurityMetadataResponse represents the stored security metadata of an entity.
type SecurityMetadataResponse struct {
	EntityType string                  `json:"entityType"`
	EntityID   string                  `json:"entityId"`
	Rev        uint                    `json:"rev"`
	Metadata   domain.SecurityMetadata `json:"metadata"`
	CreatedAt  time.Time               `json:"createdAt"`
	UpdatedAt  time.Time               `json:"updatedAt"`
}

// DelegationResponse represents one delegation resolved from a key or an alias.
type DelegationResponse struct {
	// Key is the canonical key of the delegation.
	Key        string                  `json:"key"`
	Delegation domain.SecureDelegation `json:"delegation"`
}

// AliasesResponse lists every alias of a canonical key.
type AliasesResponse struct {
	Key     string   `json:"key"`
	Aliases []string `json:"aliases"`
}

// MapEntityMetadataToResponse converts stored entity metadata to an API response.
func MapEntityMetadataToResponse(doc *domain.EntityMetadata) SecurityMetadataResponse {
	return SecurityMetadataResponse{
		EntityType: doc.EntityType,
		EntityID:   doc.EntityID,
		Rev:        doc.Rev,
		Metadata:   doc.Metadata,
		CreatedAt:  doc.CreatedAt,
		UpdatedAt:  doc.UpdatedAt,
	}
}
