// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	"github.com/allisson/delegations/internal/delegation/domain"
	customValidation "github.com/allisson/delegations/internal/validation"
)

// SaveSecurityMetadataRequest contains a new revision of the metadata of an entity.
// The entity type and id are extracted from the URL parameters.
type SaveSecurityMetadataRequest struct {
	// Rev is the revision the client based its changes on; 0 creates the document.
	Rev      uint                     `json:"rev"`
	Metadata *domain.SecurityMetadata `json:"metadata"`
}

// Validate checks if the save request is valid.
func (r *SaveSecurityMetadataRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Metadata, validation.NotNil),
	)
}

// ResolveConflictsRequest contains the conflicting revisions to fold into the stored metadata.
type ResolveConflictsRequest struct {
	Revisions []domain.SecurityMetadata `json:"revisions"`
}

// Validate checks if the resolve conflicts request is valid.
func (r *ResolveConflictsRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Revisions, validation.Required),
	)
}

// MergeDuplicatesRequest names the duplicated entity merged into the entity of the URL.
type MergeDuplicatesRequest struct {
	FromID string `json:"fromId"`
}

// Validate checks if the merge duplicates request is valid.
func (r *MergeDuplicatesRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.FromID,
			validation.Required,
			customValidation.NotBlank,
			customValidation.NoWhitespace,
		),
	)
}

// ShareWithRequest contains a delegation to grant under key, and the aliases of key.
type ShareWithRequest struct {
	Key        string                   `json:"key"`
	Delegation *domain.SecureDelegation `json:"delegation"`
	Aliases    []string                 `json:"aliases"`
}

// Validate checks if the share request is valid.
func (r *ShareWithRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Key, validation.Required, customValidation.NotBlank),
		validation.Field(&r.Delegation, validation.NotNil),
		validation.Field(&r.Aliases, customValidation.NonBlankElements),
	)
}
