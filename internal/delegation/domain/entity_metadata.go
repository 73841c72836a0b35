package domain

import (
	"time"

	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/delegations/internal/validation"
)

// EntityMetadata is the stored security metadata of one entity.
type EntityMetadata struct {
	// EntityType is the kind of entity, e.g. "Patient" or "Contact".
	EntityType string
	// EntityID identifies the entity within its type.
	EntityID string
	// Rev is the optimistic-concurrency revision; 0 means never persisted.
	Rev uint
	// Metadata is the access-control graph of the entity.
	Metadata SecurityMetadata
	// CreatedAt is the UTC timestamp of the first revision.
	CreatedAt time.Time
	// UpdatedAt is the UTC timestamp of the latest revision.
	UpdatedAt time.Time
}

// Validate checks the document identifiers and that metadata has been set.
func (e EntityMetadata) Validate() error {
	err := validation.ValidateStruct(&e,
		validation.Field(&e.EntityType, validation.Required, customValidation.NotBlank, customValidation.NoWhitespace),
		validation.Field(&e.EntityID, validation.Required, customValidation.NotBlank, customValidation.NoWhitespace),
	)
	if err != nil {
		return customValidation.WrapValidationError(err)
	}
	if e.Metadata.Len() == 0 {
		return ErrInvalidSecurityMetadata
	}
	return nil
}
