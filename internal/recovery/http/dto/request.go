// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	validation "github.com/jellydator/validation"

	"github.com/allisson/delegations/internal/recovery/domain"
	customValidation "github.com/allisson/delegations/internal/validation"
)

// CreateRecoveryDataRequest contains a new recovery record. The id is generated when omitted.
type CreateRecoveryDataRequest struct {
	ID                string     `json:"id"`
	Recipient         string     `json:"recipient"`
	EncryptedSelf     string     `json:"encryptedSelf"`
	Type              string     `json:"type"`
	ExpirationInstant *time.Time `json:"expirationInstant"`
}

// Validate checks if the create recovery data request is valid.
func (r *CreateRecoveryDataRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ID, customValidation.NoWhitespace),
		validation.Field(&r.Recipient, validation.Required, customValidation.NotBlank),
		validation.Field(&r.EncryptedSelf, validation.Required, customValidation.NotBlank),
		validation.Field(&r.Type,
			validation.Required,
			validation.In(string(domain.TypeKeypairRecovery), string(domain.TypeExchangeKeyRecovery)),
		),
	)
}

// ToDomain converts the request into a recovery record.
func (r *CreateRecoveryDataRequest) ToDomain() *domain.RecoveryData {
	return &domain.RecoveryData{
		ID:                r.ID,
		Recipient:         r.Recipient,
		EncryptedSelf:     r.EncryptedSelf,
		Type:              domain.Type(r.Type),
		ExpirationInstant: r.ExpirationInstant,
	}
}
