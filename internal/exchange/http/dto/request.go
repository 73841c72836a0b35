// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	"github.com/allisson/delegations/internal/exchange/domain"
	customValidation "github.com/allisson/delegations/internal/validation"
)

// ExchangeDataRequest contains the key material linking a delegator to a delegate.
// On update the id is extracted from the URL parameter.
type ExchangeDataRequest struct {
	// Rev is the revision the client based its changes on. Ignored on create.
	Rev                 uint              `json:"rev"`
	Delegator           string            `json:"delegator"`
	Delegate            string            `json:"delegate"`
	ExchangeKey         map[string]string `json:"exchangeKey"`
	AccessControlSecret map[string]string `json:"accessControlSecret"`
	SharedSignatureKey  map[string]string `json:"sharedSignatureKey"`
	DelegatorSignature  map[string]string `json:"delegatorSignature"`
	SharedSignature     string            `json:"sharedSignature"`
}

// Validate checks if the exchange data request is valid.
func (r *ExchangeDataRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Delegator, validation.Required, customValidation.NotBlank),
		validation.Field(&r.Delegate, validation.Required, customValidation.NotBlank),
		validation.Field(&r.ExchangeKey, validation.Required, customValidation.NonBlankEntries),
		validation.Field(&r.AccessControlSecret, validation.Required, customValidation.NonBlankEntries),
		validation.Field(&r.SharedSignatureKey, validation.Required, customValidation.NonBlankEntries),
		validation.Field(&r.DelegatorSignature, validation.Required, customValidation.NonBlankEntries),
		validation.Field(&r.SharedSignature, validation.Required, customValidation.NotBlank),
	)
}

// ToDomain converts the request into exchange data with the given id.
func (r *ExchangeDataRequest) ToDomain(id string) *domain.ExchangeData {
	return &domain.ExchangeData{
		ID:                  id,
		Rev:                 r.Rev,
		Delegator:           r.Delegator,
		Delegate:            r.Delegate,
		ExchangeKey:         r.ExchangeKey,
		AccessControlSecret: r.AccessControlSecret,
		SharedSignatureKey:  r.SharedSignatureKey,
		DelegatorSignature:  r.DelegatorSignature,
		SharedSignature:     r.SharedSignature,
	}
}

// ExchangeDataMapRequest contains the entries to add to one exchange data map.
type ExchangeDataMapRequest struct {
	ID                       string            `json:"id"`
	EncryptedExchangeDataIDs map[string]string `json:"encryptedExchangeDataIds"`
}

// Validate checks if the exchange data map request is valid.
func (r ExchangeDataMapRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Required, customValidation.NotBlank, customValidation.NoWhitespace),
		validation.Field(&r.EncryptedExchangeDataIDs, validation.Required, customValidation.NonBlankEntries),
	)
}

// CreateOrAppendMapsRequest contains a batch of exchange data maps.
type CreateOrAppendMapsRequest struct {
	Maps []ExchangeDataMapRequest `json:"maps"`
}

// Validate checks the batch is not empty and every map is valid.
func (r *CreateOrAppendMapsRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Maps, validation.Required),
	)
}

// ToDomain converts the batch into exchange data maps.
func (r *CreateOrAppendMapsRequest) ToDomain() []*domain.ExchangeDataMap {
	maps := make([]*domain.ExchangeDataMap, 0, len(r.Maps))
	for _, m := range r.Maps {
		maps = append(maps, &domain.ExchangeDataMap{
			ID:                       m.ID,
			EncryptedExchangeDataIDs: m.EncryptedExchangeDataIDs,
		})
	}
	return maps
}

// GetMapsRequest contains the ids of the exchange data maps to retrieve.
type GetMapsRequest struct {
	IDs []string `json:"ids"`
}

// Validate checks if the get maps request is valid.
func (r *GetMapsRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.IDs, validation.Required, validation.Length(1, 1000), customValidation.NonBlankElements),
	)
}
