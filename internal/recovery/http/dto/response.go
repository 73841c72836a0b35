package dto

import (
	"time"

	"github.com/samber/lo"

	"github.com/allisson/delegations/internal/recovery/domain"
)

// RecoveryDataResponse represents a recovery record in API responses.
type RecoveryDataResponse struct {
	ID                string     `json:"id"`
	Rev               uint       `json:"rev"`
	Recipient         string     `json:"recipient"`
	EncryptedSelf     string     `json:"encryptedSelf"`
	Type              string     `json:"type"`
	ExpirationInstant *time.Time `json:"expirationInstant,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
}

// ListRecoveryDataResponse represents a list of recovery records in API responses.
type ListRecoveryDataResponse struct {
	Data []RecoveryDataResponse `json:"data"`
}

// PurgeResponse reports how many records were purged.
type PurgeResponse struct {
	Deleted int64 `json:"deleted"`
}

// MapRecoveryDataToResponse converts a domain recovery record to an API response.
func MapRecoveryDataToResponse(r *domain.RecoveryData) RecoveryDataResponse {
	return RecoveryDataResponse{
		ID:                r.ID,
		Rev:               r.Rev,
		Recipient:         r.Recipient,
		EncryptedSelf:     r.EncryptedSelf,
		Type:              string(r.Type),
		ExpirationInstant: r.ExpirationInstant,
		CreatedAt:         r.CreatedAt,
	}
}

// MapRecoveryDataToListResponse converts a slice of domain recovery records to a list response.
func MapRecoveryDataToListResponse(list []*domain.RecoveryData) ListRecoveryDataResponse {
	return ListRecoveryDataResponse{
		Data: lo.Map(list, func(r *domain.RecoveryData, _ int) RecoveryDataResponse {
			return MapRecoveryDataToResponse(r)
		}),
	}
}
