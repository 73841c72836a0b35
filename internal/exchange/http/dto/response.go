package dto

import (
	"time"

	"github.com/samber/lo"

	"github.com/allisson/delegations/internal/exchange/domain"
)

// ExchangeDataResponse represents exchange data in API responses.
type ExchangeDataResponse struct {
	ID                  string            `json:"id"`
	Rev                 uint              `json:"rev"`
	Delegator           string            `json:"delegator"`
	Delegate            string            `json:"delegate"`
	ExchangeKey         map[string]string `json:"exchangeKey"`
	AccessControlSecret map[string]string `json:"accessControlSecret"`
	SharedSignatureKey  map[string]string `json:"sharedSignatureKey"`
	DelegatorSignature  map[string]string `json:"delegatorSignature"`
	SharedSignature     string            `json:"sharedSignature"`
	CreatedAt           time.Time         `json:"createdAt"`
	UpdatedAt           time.Time         `json:"updatedAt"`
}

// ListExchangeDataResponse represents a list of exchange data in API responses.
type ListExchangeDataResponse struct {
	Data []ExchangeDataResponse `json:"data"`
}

// ExchangeDataMapResponse represents an exchange data map in API responses.
type ExchangeDataMapResponse struct {
	ID                       string            `json:"id"`
	Rev                      uint              `json:"rev"`
	EncryptedExchangeDataIDs map[string]string `json:"encryptedExchangeDataIds"`
	CreatedAt                time.Time         `json:"createdAt"`
	UpdatedAt                time.Time         `json:"updatedAt"`
}

// ListExchangeDataMapsResponse represents a list of exchange data maps in API responses.
type ListExchangeDataMapsResponse struct {
	Data []ExchangeDataMapResponse `json:"data"`
}

// MapExchangeDataToResponse converts domain exchange data to an API response.
func MapExchangeDataToResponse(ed *domain.ExchangeData) ExchangeDataResponse {
	return ExchangeDataResponse{
		ID:                  ed.ID,
		Rev:                 ed.Rev,
		Delegator:           ed.Delegator,
		Delegate:            ed.Delegate,
		ExchangeKey:         ed.ExchangeKey,
		AccessControlSecret: ed.AccessControlSecret,
		SharedSignatureKey:  ed.SharedSignatureKey,
		DelegatorSignature:  ed.DelegatorSignature,
		SharedSignature:     ed.SharedSignature,
		CreatedAt:           ed.CreatedAt,
		UpdatedAt:           ed.UpdatedAt,
	}
}

// MapExchangeDataToListResponse converts a slice of domain exchange data to a list response.
func MapExchangeDataToListResponse(list []*domain.ExchangeData) ListExchangeDataResponse {
	return ListExchangeDataResponse{
		Data: lo.Map(list, func(ed *domain.ExchangeData, _ int) ExchangeDataResponse {
			return MapExchangeDataToResponse(ed)
		}),
	}
}

// MapExchangeDataMapToResponse converts a domain exchange data map to an API response.
func MapExchangeDataMapToResponse(m *domain.ExchangeDataMap) ExchangeDataMapResponse {
	return ExchangeDataMapResponse{
		ID:                       m.ID,
		Rev:                      m.Rev,
		EncryptedExchangeDataIDs: m.EncryptedExchangeDataIDs,
		CreatedAt:                m.CreatedAt,
		UpdatedAt:                m.UpdatedAt,
	}
}

// MapExchangeDataMapsToListResponse converts a slice of domain exchange data maps to a list response.
func MapExchangeDataMapsToListResponse(maps []*domain.ExchangeDataMap) ListExchangeDataMapsResponse {
	return ListExchangeDataMapsResponse{
		Data: lo.Map(maps, func(m *domain.ExchangeDataMap, _ int) ExchangeDataMapResponse {
			return MapExchangeDataMapToResponse(m)
		}),
	}
}
