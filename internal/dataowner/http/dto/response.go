package dto

import (
	"github.com/allisson/delegations/internal/dataowner/domain"
)

// CryptoActorResponse represents a data owner crypto material in API responses.
type CryptoActorResponse struct {
	ID                          string                                  `json:"id"`
	Rev                         uint                                    `json:"rev"`
	Type                        string                                  `json:"type"`
	PublicKey                   string                                  `json:"publicKey,omitempty"`
	PublicKeysForOaepWithSha256 []string                                `json:"publicKeysForOaepWithSha256,omitempty"`
	Fingerprints                []string                                `json:"fingerprints"`
	HcPartyKeys                 map[string][]string                     `json:"hcPartyKeys,omitempty"`
	AesExchangeKeys             map[string]map[string]map[string]string `json:"aesExchangeKeys,omitempty"`
	TransferKeys                map[string]map[string]string            `json:"transferKeys,omitempty"`
	PrivateKeyShamirPartitions  map[string]string                       `json:"privateKeyShamirPartitions,omitempty"`
	ParentID                    *string                                 `json:"parentId,omitempty"`
}

// MapCryptoActorToResponse converts a typed crypto actor to an API response.
func MapCryptoActorToResponse(actor *domain.CryptoActorStubWithType) CryptoActorResponse {
	return CryptoActorResponse{
		ID:                          actor.Stub.ID,
		Rev:                         actor.Stub.Rev,
		Type:                        string(actor.Type),
		PublicKey:                   actor.Stub.PublicKey,
		PublicKeysForOaepWithSha256: actor.Stub.PublicKeysForOaepWithSha256,
		Fingerprints:                actor.Stub.Fingerprints(),
		HcPartyKeys:                 actor.Stub.HcPartyKeys,
		AesExchangeKeys:             actor.Stub.AesExchangeKeys,
		TransferKeys:                actor.Stub.TransferKeys,
		PrivateKeyShamirPartitions:  actor.Stub.PrivateKeyShamirPartitions,
		ParentID:                    actor.Stub.ParentID,
	}
}
