// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	"github.com/allisson/delegations/internal/dataowner/domain"
	customValidation "github.com/allisson/delegations/internal/validation"
)

// PutCryptoActorRequest contains the public crypto material of a data owner.
// The owner type and id are extracted from the URL parameters.
type PutCryptoActorRequest struct {
	// Rev is the stored revision being replaced; 0 creates the actor.
	Rev                         uint                                    `json:"rev"`
	PublicKey                   string                                  `json:"publicKey"`
	PublicKeysForOaepWithSha256 []string                                `json:"publicKeysForOaepWithSha256"`
	HcPartyKeys                 map[string][]string                     `json:"hcPartyKeys"`
	AesExchangeKeys             map[string]map[string]map[string]string `json:"aesExchangeKeys"`
	TransferKeys                map[string]map[string]string            `json:"transferKeys"`
	PrivateKeyShamirPartitions  map[string]string                       `json:"privateKeyShamirPartitions"`
	ParentID                    *string                                 `json:"parentId"`
}

// Validate checks if the put crypto actor request is valid.
func (r *PutCryptoActorRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.PublicKey, customValidation.NoWhitespace),
		validation.Field(&r.PublicKeysForOaepWithSha256, customValidation.NonBlankElements),
		validation.Field(&r.PrivateKeyShamirPartitions, customValidation.NonBlankEntries),
		validation.Field(&r.ParentID, validation.NilOrNotEmpty),
	)
}

// ToDomain converts the request into a typed crypto actor.
func (r *PutCryptoActorRequest) ToDomain(ownerType, id string) *domain.CryptoActorStubWithType {
	return &domain.CryptoActorStubWithType{
		Type: domain.DataOwnerType(ownerType),
		Stub: domain.CryptoActorStub{
			ID:                          id,
			Rev:                         r.Rev,
			PublicKey:                   r.PublicKey,
			PublicKeysForOaepWithSha256: r.PublicKeysForOaepWithSha256,
			HcPartyKeys:                 r.HcPartyKeys,
			AesExchangeKeys:             r.AesExchangeKeys,
			TransferKeys:                r.TransferKeys,
			PrivateKeyShamirPartitions:  r.PrivateKeyShamirPartitions,
			ParentID:                    r.ParentID,
		},
	}
}
