package domain

import (
	"time"

	validation "github.com/jellydator/validation"
	"github.com/samber/lo"

	"github.com/allisson/delegations/internal/errors"
	customValidation "github.com/allisson/delegations/internal/validation"
)

// ExchangeData is the directed key material linking a delegator to a delegate.
//
// Every keyed collection maps a public key fingerprint to a ciphertext or signature that only
// the owner of the matching private key can use. Several ciphertexts of the same plaintext are
// expected since RSA-OAEP encryption is randomized.
type ExchangeData struct {
	// ID is the identifier referenced by secure delegations.
	ID string
	// Rev is the optimistic-concurrency revision; 0 means never persisted.
	Rev uint
	// Delegator is the data owner granting access.
	Delegator string
	// Delegate is the data owner receiving access.
	Delegate string
	// ExchangeKey holds the AES exchange key encrypted for each participant key.
	ExchangeKey map[string]string
	// AccessControlSecret holds the secret used to derive access-control hashes.
	AccessControlSecret map[string]string
	// SharedSignatureKey holds the HMAC key allowing either participant to amend the record.
	SharedSignatureKey map[string]string
	// DelegatorSignature holds the delegator signatures over the decrypted key material.
	DelegatorSignature map[string]string
	// SharedSignature is the HMAC over key material and participants.
	SharedSignature string
	// CreatedAt is the UTC timestamp of the first revision.
	CreatedAt time.Time
	// UpdatedAt is the UTC timestamp of the latest revision.
	UpdatedAt time.Time

	signaturesNeedRevalidation bool
}

// Validate checks that participants are set and that every keyed collection holds at least
// one entry.
func (e *ExchangeData) Validate() error {
	err := validation.ValidateStruct(e,
		validation.Field(&e.Delegator, validation.Required, customValidation.NotBlank),
		validation.Field(&e.Delegate, validation.Required, customValidation.NotBlank),
		validation.Field(&e.ExchangeKey, validation.Required, customValidation.NonBlankEntries),
		validation.Field(&e.AccessControlSecret, validation.Required, customValidation.NonBlankEntries),
		validation.Field(&e.SharedSignatureKey, validation.Required, customValidation.NonBlankEntries),
		validation.Field(&e.DelegatorSignature, validation.Required, customValidation.NonBlankEntries),
		validation.Field(&e.SharedSignature, validation.Required, customValidation.NotBlank),
	)
	if err != nil {
		return errors.Wrap(ErrInvalidExchangeData, err.Error())
	}
	return nil
}

// SolveConflictsWith reconciles two revisions of the same exchange data.
//
// Keyed collections are unioned; when both revisions hold a different ciphertext for the same
// fingerprint the one of e is kept, since both decrypt to the same plaintext. The union of
// two signature sets is not itself a valid signature: when other contributes signature
// material the result reports SignaturesNeedRevalidation until a client re-signs it.
func (e *ExchangeData) SolveConflictsWith(other *ExchangeData) (*ExchangeData, error) {
	if e.Delegator != other.Delegator || e.Delegate != other.Delegate {
		return nil, errors.Wrapf(
			ErrIncompatibleExchangeData,
			"%s -> %s cannot be merged with %s -> %s",
			e.Delegator,
			e.Delegate,
			other.Delegator,
			other.Delegate,
		)
	}

	merged := &ExchangeData{
		ID:                  e.ID,
		Rev:                 max(e.Rev, other.Rev),
		Delegator:           e.Delegator,
		Delegate:            e.Delegate,
		ExchangeKey:         unionKeyed(e.ExchangeKey, other.ExchangeKey),
		AccessControlSecret: unionKeyed(e.AccessControlSecret, other.AccessControlSecret),
		SharedSignatureKey:  unionKeyed(e.SharedSignatureKey, other.SharedSignatureKey),
		DelegatorSignature:  unionKeyed(e.DelegatorSignature, other.DelegatorSignature),
		SharedSignature:     e.SharedSignature,
		CreatedAt:           earliest(e.CreatedAt, other.CreatedAt),
		UpdatedAt:           latest(e.UpdatedAt, other.UpdatedAt),
	}

	merged.signaturesNeedRevalidation = e.signaturesNeedRevalidation ||
		other.signaturesNeedRevalidation ||
		len(merged.DelegatorSignature) != len(e.DelegatorSignature) ||
		len(merged.SharedSignatureKey) != len(e.SharedSignatureKey) ||
		other.SharedSignature != e.SharedSignature

	return merged, nil
}

// SignaturesNeedRevalidation reports whether the record results from a merge that changed its
// signature material.
func (e *ExchangeData) SignaturesNeedRevalidation() bool {
	return e.signaturesNeedRevalidation
}

// Fingerprints returns the sorted fingerprints the exchange key is encrypted for.
func (e *ExchangeData) Fingerprints() []string {
	return sortedMapKeys(e.ExchangeKey)
}

// Involves reports whether ownerID is the delegator or the delegate.
func (e *ExchangeData) Involves(ownerID string) bool {
	return e.Delegator == ownerID || e.Delegate == ownerID
}

// unionKeyed returns the union of two keyed collections where entries of this win.
func unionKeyed(this, other map[string]string) map[string]string {
	return lo.Assign(other, this)
}

func earliest(a, b time.Time) time.Time {
	if a.IsZero() || (!b.IsZero() && b.Before(a)) {
		return b
	}
	return a
}

func latest(a, b time.Time) time.Time {
	if b.After(a) {
		return b
	}
	return a
}
