// Package domain defines emergency key-recovery records.
//
// Recovery data is opaque to the server: EncryptedSelf can only be read by the recipient.
// Records are never soft-deleted; once they are no longer needed they are purged.
package domain

import (
	"time"

	validation "github.com/jellydator/validation"

	"github.com/allisson/delegations/internal/errors"
	customValidation "github.com/allisson/delegations/internal/validation"
)

// Recovery-data error definitions.
var (
	// ErrInvalidRecoveryData indicates a record without recipient, content or known type.
	ErrInvalidRecoveryData = errors.Wrap(errors.ErrInvalidInput, "invalid recovery data")

	// ErrRecoveryDataNotFound indicates the record does not exist or has expired.
	ErrRecoveryDataNotFound = errors.Wrap(errors.ErrNotFound, "recovery data not found")

	// ErrSoftDeleteNotSupported is returned by every attempt to mark recovery data as deleted.
	ErrSoftDeleteNotSupported = errors.Wrap(
		errors.ErrUnsupportedOperation,
		"recovery data can only be purged, not soft-deleted",
	)
)

// Type is the purpose of a recovery record.
type Type string

const (
	// TypeKeypairRecovery carries a data owner key pair.
	TypeKeypairRecovery Type = "KEYPAIR_RECOVERY"
	// TypeExchangeKeyRecovery carries exchange keys a delegator shared with the recipient.
	TypeExchangeKeyRecovery Type = "EXCHANGE_KEY_RECOVERY"
)

// Validate checks if the type is known.
func (t Type) Validate() error {
	switch t {
	case TypeKeypairRecovery, TypeExchangeKeyRecovery:
		return nil
	default:
		return errors.Wrapf(ErrInvalidRecoveryData, "unknown type %q", string(t))
	}
}

// RecoveryData is an encrypted recovery record for one recipient.
type RecoveryData struct {
	ID                string
	Rev               uint
	Recipient         string
	EncryptedSelf     string
	Type              Type
	ExpirationInstant *time.Time
	CreatedAt         time.Time
}

// Validate checks the required fields and the type.
func (r *RecoveryData) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Recipient, validation.Required, customValidation.NotBlank),
		validation.Field(&r.EncryptedSelf, validation.Required, customValidation.NotBlank),
		validation.Field(&r.Type, validation.Required),
	)
	if err != nil {
		return errors.Wrap(ErrInvalidRecoveryData, err.Error())
	}
	return nil
}

// IsExpired reports whether the record has an expiration instant at or before now.
func (r *RecoveryData) IsExpired(now time.Time) bool {
	return r.ExpirationInstant != nil && !r.ExpirationInstant.After(now)
}

// WithDeletionDate always fails: recovery data supports hard deletion only.
func (r *RecoveryData) WithDeletionDate(time.Time) (*RecoveryData, error) {
	return nil, ErrSoftDeleteNotSupported
}
