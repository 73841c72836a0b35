// Package domain defines the crypto-relevant projection of data owners.
package domain

import (
	"encoding/hex"
	"sort"
	"strings"

	validation "github.com/jellydator/validation"
	"github.com/samber/lo"

	"github.com/allisson/delegations/internal/errors"
	customValidation "github.com/allisson/delegations/internal/validation"
)

// Crypto-actor error definitions.
var (
	// ErrInvalidCryptoActor indicates a stub without id or with an unknown owner type.
	ErrInvalidCryptoActor = errors.Wrap(errors.ErrInvalidInput, "invalid crypto actor")

	// ErrCryptoActorNotFound indicates no data owner exists with the given id.
	ErrCryptoActorNotFound = errors.Wrap(errors.ErrNotFound, "crypto actor not found")

	// ErrStaleCryptoActor indicates an update based on a revision that is no longer current.
	ErrStaleCryptoActor = errors.Wrap(errors.ErrConflict, "crypto actor revision is outdated")
)

// fingerprintLength is the length of a v2 public key fingerprint in hex characters.
const fingerprintLength = 32

// DataOwnerType is the kind of data owner.
type DataOwnerType string

const (
	DataOwnerTypeHcp     DataOwnerType = "hcp"
	DataOwnerTypePatient DataOwnerType = "patient"
	DataOwnerTypeDevice  DataOwnerType = "device"
)

// Validate checks if the data owner type is known.
func (t DataOwnerType) Validate() error {
	switch t {
	case DataOwnerTypeHcp, DataOwnerTypePatient, DataOwnerTypeDevice:
		return nil
	default:
		return errors.Wrapf(ErrInvalidCryptoActor, "unknown data owner type %q", string(t))
	}
}

// CryptoActorStub holds the public crypto material of a data owner.
type CryptoActorStub struct {
	ID                          string
	Rev                         uint
	PublicKey                   string
	PublicKeysForOaepWithSha256 []string
	// HcPartyKeys maps a counterpart id to the legacy pair of encrypted exchange keys.
	HcPartyKeys map[string][]string
	// AesExchangeKeys maps one of this owner public keys to counterpart id to fingerprint to
	// the encrypted exchange key.
	AesExchangeKeys map[string]map[string]map[string]string
	// TransferKeys maps a fingerprint of a lost key pair to the fingerprint of its replacement
	// to the encrypted private key.
	TransferKeys               map[string]map[string]string
	PrivateKeyShamirPartitions map[string]string
	ParentID                   *string
}

// Validate checks the stub has an id and hex-encoded public keys.
func (s *CryptoActorStub) Validate() error {
	err := validation.ValidateStruct(s,
		validation.Field(&s.ID, validation.Required, customValidation.NotBlank, customValidation.NoWhitespace),
		validation.Field(&s.PublicKey, validation.By(hexKey)),
		validation.Field(&s.PublicKeysForOaepWithSha256, validation.Each(validation.By(hexKey))),
	)
	if err != nil {
		return errors.Wrap(ErrInvalidCryptoActor, err.Error())
	}
	return nil
}

// AllPublicKeys returns every public key of the stub, sorted and without duplicates.
func (s *CryptoActorStub) AllPublicKeys() []string {
	keys := lo.Filter(append([]string{s.PublicKey}, s.PublicKeysForOaepWithSha256...), func(k string, _ int) bool {
		return k != ""
	})
	keys = lo.Uniq(keys)
	sort.Strings(keys)
	return keys
}

// Fingerprints returns the v2 fingerprints of all public keys.
func (s *CryptoActorStub) Fingerprints() []string {
	fingerprints := lo.Uniq(lo.Map(s.AllPublicKeys(), func(k string, _ int) string {
		return Fingerprint(k)
	}))
	sort.Strings(fingerprints)
	return fingerprints
}

// HasPublicKeyFingerprint reports whether one of the public keys has the given fingerprint.
func (s *CryptoActorStub) HasPublicKeyFingerprint(fingerprint string) bool {
	return lo.Contains(s.Fingerprints(), strings.ToLower(fingerprint))
}

// Fingerprint returns the v2 fingerprint of a hex-encoded SPKI public key: its last 32 hex
// characters.
func Fingerprint(publicKey string) string {
	k := strings.ToLower(publicKey)
	if len(k) <= fingerprintLength {
		return k
	}
	return k[len(k)-fingerprintLength:]
}

// CryptoActorStubWithType associates a stub with the kind of data owner it belongs to.
type CryptoActorStubWithType struct {
	Type DataOwnerType
	Stub CryptoActorStub
}

// Validate checks both the type and the stub.
func (s *CryptoActorStubWithType) Validate() error {
	if err := s.Type.Validate(); err != nil {
		return err
	}
	return s.Stub.Validate()
}

func hexKey(value interface{}) error {
	k, _ := value.(string)
	if k == "" {
		return nil
	}
	if _, err := hex.DecodeString(k); err != nil {
		return validation.NewError("validation_hex_key", "must be a hex-encoded public key")
	}
	return nil
}
