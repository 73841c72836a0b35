package domain

import (
	"encoding/json"
	"sort"

	validation "github.com/jellydator/validation"
	"github.com/samber/lo"

	"github.com/allisson/delegations/internal/errors"
	customValidation "github.com/allisson/delegations/internal/validation"
)

// SecureDelegation is one access grant for one entity.
//
// Every collection holds ciphertexts or opaque keys the server never decrypts:
//   - SecretIDs decrypt to the entity secret id used as linkage key in child entities.
//   - EncryptionKeys decrypt to the AES key protecting the entity encrypted payload.
//   - OwningEntityIDs decrypt to the id of the owning entity (e.g. the patient of a contact).
//   - ParentDelegations are keys, in the same SecurityMetadata, of the delegations this one
//     derives from. A delegation without parents is a root and always grants WRITE.
//
// Collections are sets: NewSecureDelegation sorts and de-duplicates them.
type SecureDelegation struct {
	Participants      Participants
	SecretIDs         []string
	EncryptionKeys    []string
	OwningEntityIDs   []string
	ParentDelegations []string
	Permissions       AccessLevel
}

// NewSecureDelegation normalizes the collections and validates the delegation invariants.
func NewSecureDelegation(
	participants Participants,
	secretIDs, encryptionKeys, owningEntityIDs, parentDelegations []string,
	permissions AccessLevel,
) (SecureDelegation, error) {
	d := SecureDelegation{
		Participants:      participants,
		SecretIDs:         normalizeSet(secretIDs),
		EncryptionKeys:    normalizeSet(encryptionKeys),
		OwningEntityIDs:   normalizeSet(owningEntityIDs),
		ParentDelegations: normalizeSet(parentDelegations),
		Permissions:       permissions,
	}
	if err := d.Validate(); err != nil {
		return SecureDelegation{}, err
	}
	return d, nil
}

// Validate checks the delegation invariants:
//   - delegator and delegate both disclosed iff an exchange data id is present;
//   - a root delegation (no parents) has WRITE permissions.
func (d SecureDelegation) Validate() error {
	// AnonymousParticipants{} withholds both data owners and is valid.
	if d.Participants == nil {
		return errors.Wrap(ErrInvalidSecureDelegation, "participants are required")
	}

	err := validation.ValidateStruct(&d,
		validation.Field(&d.Participants),
		validation.Field(&d.SecretIDs, customValidation.NonBlankElements),
		validation.Field(&d.EncryptionKeys, customValidation.NonBlankElements),
		validation.Field(&d.OwningEntityIDs, customValidation.NonBlankElements),
		validation.Field(&d.ParentDelegations, customValidation.NonBlankElements),
		validation.Field(&d.Permissions, validation.Required),
	)
	if err != nil {
		return errors.Wrap(ErrInvalidSecureDelegation, err.Error())
	}

	if d.IsRoot() && d.Permissions != AccessLevelWrite {
		return errors.Wrap(ErrInvalidSecureDelegation, "root delegations must grant WRITE permissions")
	}

	return nil
}

// IsRoot reports whether the delegation has no parent delegations.
func (d SecureDelegation) IsRoot() bool {
	return len(d.ParentDelegations) == 0
}

// normalized returns a copy with every collection in set form.
func (d SecureDelegation) normalized() SecureDelegation {
	d.SecretIDs = normalizeSet(d.SecretIDs)
	d.EncryptionKeys = normalizeSet(d.EncryptionKeys)
	d.OwningEntityIDs = normalizeSet(d.OwningEntityIDs)
	d.ParentDelegations = normalizeSet(d.ParentDelegations)
	return d
}

// secureDelegationJSON is the persisted/wire form of a SecureDelegation.
type secureDelegationJSON struct {
	Delegator         *string     `json:"delegator,omitempty"`
	Delegate          *string     `json:"delegate,omitempty"`
	SecretIDs         []string    `json:"secretIds"`
	EncryptionKeys    []string    `json:"encryptionKeys"`
	OwningEntityIDs   []string    `json:"owningEntityIds"`
	ParentDelegations []string    `json:"parentDelegations"`
	ExchangeDataID    *string     `json:"exchangeDataId,omitempty"`
	Permissions       AccessLevel `json:"permissions"`
}

// MarshalJSON encodes the delegation with its wire field names.
func (d SecureDelegation) MarshalJSON() ([]byte, error) {
	if d.Participants == nil {
		return nil, errors.Wrap(ErrInvalidSecureDelegation, "participants are required")
	}
	delegator, delegate, exchangeDataID := d.Participants.fields()
	n := d.normalized()
	return json.Marshal(secureDelegationJSON{
		Delegator:         delegator,
		Delegate:          delegate,
		SecretIDs:         n.SecretIDs,
		EncryptionKeys:    n.EncryptionKeys,
		OwningEntityIDs:   n.OwningEntityIDs,
		ParentDelegations: n.ParentDelegations,
		ExchangeDataID:    exchangeDataID,
		Permissions:       n.Permissions,
	})
}

// UnmarshalJSON decodes and validates a delegation; malformed payloads fail here.
func (d *SecureDelegation) UnmarshalJSON(data []byte) error {
	var raw secureDelegationJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	participants, err := NewParticipants(raw.Delegator, raw.Delegate, raw.ExchangeDataID)
	if err != nil {
		return errors.Wrap(ErrInvalidSecureDelegation, err.Error())
	}

	decoded, err := NewSecureDelegation(
		participants,
		raw.SecretIDs,
		raw.EncryptionKeys,
		raw.OwningEntityIDs,
		raw.ParentDelegations,
		raw.Permissions,
	)
	if err != nil {
		return err
	}

	*d = decoded
	return nil
}

// normalizeSet returns the sorted distinct elements of xs, never nil.
func normalizeSet(xs []string) []string {
	set := lo.Uniq(xs)
	sort.Strings(set)
	return set
}

// unionSets returns the normalized union of a and b.
func unionSets(a, b []string) []string {
	return normalizeSet(lo.Flatten([][]string{a, b}))
}

func sortedKeys[V any](in map[string]V) []string {
	keys := lo.Keys(in)
	sort.Strings(keys)
	return keys
}
