// Package domain defines the access-control metadata attached to every shared entity.
//
// A SecurityMetadata is a graph of SecureDelegation values keyed by access-control hashes.
// Hashes are computed client-side from exchange data secrets; the server treats them as
// opaque keys. Several hashes may designate the same delegation: the extra ones are stored
// as aliases in keysEquivalences. Values in this package are immutable: every operation that
// changes metadata returns a new, fully validated instance.
package domain

import (
	"encoding/json"

	"github.com/samber/lo"

	"github.com/allisson/delegations/internal/errors"
)

// SecurityMetadata is the per-entity aggregate of secure delegations and key aliases.
type SecurityMetadata struct {
	secureDelegations map[string]SecureDelegation
	keysEquivalences  map[string]string
}

// NewSecurityMetadata validates and builds security metadata. The input maps are copied.
//
// It fails when there are no delegations, when a delegation is invalid, when an alias is
// blank, shadows a canonical key or targets an unknown key, and when the parent graph
// contains a cycle.
func NewSecurityMetadata(
	secureDelegations map[string]SecureDelegation,
	keysEquivalences map[string]string,
) (SecurityMetadata, error) {
	if len(secureDelegations) == 0 {
		return SecurityMetadata{}, errors.Wrap(
			ErrInvalidSecurityMetadata,
			"at least one secure delegation is required",
		)
	}

	delegations := make(map[string]SecureDelegation, len(secureDelegations))
	for key, delegation := range secureDelegations {
		if isBlank(key) {
			return SecurityMetadata{}, errors.Wrap(ErrInvalidSecurityMetadata, "delegation keys must not be blank")
		}
		normalized := delegation.normalized()
		if err := normalized.Validate(); err != nil {
			return SecurityMetadata{}, errors.Wrapf(err, "secure delegation %q", key)
		}
		delegations[key] = normalized
	}

	equivalences := make(map[string]string, len(keysEquivalences))
	for alias, canonical := range keysEquivalences {
		switch {
		case isBlank(alias):
			return SecurityMetadata{}, errors.Wrap(ErrInvalidSecurityMetadata, "aliases must not be blank")
		case alias == canonical:
			return SecurityMetadata{}, errors.Wrapf(ErrInvalidSecurityMetadata, "alias %q points to itself", alias)
		}
		if _, shadows := delegations[alias]; shadows {
			return SecurityMetadata{}, errors.Wrapf(
				ErrInvalidSecurityMetadata,
				"alias %q is also a canonical key",
				alias,
			)
		}
		if _, known := delegations[canonical]; !known {
			return SecurityMetadata{}, errors.Wrapf(
				ErrInvalidSecurityMetadata,
				"alias %q points to unknown key %q",
				alias,
				canonical,
			)
		}
		equivalences[alias] = canonical
	}

	m := SecurityMetadata{secureDelegations: delegations, keysEquivalences: equivalences}
	if cycle := findCycle(m.ParentsGraph()); cycle != nil {
		return SecurityMetadata{}, errors.Wrapf(ErrDelegationGraphCycle, "%v", cycle)
	}

	return m, nil
}

// GetDelegation finds the delegation for a canonical key or an alias. Aliases always
// target canonical keys, so at most one hop is followed.
func (m SecurityMetadata) GetDelegation(hashOrAlias string) (string, SecureDelegation, bool) {
	if d, ok := m.secureDelegations[hashOrAlias]; ok {
		return hashOrAlias, d, true
	}
	canonical, ok := m.keysEquivalences[hashOrAlias]
	if !ok {
		return "", SecureDelegation{}, false
	}
	d, ok := m.secureDelegations[canonical]
	return canonical, d, ok
}

// AllAliasesOf returns the canonical key of hash together with every alias of it, sorted.
func (m SecurityMetadata) AllAliasesOf(hash string) ([]string, error) {
	canonical, _, ok := m.GetDelegation(hash)
	if !ok {
		return nil, errors.Wrapf(ErrUnknownDelegationKey, "%q", hash)
	}

	aliases := lo.Keys(lo.PickBy(m.keysEquivalences, func(_ string, target string) bool {
		return target == canonical
	}))

	return normalizeSet(append(aliases, canonical)), nil
}

// SecureDelegations returns a copy of the canonical key to delegation map.
func (m SecurityMetadata) SecureDelegations() map[string]SecureDelegation {
	return lo.Assign(m.secureDelegations)
}

// KeysEquivalences returns a copy of the alias to canonical key map.
func (m SecurityMetadata) KeysEquivalences() map[string]string {
	return lo.Assign(m.keysEquivalences)
}

// Keys returns the sorted canonical keys.
func (m SecurityMetadata) Keys() []string {
	return sortedKeys(m.secureDelegations)
}

// Len returns the number of canonical delegations.
func (m SecurityMetadata) Len() int {
	return len(m.secureDelegations)
}

// Roots returns the sorted keys of delegations without parents.
func (m SecurityMetadata) Roots() []string {
	return lo.Filter(m.Keys(), func(key string, _ int) bool {
		return m.secureDelegations[key].IsRoot()
	})
}

// WithSecureDelegation returns metadata that also grants delegation under key. Aliases
// are registered for key. If key already designates a delegation, both are merged as
// versions of the same grant.
func (m SecurityMetadata) WithSecureDelegation(
	key string,
	delegation SecureDelegation,
	aliases ...string,
) (SecurityMetadata, error) {
	equivalences := make(map[string]string, len(aliases))
	for _, alias := range aliases {
		if alias != key {
			equivalences[alias] = key
		}
	}

	addition, err := NewSecurityMetadata(map[string]SecureDelegation{key: delegation}, equivalences)
	if err != nil {
		return SecurityMetadata{}, err
	}

	if m.Len() == 0 {
		return addition, nil
	}
	return m.MergeForDifferentVersionsOfEntity(addition)
}

type securityMetadataJSON struct {
	SecureDelegations map[string]SecureDelegation `json:"secureDelegations"`
	KeysEquivalences  map[string]string           `json:"keysEquivalences"`
}

// MarshalJSON encodes the metadata with its wire field names.
func (m SecurityMetadata) MarshalJSON() ([]byte, error) {
	return json.Marshal(securityMetadataJSON{
		SecureDelegations: lo.Assign(m.secureDelegations),
		KeysEquivalences:  lo.Assign(m.keysEquivalences),
	})
}

// UnmarshalJSON decodes and validates metadata.
func (m *SecurityMetadata) UnmarshalJSON(data []byte) error {
	var raw securityMetadataJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	decoded, err := NewSecurityMetadata(raw.SecureDelegations, raw.KeysEquivalences)
	if err != nil {
		return err
	}

	*m = decoded
	return nil
}
