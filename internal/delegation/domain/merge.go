package domain

import (
	"github.com/samber/lo"

	"github.com/allisson/delegations/internal/errors"
)

// MergeForDifferentVersionsOfEntity merges two revisions of the same entity, for example
// after a multi-master replication conflict. Key equivalences are unioned and, on a key
// both sides know, the canonical key chosen by m wins. When both revisions agree on which
// keys are equivalent the merge is commutative on the delegation content; only the label
// of a group may depend on the receiver.
func (m SecurityMetadata) MergeForDifferentVersionsOfEntity(other SecurityMetadata) (SecurityMetadata, error) {
	return m.merge(other, true)
}

// MergeForDuplicatedEntityIntoThisFrom merges the metadata of a duplicate entity into m.
//
// The merge is directional: encryption keys of m are kept and those of other dropped, since
// they protect the content of another entity. A delegation that is root on either side
// stays root.
func (m SecurityMetadata) MergeForDuplicatedEntityIntoThisFrom(other SecurityMetadata) (SecurityMetadata, error) {
	return m.merge(other, false)
}

// MergeRevisions folds any number of revisions of the same entity through
// MergeForDifferentVersionsOfEntity.
func MergeRevisions(revisions ...SecurityMetadata) (SecurityMetadata, error) {
	if len(revisions) == 0 {
		return SecurityMetadata{}, errors.Wrap(ErrInvalidSecurityMetadata, "no revisions to merge")
	}

	merged := revisions[0]
	for _, revision := range revisions[1:] {
		var err error
		if merged, err = merged.MergeForDifferentVersionsOfEntity(revision); err != nil {
			return SecurityMetadata{}, err
		}
	}
	return merged, nil
}

func (m SecurityMetadata) merge(other SecurityMetadata, mergeVersions bool) (SecurityMetadata, error) {
	equivalences := unifyEquivalences(m, other)
	resolve := func(key string) string {
		if canonical, ok := equivalences[key]; ok {
			return canonical
		}
		return key
	}

	merged := make(map[string]SecureDelegation, len(m.secureDelegations)+len(other.secureDelegations))
	for _, side := range []SecurityMetadata{m, other} {
		for _, key := range side.Keys() {
			canonical := resolve(key)
			incoming := side.secureDelegations[key]

			existing, ok := merged[canonical]
			if !ok {
				merged[canonical] = incoming
				continue
			}

			combined, err := mergeSecureDelegations(existing, incoming, mergeVersions)
			if err != nil {
				return SecurityMetadata{}, errors.Wrapf(err, "secure delegation %q", canonical)
			}
			merged[canonical] = combined
		}
	}

	remapped := lo.MapValues(merged, func(d SecureDelegation, _ string) SecureDelegation {
		d.ParentDelegations = normalizeSet(lo.Map(d.ParentDelegations, func(parent string, _ int) string {
			return resolve(parent)
		}))
		return d
	})

	aliases := lo.PickBy(equivalences, func(key, canonical string) bool {
		return key != canonical
	})

	return NewSecurityMetadata(remapped, aliases)
}

// fullEquivalences maps every key of m, alias or canonical, to its canonical key.
func (m SecurityMetadata) fullEquivalences() map[string]string {
	full := lo.Assign(m.keysEquivalences)
	for key := range m.secureDelegations {
		full[key] = key
	}
	return full
}

// unifyEquivalences joins the full equivalences of this and other. When a key is known to
// both sides the canonical key of this wins. Entries of other may target a key this has
// turned into an alias; they are followed one more hop so that every value is a key that
// maps to itself.
func unifyEquivalences(this, other SecurityMetadata) map[string]string {
	unified := lo.Assign(other.fullEquivalences(), this.fullEquivalences())
	return lo.MapValues(unified, func(canonical string, _ string) string {
		return unified[canonical]
	})
}

// mergeSecureDelegations combines two delegations grouped under the same canonical key.
// Both must share the same participants.
func mergeSecureDelegations(this, other SecureDelegation, mergeVersions bool) (SecureDelegation, error) {
	if this.Participants != other.Participants {
		return SecureDelegation{}, errors.Wrap(
			ErrMergeConflict,
			"delegations disagree on delegator, delegate or exchange data id",
		)
	}

	merged := SecureDelegation{
		Participants:    this.Participants,
		SecretIDs:       unionSets(this.SecretIDs, other.SecretIDs),
		OwningEntityIDs: unionSets(this.OwningEntityIDs, other.OwningEntityIDs),
		Permissions:     Widest(this.Permissions, other.Permissions),
	}

	if mergeVersions {
		merged.EncryptionKeys = unionSets(this.EncryptionKeys, other.EncryptionKeys)
		merged.ParentDelegations = unionSets(this.ParentDelegations, other.ParentDelegations)
		return merged, nil
	}

	merged.EncryptionKeys = normalizeSet(this.EncryptionKeys)
	if this.IsRoot() || other.IsRoot() {
		merged.ParentDelegations = []string{}
	} else {
		merged.ParentDelegations = unionSets(this.ParentDelegations, other.ParentDelegations)
	}
	return merged, nil
}
