package domain

import (
	"github.com/allisson/delegations/internal/errors"
)

// Access-control metadata errors.
//
// Invalid-data errors are raised at construction/deserialization time and are never
// retryable: they indicate a malformed client payload. Merge conflicts indicate two
// grants that claim to be the same but disagree on who granted what to whom; they
// signal a client bug or tampering and are never resolved automatically.
var (
	// ErrInvalidAccessLevel indicates a permission value other than READ or WRITE.
	ErrInvalidAccessLevel = errors.Wrap(errors.ErrInvalidInput, "invalid access level")

	// ErrInvalidSecureDelegation indicates a secure delegation violating its invariants.
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrInvalidSecureDelegation = errors.Wrap(errors.ErrInvalidInput, "invalid secure delegation")

	// ErrInvalidSecurityMetadata indicates malformed security metadata (no delegations,
	// dangling aliases, alias shadowing a canonical key).
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrInvalidSecurityMetadata = errors.Wrap(errors.ErrInvalidInput, "invalid security metadata")

	// ErrDelegationGraphCycle indicates the parent graph of the delegations is not acyclic.
	ErrDelegationGraphCycle = errors.Wrap(ErrInvalidSecurityMetadata, "delegation graph contains a cycle")

	// ErrUnknownDelegationKey indicates a lookup for a key that is neither canonical nor an alias.
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrUnknownDelegationKey = errors.Wrap(errors.ErrInvalidInput, "unknown delegation key")

	// ErrMergeConflict indicates two delegations sharing a canonical key have different
	// delegator, delegate or exchange data id.
	//
	// HTTP Status: 409 Conflict
	ErrMergeConflict = errors.Wrap(errors.ErrConflict, "merge conflict")

	// ErrEntityMetadataNotFound indicates no security metadata is stored for an entity.
	ErrEntityMetadataNotFound = errors.Wrap(errors.ErrNotFound, "entity security metadata not found")

	// ErrStaleRevision indicates the stored document moved while a write was in flight.
	ErrStaleRevision = errors.Wrap(errors.ErrConflict, "stale revision")
)
