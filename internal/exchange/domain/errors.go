// Package domain defines the pairwise key-exchange records shared between data owners.
package domain

import (
	"github.com/allisson/delegations/internal/errors"
)

// Exchange-data error definitions.
var (
	// ErrInvalidExchangeData indicates exchange data with blank participants or missing key material.
	ErrInvalidExchangeData = errors.Wrap(errors.ErrInvalidInput, "invalid exchange data")

	// ErrIncompatibleExchangeData indicates an attempt to reconcile two revisions of exchange
	// data that disagree on delegator or delegate.
	ErrIncompatibleExchangeData = errors.Wrap(errors.ErrConflict, "incompatible exchange data")

	// ErrExchangeDataNotFound indicates no exchange data exists with the given id.
	ErrExchangeDataNotFound = errors.Wrap(errors.ErrNotFound, "exchange data not found")

	// ErrInvalidExchangeDataMap indicates a map without id or without entries.
	ErrInvalidExchangeDataMap = errors.Wrap(errors.ErrInvalidInput, "invalid exchange data map")

	// ErrExchangeDataMapNotFound indicates no exchange data map exists for the given key.
	ErrExchangeDataMapNotFound = errors.Wrap(errors.ErrNotFound, "exchange data map not found")

	// ErrUnknownParticipant indicates a delegator or delegate that is not a known data owner.
	ErrUnknownParticipant = errors.Wrap(errors.ErrInvalidInput, "unknown exchange data participant")
)
