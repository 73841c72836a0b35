package domain

import (
	"strings"

	"github.com/samber/lo"

	"github.com/allisson/delegations/internal/errors"
)

// Participants describes who granted a secure delegation to whom.
//
// It is one of IdentifiedParticipants or AnonymousParticipants. A delegation only references
// exchange data when both data owners are disclosed; otherwise the exchange data must be
// discovered through an ExchangeDataMap and the id is withheld.
type Participants interface {
	Validate() error
	fields() (delegator, delegate, exchangeDataID *string)
}

// IdentifiedParticipants discloses both data owners and the exchange data linking them.
type IdentifiedParticipants struct {
	Delegator      string
	Delegate       string
	ExchangeDataID string
}

// AnonymousParticipants withholds at least one of the data owners. An empty string means
// the corresponding data owner is not disclosed.
type AnonymousParticipants struct {
	Delegator string
	Delegate  string
}

// Validate checks that every identifier is present.
func (p IdentifiedParticipants) Validate() error {
	switch {
	case isBlank(p.Delegator):
		return errors.New("delegator must not be blank")
	case isBlank(p.Delegate):
		return errors.New("delegate must not be blank")
	case isBlank(p.ExchangeDataID):
		return errors.New("exchange data id is required when delegator and delegate are explicit")
	}
	return nil
}

func (p IdentifiedParticipants) fields() (*string, *string, *string) {
	return lo.ToPtr(p.Delegator), lo.ToPtr(p.Delegate), lo.ToPtr(p.ExchangeDataID)
}

// Validate checks that the delegation really is anonymous.
func (p AnonymousParticipants) Validate() error {
	if p.Delegator != "" && p.Delegate != "" {
		return errors.New("exchange data id is required when delegator and delegate are explicit")
	}
	if p.Delegator != "" && isBlank(p.Delegator) {
		return errors.New("delegator must not be blank")
	}
	if p.Delegate != "" && isBlank(p.Delegate) {
		return errors.New("delegate must not be blank")
	}
	return nil
}

func (p AnonymousParticipants) fields() (*string, *string, *string) {
	return emptyToNil(p.Delegator), emptyToNil(p.Delegate), nil
}

// NewParticipants builds participants from their optional wire representation.
// The exchange data id must be present iff both delegator and delegate are.
func NewParticipants(delegator, delegate, exchangeDataID *string) (Participants, error) {
	var p Participants
	switch {
	case delegator != nil && delegate != nil:
		if exchangeDataID == nil {
			return nil, errors.New("exchange data id is required when delegator and delegate are explicit")
		}
		p = IdentifiedParticipants{Delegator: *delegator, Delegate: *delegate, ExchangeDataID: *exchangeDataID}
	case exchangeDataID != nil:
		return nil, errors.New("exchange data id must be absent unless delegator and delegate are explicit")
	default:
		if delegator != nil && *delegator == "" || delegate != nil && *delegate == "" {
			return nil, errors.New("delegator and delegate must be omitted rather than empty")
		}
		p = AnonymousParticipants{Delegator: lo.FromPtr(delegator), Delegate: lo.FromPtr(delegate)}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// DelegatorOf returns the delegator of a delegation, if disclosed.
func DelegatorOf(p Participants) (string, bool) {
	delegator, _, _ := p.fields()
	return lo.FromPtr(delegator), delegator != nil
}

// DelegateOf returns the delegate of a delegation, if disclosed.
func DelegateOf(p Participants) (string, bool) {
	_, delegate, _ := p.fields()
	return lo.FromPtr(delegate), delegate != nil
}

// ExchangeDataIDOf returns the exchange data id of a delegation, if disclosed.
func ExchangeDataIDOf(p Participants) (string, bool) {
	_, _, exchangeDataID := p.fields()
	return lo.FromPtr(exchangeDataID), exchangeDataID != nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func emptyToNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
