package domain

import (
	"sort"
	"time"

	validation "github.com/jellydator/validation"
	"github.com/samber/lo"

	"github.com/allisson/delegations/internal/errors"
	customValidation "github.com/allisson/delegations/internal/validation"
)

// ExchangeDataMap lets a participant of an anonymous delegation find the exchange data it
// cannot reference directly. ID is the secure delegation key; entries map a public key
// fingerprint to the exchange data id encrypted for that key.
type ExchangeDataMap struct {
	ID                       string
	Rev                      uint
	EncryptedExchangeDataIDs map[string]string
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

// Validate checks the map has an id and at least one entry.
func (m *ExchangeDataMap) Validate() error {
	err := validation.ValidateStruct(m,
		validation.Field(&m.ID, validation.Required, customValidation.NotBlank, customValidation.NoWhitespace),
		validation.Field(
			&m.EncryptedExchangeDataIDs,
			validation.Required,
			customValidation.NonBlankEntries,
		),
	)
	if err != nil {
		return errors.Wrap(ErrInvalidExchangeDataMap, err.Error())
	}
	return nil
}

// AppendFrom returns m grown with the entries of other it does not have yet. Existing
// entries are never replaced. The boolean reports whether any entry was added.
func (m *ExchangeDataMap) AppendFrom(other *ExchangeDataMap) (*ExchangeDataMap, bool) {
	added := lo.OmitByKeys(other.EncryptedExchangeDataIDs, lo.Keys(m.EncryptedExchangeDataIDs))

	return &ExchangeDataMap{
		ID:                       m.ID,
		Rev:                      m.Rev,
		EncryptedExchangeDataIDs: lo.Assign(added, m.EncryptedExchangeDataIDs),
		CreatedAt:                m.CreatedAt,
		UpdatedAt:                m.UpdatedAt,
	}, len(added) > 0
}

func sortedMapKeys(in map[string]string) []string {
	keys := lo.Keys(in)
	sort.Strings(keys)
	return keys
}
