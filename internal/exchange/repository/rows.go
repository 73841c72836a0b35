// Package repository implements exchange data persistence for PostgreSQL and MySQL.
// Keyed collections are stored as JSON objects mapping fingerprints to ciphertexts.
package repository

import (
	"database/sql"
	"encoding/json"
	"errors"

	apperrors "github.com/allisson/delegations/internal/errors"
	"github.com/allisson/delegations/internal/exchange/domain"
)

const exchangeDataColumns = `id, rev, delegator, delegate, exchange_key, access_control_secret,
			  shared_signature_key, delegator_signature, shared_signature, created_at, updated_at`

const exchangeDataMapColumns = `id, rev, encrypted_exchange_data_ids, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

// keyedColumns encodes the keyed collections of ed in column order.
func keyedColumns(ed *domain.ExchangeData) ([]any, error) {
	collections := []map[string]string{
		ed.ExchangeKey,
		ed.AccessControlSecret,
		ed.SharedSignatureKey,
		ed.DelegatorSignature,
	}

	columns := make([]any, 0, len(collections))
	for _, c := range collections {
		encoded, err := json.Marshal(c)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to marshal keyed collection")
		}
		columns = append(columns, encoded)
	}
	return columns, nil
}

func marshalEntries(m *domain.ExchangeDataMap) ([]byte, error) {
	entries, err := json.Marshal(m.EncryptedExchangeDataIDs)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal exchange data map entries")
	}
	return entries, nil
}

func scanExchangeData(row rowScanner) (*domain.ExchangeData, error) {
	var ed domain.ExchangeData
	var exchangeKey, accessControlSecret, sharedSignatureKey, delegatorSignature []byte

	err := row.Scan(
		&ed.ID,
		&ed.Rev,
		&ed.Delegator,
		&ed.Delegate,
		&exchangeKey,
		&accessControlSecret,
		&sharedSignatureKey,
		&delegatorSignature,
		&ed.SharedSignature,
		&ed.CreatedAt,
		&ed.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrExchangeDataNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get exchange data")
	}

	targets := []struct {
		raw []byte
		dst *map[string]string
	}{
		{exchangeKey, &ed.ExchangeKey},
		{accessControlSecret, &ed.AccessControlSecret},
		{sharedSignatureKey, &ed.SharedSignatureKey},
		{delegatorSignature, &ed.DelegatorSignature},
	}
	for _, target := range targets {
		if err := json.Unmarshal(target.raw, target.dst); err != nil {
			return nil, apperrors.Wrapf(err, "stored exchange data %s is invalid", ed.ID)
		}
	}

	return &ed, nil
}

func collectExchangeData(rows *sql.Rows) ([]*domain.ExchangeData, error) {
	defer func() {
		_ = rows.Close()
	}()

	list := make([]*domain.ExchangeData, 0)
	for rows.Next() {
		ed, err := scanExchangeData(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, ed)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate exchange data")
	}
	return list, nil
}

func scanExchangeDataMap(row rowScanner) (*domain.ExchangeDataMap, error) {
	var m domain.ExchangeDataMap
	var entries []byte

	if err := row.Scan(&m.ID, &m.Rev, &entries, &m.CreatedAt, &m.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrExchangeDataMapNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get exchange data map")
	}

	if err := json.Unmarshal(entries, &m.EncryptedExchangeDataIDs); err != nil {
		return nil, apperrors.Wrapf(err, "stored exchange data map %s is invalid", m.ID)
	}
	return &m, nil
}

func collectExchangeDataMaps(rows *sql.Rows) ([]*domain.ExchangeDataMap, error) {
	defer func() {
		_ = rows.Close()
	}()

	list := make([]*domain.ExchangeDataMap, 0)
	for rows.Next() {
		m, err := scanExchangeDataMap(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate exchange data maps")
	}
	return list, nil
}

// errConcurrentUpdate reports an update whose base revision is no longer stored.
var errConcurrentUpdate = apperrors.Wrap(apperrors.ErrConflict, "record was modified concurrently")

func checkRevisionApplied(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read affected rows")
	}
	if affected == 0 {
		return errConcurrentUpdate
	}
	return nil
}
