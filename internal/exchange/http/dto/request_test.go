package dto_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/delegations/internal/exchange/domain"
	"github.com/allisson/delegations/internal/exchange/http/dto"
)

func TestExchangeDataRequest_DecodesWireNames(t *testing.T) {
	body := `{"delegator":"hcp-1","delegate":"patient-1",` +
		`"exchangeKey":{"fp":"aw=="},"accessControlSecret":{"fp":"YQ=="},` +
		`"sharedSignatureKey":{"fp":"cw=="},"delegatorSignature":{"fp":"ZA=="},` +
		`"sharedSignature":"c2ln"}`

	var req dto.ExchangeDataRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	require.NoError(t, req.Validate())

	assert.Equal(t, map[string]string{"fp": "aw=="}, req.ExchangeKey)
	assert.Equal(t, map[string]string{"fp": "YQ=="}, req.AccessControlSecret)
	assert.Equal(t, map[string]string{"fp": "cw=="}, req.SharedSignatureKey)
	assert.Equal(t, map[string]string{"fp": "ZA=="}, req.DelegatorSignature)
	assert.Equal(t, "c2ln", req.SharedSignature)
}

func TestExchangeDataResponse_EncodesWireNames(t *testing.T) {
	data, err := json.Marshal(dto.MapExchangeDataToResponse(&domain.ExchangeData{
		ID:                  "ed-1",
		Delegator:           "hcp-1",
		Delegate:            "patient-1",
		ExchangeKey:         map[string]string{"fp": "ek"},
		AccessControlSecret: map[string]string{"fp": "acs"},
		SharedSignatureKey:  map[string]string{"fp": "ssk"},
		DelegatorSignature:  map[string]string{"fp": "sig"},
		SharedSignature:     "hmac",
		CreatedAt:           time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}))
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, field := range []string{
		"exchangeKey", "accessControlSecret", "sharedSignatureKey", "delegatorSignature", "sharedSignature", "createdAt",
	} {
		assert.Contains(t, raw, field)
	}
	assert.NotContains(t, raw, "exchange_key")
}

func TestExchangeDataMapRequest_DecodesWireNames(t *testing.T) {
	var req dto.CreateOrAppendMapsRequest
	require.NoError(t, json.Unmarshal([]byte(`{"maps":[{"id":"k1","encryptedExchangeDataIds":{"fp":"enc"}}]}`), &req))
	require.NoError(t, req.Validate())
	require.Len(t, req.Maps, 1)
	assert.Equal(t, map[string]string{"fp": "enc"}, req.Maps[0].EncryptedExchangeDataIDs)
}

func TestExchangeDataRequest_Validate(t *testing.T) {
	valid := func() dto.ExchangeDataRequest {
		return dto.ExchangeDataRequest{
			Delegator:           "hcp-1",
			Delegate:            "patient-1",
			ExchangeKey:         map[string]string{"fp": "ek"},
			AccessControlSecret: map[string]string{"fp": "acs"},
			SharedSignatureKey:  map[string]string{"fp": "ssk"},
			DelegatorSignature:  map[string]string{"fp": "sig"},
			SharedSignature:     "hmac",
		}
	}

	tests := []struct {
		name        string
		mutate      func(r *dto.ExchangeDataRequest)
		expectError bool
	}{
		{name: "valid request", mutate: func(r *dto.ExchangeDataRequest) {}},
		{
			name:        "blank delegate",
			mutate:      func(r *dto.ExchangeDataRequest) { r.Delegate = "  " },
			expectError: true,
		},
		{
			name:        "empty exchange key",
			mutate:      func(r *dto.ExchangeDataRequest) { r.ExchangeKey = map[string]string{} },
			expectError: true,
		},
		{
			name:        "blank ciphertext",
			mutate:      func(r *dto.ExchangeDataRequest) { r.AccessControlSecret = map[string]string{"fp": ""} },
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(&req)

			err := req.Validate()

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestExchangeDataRequest_ToDomain(t *testing.T) {
	req := dto.ExchangeDataRequest{Rev: 3, Delegator: "a", Delegate: "b", SharedSignature: "s"}

	ed := req.ToDomain("ed-1")

	assert.Equal(t, "ed-1", ed.ID)
	assert.Equal(t, uint(3), ed.Rev)
	assert.Equal(t, "a", ed.Delegator)
}

func TestCreateOrAppendMapsRequest(t *testing.T) {
	req := dto.CreateOrAppendMapsRequest{Maps: []dto.ExchangeDataMapRequest{
		{ID: "k1", EncryptedExchangeDataIDs: map[string]string{"fp": "enc"}},
	}}
	require.NoError(t, req.Validate())

	maps := req.ToDomain()
	require.Len(t, maps, 1)
	assert.Equal(t, "k1", maps[0].ID)
	assert.Equal(t, uint(0), maps[0].Rev)

	req.Maps = append(req.Maps, dto.ExchangeDataMapRequest{ID: " k2", EncryptedExchangeDataIDs: map[string]string{"fp": "x"}})
	assert.Error(t, req.Validate())

	assert.Error(t, (&dto.CreateOrAppendMapsRequest{}).Validate())
}

func TestGetMapsRequest_Validate(t *testing.T) {
	assert.NoError(t, (&dto.GetMapsRequest{IDs: []string{"k1"}}).Validate())
	assert.Error(t, (&dto.GetMapsRequest{}).Validate())
	assert.Error(t, (&dto.GetMapsRequest{IDs: []string{""}}).Validate())
}
