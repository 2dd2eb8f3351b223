package acp

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/volatility-agent/internal/core"
)

var testSecret = []byte("webhook-secret")

func TestValidatePayload(t *testing.T) {
	body := []byte(`{"job":{"id":1}}`)

	tests := []struct {
		name    string
		header  string
		wantErr error
	}{
		{name: "valid signature", header: SignatureHeader(body, testSecret)},
		{name: "missing header", header: "", wantErr: ErrMissingSignature},
		{name: "wrong secret", header: SignatureHeader(body, []byte("other")), wantErr: ErrInvalidSignature},
		{name: "missing prefix", header: strings.TrimPrefix(SignatureHeader(body, testSecret), "sha256="), wantErr: ErrInvalidSignature},
		{name: "not hex", header: "sha256=zz", wantErr: ErrInvalidSignature},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/v1/webhook/acp", bytes.NewReader(body))
			if tt.header != "" {
				req.Header.Set(HeaderSignature, tt.header)
			}

			got, err := ValidatePayload(req, testSecret)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, body, got)
		})
	}
}

func TestValidatePayload_TooLarge(t *testing.T) {
	body := bytes.Repeat([]byte("a"), maxPayloadBytes+1)
	req := httptest.NewRequest("POST", "/api/v1/webhook/acp", bytes.NewReader(body))
	req.Header.Set(HeaderSignature, SignatureHeader(body, testSecret))

	_, err := ValidatePayload(req, testSecret)
	assert.Error(t, err)
}

func TestEventToJob(t *testing.T) {
	body := `{
		"job": {
			"id": 42,
			"phase": "REQUEST",
			"price": 1.5,
			"provider_address": "0xprovider",
			"client_address": "0xclient",
			"memos": [{"id": 7, "next_phase": 1, "content": "{\"symbol\":\"BTC\",\"horizon_min\":60}"}]
		},
		"memo_to_sign": {"id": 7, "next_phase": "NEGOTIATION", "content": "{\"symbol\":\"BTC\",\"horizon_min\":60}"}
	}`

	event, err := ParseEvent([]byte(body))
	require.NoError(t, err)

	job, memo, err := EventToJob(event)
	require.NoError(t, err)

	assert.Equal(t, int64(42), job.ID)
	assert.Equal(t, core.PhaseRequest, job.Phase)
	assert.Equal(t, 1.5, job.Price)
	assert.Equal(t, "0xprovider", job.ProviderAddress)
	assert.Equal(t, "0xclient", job.ClientAddress)
	require.Len(t, job.Memos, 1)
	assert.JSONEq(t, `{"symbol":"BTC","horizon_min":60}`, string(job.Requirement))

	require.NotNil(t, memo)
	assert.Equal(t, int64(7), memo.ID)
	assert.Equal(t, core.PhaseNegotiation, memo.NextPhase)
}

func TestEventToJob_Requirement(t *testing.T) {
	memos := []MemoPayload{
		{ID: 1, NextPhase: core.PhaseTransaction, Content: "pay please"},
		{ID: 2, NextPhase: core.PhaseNegotiation, Content: `{"symbol":"ETH","horizon_min":15}`},
	}

	tests := []struct {
		name     string
		explicit json.RawMessage
		memos    []MemoPayload
		want     string
	}{
		{name: "explicit object", explicit: json.RawMessage(`{"symbol":"SOL","horizon_min":240}`), memos: memos, want: `{"symbol":"SOL","horizon_min":240}`},
		{name: "explicit json string", explicit: json.RawMessage(`"{\"symbol\":\"SOL\",\"horizon_min\":240}"`), memos: memos, want: `{"symbol":"SOL","horizon_min":240}`},
		{name: "falls back to negotiation memo", memos: memos, want: `{"symbol":"ETH","horizon_min":15}`},
		{name: "explicit null falls back", explicit: json.RawMessage(`null`), memos: memos, want: `{"symbol":"ETH","horizon_min":15}`},
		{
			name:  "falls back to first memo with content",
			memos: []MemoPayload{{ID: 1, NextPhase: core.PhaseTransaction, Content: `{"symbol":"BTC","horizon_min":60}`}},
			want:  `{"symbol":"BTC","horizon_min":60}`,
		},
		{
			name: "skips empty memos",
			memos: []MemoPayload{
				{ID: 1, NextPhase: core.PhaseTransaction, Content: "  "},
				{ID: 2, NextPhase: core.PhaseEvaluation, Content: `{"symbol":"SOL","horizon_min":1440}`},
			},
			want: `{"symbol":"SOL","horizon_min":1440}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job, _, err := EventToJob(&EventPayload{Job: &JobPayload{ID: 1, ServiceRequirement: tt.explicit, Memos: tt.memos}})
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(job.Requirement))
		})
	}

	t.Run("none available", func(t *testing.T) {
		job, memo, err := EventToJob(&EventPayload{Job: &JobPayload{ID: 1}})
		require.NoError(t, err)
		assert.Nil(t, job.Requirement)
		assert.Nil(t, memo)
	})
}

func TestEventToJob_Invalid(t *testing.T) {
	_, _, err := EventToJob(nil)
	assert.Error(t, err)

	_, _, err = EventToJob(&EventPayload{})
	assert.Error(t, err)

	_, _, err = EventToJob(&EventPayload{Job: &JobPayload{ID: 0}})
	assert.Error(t, err)
}

func TestParseEvent_UnknownPhase(t *testing.T) {
	_, err := ParseEvent([]byte(`{"job":{"id":1,"phase":"LIMBO"}}`))
	assert.Error(t, err)
}
