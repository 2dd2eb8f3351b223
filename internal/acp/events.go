package acp

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sevigo/volatility-agent/internal/core"
)

// HeaderSignature carries the HMAC-SHA256 of the webhook body as "sha256=<hex>".
const HeaderSignature = "X-ACP-Signature"

const maxPayloadBytes = 1 << 20

var (
	ErrMissingSignature = errors.New("missing webhook signature")
	ErrInvalidSignature = errors.New("invalid webhook signature")
)

// MemoPayload is a memo as sent by the relay. Content is the memo text,
// usually a JSON document.
type MemoPayload struct {
	ID        int64      `json:"id"`
	NextPhase core.Phase `json:"next_phase"`
	Content   string     `json:"content"`
}

// JobPayload is a job as sent by the relay.
type JobPayload struct {
	ID                 int64           `json:"id"`
	Phase              core.Phase      `json:"phase"`
	Price              float64         `json:"price"`
	ProviderAddress    string          `json:"provider_address"`
	ClientAddress      string          `json:"client_address"`
	Deliverable        string          `json:"deliverable"`
	ServiceRequirement json.RawMessage `json:"service_requirement"`
	Memos              []MemoPayload   `json:"memos"`
}

// EventPayload is one job-phase-change notification.
type EventPayload struct {
	Job        *JobPayload  `json:"job"`
	MemoToSign *MemoPayload `json:"memo_to_sign"`
}

// ValidatePayload reads the request body and checks its signature against secret.
func ValidatePayload(r *http.Request, secret []byte) ([]byte, error) {
	signature := r.Header.Get(HeaderSignature)
	if signature == "" {
		return nil, ErrMissingSignature
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxPayloadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read webhook body: %w", err)
	}
	if len(body) > maxPayloadBytes {
		return nil, fmt.Errorf("webhook body exceeds %d bytes", maxPayloadBytes)
	}

	if err := ValidateSignature(signature, body, secret); err != nil {
		return nil, err
	}
	return body, nil
}

// ValidateSignature checks a "sha256=<hex>" signature of payload.
func ValidateSignature(signature string, payload, secret []byte) error {
	hexSum, ok := strings.CutPrefix(signature, "sha256=")
	if !ok {
		return ErrInvalidSignature
	}
	got, err := hex.DecodeString(hexSum)
	if err != nil {
		return ErrInvalidSignature
	}
	if !hmac.Equal(got, Sign(payload, secret)) {
		return ErrInvalidSignature
	}
	return nil
}

// Sign returns the raw HMAC-SHA256 of payload.
func Sign(payload, secret []byte) []byte {
	mac := hmac.New(sha256.New, secret)
	mac.Write(payload)
	return mac.Sum(nil)
}

// SignatureHeader formats the signature header value for payload.
func SignatureHeader(payload, secret []byte) string {
	return "sha256=" + hex.EncodeToString(Sign(payload, secret))
}

// ParseEvent decodes a webhook body.
func ParseEvent(body []byte) (*EventPayload, error) {
	var event EventPayload
	dec := json.NewDecoder(bytes.NewReader(body))
	if err := dec.Decode(&event); err != nil {
		return nil, fmt.Errorf("failed to decode job event: %w", err)
	}
	return &event, nil
}

// EventToJob converts a relay event into the application's job and optional
// memo to sign. It rejects events that lack the data every handler needs.
func EventToJob(event *EventPayload) (*core.Job, *core.Memo, error) {
	if event == nil || event.Job == nil {
		return nil, nil, fmt.Errorf("job is missing from the event")
	}
	p := event.Job
	if p.ID <= 0 {
		return nil, nil, fmt.Errorf("invalid job id: %d", p.ID)
	}

	job := &core.Job{
		ID:              p.ID,
		Phase:           p.Phase,
		Price:           p.Price,
		ProviderAddress: p.ProviderAddress,
		ClientAddress:   p.ClientAddress,
		Deliverable:     p.Deliverable,
		Memos:           make([]core.Memo, 0, len(p.Memos)),
	}
	for _, m := range p.Memos {
		job.Memos = append(job.Memos, core.Memo{ID: m.ID, NextPhase: m.NextPhase, Content: m.Content})
	}
	job.Requirement = resolveRequirement(p.ServiceRequirement, job.Memos)

	var memo *core.Memo
	if event.MemoToSign != nil {
		memo = &core.Memo{
			ID:        event.MemoToSign.ID,
			NextPhase: event.MemoToSign.NextPhase,
			Content:   event.MemoToSign.Content,
		}
	}
	return job, memo, nil
}

// resolveRequirement prefers the explicit service requirement. Otherwise it
// uses the content of the request memo, the first one proposing NEGOTIATION,
// and finally the first memo that has any content.
func resolveRequirement(explicit json.RawMessage, memos []core.Memo) json.RawMessage {
	trimmed := bytes.TrimSpace(explicit)
	if len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null")) {
		// The relay may send the requirement as a JSON-encoded string.
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return json.RawMessage(s)
		}
		return json.RawMessage(trimmed)
	}
	for _, m := range memos {
		if m.NextPhase == core.PhaseNegotiation && strings.TrimSpace(m.Content) != "" {
			return json.RawMessage(m.Content)
		}
	}
	for _, m := range memos {
		if strings.TrimSpace(m.Content) != "" {
			return json.RawMessage(m.Content)
		}
	}
	return nil
}
