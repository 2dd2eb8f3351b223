// Package core holds the ACP job model (phases, memos, requirements and
// results) and the boundaries the job handlers talk through: the relay
// client, the prediction gateway and the dispatcher.
package core

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Phase is the lifecycle stage of an ACP job.
type Phase int

// Phases in the order the protocol moves through them. The numeric values
// match the ones used on the wire.
const (
	PhaseRequest Phase = iota
	PhaseNegotiation
	PhaseTransaction
	PhaseEvaluation
	PhaseCompleted
	PhaseRejected
)

var phaseNames = [...]string{
	PhaseRequest:     "REQUEST",
	PhaseNegotiation: "NEGOTIATION",
	PhaseTransaction: "TRANSACTION",
	PhaseEvaluation:  "EVALUATION",
	PhaseCompleted:   "COMPLETED",
	PhaseRejected:    "REJECTED",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("PHASE(%d)", int(p))
	}
	return phaseNames[p]
}

// Valid reports whether p is one of the known phases.
func (p Phase) Valid() bool {
	return p >= PhaseRequest && p <= PhaseRejected
}

// ParsePhase converts a phase name (case-insensitive) into a Phase.
func ParsePhase(s string) (Phase, error) {
	for i, name := range phaseNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return Phase(i), nil
		}
	}
	return 0, fmt.Errorf("unknown job phase %q", s)
}

// UnmarshalJSON accepts both the numeric wire form and the phase name.
func (p *Phase) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		if !Phase(n).Valid() {
			return fmt.Errorf("unknown job phase %d", n)
		}
		*p = Phase(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("job phase must be a number or a string: %w", err)
	}
	parsed, err := ParsePhase(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// MarshalJSON writes the numeric wire form.
func (p Phase) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(p))
}

// Memo is an immutable entry in a job's history. NextPhase is the phase the
// protocol moves to when the memo's recommended action is taken.
type Memo struct {
	ID        int64
	NextPhase Phase
	Content   string
}

// Job is the application's view of one ACP request-for-service. It is owned by
// the protocol client; handlers only read it and call ProtocolClient operations.
type Job struct {
	ID              int64
	Phase           Phase
	Memos           []Memo
	Price           float64
	ProviderAddress string
	ClientAddress   string
	Deliverable     string

	// Requirement is the content of the memo that carries the original
	// service requirement, resolved by the protocol adapter.
	Requirement json.RawMessage
}

// QueueEntry is the unit of work buffered by the job queue. Memo is the memo
// that currently needs a response from this agent and may be nil.
type QueueEntry struct {
	ID         string
	Job        *Job
	Memo       *Memo
	ReceivedAt time.Time
}

// PendingNextPhase returns the next phase proposed by the memo to sign, and
// false when no response is expected for this event.
func (e *QueueEntry) PendingNextPhase() (Phase, bool) {
	if e.Memo == nil {
		return 0, false
	}
	return e.Memo.NextPhase, true
}
