package core

import "time"

// Action is the decision a phase handler took for one queue entry.
type Action string

// Actions recorded in the outcome audit trail.
const (
	ActionAccepted  Action = "accepted"
	ActionRejected  Action = "rejected"
	ActionDelivered Action = "delivered"
	ActionPaid      Action = "paid"
	ActionEvaluated Action = "evaluated"
	ActionCompleted Action = "completed"
	ActionIgnored   Action = "ignored"
	ActionFailed    Action = "failed"
)

// Outcome is one audited handler decision.
type Outcome struct {
	ID        int64     `db:"id" json:"id"`
	JobID     int64     `db:"job_id" json:"job_id"`
	EntryID   string    `db:"entry_id" json:"entry_id"`
	Phase     string    `db:"phase" json:"phase"`
	Action    Action    `db:"action" json:"action"`
	Detail    string    `db:"detail" json:"detail"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
