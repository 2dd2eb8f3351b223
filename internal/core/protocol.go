package core

import (
	"context"
	"time"
)

// InitiateRequest describes a new job a buyer opens against a provider.
type InitiateRequest struct {
	ProviderAddress  string
	EvaluatorAddress string
	Requirement      Requirement
	ExpiresAt        time.Time
}

// ProtocolClient is the set of job transitions exposed by the ACP protocol
// client. Implementations apply them on the protocol side; handlers never
// mutate a Job directly.
//
//go:generate mockgen -destination=../../mocks/mock_protocol_client.go -package=mocks . ProtocolClient
type ProtocolClient interface {
	// Accept signs memo positively, moving the job towards negotiation.
	Accept(ctx context.Context, job *Job, memo *Memo) error
	// Reject declines the job with a reason shown to the counterparty.
	Reject(ctx context.Context, job *Job, memo *Memo, reason string) error
	// CreateRequirement posts a follow-up requirement notice on the job.
	CreateRequirement(ctx context.Context, job *Job, message string) error
	// Deliver sends the job deliverable.
	Deliver(ctx context.Context, job *Job, result *PredictionResult) error

	// Pay settles the job price on the buyer side.
	Pay(ctx context.Context, job *Job, amount float64) error
	// Evaluate approves or rejects a delivered job as evaluator.
	Evaluate(ctx context.Context, job *Job, accept bool, reason string) error
	// InitiateJob opens a new job with a provider and returns its id.
	InitiateJob(ctx context.Context, req InitiateRequest) (int64, error)
}
