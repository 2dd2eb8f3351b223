package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sevigo/volatility-agent/internal/core"
	"github.com/sevigo/volatility-agent/internal/storage"
	"github.com/sevigo/volatility-agent/internal/validation"
)

// ForcedRejectionReason is sent when the seller is configured to reject paid jobs.
const ForcedRejectionReason = "job rejected after payment: volatility predictions are temporarily unavailable"

// SellerOptions are fixed for the lifetime of a SellerJob.
type SellerOptions struct {
	ForceRejectAfterPayment bool
}

// SellerJob is the provider-side phase handler: it validates requests,
// fetches predictions for paid jobs and delivers them.
type SellerJob struct {
	policy  *validation.Policy
	gateway core.PredictionGateway
	client  core.ProtocolClient
	opts    SellerOptions
	recorder
	logger *slog.Logger
}

// NewSellerJob creates the seller phase handler.
func NewSellerJob(policy *validation.Policy, gateway core.PredictionGateway, client core.ProtocolClient, store storage.Store, opts SellerOptions, logger *slog.Logger) *SellerJob {
	if policy == nil {
		panic("validation policy cannot be nil")
	}
	if gateway == nil {
		panic("prediction gateway cannot be nil")
	}
	if client == nil {
		panic("protocol client cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &SellerJob{
		policy:   policy,
		gateway:  gateway,
		client:   client,
		opts:     opts,
		recorder: recorder{store: store, logger: logger},
		logger:   logger,
	}
}

// Handle reacts to one job event based on the job phase and the next phase
// proposed by the memo awaiting our signature.
func (j *SellerJob) Handle(ctx context.Context, entry *core.QueueEntry) error {
	job := entry.Job
	next, pending := entry.PendingNextPhase()

	switch {
	case job.Phase == core.PhaseRequest && pending && next == core.PhaseNegotiation:
		return j.failed(ctx, entry, j.handleRequest(ctx, entry))
	case job.Phase == core.PhaseTransaction && pending && next == core.PhaseEvaluation:
		return j.failed(ctx, entry, j.handleTransaction(ctx, entry))
	case job.Phase == core.PhaseCompleted:
		j.logger.Info("job completed", "job_id", job.ID)
		j.record(ctx, entry, core.ActionCompleted, "")
	case job.Phase == core.PhaseRejected:
		j.logger.Info("job rejected", "job_id", job.ID)
	default:
		j.logger.Debug("no action required for job event",
			"job_id", job.ID,
			"phase", job.Phase,
			"has_memo", pending,
			"memo_next_phase", next,
		)
		j.record(ctx, entry, core.ActionIgnored, "")
	}
	return nil
}

// handleRequest accepts or rejects a new request after validating it.
func (j *SellerJob) handleRequest(ctx context.Context, entry *core.QueueEntry) error {
	job, memo := entry.Job, entry.Memo

	raw := []byte(memo.Content)
	if strings.TrimSpace(memo.Content) == "" {
		raw = job.Requirement
	}
	req, err := core.ParseRequirement(raw)
	if err != nil {
		return fmt.Errorf("failed to parse requirement from memo %d: %w", memo.ID, err)
	}

	if err := j.policy.Validate(req.Symbol, req.HorizonMin); err != nil {
		var rejection *validation.RejectionError
		if !errors.As(err, &rejection) {
			return fmt.Errorf("failed to validate requirement: %w", err)
		}
		j.logger.Info("rejecting job request",
			"job_id", job.ID,
			"symbol", req.Symbol,
			"horizon_min", req.HorizonMin,
			"reason", rejection.Reason,
		)
		if err := j.client.Reject(ctx, job, memo, rejection.Reason); err != nil {
			return fmt.Errorf("failed to reject job %d: %w", job.ID, err)
		}
		j.record(ctx, entry, core.ActionRejected, rejection.Reason)
		return nil
	}

	j.logger.Info("accepting job request", "job_id", job.ID, "symbol", req.Symbol, "horizon_min", req.HorizonMin)
	if err := j.client.Accept(ctx, job, memo); err != nil {
		return fmt.Errorf("failed to accept job %d: %w", job.ID, err)
	}
	if err := j.client.CreateRequirement(ctx, job, paymentNotice(req)); err != nil {
		return fmt.Errorf("failed to post payment requirement for job %d: %w", job.ID, err)
	}
	j.record(ctx, entry, core.ActionAccepted, fmt.Sprintf("%s/%dm", strings.ToUpper(req.Symbol), req.HorizonMin))
	return nil
}

// handleTransaction fetches the prediction for a paid job and delivers it.
// A gateway error result is delivered like a success.
func (j *SellerJob) handleTransaction(ctx context.Context, entry *core.QueueEntry) error {
	job, memo := entry.Job, entry.Memo

	if j.opts.ForceRejectAfterPayment {
		j.logger.Warn("rejecting paid job", "job_id", job.ID, "reason", ForcedRejectionReason)
		if err := j.client.Reject(ctx, job, memo, ForcedRejectionReason); err != nil {
			return fmt.Errorf("failed to reject job %d: %w", job.ID, err)
		}
		j.record(ctx, entry, core.ActionRejected, ForcedRejectionReason)
		return nil
	}

	req, err := core.ParseRequirement(job.Requirement)
	if err != nil {
		return fmt.Errorf("failed to parse requirement of job %d: %w", job.ID, err)
	}
	symbol := strings.ToUpper(req.Symbol)

	j.logger.Info("fetching volatility prediction", "job_id", job.ID, "symbol", symbol, "horizon_min", req.HorizonMin)
	result, err := j.gateway.Predict(ctx, symbol, req.HorizonMin)
	if err != nil {
		return fmt.Errorf("prediction for job %d failed: %w", job.ID, err)
	}

	deliverable := &core.PredictionResult{Status: result.Status, Message: result.Message}
	if err := j.client.Deliver(ctx, job, deliverable); err != nil {
		return fmt.Errorf("failed to deliver job %d: %w", job.ID, err)
	}
	j.logger.Info("delivered volatility prediction", "job_id", job.ID, "status", deliverable.Status)
	j.record(ctx, entry, core.ActionDelivered, deliverable.Status)
	return nil
}

func (j *SellerJob) failed(ctx context.Context, entry *core.QueueEntry, err error) error {
	if err != nil {
		j.record(ctx, entry, core.ActionFailed, err.Error())
	}
	return err
}

func paymentNotice(req *core.Requirement) string {
	return fmt.Sprintf("Request accepted: %d-minute volatility prediction for %s. Please make payment to receive the deliverable.",
		req.HorizonMin, strings.ToUpper(req.Symbol))
}
