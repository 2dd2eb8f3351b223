package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sevigo/volatility-agent/internal/core"
	"github.com/sevigo/volatility-agent/internal/storage"
)

// BuyerJob is the client-side phase handler: it pays negotiated jobs,
// approves deliveries as evaluator and reports final results.
type BuyerJob struct {
	client core.ProtocolClient
	recorder
	logger *slog.Logger
}

// NewBuyerJob creates the buyer phase handler.
func NewBuyerJob(client core.ProtocolClient, store storage.Store, logger *slog.Logger) *BuyerJob {
	if client == nil {
		panic("protocol client cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &BuyerJob{
		client:   client,
		recorder: recorder{store: store, logger: logger},
		logger:   logger,
	}
}

// Handle reacts to one job event on the buyer side.
func (j *BuyerJob) Handle(ctx context.Context, entry *core.QueueEntry) error {
	job := entry.Job
	next, pending := entry.PendingNextPhase()

	switch {
	case job.Phase == core.PhaseNegotiation && pending && next == core.PhaseTransaction:
		j.logger.Info("paying job", "job_id", job.ID, "price", job.Price)
		if err := j.client.Pay(ctx, job, job.Price); err != nil {
			err = fmt.Errorf("failed to pay job %d: %w", job.ID, err)
			j.record(ctx, entry, core.ActionFailed, err.Error())
			return err
		}
		j.record(ctx, entry, core.ActionPaid, fmt.Sprintf("%g", job.Price))

	case job.Phase == core.PhaseEvaluation && pending && next == core.PhaseCompleted:
		j.logger.Info("evaluating delivered job", "job_id", job.ID)
		if err := j.client.Evaluate(ctx, job, true, "deliverable received"); err != nil {
			err = fmt.Errorf("failed to evaluate job %d: %w", job.ID, err)
			j.record(ctx, entry, core.ActionFailed, err.Error())
			return err
		}
		j.record(ctx, entry, core.ActionEvaluated, "approved")

	case job.Phase == core.PhaseCompleted:
		deliverable, err := core.DecodeDeliverable(job.Deliverable)
		if err != nil {
			j.logger.Warn("job completed with an unreadable deliverable", "job_id", job.ID, "error", err)
			j.record(ctx, entry, core.ActionCompleted, "unreadable deliverable")
			return nil
		}
		j.logger.Info("job completed",
			"job_id", job.ID,
			"status", deliverable.Value.Status,
			"prediction", deliverable.Value.Message,
		)
		j.record(ctx, entry, core.ActionCompleted, deliverable.Value.Status)

	case job.Phase == core.PhaseRejected:
		j.logger.Info("job rejected by provider", "job_id", job.ID)
		j.record(ctx, entry, core.ActionRejected, "rejected by provider")

	default:
		j.logger.Debug("no action required for job event", "job_id", job.ID, "phase", job.Phase)
		j.record(ctx, entry, core.ActionIgnored, "")
	}
	return nil
}
