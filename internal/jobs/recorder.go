package jobs

import (
	"context"
	"log/slog"

	"github.com/sevigo/volatility-agent/internal/core"
	"github.com/sevigo/volatility-agent/internal/storage"
)

// recorder writes handler decisions to the outcome store. A failed write is
// logged and never changes the handler's result.
type recorder struct {
	store  storage.Store
	logger *slog.Logger
}

func (r recorder) record(ctx context.Context, entry *core.QueueEntry, action core.Action, detail string) {
	if r.store == nil {
		return
	}
	outcome := &core.Outcome{
		JobID:   entry.Job.ID,
		EntryID: entry.ID,
		Phase:   entry.Job.Phase.String(),
		Action:  action,
		Detail:  detail,
	}
	if err := r.store.SaveOutcome(ctx, outcome); err != nil {
		r.logger.Warn("failed to record job outcome",
			"job_id", entry.Job.ID,
			"action", action,
			"error", err,
		)
	}
}
