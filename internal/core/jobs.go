package core

import (
	"context"
)

// JobDispatcher defines the contract for a system that accepts job events from
// the protocol client and processes them asynchronously. It decouples the
// event source (the webhook intake) from the job execution mechanism.
type JobDispatcher interface {
	// Dispatch queues a job event for processing. It never waits for the
	// event to be handled. An error means the dispatcher is not accepting work.
	Dispatch(ctx context.Context, job *Job, memo *Memo) error
	// Pending returns the number of queued entries not yet picked up.
	Pending() int
	// Stop shuts the dispatcher down and waits for in-flight handlers.
	Stop()
}

// PhaseHandler reacts to a single queue entry according to the job's phase.
// It returns an error if the entry could not be handled to completion.
type PhaseHandler interface {
	Handle(ctx context.Context, entry *QueueEntry) error
}
