// Package jobs holds the job intake queue, the dispatcher that drains it and
// the phase handlers that react to ACP job events.
package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sevigo/volatility-agent/internal/core"
)

// ErrDispatcherStopped is returned by Dispatch once the dispatcher context
// has ended or Stop has been called.
var ErrDispatcherStopped = errors.New("dispatcher is stopped")

// dispatcher implements core.JobDispatcher. A single loop goroutine drains the
// queue and starts one handler goroutine per entry, so a slow gateway call for
// one job never delays intake or handling of the others.
type dispatcher struct {
	handler  core.PhaseHandler // State machine invoked for every entry.
	queue    *Queue            // Pending events, shared with the intake.
	cooldown time.Duration     // Pause after each handled entry.
	logger   *slog.Logger

	mu       sync.Mutex
	stopped  bool // Set by the loop on exit; guards Enqueue.
	stopOnce sync.Once
	done     <-chan struct{} // Closed when the loop context ends.
	cancel   context.CancelFunc
	loopDone chan struct{}
	handlers sync.WaitGroup // In-flight handler goroutines.
}

// NewDispatcher creates a dispatcher and starts its loop. The loop stops when
// ctx is cancelled or Stop is called.
func NewDispatcher(ctx context.Context, handler core.PhaseHandler, cooldown time.Duration, logger *slog.Logger) core.JobDispatcher {
	return newDispatcher(ctx, handler, NewQueue(), cooldown, logger)
}

func newDispatcher(ctx context.Context, handler core.PhaseHandler, queue *Queue, cooldown time.Duration, logger *slog.Logger) *dispatcher {
	loopCtx, cancel := context.WithCancel(ctx)
	d := &dispatcher{
		handler:  handler,
		queue:    queue,
		cooldown: cooldown,
		logger:   logger,
		done:     loopCtx.Done(),
		cancel:   cancel,
		loopDone: make(chan struct{}),
	}
	go d.run(loopCtx)
	return d
}

// Dispatch is the intake callback: it enqueues the event and returns.
func (d *dispatcher) Dispatch(_ context.Context, job *core.Job, memo *core.Memo) error {
	if job == nil {
		return fmt.Errorf("job cannot be nil")
	}

	entry := &core.QueueEntry{
		ID:         uuid.NewString(),
		Job:        job,
		Memo:       memo,
		ReceivedAt: time.Now().UTC(),
	}

	// The stopped check and the enqueue share d.mu so nothing lands in the
	// queue after the loop has made its final drain.
	d.mu.Lock()
	if d.stopped || d.closing() {
		d.mu.Unlock()
		return ErrDispatcherStopped
	}
	d.queue.Enqueue(entry)
	d.mu.Unlock()

	d.logger.Debug("queued job event",
		"entry_id", entry.ID,
		"job_id", job.ID,
		"phase", job.Phase,
		"has_memo", memo != nil,
	)
	return nil
}

func (d *dispatcher) closing() bool {
	select {
	case <-d.done:
		return true
	default:
		return false
	}
}

// Pending returns the number of entries waiting to be picked up.
func (d *dispatcher) Pending() int {
	return d.queue.Len()
}

// run alternates between IDLE (waiting on the queue signal) and DRAINING.
// Once ctx is done intake is closed and entries already accepted are still
// handed to handlers.
func (d *dispatcher) run(ctx context.Context) {
	defer close(d.loopDone)
	d.logger.Info("job dispatcher started")

	for {
		if err := d.queue.Wait(ctx); err != nil {
			d.logger.Info("job dispatcher loop exiting", "reason", err)
			d.mu.Lock()
			d.stopped = true
			d.mu.Unlock()
			d.drain(ctx)
			return
		}
		d.drain(ctx)
	}
}

// drain pops entries until the queue is observed empty under its lock.
func (d *dispatcher) drain(ctx context.Context) {
	for {
		entry, ok := d.queue.Pop()
		if !ok {
			if d.queue.ClearIfEmpty() {
				return
			}
			continue
		}

		d.handlers.Add(1)
		go d.handle(context.WithoutCancel(ctx), entry)
	}
}

// handle runs the phase handler for one entry. Errors and panics stop here.
func (d *dispatcher) handle(ctx context.Context, entry *core.QueueEntry) {
	defer d.handlers.Done()
	defer d.pause()
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("job handler panicked",
				"entry_id", entry.ID,
				"job_id", entry.Job.ID,
				"panic", r,
				"stack", string(debug.Stack()),
			)
		}
	}()

	start := time.Now()
	err := d.handler.Handle(ctx, entry)
	if err != nil {
		d.logger.Error("job handler failed",
			"entry_id", entry.ID,
			"job_id", entry.Job.ID,
			"phase", entry.Job.Phase,
			"error", err,
		)
	} else {
		d.logger.Debug("job handler finished",
			"entry_id", entry.ID,
			"job_id", entry.Job.ID,
			"duration", time.Since(start),
		)
	}
}

// pause applies the post-handling cooldown, also after a panic.
func (d *dispatcher) pause() {
	if d.cooldown > 0 {
		time.Sleep(d.cooldown)
	}
}

// Stop stops accepting events, ends the loop and waits for every handler,
// including those started for entries accepted before Stop, to finish.
func (d *dispatcher) Stop() {
	d.stopOnce.Do(func() {
		d.logger.Info("stopping dispatcher and waiting for jobs to finish")
		d.cancel()
		<-d.loopDone
		d.handlers.Wait()
		d.logger.Info("all job handlers have finished")
	})
}
