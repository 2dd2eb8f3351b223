package jobs

import (
	"context"
	"sync"

	"github.com/sevigo/volatility-agent/internal/core"
)

// Queue is an unbounded FIFO of queue entries with an active/idle signal.
// The signal is active whenever the queue holds entries; it is cleared only
// through ClearIfEmpty, under the same lock that guards the entries.
type Queue struct {
	mu      sync.Mutex
	entries []*core.QueueEntry
	active  bool
	wake    chan struct{}
}

// NewQueue returns an empty, idle queue.
func NewQueue() *Queue {
	return &Queue{wake: make(chan struct{}, 1)}
}

// Enqueue appends entry to the tail. If the queue was idle the signal is
// armed before Enqueue returns. It never blocks beyond acquiring the lock.
func (q *Queue) Enqueue(entry *core.QueueEntry) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.entries = append(q.entries, entry)
	if !q.active {
		q.active = true
		select {
		case q.wake <- struct{}{}:
		default:
		}
	}
}

// Pop removes and returns the head entry. It reports false when the queue is empty.
func (q *Queue) Pop() (*core.QueueEntry, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.entries) == 0 {
		return nil, false
	}
	entry := q.entries[0]
	q.entries[0] = nil
	q.entries = q.entries[1:]
	if len(q.entries) == 0 {
		// Drop the drained backing array so it can be collected.
		q.entries = nil
	}
	return entry, true
}

// ClearIfEmpty sets the signal to idle if the queue is still empty and
// reports whether it did. A false result means an entry arrived after the
// caller last observed the queue as empty.
func (q *Queue) ClearIfEmpty() bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.entries) > 0 {
		return false
	}
	q.active = false
	select {
	case <-q.wake:
	default:
	}
	return true
}

// Wait blocks until the signal is active or ctx is done.
func (q *Queue) Wait(ctx context.Context) error {
	for {
		if q.Active() {
			return nil
		}
		select {
		case <-q.wake:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Active reports whether the signal is armed.
func (q *Queue) Active() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.active
}

// Len returns the number of queued entries.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}
