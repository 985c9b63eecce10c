package tether

import (
	"sync"

	"github.com/akmonengine/tether/solver"
)

// DefaultFlushBatch bounds how many queued bodies one flush commits
const DefaultFlushBatch = 16

// pendingQueue defers add-to-world commits so the solver world is only
// mutated on its owning thread, immediately before a step. Enqueue may be
// called from any thread; Flush and Dequeue serialize on the mutex (single
// consumer for commits, synchronous removal of not-yet-added bodies).
type pendingQueue struct {
	mu      sync.Mutex
	entries []*bodyRecord
	batch   int
}

func newPendingQueue(batch int) *pendingQueue {
	if batch <= 0 {
		batch = DefaultFlushBatch
	}
	return &pendingQueue{batch: batch}
}

func (q *pendingQueue) Enqueue(rec *bodyRecord) {
	q.mu.Lock()
	q.entries = append(q.entries, rec)
	q.mu.Unlock()
}

// Dequeue removes a still-queued record and reports whether it was queued.
// Records already committed by a flush are not found here.
func (q *pendingQueue) Dequeue(rec *bodyRecord) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, queued := range q.entries {
		if queued == rec {
			q.entries = append(q.entries[:i], q.entries[i+1:]...)
			return true
		}
	}
	return false
}

func (q *pendingQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

// Flush commits at most one batch of queued bodies to the world, FIFO, and
// reports each through committed. Leftover entries carry over to the next
// flush rather than being dropped. Simulation thread only.
func (q *pendingQueue) Flush(world solver.World, committed func(rec *bodyRecord)) {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := min(q.batch, len(q.entries))
	for i := 0; i < n; i++ {
		rec := q.entries[i]
		world.AddBody(rec.native)
		rec.added = true
		committed(rec)
	}
	q.entries = q.entries[:copy(q.entries, q.entries[n:])]
}
