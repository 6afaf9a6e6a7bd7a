// Package frames models the host's display-refresh callback: callers ask
// for a function to run on the next refresh and the host runs it.
package frames

import (
	"fmt"
	"sync"
)

// ID identifies a requested callback
type ID uint64

// Requester is the host capability for scheduling refresh callbacks
type Requester interface {
	// RequestFrame schedules cb for the next refresh
	RequestFrame(cb func()) ID
	// CancelFrame drops a callback that has not run yet, including one
	// due later in the refresh currently being delivered
	CancelFrame(id ID)
}

type entry struct {
	id ID
	cb func()
}

// Queue is a Requester whose refreshes are driven explicitly by the host
// calling Tick. Callbacks run on the caller's goroutine, one refresh at a time.
type Queue struct {
	mu      sync.Mutex
	nextID  ID
	pending []entry
	// inflight holds the IDs of the current refresh batch not yet run
	inflight map[ID]struct{}
	ticks    int
}

// NewQueue creates an empty queue
func NewQueue() *Queue {
	return &Queue{}
}

func (q *Queue) RequestFrame(cb func()) ID {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.nextID++
	q.pending = append(q.pending, entry{id: q.nextID, cb: cb})
	return q.nextID
}

func (q *Queue) CancelFrame(id ID) {
	q.mu.Lock()
	defer q.mu.Unlock()
	delete(q.inflight, id)
	for i, e := range q.pending {
		if e.id == id {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
}

// Pending returns the number of callbacks waiting for the next refresh
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Ticks returns how many refreshes have been delivered
func (q *Queue) Ticks() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.ticks
}

// Tick delivers one refresh: every callback requested before the call runs
// once, and callbacks they request wait for the following refresh. A
// callback cancelled by an earlier one in the same refresh is skipped.
// Tick returns the number of callbacks run.
func (q *Queue) Tick() int {
	q.mu.Lock()
	batch := q.pending
	q.pending = nil
	q.ticks++
	q.inflight = make(map[ID]struct{}, len(batch))
	for _, e := range batch {
		q.inflight[e.id] = struct{}{}
	}
	q.mu.Unlock()

	ran := 0
	for _, e := range batch {
		if !q.take(e.id) {
			continue
		}
		e.cb()
		ran++
	}
	return ran
}

// take claims a batch entry, reporting false if it was cancelled
func (q *Queue) take(id ID) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if _, ok := q.inflight[id]; !ok {
		return false
	}
	delete(q.inflight, id)
	return true
}

// RunUntilIdle ticks until no callbacks remain and returns the number of
// refreshes delivered. It fails if the queue is still busy after limit ticks.
func (q *Queue) RunUntilIdle(limit int) (int, error) {
	n := 0
	for q.Pending() > 0 {
		if n >= limit {
			return n, fmt.Errorf("frame queue still busy after %d refreshes", limit)
		}
		q.Tick()
		n++
	}
	return n, nil
}
