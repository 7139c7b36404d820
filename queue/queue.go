// Package queue implements the Matchup Queue and Ongoing-Task Registry:
// a FIFO of MatchupTask work items with a fixed 1<<16-task buffer and a
// mutual-exclusion-guarded collapsing registry that absorbs logically
// duplicate admission events without persisting scheduler state across
// a register/deregister lifecycle.
package queue

import (
	"pdarena.dev/service/types"
)

// Queue is a FIFO of matchup tasks backed by a channel of 1<<16 slots;
// it is not unbounded, and Enqueue blocks once every slot is full. The
// zero value is not usable; construct with New.
type Queue struct {
	ch chan types.MatchupTask
}

// New creates a Queue. Go channels require a capacity; a generously
// sized buffer keeps Enqueue non-blocking under realistic admission
// rates, while Dequeue still blocks when empty.
func New() *Queue {
	return &Queue{ch: make(chan types.MatchupTask, 1<<16)}
}

// Enqueue adds a task to the back of the queue. Never blocks in
// practice given the buffer size above; if the buffer is ever
// exhausted this intentionally blocks the admission handler rather
// than silently dropping scheduled work.
func (q *Queue) Enqueue(task types.MatchupTask) {
	q.ch <- task
}

// Dequeue blocks until a task is available or done is closed, in which
// case ok is false.
func (q *Queue) Dequeue(done <-chan struct{}) (task types.MatchupTask, ok bool) {
	select {
	case task = <-q.ch:
		return task, true
	case <-done:
		return types.MatchupTask{}, false
	}
}

// Len reports the number of tasks currently buffered, for diagnostics.
func (q *Queue) Len() int {
	return len(q.ch)
}
