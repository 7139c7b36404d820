package queue

import (
	"testing"
	"time"

	"pdarena.dev/service/types"
)

func TestQueue_EnqueueDequeue(t *testing.T) {
	q := New()
	task := types.MatchupTask{MatchupNum: 1, NRounds: 5, SubmissionID: 2, OpponentSubmissionID: 3}
	q.Enqueue(task)

	got, ok := q.Dequeue(nil)
	if !ok {
		t.Fatal("Dequeue returned ok=false for a non-empty queue")
	}
	if got != task {
		t.Errorf("Dequeue() = %+v, want %+v", got, task)
	}
}

func TestQueue_FIFOOrder(t *testing.T) {
	q := New()
	for i := int64(0); i < 3; i++ {
		q.Enqueue(types.MatchupTask{MatchupNum: i})
	}
	for i := int64(0); i < 3; i++ {
		got, ok := q.Dequeue(nil)
		if !ok || got.MatchupNum != i {
			t.Fatalf("Dequeue()[%d] = %+v, ok=%v, want MatchupNum=%d", i, got, ok, i)
		}
	}
}

func TestQueue_DequeueUnblocksOnDone(t *testing.T) {
	q := New()
	done := make(chan struct{})
	close(done)

	_, ok := q.Dequeue(done)
	if ok {
		t.Error("Dequeue should return ok=false when done is already closed and queue is empty")
	}
}

func TestQueue_Len(t *testing.T) {
	q := New()
	if q.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", q.Len())
	}
	q.Enqueue(types.MatchupTask{})
	q.Enqueue(types.MatchupTask{})
	if q.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", q.Len())
	}
}

func TestQueue_DequeueBlocksUntilEnqueue(t *testing.T) {
	q := New()
	done := make(chan struct{})
	result := make(chan bool, 1)

	go func() {
		_, ok := q.Dequeue(done)
		result <- ok
	}()

	select {
	case <-result:
		t.Fatal("Dequeue returned before any task was enqueued")
	case <-time.After(20 * time.Millisecond):
	}

	q.Enqueue(types.MatchupTask{MatchupNum: 9})
	select {
	case ok := <-result:
		if !ok {
			t.Error("Dequeue returned ok=false after an enqueue")
		}
	case <-time.After(time.Second):
		t.Fatal("Dequeue did not unblock after Enqueue")
	}
}
