package broadcast

import (
	"testing"
	"time"

	"pdarena.dev/service/types"
)

func TestBroadcaster_PublishToSubscriber(t *testing.T) {
	b := New()
	sub := b.Subscribe()
	defer sub.Close()

	view := types.MatchResolutionLite{MatchResolutionID: 1, SubmissionID: 2, OpponentSubmissionID: 3}
	b.Publish(view)

	select {
	case got := <-sub.C():
		if got != view {
			t.Errorf("received %+v, want %+v", got, view)
		}
	case <-time.After(time.Second):
		t.Fatal("subscriber did not receive published view")
	}
}

func TestBroadcaster_FanOutToMultipleSubscribers(t *testing.T) {
	b := New()
	sub1 := b.Subscribe()
	sub2 := b.Subscribe()
	defer sub1.Close()
	defer sub2.Close()

	view := types.MatchResolutionLite{MatchResolutionID: 7}
	b.Publish(view)

	for _, sub := range []*Subscription{sub1, sub2} {
		select {
		case got := <-sub.C():
			if got != view {
				t.Errorf("received %+v, want %+v", got, view)
			}
		case <-time.After(time.Second):
			t.Fatal("a subscriber did not receive the published view")
		}
	}
}

func TestBroadcaster_CloseUnsubscribes(t *testing.T) {
	b := New()
	sub := b.Subscribe()
	sub.Close()

	// Publishing after Close must not block or panic, even though the
	// subscriber's channel is no longer registered.
	b.Publish(types.MatchResolutionLite{MatchResolutionID: 1})
}

func TestBroadcaster_LossyUnderLoad(t *testing.T) {
	b := New()
	sub := b.Subscribe()
	defer sub.Close()

	// Publish more than the backlog without ever draining; Publish must
	// never block even once the subscriber's channel is full.
	done := make(chan struct{})
	go func() {
		for i := 0; i < Backlog+10; i++ {
			b.Publish(types.MatchResolutionLite{MatchResolutionID: int64(i)})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked while the subscriber's backlog was full")
	}
}
