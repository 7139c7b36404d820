// Package broadcast implements the Result Broadcaster: a single
// fan-out channel with a bounded backlog that publishes a lite view of
// every persisted MatchResolution. Subscribers are allowed to miss
// messages under load; the Stream Handlers' replay-then-tail protocol
// is idempotent against drops.
package broadcast

import (
	"sync"

	"pdarena.dev/service/types"
)

// Backlog is the default per-subscriber channel capacity.
const Backlog = 1000

// Broadcaster fans out MatchResolutionLite views to any number of
// subscribers. The zero value is not usable; construct with New.
type Broadcaster struct {
	mu sync.Mutex
	subscribers map[int64]chan types.MatchResolutionLite
	nextID int64
}

// New creates an empty Broadcaster.
func New() *Broadcaster {
	return &Broadcaster{subscribers: make(map[int64]chan types.MatchResolutionLite)}
}

// Subscription is an independent receiver returned by Subscribe. Call
// Close when done to release the subscriber slot.
type Subscription struct {
	id int64
	ch chan types.MatchResolutionLite
	b *Broadcaster
}

// C returns the channel to receive lite resolutions on.
func (s *Subscription) C() <-chan types.MatchResolutionLite { return s.ch }

// Close unsubscribes, releasing the backing channel.
func (s *Subscription) Close() {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	delete(s.b.subscribers, s.id)
}

// Subscribe joins the broadcast, returning an independent receiver.
// Must be called before querying the store for the replay phase of the
// Stream Handlers' protocol to avoid racing with
// in-flight inserts.
func (b *Broadcaster) Subscribe() *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	ch := make(chan types.MatchResolutionLite, Backlog)
	b.subscribers[id] = ch
	return &Subscription{id: id, ch: ch, b: b}
}

// Publish fans view out to every current subscriber. Sends are
// non-blocking: a subscriber whose channel is full is dropped from
// this publish rather than stalling the Round Executor.
func (b *Broadcaster) Publish(view types.MatchResolutionLite) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subscribers {
		select {
		case ch <- view:
		default:
		}
	}
}
