// Package feed fans out event collection changes to subscribers: the
// in-process event store listener and any connected websocket clients.
package feed

import (
	"sync"

	"council-calendar-backend/cmd/council-calendar/model"
)

const subscriberBuffer = 256

// Bus is a publish/subscribe hub for event changes. Publishing walks the
// subscriber set under one lock, so every subscriber sees changes in the
// order they were published. A subscriber that falls more than
// subscriberBuffer changes behind is evicted rather than allowed to block
// the publisher.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan model.Change
}

func NewBus() *Bus {
	return &Bus{
		subs: make(map[int]chan model.Change),
	}
}

// Subscription is one subscriber's handle. Changes arrive on C until
// Close is called or the subscriber is evicted; either way C is closed.
type Subscription struct {
	C <-chan model.Change

	bus *Bus
	id  int
}

func (b *Bus) Subscribe() *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan model.Change, subscriberBuffer)
	id := b.nextID
	b.nextID++
	b.subs[id] = ch

	return &Subscription{C: ch, bus: b, id: id}
}

// Close detaches the subscription and closes its channel. Safe to call
// more than once.
func (s *Subscription) Close() {
	s.bus.drop(s.id)
}

func (b *Bus) drop(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subs[id]; ok {
		delete(b.subs, id)
		close(ch)
	}
}

func (b *Bus) Publish(change model.Change) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id, ch := range b.subs {
		select {
		case ch <- change:
		default:
			delete(b.subs, id)
			close(ch)
		}
	}
}

// SubscriberCount reports how many subscriptions are currently attached.
func (b *Bus) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
