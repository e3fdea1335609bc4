// Package store keeps the in-memory event cache backing one mounted
// calendar view. Mutations apply optimistically before the persistence
// round-trip and are reconciled with the canonical record on success or
// rolled back on failure. A feed listener merges remote changes into the
// same cache.
package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"council-calendar-backend/cmd/council-calendar/feed"
	"council-calendar-backend/cmd/council-calendar/model"
	"council-calendar-backend/cmd/council-calendar/schedule"
)

var ErrNotFound = errors.New("event not found in cache")

// Persistence is the remote collection the cache reconciles against.
// Create and update return the canonical stored record, which may carry
// fields the caller never sent.
type Persistence interface {
	ListEventsInRange(ctx context.Context, start, end time.Time) ([]model.Event, error)
	CreateEvent(ctx context.Context, event model.Event) (model.Event, error)
	CreateEvents(ctx context.Context, events []model.Event) ([]model.Event, error)
	UpdateEvent(ctx context.Context, id string, patch model.EventPatch) (model.Event, error)
	DeleteEvent(ctx context.Context, id string) error
}

// EventStore caches the events of a visible window, current month plus one
// month either side. One store instance owns one window and one feed
// subscription at a time.
type EventStore struct {
	persist Persistence
	bus     *feed.Bus

	mu     sync.Mutex
	events map[string]model.Event

	sub *feed.Subscription
	wg  sync.WaitGroup

	tempSeq atomic.Int64
}

func NewEventStore(persist Persistence, bus *feed.Bus) *EventStore {
	return &EventStore{
		persist: persist,
		bus:     bus,
		events:  make(map[string]model.Event),
	}
}

// Mount points the store at the window around month: it tears down any
// previous subscription, attaches a fresh one, and replaces the cache
// wholesale from persistence. Calling Mount again is how a month change
// is handled; the stale cache never survives into the new window.
func (s *EventStore) Mount(ctx context.Context, month time.Time) error {
	s.Close()

	sub := s.bus.Subscribe()
	s.sub = sub
	s.wg.Add(1)
	go s.listen(sub)

	return s.Refetch(ctx, month)
}

// Close detaches the feed subscription and waits until the listener has
// stopped, so no change callback can touch the cache after it returns.
func (s *EventStore) Close() {
	if s.sub == nil {
		return
	}
	s.sub.Close()
	s.wg.Wait()
	s.sub = nil
}

func (s *EventStore) listen(sub *feed.Subscription) {
	defer s.wg.Done()
	for change := range sub.C {
		s.ApplyChange(change)
	}
}

// Refetch reloads the month-window range and replaces the cache contents.
// A refetch is also the only guaranteed resync point after a feed gap.
func (s *EventStore) Refetch(ctx context.Context, month time.Time) error {
	monthStart := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	start := monthStart.AddDate(0, -1, 0)
	end := monthStart.AddDate(0, 2, 0).Add(-time.Nanosecond)

	events, err := s.persist.ListEventsInRange(ctx, start, end)
	if err != nil {
		return err
	}

	fresh := make(map[string]model.Event, len(events))
	for _, ev := range events {
		fresh[ev.ID] = ev
	}

	s.mu.Lock()
	s.events = fresh
	s.mu.Unlock()
	return nil
}

// Events returns the cached events ordered by start time.
func (s *EventStore) Events() []model.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Event, 0, len(s.events))
	for _, ev := range s.events {
		out = append(out, ev)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartTime.Equal(out[j].StartTime) {
			return out[i].ID < out[j].ID
		}
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out
}

func (s *EventStore) Get(id string) (model.Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev, ok := s.events[id]
	return ev, ok
}

func (s *EventStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

// Create validates, inserts a temp-id entry immediately, then persists.
// On success the temp entry is swapped for the canonical record under one
// lock, so there is never a moment with both or neither present. On
// failure the temp entry is removed and the error returned; no retry.
func (s *EventStore) Create(ctx context.Context, event model.Event) (model.Event, error) {
	if err := event.Validate(); err != nil {
		return model.Event{}, err
	}

	temp := event
	temp.ID = s.nextTempID()

	s.mu.Lock()
	s.events[temp.ID] = temp
	s.mu.Unlock()

	persisted, err := s.persist.CreateEvent(ctx, event)
	if err != nil {
		s.mu.Lock()
		delete(s.events, temp.ID)
		s.mu.Unlock()
		return model.Event{}, err
	}

	s.mu.Lock()
	delete(s.events, temp.ID)
	s.events[persisted.ID] = persisted
	s.mu.Unlock()
	return persisted, nil
}

// CreateRepeating expands the repeat rule and persists all instances as
// one batch. The whole batch succeeds or fails together from the caller's
// point of view; the repository commits it in a single transaction.
func (s *EventStore) CreateRepeating(ctx context.Context, base model.Event, mode schedule.RepeatMode, until time.Time) ([]model.Event, error) {
	if err := base.Validate(); err != nil {
		return nil, err
	}

	instances, err := schedule.Expand(base, mode, until)
	if err != nil {
		return nil, err
	}

	tempIDs := make([]string, len(instances))
	s.mu.Lock()
	for i, inst := range instances {
		id := s.nextTempID()
		tempIDs[i] = id
		inst.ID = id
		s.events[id] = inst
	}
	s.mu.Unlock()

	persisted, err := s.persist.CreateEvents(ctx, instances)
	if err != nil {
		s.mu.Lock()
		for _, id := range tempIDs {
			delete(s.events, id)
		}
		s.mu.Unlock()
		return nil, err
	}

	s.mu.Lock()
	for _, id := range tempIDs {
		delete(s.events, id)
	}
	for _, ev := range persisted {
		s.events[ev.ID] = ev
	}
	s.mu.Unlock()
	return persisted, nil
}

// Update applies the patch optimistically and persists it. On failure the
// whole pre-mutation cache is restored, not just the touched entry; the
// cache is small enough that the coarse rollback is fine.
func (s *EventStore) Update(ctx context.Context, id string, patch model.EventPatch) (model.Event, error) {
	s.mu.Lock()
	current, ok := s.events[id]
	if !ok {
		s.mu.Unlock()
		return model.Event{}, ErrNotFound
	}

	patched := patch.Apply(current)
	if err := patched.Validate(); err != nil {
		s.mu.Unlock()
		return model.Event{}, err
	}

	snapshot := s.snapshotLocked()
	s.events[id] = patched
	s.mu.Unlock()

	persisted, err := s.persist.UpdateEvent(ctx, id, patch)
	if err != nil {
		s.mu.Lock()
		s.events = snapshot
		s.mu.Unlock()
		return model.Event{}, err
	}

	s.mu.Lock()
	s.events[id] = persisted
	s.mu.Unlock()
	return persisted, nil
}

// ShiftToDate is the drag-move: it recomputes the timestamp pair for the
// target day and runs it through Update as a partial patch.
func (s *EventStore) ShiftToDate(ctx context.Context, id string, target time.Time) (model.Event, error) {
	s.mu.Lock()
	current, ok := s.events[id]
	s.mu.Unlock()
	if !ok {
		return model.Event{}, ErrNotFound
	}

	shifted := schedule.ShiftToDate(current, target)
	patch := model.EventPatch{StartTime: &shifted.StartTime}
	if shifted.EndTime != nil {
		patch.EndTime = shifted.EndTime
	}
	return s.Update(ctx, id, patch)
}

// Delete removes the entry optimistically; on failure the pre-mutation
// snapshot is restored.
func (s *EventStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	if _, ok := s.events[id]; !ok {
		s.mu.Unlock()
		return ErrNotFound
	}
	snapshot := s.snapshotLocked()
	delete(s.events, id)
	s.mu.Unlock()

	if err := s.persist.DeleteEvent(ctx, id); err != nil {
		s.mu.Lock()
		s.events = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

// ApplyChange merges one feed notification. Inserts and updates overwrite
// by id, so an insert for an id already confirmed locally is a no-op in
// size; deletes tolerate absence. Changes for the same id must be applied
// in delivery order, which the single listener goroutine guarantees.
func (s *EventStore) ApplyChange(change model.Change) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch change.Kind {
	case model.ChangeInsert, model.ChangeUpdate:
		if change.Event != nil {
			s.events[change.Event.ID] = *change.Event
		}
	case model.ChangeDelete:
		delete(s.events, change.ID)
	}
}

func (s *EventStore) snapshotLocked() map[string]model.Event {
	snap := make(map[string]model.Event, len(s.events))
	for id, ev := range s.events {
		snap[id] = ev
	}
	return snap
}

func (s *EventStore) nextTempID() string {
	return fmt.Sprintf("temp-%d-%d", time.Now().UnixMilli(), s.tempSeq.Add(1))
}
