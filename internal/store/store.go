// Package store holds the console's copy of each listing: rows keyed by
// backend id, newest first, with change notifications per row and per list.
package store

import (
	"errors"
	"sync"

	"internship_admin/internal/models"
)

var ErrRowNotFound = errors.New("row not found")

type EventType string

const (
	EventInserted EventType = "inserted"
	EventUpdated  EventType = "updated"
	EventRemoved  EventType = "removed"
	EventReplaced EventType = "replaced"
)

// Event describes one change. Row is the row after the change (before it for removals);
// Rows is set only for EventReplaced.
type Event[T models.Entity] struct {
	Type    EventType `json:"type"`
	ID      int64     `json:"id,omitempty"`
	Row     T         `json:"row"`
	Rows    []T       `json:"rows,omitempty"`
	Version uint64    `json:"version"`
}

type Listener[T models.Entity] func(Event[T])

// Store is safe for concurrent use. Listeners run after the lock is released,
// in the goroutine that made the change.
type Store[T models.Entity] struct {
	mu      sync.RWMutex
	rows    []T
	index   map[int64]int
	version uint64

	nextSub   int
	listeners map[int]Listener[T]
	rowSubs   map[int64]map[int]Listener[T]
}

func New[T models.Entity]() *Store[T] {
	return &Store[T]{
		index:     make(map[int64]int),
		listeners: make(map[int]Listener[T]),
		rowSubs:   make(map[int64]map[int]Listener[T]),
	}
}

// Replace swaps the whole listing, e.g. after the initial load.
func (s *Store[T]) Replace(rows []T) {
	s.mu.Lock()
	s.rows = append([]T(nil), rows...)
	s.reindex()
	s.version++
	ev := Event[T]{Type: EventReplaced, Rows: append([]T(nil), s.rows...), Version: s.version}
	subs := s.snapshotListeners(0, false)
	s.mu.Unlock()

	notify(subs, ev)
}

// Prepend inserts row at the head. A row with an id already present replaces
// the old one and moves to the head.
func (s *Store[T]) Prepend(row T) {
	id := row.GetID()
	s.mu.Lock()
	if i, ok := s.index[id]; ok {
		s.rows = append(s.rows[:i], s.rows[i+1:]...)
	}
	s.rows = append([]T{row}, s.rows...)
	s.reindex()
	s.version++
	ev := Event[T]{Type: EventInserted, ID: id, Row: row, Version: s.version}
	subs := s.snapshotListeners(id, true)
	s.mu.Unlock()

	notify(subs, ev)
}

// Update mutates the row with the given id in place.
func (s *Store[T]) Update(id int64, mutate func(*T)) (T, error) {
	s.mu.Lock()
	i, ok := s.index[id]
	if !ok {
		s.mu.Unlock()
		var zero T
		return zero, ErrRowNotFound
	}
	mutate(&s.rows[i])
	row := s.rows[i]
	s.version++
	ev := Event[T]{Type: EventUpdated, ID: id, Row: row, Version: s.version}
	subs := s.snapshotListeners(id, true)
	s.mu.Unlock()

	notify(subs, ev)
	return row, nil
}

// Remove deletes the row with the given id.
func (s *Store[T]) Remove(id int64) (T, error) {
	s.mu.Lock()
	i, ok := s.index[id]
	if !ok {
		s.mu.Unlock()
		var zero T
		return zero, ErrRowNotFound
	}
	row := s.rows[i]
	s.rows = append(s.rows[:i], s.rows[i+1:]...)
	s.reindex()
	s.version++
	ev := Event[T]{Type: EventRemoved, ID: id, Row: row, Version: s.version}
	subs := s.snapshotListeners(id, true)
	delete(s.rowSubs, id)
	s.mu.Unlock()

	notify(subs, ev)
	return row, nil
}

func (s *Store[T]) Get(id int64) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[id]
	if !ok {
		var zero T
		return zero, false
	}
	return s.rows[i], true
}

// List returns a copy of the rows, newest first.
func (s *Store[T]) List() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]T(nil), s.rows...)
}

// Snapshot returns the rows together with the version they belong to.
func (s *Store[T]) Snapshot() ([]T, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]T(nil), s.rows...), s.version
}

func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows)
}

// Version grows by one on every change.
func (s *Store[T]) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Subscribe registers fn for every change of the listing.
func (s *Store[T]) Subscribe(fn Listener[T]) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// SubscribeRow registers fn for changes of a single row. The subscription
// ends when the row is removed.
func (s *Store[T]) SubscribeRow(rowID int64, fn Listener[T]) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	if s.rowSubs[rowID] == nil {
		s.rowSubs[rowID] = make(map[int]Listener[T])
	}
	s.rowSubs[rowID][id] = fn
	return func() {
		s.mu.Lock()
		if subs, ok := s.rowSubs[rowID]; ok {
			delete(subs, id)
			if len(subs) == 0 {
				delete(s.rowSubs, rowID)
			}
		}
		s.mu.Unlock()
	}
}

func (s *Store[T]) reindex() {
	s.index = make(map[int64]int, len(s.rows))
	for i, r := range s.rows {
		s.index[r.GetID()] = i
	}
}

// snapshotListeners is called with s.mu held.
func (s *Store[T]) snapshotListeners(rowID int64, withRow bool) []Listener[T] {
	out := make([]Listener[T], 0, len(s.listeners))
	for _, l := range s.listeners {
		out = append(out, l)
	}
	if withRow {
		for _, l := range s.rowSubs[rowID] {
			out = append(out, l)
		}
	}
	return out
}

func notify[T models.Entity](subs []Listener[T], ev Event[T]) {
	for _, l := range subs {
		l(ev)
	}
}
