// AngelaMos | 2026
// store.go

package store

import (
	"sync"
)

// Store is an ordered in-memory collection of records. It is the only
// owner of the canonical record list: accessors hand out shared
// pointers, so an in-place mutation performed through MutateInPlace is
// visible to every holder on the next read. Records are never removed;
// logical deletion is a caller-driven field mutation.
//
// All access is serialized through an RWMutex. AppendUnique runs its
// conflict scan and the insert under one exclusive lock, which closes
// the check-then-insert race between concurrent writers.
type Store[T any] struct {
	mu      sync.RWMutex
	idOf    func(*T) string
	records []*T
}

func New[T any](idOf func(*T) string) *Store[T] {
	return &Store[T]{idOf: idOf}
}

// Append adds a record to the end of the list.
func (s *Store[T]) Append(rec *T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, rec)
}

// AppendUnique adds rec unless conflictsWith reports true for an
// existing record. On conflict it returns the first offending record
// and false, leaving the list untouched.
func (s *Store[T]) AppendUnique(
	rec *T,
	conflictsWith func(existing *T) bool,
) (*T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.records {
		if conflictsWith(existing) {
			return existing, false
		}
	}

	s.records = append(s.records, rec)
	return nil, true
}

func (s *Store[T]) FindByID(id string) (*T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.records {
		if s.idOf(rec) == id {
			return rec, true
		}
	}

	return nil, false
}

func (s *Store[T]) FindFirst(pred func(*T) bool) (*T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.records {
		if pred(rec) {
			return rec, true
		}
	}

	return nil, false
}

// All returns the records in insertion order. The slice is a fresh
// copy but its elements alias the stored records.
func (s *Store[T]) All() []*T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make([]*T, len(s.records))
	copy(snapshot, s.records)
	return snapshot
}

// MutateInPlace applies fn to the record with the given id under the
// write lock and reports whether a record matched.
func (s *Store[T]) MutateInPlace(id string, fn func(*T)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.records {
		if s.idOf(rec) == id {
			fn(rec)
			return true
		}
	}

	return false
}

func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.records)
}
