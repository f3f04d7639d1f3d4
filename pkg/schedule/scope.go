package schedule

import (
	"sync"
	"time"
)

// Scope owns the schedules of one stage activation. Closing it cancels every
// pending callback and turns later AfterFunc calls into no-ops, so a stage that
// has ended can never touch the session again.
type Scope struct {
	parent Scheduler

	mu      sync.Mutex
	nextID  int
	cancels map[int]CancelFunc
	closed  bool
}

// NewScope creates a scope on top of parent.
func NewScope(parent Scheduler) *Scope {
	return &Scope{
		parent:  parent,
		cancels: make(map[int]CancelFunc),
	}
}

// Now delegates to the parent scheduler.
func (s *Scope) Now() time.Time {
	return s.parent.Now()
}

// AfterFunc schedules fn within the scope.
func (s *Scope) AfterFunc(d time.Duration, fn func()) CancelFunc {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return func() {}
	}

	s.nextID++
	id := s.nextID
	s.cancels[id] = s.parent.AfterFunc(d, func() {
		if !s.take(id) {
			return
		}
		fn()
	})

	return func() {
		s.mu.Lock()
		cancel, ok := s.cancels[id]
		delete(s.cancels, id)
		s.mu.Unlock()
		if ok {
			cancel()
		}
	}
}

// take removes id from the live set and reports whether the callback may run.
func (s *Scope) take(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}
	if _, ok := s.cancels[id]; !ok {
		return false
	}
	delete(s.cancels, id)
	return true
}

// Close cancels all pending callbacks. It is idempotent.
func (s *Scope) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	cancels := s.cancels
	s.cancels = nil
	s.mu.Unlock()

	for _, cancel := range cancels {
		cancel()
	}
}

// Closed reports whether Close was called.
func (s *Scope) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Pending returns the number of live callbacks in the scope.
func (s *Scope) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cancels)
}
