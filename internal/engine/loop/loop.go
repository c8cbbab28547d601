// Package loop schedules per-frame callbacks and marshals work from background goroutines
// back onto the main thread.
package loop

import (
	"sync"
	"time"
)

// FrameFunc is called once for a requested frame with the time since the scheduler started.
type FrameFunc func(now time.Duration)

// FrameID identifies a pending frame request.
type FrameID uint64

type request struct {
	id FrameID
	fn FrameFunc
}

// Scheduler runs frame callbacks when ticked by the application loop. Request and Cancel
// are main-thread only; Post may be called from any goroutine.
type Scheduler struct {
	next    FrameID
	pending []request

	mu     sync.Mutex
	posted []func()
}

// New creates an empty scheduler.
func New() *Scheduler {
	return &Scheduler{}
}

// Request schedules fn for the next tick.
func (s *Scheduler) Request(fn FrameFunc) FrameID {
	s.next++
	s.pending = append(s.pending, request{id: s.next, fn: fn})
	return s.next
}

// Cancel drops a pending request. Unknown or already-run IDs are ignored.
func (s *Scheduler) Cancel(id FrameID) {
	for i, r := range s.pending {
		if r.id == id {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return
		}
	}
}

// Pending returns the number of frame requests waiting for the next tick.
func (s *Scheduler) Pending() int {
	return len(s.pending)
}

// Post queues fn to run on the main thread at the start of the next tick.
func (s *Scheduler) Post(fn func()) {
	s.mu.Lock()
	s.posted = append(s.posted, fn)
	s.mu.Unlock()
}

// Tick runs posted functions and then every frame callback requested before the tick.
// Callbacks requested during the tick run on the next one.
func (s *Scheduler) Tick(now time.Duration) {
	s.mu.Lock()
	posted := s.posted
	s.posted = nil
	s.mu.Unlock()
	for _, fn := range posted {
		fn()
	}

	frames := s.pending
	s.pending = nil
	for _, r := range frames {
		r.fn(now)
	}
}

// Clock measures time since it was started.
type Clock struct {
	start time.Time
	now   func() time.Time
}

// NewClock starts a wall clock.
func NewClock() *Clock {
	return &Clock{start: time.Now(), now: time.Now}
}

// Elapsed returns the time since the clock started.
func (c *Clock) Elapsed() time.Duration {
	return c.now().Sub(c.start)
}
