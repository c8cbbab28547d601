package loop

import (
	"sync"
	"testing"
	"time"
)

func TestRequestRunsOnce(t *testing.T) {
	s := New()
	calls := 0
	s.Request(func(time.Duration) { calls++ })

	s.Tick(16 * time.Millisecond)
	s.Tick(32 * time.Millisecond)
	if calls != 1 {
		t.Errorf("callback ran %d times, want 1", calls)
	}
}

func TestRequestDuringTickRunsNextTick(t *testing.T) {
	s := New()
	var stamps []time.Duration
	var frame FrameFunc
	frame = func(now time.Duration) {
		stamps = append(stamps, now)
		s.Request(frame)
	}
	s.Request(frame)

	s.Tick(10 * time.Millisecond)
	s.Tick(20 * time.Millisecond)
	if len(stamps) != 2 || stamps[1] != 20*time.Millisecond {
		t.Errorf("stamps = %v", stamps)
	}
	if s.Pending() != 1 {
		t.Errorf("pending = %d, want 1", s.Pending())
	}
}

func TestCancel(t *testing.T) {
	s := New()
	ran := false
	id := s.Request(func(time.Duration) { ran = true })
	s.Cancel(id)
	s.Cancel(id)
	s.Tick(0)
	if ran {
		t.Error("cancelled callback ran")
	}
}

func TestPostFromGoroutines(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	count := 0
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Post(func() { count++ })
		}()
	}
	wg.Wait()

	order := []string{}
	s.Post(func() { order = append(order, "posted") })
	s.Request(func(time.Duration) { order = append(order, "frame") })
	s.Tick(0)

	if count != 10 {
		t.Errorf("posted functions ran %d times, want 10", count)
	}
	if len(order) != 2 || order[0] != "posted" {
		t.Errorf("posted work should run before frames, got %v", order)
	}
}

func TestClockElapsed(t *testing.T) {
	base := time.Unix(1000, 0)
	current := base
	c := &Clock{start: base, now: func() time.Time { return current }}

	current = base.Add(1500 * time.Millisecond)
	if got := c.Elapsed(); got != 1500*time.Millisecond {
		t.Errorf("Elapsed = %v", got)
	}
}
