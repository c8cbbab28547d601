package gpu

import "testing"

func TestDisposeRunsHooksOnce(t *testing.T) {
	var r Resource
	calls := 0
	r.OnDispose(func() { calls++ })
	r.OnDispose(func() { calls++ })

	r.Dispose()
	r.Dispose()

	if calls != 2 {
		t.Errorf("hooks ran %d times, want 2", calls)
	}
	if !r.Disposed() {
		t.Error("expected Disposed() after Dispose")
	}
}

func TestOnDisposeAfterDispose(t *testing.T) {
	var r Resource
	r.Dispose()

	ran := false
	r.OnDispose(func() { ran = true })
	if !ran {
		t.Error("hook registered after disposal should run immediately")
	}
}
