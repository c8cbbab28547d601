// Package gpu holds the lifetime bookkeeping shared by every CPU-side object that owns
// GPU memory once a renderer has uploaded it.
package gpu

// Resource tracks disposal of a GPU-backed object. The renderer registers a release hook
// when it uploads the object; Dispose runs the hooks once and marks the object released.
// The zero value is ready to use.
type Resource struct {
	disposed bool
	hooks    []func()
}

// OnDispose registers fn to run when the resource is disposed. If the resource is
// already disposed fn runs immediately.
func (r *Resource) OnDispose(fn func()) {
	if r.disposed {
		fn()
		return
	}
	r.hooks = append(r.hooks, fn)
}

// Dispose releases the resource. Calling it more than once is a no-op.
func (r *Resource) Dispose() {
	if r.disposed {
		return
	}
	r.disposed = true
	hooks := r.hooks
	r.hooks = nil
	for _, fn := range hooks {
		fn()
	}
}

// Disposed reports whether Dispose has been called.
func (r *Resource) Disposed() bool {
	return r.disposed
}

// Disposable is implemented by anything embedding Resource.
type Disposable interface {
	Dispose()
	Disposed() bool
	OnDispose(fn func())
}
