package view

import (
	"context"
	"sync"
)

// State is the lifecycle of one asynchronous load.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateLoaded  State = "loaded"
	StateError   State = "error"
)

// FetchFunc loads the value identified by id.
type FetchFunc[T any] func(ctx context.Context, id string) (T, error)

// Snapshot is a point-in-time copy of a resource.
type Snapshot[T any] struct {
	State State
	Data  T
	Err   error
}

// Loading reports whether a load is in flight.
func (s Snapshot[T]) Loading() bool { return s.State == StateLoading }

// Failed reports whether the last load failed.
func (s Snapshot[T]) Failed() bool { return s.State == StateError }

// Resource wraps a fetch function with idle/loading/loaded/error state. Each Load supersedes the
// previous one: the earlier context is cancelled and its result, if it still arrives, is dropped.
type Resource[T any] struct {
	fetch FetchFunc[T]

	mu     sync.Mutex
	state  State
	data   T
	err    error
	gen    uint64
	cancel context.CancelFunc
	closed bool
}

// NewResource constructs an idle resource.
func NewResource[T any](fetch FetchFunc[T]) *Resource[T] {
	return &Resource[T]{fetch: fetch, state: StateIdle}
}

// Load fetches id and blocks until the fetch settles. Data from any earlier load is discarded
// before the fetch starts. The returned snapshot is the resource state after settling, which is a
// newer load's state if this one was superseded meanwhile.
func (r *Resource[T]) Load(ctx context.Context, id string) Snapshot[T] {
	r.mu.Lock()
	if r.closed {
		defer r.mu.Unlock()
		return r.snapshotLocked()
	}
	if r.cancel != nil {
		r.cancel()
	}
	r.gen++
	gen := r.gen
	var zero T
	r.data = zero
	r.err = nil
	r.state = StateLoading
	loadCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.mu.Unlock()

	data, err := r.fetch(loadCtx, id)
	cancel()

	r.mu.Lock()
	defer r.mu.Unlock()
	if gen != r.gen || r.closed {
		return r.snapshotLocked()
	}
	r.cancel = nil
	if err != nil {
		r.state = StateError
		r.err = err
		return r.snapshotLocked()
	}
	r.state = StateLoaded
	r.data = data
	return r.snapshotLocked()
}

// Set replaces the data as if it had been loaded, superseding any in-flight load.
func (r *Resource[T]) Set(data T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.supersedeLocked()
	r.state = StateLoaded
	r.data = data
	r.err = nil
}

// Fail puts the resource in the error state, dropping its data and any in-flight result.
func (r *Resource[T]) Fail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.supersedeLocked()
	var zero T
	r.state = StateError
	r.data = zero
	r.err = err
}

// Reset returns to idle and drops any in-flight result.
func (r *Resource[T]) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.supersedeLocked()
	var zero T
	r.state = StateIdle
	r.data = zero
	r.err = nil
}

// Close cancels in-flight work; later loads are ignored.
func (r *Resource[T]) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.supersedeLocked()
	var zero T
	r.state = StateIdle
	r.data = zero
	r.err = nil
	r.closed = true
}

// Snapshot returns the current state.
func (r *Resource[T]) Snapshot() Snapshot[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

func (r *Resource[T]) supersedeLocked() {
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.gen++
}

func (r *Resource[T]) snapshotLocked() Snapshot[T] {
	return Snapshot[T]{State: r.state, Data: r.data, Err: r.err}
}
