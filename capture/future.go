// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package capture

import (
	"context"
	"sync"
)

// Future is a result that resolves exactly once, with a value or an error.
//
// Capture returns a Future[*Image]; CaptureToFile returns a Future[string]
// holding the written path. A Future never delivers more than one result.
type Future[T any] struct {
	done chan struct{}
	once sync.Once

	mu       sync.Mutex
	resolved bool
	hooks    []func(T, error)

	value T
	err   error
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// Done returns a channel that is closed once the future has resolved.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the future resolves or ctx is done.
// Giving up on ctx does not cancel the capture.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Result returns the resolved value without blocking.
// Before resolution it returns ErrUnresolved.
func (f *Future[T]) Result() (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	default:
		var zero T
		return zero, ErrUnresolved
	}
}

// resolve stores the result, runs the hooks on the calling goroutine and
// then closes Done. Only the first call has an effect.
func (f *Future[T]) resolve(v T, err error) bool {
	first := false
	f.once.Do(func() {
		first = true

		f.mu.Lock()
		f.value, f.err = v, err
		f.resolved = true
		hooks := f.hooks
		f.hooks = nil
		f.mu.Unlock()

		for _, h := range hooks {
			h(v, err)
		}
		close(f.done)
	})
	return first
}

// then registers fn to run when the future resolves. If it already has,
// fn runs immediately on the calling goroutine.
func (f *Future[T]) then(fn func(T, error)) {
	f.mu.Lock()
	if !f.resolved {
		f.hooks = append(f.hooks, fn)
		f.mu.Unlock()
		return
	}
	v, err := f.value, f.err
	f.mu.Unlock()
	fn(v, err)
}
