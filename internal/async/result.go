// Package async provides a single-value asynchronous completion.
//
// A Result is resolved exactly once with either a value or an error.
// Observers either block on Await or register callbacks with Subscribe.
package async

import (
	"context"
	"sync"
)

// Result is a one-shot completion carrying a value of type T or an error.
type Result[T any] struct {
	done chan struct{}
	once sync.Once

	mu        sync.Mutex
	resolved  bool
	callbacks []func()

	val T
	err error
}

// New returns a pending Result and the function that resolves it.
// Only the first call to resolve has any effect.
func New[T any]() (*Result[T], func(T, error)) {
	r := &Result[T]{done: make(chan struct{})}
	return r, r.resolve
}

// Go runs fn on its own goroutine and resolves the returned Result with its outcome.
func Go[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) *Result[T] {
	r, resolve := New[T]()
	go func() {
		resolve(fn(ctx))
	}()
	return r
}

// resolve settles the Result and runs the callbacks subscribed so far, in
// subscription order, before returning.
func (r *Result[T]) resolve(val T, err error) {
	r.once.Do(func() {
		r.mu.Lock()
		r.val = val
		r.err = err
		r.resolved = true
		callbacks := r.callbacks
		r.callbacks = nil
		close(r.done)
		r.mu.Unlock()

		for _, cb := range callbacks {
			cb()
		}
	})
}

// Done returns a channel that is closed once the Result is resolved.
func (r *Result[T]) Done() <-chan struct{} {
	return r.done
}

// Await blocks until the Result is resolved or ctx is done.
func (r *Result[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-r.done:
		return r.val, r.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Subscribe registers callbacks invoked once the Result is resolved.
// Exactly one of them fires. On a pending Result it runs on the resolving
// goroutine before resolve returns, so callbacks observe resolution order.
// On a resolved Result it runs immediately on the caller's goroutine.
// Nil callbacks are skipped.
func (r *Result[T]) Subscribe(onSuccess func(T), onError func(error)) {
	cb := func() {
		if r.err != nil {
			if onError != nil {
				onError(r.err)
			}
			return
		}
		if onSuccess != nil {
			onSuccess(r.val)
		}
	}

	r.mu.Lock()
	if !r.resolved {
		r.callbacks = append(r.callbacks, cb)
		r.mu.Unlock()
		return
	}
	r.mu.Unlock()
	cb()
}
