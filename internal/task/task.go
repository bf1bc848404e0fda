// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package task runs a single asynchronous call and hands back its result
// once. A task can be abandoned, which cancels the work's context and makes
// the task resolve with ErrAbandoned regardless of what the work returns.
package task

import (
	"context"
	"errors"
	"sync"
)

// ErrAbandoned is the error of a task whose result was given up on.
var ErrAbandoned = errors.New("task: abandoned")

// Task is a future for one value of type T.
type Task[T any] struct {
	cancel context.CancelFunc
	done   chan struct{}

	mu        sync.Mutex
	abandoned bool
	value     T
	err       error
}

// Go starts fn in a new goroutine with a context derived from ctx.
func Go[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) *Task[T] {
	ctx, cancel := context.WithCancel(ctx)
	t := &Task[T]{
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go func() {
		defer cancel()
		v, err := fn(ctx)
		t.finish(v, err)
	}()
	return t
}

func (t *Task[T]) finish(v T, err error) {
	t.mu.Lock()
	if !t.abandoned {
		t.value, t.err = v, err
	}
	t.mu.Unlock()
	close(t.done)
}

// Done is closed once the work has returned.
func (t *Task[T]) Done() <-chan struct{} {
	return t.done
}

// Abandon cancels the work. The task still completes, but its result is
// dropped and Wait reports ErrAbandoned. Calling Abandon after completion
// discards the stored result as well.
func (t *Task[T]) Abandon() {
	t.mu.Lock()
	if !t.abandoned {
		t.abandoned = true
		var zero T
		t.value, t.err = zero, ErrAbandoned
	}
	t.mu.Unlock()
	t.cancel()
}

// Wait blocks until the task completes or ctx is done. A ctx timeout does
// not abandon the task; the caller may Wait again.
func (t *Task[T]) Wait(ctx context.Context) (T, error) {
	t.mu.Lock()
	abandoned := t.abandoned
	t.mu.Unlock()
	if abandoned {
		var zero T
		return zero, ErrAbandoned
	}

	select {
	case <-t.done:
		t.mu.Lock()
		defer t.mu.Unlock()
		return t.value, t.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
