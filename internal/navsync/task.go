// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package navsync

import (
	"context"

	"github.com/google/uuid"
)

// Task is the handle of a dispatched remote operation.
// Once issued, the underlying requests are not cancelled by the caller.
type Task[T any] struct {
	// Key identifies the task; for creations it doubles as the client key
	// of the entry until the store assigns an id.
	Key string
	// Op names the operation for logging.
	Op string

	done   chan struct{}
	result T
	err    error
}

func newTask[T any](op string) *Task[T] {
	return &Task[T]{
		Key:  uuid.NewString(),
		Op:   op,
		done: make(chan struct{}),
	}
}

// Completed returns a task that is already finished with the given outcome.
// It stands in for operations that turn out to need no request.
func Completed[T any](op string, result T, err error) *Task[T] {
	t := newTask[T](op)
	t.finish(result, err)
	return t
}

// Done is closed once the task has finished.
func (t *Task[T]) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the task finishes or ctx is done. Giving up on the
// wait does not stop the remote operation.
func (t *Task[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-t.done:
		return t.result, t.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Err returns the task error once finished, or nil while still running.
func (t *Task[T]) Err() error {
	select {
	case <-t.done:
		return t.err
	default:
		return nil
	}
}

func (t *Task[T]) finish(result T, err error) {
	t.result = result
	t.err = err
	close(t.done)
}
