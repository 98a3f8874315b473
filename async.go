package pinion

import (
	"context"
	"fmt"
)

// Task is the completion handle for work running outside the machine's step
// loop. It is the scheduling contract behind suspension: the producing
// goroutine resolves the task exactly once, and any number of waiters
// observe the same result.
type Task[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// Go launches fn on its own goroutine and returns its Task. A panic inside
// fn resolves the task with an error instead of crashing the process.
func Go[T any](fn func() (T, error)) *Task[T] {
	t := &Task[T]{done: make(chan struct{})}

	go func() {
		defer close(t.done)
		defer func() {
			if r := recover(); r != nil {
				t.err = fmt.Errorf("task panicked: %v", r)
			}
		}()

		t.value, t.err = fn()
	}()

	return t
}

// Await blocks until the task resolves or ctx is cancelled. On cancellation
// it returns ctx.Err(); the underlying goroutine keeps running to completion
// and its result is discarded. Await may be called again with a live context
// to observe the eventual result.
func (t *Task[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-t.done:
		return t.value, t.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Async adapts a two-phase suspending operation into a State. start launches
// the external work and returns its Task; apply folds the resolved result
// into the context. The step stays logically sequential: the policy is never
// consulted before the task has fully resolved.
//
// Cancellation policy: the run context is handed to start, so operations
// that support cancellation (HTTP requests, database calls) abort with it.
// Independently, the wait itself is abandoned on cancellation and a late
// result is discarded without touching the run context.
func Async[C, T any](name string, start func(ctx context.Context, data *C) (*Task[T], error), apply func(data *C, result T) error) State[C] {
	return StateFunc(name, func(ctx context.Context, data *C) error {
		task, err := start(ctx, data)
		if err != nil {
			return err
		}

		result, err := task.Await(ctx)
		if err != nil {
			return err
		}

		return apply(data, result)
	})
}
