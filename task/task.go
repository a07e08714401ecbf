package task

import (
	"context"
	"errors"
)

// Task represents a single-shot computation that settles with a value of
// type A or an error when run. The zero value is not usable; construct
// tasks with New, Resolve, Reject, or the combinators.
//
// Task values are compared by pointer identity. Two tasks built from the
// same function are still distinct values, and running either one invokes
// its run function independently.
type Task[A any] struct {
	run func(ctx context.Context) (A, error)
}

// New creates a Task from a run function.
//
// The run function is invoked once per call to Run. It must return promptly
// with ctx.Err() when ctx is cancelled, after releasing anything it
// acquired.
func New[A any](run func(ctx context.Context) (A, error)) *Task[A] {
	return &Task[A]{run: run}
}

// Resolve creates a Task that always succeeds with v.
func Resolve[A any](v A) *Task[A] {
	return New(func(ctx context.Context) (A, error) {
		return v, nil
	})
}

// Reject creates a Task that always fails with err.
func Reject[A any](err error) *Task[A] {
	return New(func(ctx context.Context) (A, error) {
		var zero A
		return zero, err
	})
}

// Run executes the task. Each call re-invokes the underlying run function;
// results are never memoized. If ctx is already cancelled the run function
// is not invoked at all.
func (t *Task[A]) Run(ctx context.Context) (A, error) {
	if err := ctx.Err(); err != nil {
		var zero A
		return zero, err
	}
	return t.run(ctx)
}

// Map transforms the success value of a task. Failures and cancellation
// pass through untouched.
func Map[A, B any](t *Task[A], f func(A) B) *Task[B] {
	return New(func(ctx context.Context) (B, error) {
		v, err := t.Run(ctx)
		if err != nil {
			var zero B
			return zero, err
		}
		return f(v), nil
	})
}

// MapError transforms the failure value of a task. Successes pass through
// untouched, and cancellation errors are never rewritten so that
// IsCanceled keeps working on composed tasks.
func MapError[A any](t *Task[A], f func(error) error) *Task[A] {
	return New(func(ctx context.Context) (A, error) {
		v, err := t.Run(ctx)
		if err != nil && !IsCanceled(err) {
			return v, f(err)
		}
		return v, err
	})
}

// Chain sequences a dependent task after a successful one. The same ctx
// flows into both stages, so cancellation reaches whichever stage is
// pending.
func Chain[A, B any](t *Task[A], f func(A) *Task[B]) *Task[B] {
	return New(func(ctx context.Context) (B, error) {
		v, err := t.Run(ctx)
		if err != nil {
			var zero B
			return zero, err
		}
		return f(v).Run(ctx)
	})
}

// IsCanceled reports whether err resulted from context cancellation rather
// than a settled failure.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
