package task

import (
	"context"
	"time"
)

// After creates a Task that succeeds with v once d has elapsed. The timer
// is cleared when the context is cancelled first, in which case the task
// settles neither channel and Run returns ctx.Err().
func After[A any](d time.Duration, v A) *Task[A] {
	return New(func(ctx context.Context) (A, error) {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-timer.C:
			return v, nil
		case <-ctx.Done():
			var zero A
			return zero, ctx.Err()
		}
	})
}
