package event

import (
	"context"

	"github.com/wesleyorama2/relay/task"
)

// Once creates a task that settles on the first of two events from src:
// an event named name resolves with its payload, an Error event rejects
// with its error value. Whichever fires first wins; both listeners are
// detached before the task returns, whether it resolved, rejected, or was
// cancelled. After that, src carries zero listeners attributable to this
// call.
func Once(name string, src *Emitter) *task.Task[any] {
	return task.New(func(ctx context.Context) (any, error) {
		// Buffered so a second emission can never block the emitter while
		// this task is tearing down.
		valueCh := make(chan any, 1)
		errCh := make(chan error, 1)

		offValue := src.On(name, func(payload any) {
			select {
			case valueCh <- payload:
			default:
			}
		})
		defer offValue()

		offError := src.On(Error, func(payload any) {
			err, ok := payload.(error)
			if !ok {
				err = errUnknown{payload}
			}
			select {
			case errCh <- err:
			default:
			}
		})
		defer offError()

		select {
		case v := <-valueCh:
			return v, nil
		case err := <-errCh:
			return nil, err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	})
}

type errUnknown struct {
	payload any
}

func (e errUnknown) Error() string {
	return "event: error event with non-error payload"
}
