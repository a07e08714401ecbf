package buffer

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"golang.org/x/text/encoding/ianaindex"

	"github.com/wesleyorama2/relay/event"
	"github.com/wesleyorama2/relay/task"
)

// Collect creates a task that accumulates every Data chunk of s in arrival
// order and succeeds with the accumulated chunks on End, or fails with the
// stream's error on Error. Cancellation removes all three listeners and
// leaves the source untouched.
func Collect(s *event.Stream) *task.Task[[][]byte] {
	return task.New(func(ctx context.Context) ([][]byte, error) {
		var (
			mu     sync.Mutex
			chunks [][]byte
		)
		endCh := make(chan struct{}, 1)
		errCh := make(chan error, 1)

		offEnd := s.On(event.End, func(any) {
			select {
			case endCh <- struct{}{}:
			default:
			}
		})
		defer offEnd()

		offError := s.On(event.Error, func(payload any) {
			err, ok := payload.(error)
			if !ok {
				err = fmt.Errorf("buffer: stream error with non-error payload %v", payload)
			}
			select {
			case errCh <- err:
			default:
			}
		})
		defer offError()

		// Attached last: on reader-backed streams the first Data listener
		// starts the pump, so End/Error must already be in place.
		offData := s.On(event.Data, func(payload any) {
			chunk, ok := payload.([]byte)
			if !ok {
				return
			}
			mu.Lock()
			chunks = append(chunks, chunk)
			mu.Unlock()
		})
		defer offData()

		select {
		case <-endCh:
			mu.Lock()
			defer mu.Unlock()
			return chunks, nil
		case err := <-errCh:
			return nil, err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	})
}

// Text creates a task that collects s and decodes the concatenated bytes
// using the IANA charset name given. An unrecognized charset fails the
// task with the codec lookup error preserved; it never resolves partially.
func Text(charset string, s *event.Stream) *task.Task[string] {
	return task.Chain(Collect(s), func(chunks [][]byte) *task.Task[string] {
		text, err := Decode(charset, bytes.Join(chunks, nil))
		if err != nil {
			return task.Reject[string](err)
		}
		return task.Resolve(text)
	})
}

// Decode decodes raw using the IANA charset name given.
func Decode(charset string, raw []byte) (string, error) {
	enc, err := ianaindex.IANA.Encoding(charset)
	if err != nil {
		return "", fmt.Errorf("unsupported charset %q: %w", charset, err)
	}
	if enc == nil {
		return "", fmt.Errorf("unsupported charset %q", charset)
	}
	decoded, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("decoding %q failed: %w", charset, err)
	}
	return string(decoded), nil
}
