package event

import (
	"io"
	"sync"
)

// Event names emitted by a Stream.
const (
	Data  = "data"
	End   = "end"
	Error = "error"
)

// Stream is a byte stream expressed as events: zero or more Data events
// carrying []byte chunks, terminated by exactly one End or Error event.
//
// A reader-backed stream (NewReaderStream) does not start reading until
// the first Data listener attaches, so no chunks are lost between stream
// construction and buffering. Detaching listeners never closes or aborts
// the underlying reader; aborting a live connection is the transport
// owner's job.
type Stream struct {
	emitter *Emitter

	startOnce sync.Once
	pump      func()
}

// NewStream creates a stream fed manually through Write, End, and Fail.
func NewStream() *Stream {
	return &Stream{emitter: NewEmitter()}
}

// NewReaderStream creates a stream that pumps r into Data events on a
// background goroutine, emitting End at io.EOF or Error on a read
// failure, and closing r once drained.
func NewReaderStream(r io.ReadCloser) *Stream {
	s := &Stream{emitter: NewEmitter()}
	s.pump = func() {
		go func() {
			defer r.Close()
			buf := make([]byte, 32*1024)
			for {
				n, err := r.Read(buf)
				if n > 0 {
					chunk := make([]byte, n)
					copy(chunk, buf[:n])
					s.emitter.Emit(Data, chunk)
				}
				if err == io.EOF {
					s.emitter.Emit(End, nil)
					return
				}
				if err != nil {
					s.emitter.Emit(Error, err)
					return
				}
			}
		}()
	}
	return s
}

// On registers a listener. Attaching the first Data listener starts the
// pump of a reader-backed stream.
func (s *Stream) On(name string, fn Listener) (off func()) {
	off = s.emitter.On(name, fn)
	if name == Data && s.pump != nil {
		s.startOnce.Do(s.pump)
	}
	return off
}

// Write emits a Data event carrying chunk.
func (s *Stream) Write(chunk []byte) {
	s.emitter.Emit(Data, chunk)
}

// End emits the End event.
func (s *Stream) End() {
	s.emitter.Emit(End, nil)
}

// Fail emits an Error event carrying err.
func (s *Stream) Fail(err error) {
	s.emitter.Emit(Error, err)
}

// ListenerCount returns the number of listeners registered for name.
func (s *Stream) ListenerCount(name string) int {
	return s.emitter.ListenerCount(name)
}
