package event

import (
	"errors"
	"io"
	"strings"
	"testing"
	"time"
)

func TestReaderStream_PumpsOnFirstDataListener(t *testing.T) {
	s := NewReaderStream(io.NopCloser(strings.NewReader("hello world")))

	done := make(chan struct{})
	var chunks []string
	s.On(End, func(any) { close(done) })
	s.On(Data, func(p any) { chunks = append(chunks, string(p.([]byte))) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("stream never ended")
	}

	if strings.Join(chunks, "") != "hello world" {
		t.Errorf("expected hello world, got %q", strings.Join(chunks, ""))
	}
}

func TestReaderStream_DoesNotPumpWithoutDataListener(t *testing.T) {
	ended := make(chan struct{}, 1)
	s := NewReaderStream(io.NopCloser(strings.NewReader("x")))
	s.On(End, func(any) { ended <- struct{}{} })

	select {
	case <-ended:
		t.Fatal("pump started without a data listener")
	case <-time.After(20 * time.Millisecond):
	}
}

func TestReaderStream_EmitsErrorFromReader(t *testing.T) {
	boom := errors.New("boom")
	s := NewReaderStream(io.NopCloser(&failingReader{err: boom}))

	errCh := make(chan error, 1)
	s.On(Error, func(p any) { errCh <- p.(error) })
	s.On(Data, func(any) {})

	select {
	case err := <-errCh:
		if !errors.Is(err, boom) {
			t.Errorf("expected boom, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("no error event")
	}
}

func TestManualStream(t *testing.T) {
	s := NewStream()

	var got []string
	ended := false
	s.On(Data, func(p any) { got = append(got, string(p.([]byte))) })
	s.On(End, func(any) { ended = true })

	s.Write([]byte("a"))
	s.Write([]byte("b"))
	s.End()

	if strings.Join(got, "") != "ab" || !ended {
		t.Errorf("expected chunks ab and end, got %v ended=%v", got, ended)
	}
}

type failingReader struct {
	err error
}

func (r *failingReader) Read([]byte) (int, error) {
	return 0, r.err
}
