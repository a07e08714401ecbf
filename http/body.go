package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"sync/atomic"

	"github.com/wesleyorama2/relay/task"
)

// emptyBody is shared so that every empty-bodied request carries the same
// task value. Strategies that force an empty body (RedirectUsingGetMethod)
// rely on this: repeated applications stay reference-identical, which is
// what the redirect cycle check compares.
var emptyBody = task.New(func(ctx context.Context) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(nil)), nil
})

// EmptyBody returns the shared empty body task. Each run yields a fresh
// empty stream.
func EmptyBody() *task.Task[io.ReadCloser] {
	return emptyBody
}

// BodyBytes creates a body task yielding a fresh reader over b per run.
func BodyBytes(b []byte) *task.Task[io.ReadCloser] {
	return task.New(func(ctx context.Context) (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(b)), nil
	})
}

// BodyString creates a body task yielding a fresh reader over s per run.
func BodyString(s string) *task.Task[io.ReadCloser] {
	return BodyBytes([]byte(s))
}

// BodyJSON creates a body task that JSON-encodes v on every run.
func BodyJSON(v any) *task.Task[io.ReadCloser] {
	return task.New(func(ctx context.Context) (io.ReadCloser, error) {
		encoded, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		return io.NopCloser(bytes.NewReader(encoded)), nil
	})
}

// BodyForm creates a body task yielding the url-encoded form per run.
func BodyForm(form url.Values) *task.Task[io.ReadCloser] {
	return task.New(func(ctx context.Context) (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader([]byte(form.Encode()))), nil
	})
}

// ErrBodyConsumed is returned when a one-shot reader body is run a second
// time, for example on a redirect retry of a streaming upload.
var ErrBodyConsumed = errors.New("request body stream already consumed")

// BodyReader creates a one-shot body task around r. The first run yields
// r; any later run fails with ErrBodyConsumed instead of replaying stale
// data. Prefer BodyBytes or BodyString when the content is rewindable.
func BodyReader(r io.Reader) *task.Task[io.ReadCloser] {
	var used atomic.Bool
	return task.New(func(ctx context.Context) (io.ReadCloser, error) {
		if used.Swap(true) {
			return nil, ErrBodyConsumed
		}
		if rc, ok := r.(io.ReadCloser); ok {
			return rc, nil
		}
		return io.NopCloser(r), nil
	})
}

// JSONRequest builds a Request carrying v as a JSON body. Content-Type and
// Content-Length are set automatically; caller-supplied headers of the
// same name win. Encoding failures surface immediately rather than at send
// time.
func JSONRequest(method, rawURL string, headers Header, v any) (*Request, error) {
	encoded, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}
	h := headers.Clone()
	if !h.Has("content-type") {
		h.Set("content-type", "application/json")
	}
	if !h.Has("content-length") {
		h.Set("content-length", strconv.Itoa(len(encoded)))
	}
	return NewRequest(Options{Method: method, Headers: h}, rawURL, BodyBytes(encoded)), nil
}

// FormRequest builds a Request carrying form as a url-encoded body, with
// the same automatic header behavior as JSONRequest.
func FormRequest(method, rawURL string, headers Header, form url.Values) *Request {
	encoded := form.Encode()
	h := headers.Clone()
	if !h.Has("content-type") {
		h.Set("content-type", "application/x-www-form-urlencoded")
	}
	if !h.Has("content-length") {
		h.Set("content-length", strconv.Itoa(len(encoded)))
	}
	return NewRequest(Options{Method: method, Headers: h}, rawURL, BodyString(encoded))
}
