package http

import (
	"io"

	"github.com/wesleyorama2/relay/task"
)

// Request describes one outbound HTTP call: transport options, an absolute
// URL, and a body task. A Request is immutable; redirection strategies
// synthesize new Requests instead of modifying one in place.
//
// The body is a task so it can be re-invoked: every send of the Request,
// including redirect retries, runs the task again to obtain a brand-new
// byte stream. A body that cannot produce a fresh stream must fail on
// re-invocation rather than replay stale data (see BodyReader).
type Request struct {
	options Options
	url     string
	body    *task.Task[io.ReadCloser]
}

// NewRequest creates a Request. The options are stored as given; they are
// cleaned at send time and for redirect-equivalence checks, never here, so
// the accessors return exactly what was passed in.
func NewRequest(options Options, url string, body *task.Task[io.ReadCloser]) *Request {
	return &Request{options: options, url: url, body: body}
}

// Options returns the transport options as passed to NewRequest.
func (r *Request) Options() Options {
	return r.options
}

// URL returns the absolute URL as passed to NewRequest.
func (r *Request) URL() string {
	return r.url
}

// Body returns the body task. The same task value is returned on every
// call; its pointer identity is what the redirect engine's cycle check
// compares.
func (r *Request) Body() *task.Task[io.ReadCloser] {
	return r.body
}
