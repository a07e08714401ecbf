package http

import (
	"regexp"
	"strings"

	"github.com/wesleyorama2/relay/buffer"
	"github.com/wesleyorama2/relay/event"
	"github.com/wesleyorama2/relay/task"
)

// Message is the wire-level half of a response: parsed status line,
// received headers, and the body as an event stream.
type Message struct {
	StatusCode    int
	StatusMessage string
	Headers       Header
	Body          *event.Stream
}

// Response pairs a Message with a read-only back-reference to the exact
// Request that produced it. The back-reference is bookkeeping for the
// redirect engine, not ownership. A Response is immutable and may be read
// by any number of downstream consumers.
type Response struct {
	request *Request
	message *Message
	timing  TimingInfo
}

// NewResponse creates a Response. Outside the executor this is mainly
// useful for exercising dispatchers and redirection strategies.
func NewResponse(request *Request, message *Message) *Response {
	return &Response{request: request, message: message}
}

// Request returns the request that produced this response.
func (r *Response) Request() *Request {
	return r.request
}

// Message returns the wire-level message.
func (r *Response) Message() *Message {
	return r.message
}

// Timing returns the phase timings captured while the response was
// obtained. Responses built with NewResponse carry zero timings.
func (r *Response) Timing() TimingInfo {
	return r.timing
}

var charsetPattern = regexp.MustCompile(`(?i)charset=("?)([^;"\s]+)`)

// Charset returns the charset parsed from the content-type header via the
// charset=<token> pattern, first match wins. Absent or unparsable
// defaults to utf-8.
func (m *Message) Charset() string {
	match := charsetPattern.FindStringSubmatch(m.Headers.Get("content-type"))
	if match == nil {
		return "utf-8"
	}
	return strings.ToLower(match[2])
}

// BufferText creates a task that buffers the whole body and decodes it
// with the message's charset. Any buffering or decoding failure is wrapped
// with the "Failed to buffer response: " prefix.
func (m *Message) BufferText() *task.Task[string] {
	return task.MapError(buffer.Text(m.Charset(), m.Body), func(err error) error {
		return &BufferError{Cause: err}
	})
}

// BufferError wraps a failure to buffer a response body.
type BufferError struct {
	Cause error
}

func (e *BufferError) Error() string {
	return "Failed to buffer response: " + e.Cause.Error()
}

func (e *BufferError) Unwrap() error {
	return e.Cause
}
