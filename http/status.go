package http

import (
	"fmt"
	"strings"

	"github.com/wesleyorama2/relay/task"
)

// Handler consumes a Response and produces a T.
type Handler[T any] func(*Response) T

// MatchStatus builds a handler that routes a response to the table entry
// for its exact status code, or to def when no entry matches. No ranges,
// no wildcards. A handler built here can itself serve as the def of
// another MatchStatus call, layering overrides.
func MatchStatus[T any](def Handler[T], table map[int]Handler[T]) Handler[T] {
	return func(resp *Response) T {
		if h, ok := table[resp.Message().StatusCode]; ok {
			return h(resp)
		}
		return def(resp)
	}
}

// StatusError carries a response whose status code failed an AcceptStatus
// check. It is a routing signal, not a transport failure: the response is
// intact and its body has not been consumed.
type StatusError struct {
	Response *Response
}

func (e *StatusError) Error() string {
	m := e.Response.Message()
	return fmt.Sprintf("unexpected %d %s response", m.StatusCode, m.StatusMessage)
}

// AcceptStatus builds a check that resolves with the response when its
// status code equals code, and rejects with a StatusError carrying the
// response otherwise. This tags the response by success/failure channel
// for downstream composition; convert the failure into a descriptive
// error with ResponseToError.
func AcceptStatus(code int) func(*Response) *task.Task[*Response] {
	return func(resp *Response) *task.Task[*Response] {
		if resp.Message().StatusCode == code {
			return task.Resolve(resp)
		}
		return task.Reject[*Response](&StatusError{Response: resp})
	}
}

// ResponseToError creates a task that buffers the response body as text
// and fails with an error summarizing the status line and the indented
// body. It never resolves; use it on the rejection branch of an
// AcceptStatus check.
func ResponseToError(resp *Response) *task.Task[*Response] {
	m := resp.Message()
	return task.Chain(m.BufferText(), func(body string) *task.Task[*Response] {
		return task.Reject[*Response](fmt.Errorf(
			"unexpected %d %s response; response body:\n\n%s",
			m.StatusCode, m.StatusMessage, indent(body, "  "),
		))
	})
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
