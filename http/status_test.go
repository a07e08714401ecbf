package http

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func responseWithStatus(code int, message string) *Response {
	req := NewRequest(Options{}, "https://example.com", EmptyBody())
	return NewResponse(req, &Message{
		StatusCode:    code,
		StatusMessage: message,
		Headers:       Header{},
		Body:          bodyStream(""),
	})
}

func TestMatchStatus_ExactIntegerMatch(t *testing.T) {
	dispatch := MatchStatus(
		func(r *Response) string { return "default" },
		map[int]Handler[string]{
			200: func(r *Response) string { return "ok" },
			404: func(r *Response) string { return "missing" },
		},
	)

	if got := dispatch(responseWithStatus(200, "OK")); got != "ok" {
		t.Errorf("expected ok, got %q", got)
	}
	if got := dispatch(responseWithStatus(404, "Not Found")); got != "missing" {
		t.Errorf("expected missing, got %q", got)
	}
	// 201 is not 200: no ranges, no wildcards.
	if got := dispatch(responseWithStatus(201, "Created")); got != "default" {
		t.Errorf("expected default, got %q", got)
	}
}

func TestMatchStatus_Composable(t *testing.T) {
	base := MatchStatus(
		func(r *Response) string { return "base-default" },
		map[int]Handler[string]{500: func(r *Response) string { return "base-500" }},
	)
	layered := MatchStatus(base, map[int]Handler[string]{
		500: func(r *Response) string { return "override-500" },
	})

	if got := layered(responseWithStatus(500, "")); got != "override-500" {
		t.Errorf("expected override, got %q", got)
	}
	if got := layered(responseWithStatus(418, "")); got != "base-default" {
		t.Errorf("expected fall-through to base default, got %q", got)
	}
}

func TestAcceptStatus(t *testing.T) {
	accept := AcceptStatus(200)

	ok := responseWithStatus(200, "OK")
	got, err := accept(ok).Run(context.Background())
	if err != nil || got != ok {
		t.Errorf("expected the response on the success channel, got (%v, %v)", got, err)
	}

	notFound := responseWithStatus(404, "Not Found")
	_, err = accept(notFound).Run(context.Background())
	if err == nil {
		t.Fatal("expected a failure for a mismatched status")
	}

	var serr *StatusError
	if !errors.As(err, &serr) {
		t.Fatalf("expected *StatusError, got %T", err)
	}
	if serr.Response != notFound {
		t.Error("the failure channel must carry the response itself")
	}
}

func TestResponseToError(t *testing.T) {
	req := NewRequest(Options{}, "https://example.com", EmptyBody())
	resp := NewResponse(req, &Message{
		StatusCode:    500,
		StatusMessage: "Internal Server Error",
		Headers:       Header{},
		Body:          bodyStream("it broke\nbadly"),
	})

	_, err := ResponseToError(resp).Run(context.Background())
	if err == nil {
		t.Fatal("ResponseToError must never resolve")
	}

	msg := err.Error()
	if !strings.Contains(msg, "500 Internal Server Error") {
		t.Errorf("expected the status line, got %q", msg)
	}
	if !strings.Contains(msg, "  it broke\n  badly") {
		t.Errorf("expected the indented body, got %q", msg)
	}
}
