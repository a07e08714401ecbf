package http

import (
	"context"
	"fmt"
	"net/url"
	"reflect"

	"github.com/wesleyorama2/relay/task"
)

// Strategy decides what to do with a redirect-class response: it returns
// the request to issue next, or the response's own request to stop.
// Strategies are pure functions with no side effects.
type Strategy func(*Response) *Request

// DefaultConfidentialHeaders are the headers dropped when a redirect
// crosses to a different host. The set is a policy decision; use
// RedirectAnyRequestDropping to supply your own.
var DefaultConfidentialHeaders = []string{
	"authorization",
	"cookie",
	"cookie2",
	"proxy-authorization",
}

var conditionalHeaders = []string{
	"if-match",
	"if-modified-since",
	"if-none-match",
	"if-unmodified-since",
}

// KeepRequest is the "don't redirect" strategy: it returns the request
// that produced the response, unchanged. It is the default handler of
// both built-in policies.
func KeepRequest(resp *Response) *Request {
	return resp.Request()
}

// RedirectAnyRequest reissues the same method and body to the Location
// header resolved against the original URL, dropping
// DefaultConfidentialHeaders when the resolved host differs from the
// original one. Without a usable Location it keeps the request.
func RedirectAnyRequest(resp *Response) *Request {
	return redirectAny(resp, DefaultConfidentialHeaders)
}

// RedirectAnyRequestDropping is RedirectAnyRequest with a caller-chosen
// set of confidential headers to drop on cross-host redirects.
func RedirectAnyRequestDropping(confidential []string) Strategy {
	return func(resp *Response) *Request {
		return redirectAny(resp, confidential)
	}
}

func redirectAny(resp *Response, confidential []string) *Request {
	req := resp.Request()
	location, ok := resolveLocation(resp)
	if !ok {
		return req
	}

	opts := req.Options()
	headers := opts.Headers.Clone()
	if crossHost(req.URL(), location) {
		for _, name := range confidential {
			headers.Del(name)
		}
	}
	opts.Headers = headers
	return NewRequest(opts, location, req.Body())
}

// RedirectIfGetMethod redirects like RedirectAnyRequest, but only for GET
// requests; anything else keeps the request.
func RedirectIfGetMethod(resp *Response) *Request {
	if resp.Request().Options().Clean().Method != "GET" {
		return resp.Request()
	}
	return RedirectAnyRequest(resp)
}

// RedirectUsingGetMethod discards the method and body (forcing GET with
// an empty body), keeps the other options, and then applies
// RedirectAnyRequest semantics, cross-host header dropping included.
func RedirectUsingGetMethod(resp *Response) *Request {
	req := resp.Request()
	opts := req.Options()
	opts.Method = "GET"
	forced := NewRequest(opts, req.URL(), EmptyBody())
	return RedirectAnyRequest(&Response{
		request: forced,
		message: resp.message,
		timing:  resp.timing,
	})
}

// RetryWithoutCondition resends a GET to the same URL with the
// conditional headers (if-match, if-modified-since, if-none-match,
// if-unmodified-since) stripped; non-GET requests are kept unchanged.
func RetryWithoutCondition(resp *Response) *Request {
	req := resp.Request()
	if req.Options().Clean().Method != "GET" {
		return req
	}

	opts := req.Options()
	headers := opts.Headers.Clone()
	for _, name := range conditionalHeaders {
		headers.Del(name)
	}
	opts.Headers = headers
	return NewRequest(opts, req.URL(), req.Body())
}

// Policy maps status codes to redirection strategies. Codes without an
// entry fall through to KeepRequest.
type Policy map[int]Strategy

// Strategy flattens the policy into a single strategy via MatchStatus.
func (p Policy) Strategy() Strategy {
	table := make(map[int]Handler[*Request], len(p))
	for code, s := range p {
		table[code] = Handler[*Request](s)
	}
	return Strategy(MatchStatus(Handler[*Request](KeepRequest), table))
}

// DefaultRedirectionPolicy is conservative: only GETs follow 301/302/307,
// 303 forces a GET, 305 reissues anything, and 304 is left to the caller.
var DefaultRedirectionPolicy = Policy{
	301: RedirectIfGetMethod,
	302: RedirectIfGetMethod,
	303: RedirectUsingGetMethod,
	305: RedirectAnyRequest,
	307: RedirectIfGetMethod,
}

// AggressiveRedirectionPolicy reissues any method on 301/302/305/307,
// forces GET on 303, and retries 304 without conditional headers.
var AggressiveRedirectionPolicy = Policy{
	301: RedirectAnyRequest,
	302: RedirectAnyRequest,
	303: RedirectUsingGetMethod,
	304: RetryWithoutCondition,
	305: RedirectAnyRequest,
	307: RedirectAnyRequest,
}

// FollowRedirects follows redirects with DefaultRedirectionPolicy.
func (c *Client) FollowRedirects(max int, resp *Response) *task.Task[*Response] {
	return c.FollowRedirectsWith(DefaultRedirectionPolicy.Strategy(), max, resp)
}

// FollowRedirectsWith applies strategy to resp repeatedly, issuing each
// synthesized request through Send, at most max hops deep.
//
// Termination: max exhausted, a strategy that returns a request
// equivalent to one already seen in this call (a cycle, including an
// immediate self-redirect), or a hop failure. The seen history is local
// to one call, so concurrent top-level follows never interfere. Hop
// failures are wrapped with the "After redirect: " prefix; cancellation
// passes through unwrapped.
func (c *Client) FollowRedirectsWith(strategy Strategy, max int, resp *Response) *task.Task[*Response] {
	return task.New(func(ctx context.Context) (*Response, error) {
		seen := make([]*Request, 0, max+1)
		return c.follow(ctx, strategy, max, resp, seen)
	})
}

func (c *Client) follow(ctx context.Context, strategy Strategy, max int, resp *Response, seen []*Request) (*Response, error) {
	if max < 1 {
		return resp, nil
	}

	seen = append(seen, resp.Request())
	next := strategy(resp)

	for i := len(seen) - 1; i >= 0; i-- {
		if equivalentRequests(seen[i], next) {
			return resp, nil
		}
	}

	c.logger.Debug().
		Int("status", resp.Message().StatusCode).
		Str("next", next.URL()).
		Int("remaining", max).
		Msg("following redirect")

	redirected, err := c.Send(next).Run(ctx)
	if err != nil {
		if task.IsCanceled(err) {
			return nil, err
		}
		return nil, fmt.Errorf("After redirect: %w", err)
	}
	return c.follow(ctx, strategy, max-1, redirected, seen)
}

// equivalentRequests reports request equivalence for cycle detection:
// cleaned options deeply equal, URLs string-equal, and the body task being
// the exact same task value. Body content is never compared; consuming a
// stream to compare it would itself be a side effect.
func equivalentRequests(a, b *Request) bool {
	return a.URL() == b.URL() &&
		a.Body() == b.Body() &&
		reflect.DeepEqual(a.Options().Clean(), b.Options().Clean())
}

func resolveLocation(resp *Response) (string, bool) {
	location := resp.Message().Headers.Get("location")
	if location == "" {
		return "", false
	}
	base, err := url.Parse(resp.Request().URL())
	if err != nil {
		return "", false
	}
	ref, err := url.Parse(location)
	if err != nil {
		return "", false
	}
	return base.ResolveReference(ref).String(), true
}

func crossHost(originalURL, resolvedURL string) bool {
	original, err := url.Parse(originalURL)
	if err != nil {
		return true
	}
	resolved, err := url.Parse(resolvedURL)
	if err != nil {
		return true
	}
	return original.Host != resolved.Host
}
