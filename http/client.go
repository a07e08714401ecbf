package http

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/http/httptrace"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/wesleyorama2/relay/event"
	"github.com/wesleyorama2/relay/metrics"
	"github.com/wesleyorama2/relay/task"
)

// Client issues single HTTP round trips through per-scheme transports.
// It never follows redirects, retries, or interprets status codes; those
// concerns are layered on top through the dispatcher and redirect engine.
type Client struct {
	transports  map[string]*http.Transport
	defaultPort int
	logger      zerolog.Logger
	recorder    *metrics.Recorder
}

// ClientOption is a function that configures a Client.
type ClientOption func(*Client)

// NewClient creates a Client with the given options. By default it speaks
// http and https with connection pooling owned by the underlying
// transports, logs nothing, and records no metrics.
func NewClient(options ...ClientOption) *Client {
	c := &Client{
		transports: map[string]*http.Transport{
			"http":  newTransport(),
			"https": newTransport(),
		},
		logger: zerolog.Nop(),
	}

	for _, option := range options {
		option(c)
	}

	return c
}

// WithTransport replaces the transport used for scheme.
func WithTransport(scheme string, t *http.Transport) ClientOption {
	return func(c *Client) {
		c.transports[strings.ToLower(scheme)] = t
	}
}

// WithDefaultPort sets the port used when neither the URL nor the request
// options carry one.
func WithDefaultPort(port int) ClientOption {
	return func(c *Client) {
		c.defaultPort = port
	}
}

// WithLogger sets a logger for debug-level send and redirect tracing.
func WithLogger(logger zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRecorder sets a latency recorder fed on every completed send.
func WithRecorder(r *metrics.Recorder) ClientOption {
	return func(c *Client) {
		c.recorder = r
	}
}

func newTransport() *http.Transport {
	return &http.Transport{
		Proxy:                  http.ProxyFromEnvironment,
		MaxResponseHeaderBytes: DefaultMaxHeaderSize,
	}
}

// Send creates a task performing exactly one round trip for req. Each run
// re-invokes the request body task for a fresh byte stream, so the same
// task can be forked more than once and each fork is an independent send.
//
// Failure modes: an unsupported scheme fails before any network activity
// with "Unsupported protocol '<scheme>'"; body and transport errors are
// surfaced verbatim. Cancelling the running context aborts the in-flight
// connection and removes the response wait; no retry is attempted.
func (c *Client) Send(req *Request) *task.Task[*Response] {
	return task.New(func(ctx context.Context) (*Response, error) {
		return c.send(ctx, req)
	})
}

func (c *Client) send(ctx context.Context, req *Request) (*Response, error) {
	u, err := url.Parse(req.URL())
	if err != nil {
		return nil, err
	}

	scheme := strings.ToLower(u.Scheme)
	transport, ok := c.transports[scheme]
	if !ok || (scheme != "http" && scheme != "https") {
		return nil, fmt.Errorf("Unsupported protocol '%s'", scheme)
	}

	opts := req.Options()
	if opts.DefaultPort == 0 {
		opts.DefaultPort = c.defaultPort
	}
	opts = opts.Clean()

	if u.Port() == "" && opts.DefaultPort > 0 {
		u.Host = net.JoinHostPort(u.Hostname(), strconv.Itoa(opts.DefaultPort))
	}

	id := uuid.NewString()
	c.logger.Debug().
		Str("request", id).
		Str("method", opts.Method).
		Str("url", u.String()).
		Msg("sending request")

	// A fresh body stream per send; a body that cannot provide one fails
	// the whole task here, before the connection is opened.
	body, err := req.Body().Run(ctx)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, opts.Method, u.String(), body)
	if err != nil {
		return nil, err
	}
	httpReq.Header = opts.Headers.toHTTP()

	if cl := opts.Headers.Get("content-length"); cl != "" {
		if n, perr := strconv.ParseInt(cl, 10, 64); perr == nil {
			httpReq.ContentLength = n
		}
		httpReq.Header.Del("Content-Length")
	}
	if !*opts.SetHost {
		if host := opts.Headers.Get("host"); host != "" {
			httpReq.Host = host
		}
	}
	httpReq.Header.Del("Host")

	timing := TimingInfo{StartTime: time.Now()}
	httpReq = httpReq.WithContext(httptrace.WithClientTrace(httpReq.Context(), timing.trace()))

	httpResp, err := c.transportFor(transport, opts).RoundTrip(httpReq)
	timing.TotalTime = time.Since(timing.StartTime)

	if c.recorder != nil {
		c.recorder.Record(timing.TotalTime, err)
	}
	if err != nil {
		// Transport errors surface verbatim; wrapping is the redirect
		// engine's business, not ours.
		return nil, err
	}

	c.logger.Debug().
		Str("request", id).
		Int("status", httpResp.StatusCode).
		Dur("elapsed", timing.TotalTime).
		Msg("received response")

	message := &Message{
		StatusCode:    httpResp.StatusCode,
		StatusMessage: statusMessage(httpResp),
		Headers:       headerFromHTTP(httpResp.Header),
		Body:          event.NewReaderStream(httpResp.Body),
	}
	return &Response{request: req, message: message, timing: timing}, nil
}

// transportFor returns the base transport, or a clone adjusted for
// per-request header-size or resolver overrides.
func (c *Client) transportFor(base *http.Transport, opts Options) http.RoundTripper {
	if opts.MaxHeaderSize == DefaultMaxHeaderSize && opts.Resolver == net.DefaultResolver {
		return base
	}

	t := base.Clone()
	t.MaxResponseHeaderBytes = int64(opts.MaxHeaderSize)
	if opts.Resolver != net.DefaultResolver {
		dialer := &net.Dialer{Resolver: opts.Resolver}
		t.DialContext = dialer.DialContext
	}
	return t
}

func statusMessage(resp *http.Response) string {
	return strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
}
