package http

import (
	"net"
	"strings"
)

// DefaultMaxHeaderSize is the response header size limit applied when
// Options.MaxHeaderSize is unset.
const DefaultMaxHeaderSize = 16384

// Options is the transport-option subset of a request. It deliberately
// excludes anything implied by the URL (scheme, host, port, path) and
// anything related to cancellation, which is carried by the context a task
// runs with.
type Options struct {
	// Method is the HTTP method; empty means GET.
	Method string

	// Headers are the request headers.
	Headers Header

	// MaxHeaderSize caps the size of the response headers in bytes;
	// zero means DefaultMaxHeaderSize.
	MaxHeaderSize int

	// SetHost controls whether the Host header is derived from the URL.
	// nil means true; set it to Bool(false) to send a caller-supplied
	// "host" header instead.
	SetHost *bool

	// DefaultPort is used when the URL carries no port; zero falls back
	// to the client's configured default port, if any.
	DefaultPort int

	// Resolver overrides DNS resolution; nil means the system resolver.
	Resolver *net.Resolver
}

// Bool returns a pointer to v, for literal SetHost values.
func Bool(v bool) *bool {
	return &v
}

// Clean returns a normalized copy of o: method defaulted to GET and
// upper-cased, headers non-nil, MaxHeaderSize defaulted, SetHost resolved
// to an explicit value, and the system resolver filled in. Cleaned option
// sets are what the redirect engine compares for request equivalence.
func (o Options) Clean() Options {
	out := o
	out.Method = strings.ToUpper(strings.TrimSpace(o.Method))
	if out.Method == "" {
		out.Method = "GET"
	}
	out.Headers = o.Headers.Clone()
	if out.MaxHeaderSize <= 0 {
		out.MaxHeaderSize = DefaultMaxHeaderSize
	}
	if out.SetHost == nil {
		out.SetHost = Bool(true)
	} else {
		out.SetHost = Bool(*o.SetHost)
	}
	if out.Resolver == nil {
		out.Resolver = net.DefaultResolver
	}
	return out
}
