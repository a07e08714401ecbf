package http

import (
	"net/http"
	"sort"
	"strings"
)

// Field is a single header name/value pair. Names are stored lower-cased.
type Field struct {
	Name  string
	Value string
}

// Header is an ordered collection of header fields with lower-cased names
// and case-insensitive lookup. The zero value is an empty header ready for
// use.
type Header struct {
	fields []Field
}

// HeaderFromMap builds a Header from a plain map. Keys are lower-cased and
// sorted so the result is deterministic.
func HeaderFromMap(m map[string]string) Header {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	h := Header{fields: make([]Field, 0, len(m))}
	for _, name := range names {
		h.fields = append(h.fields, Field{Name: strings.ToLower(name), Value: m[name]})
	}
	return h
}

// Get returns the first value for name, or "" if absent.
func (h Header) Get(name string) string {
	name = strings.ToLower(name)
	for _, f := range h.fields {
		if f.Name == name {
			return f.Value
		}
	}
	return ""
}

// Has reports whether name is present.
func (h Header) Has(name string) bool {
	name = strings.ToLower(name)
	for _, f := range h.fields {
		if f.Name == name {
			return true
		}
	}
	return false
}

// Set replaces every occurrence of name with a single field holding value,
// keeping the position of the first occurrence, or appends if absent.
func (h *Header) Set(name, value string) {
	name = strings.ToLower(name)
	for i, f := range h.fields {
		if f.Name == name {
			h.fields[i].Value = value
			h.deleteAfter(name, i)
			return
		}
	}
	h.fields = append(h.fields, Field{Name: name, Value: value})
}

// Add appends a field, preserving any existing fields of the same name.
func (h *Header) Add(name, value string) {
	h.fields = append(h.fields, Field{Name: strings.ToLower(name), Value: value})
}

// Del removes every field named name.
func (h *Header) Del(name string) {
	name = strings.ToLower(name)
	kept := h.fields[:0]
	for _, f := range h.fields {
		if f.Name != name {
			kept = append(kept, f)
		}
	}
	h.fields = kept
}

func (h *Header) deleteAfter(name string, idx int) {
	kept := h.fields[:idx+1]
	for _, f := range h.fields[idx+1:] {
		if f.Name != name {
			kept = append(kept, f)
		}
	}
	h.fields = kept
}

// Len returns the number of fields.
func (h Header) Len() int {
	return len(h.fields)
}

// Fields returns a copy of the fields in order.
func (h Header) Fields() []Field {
	out := make([]Field, len(h.fields))
	copy(out, h.fields)
	return out
}

// Clone returns an independent copy. The copy is never nil-backed, so
// cleaned option sets compare equal regardless of how they were built.
func (h Header) Clone() Header {
	fields := make([]Field, len(h.fields))
	copy(fields, h.fields)
	return Header{fields: fields}
}

// toHTTP converts to a net/http header map.
func (h Header) toHTTP() http.Header {
	out := make(http.Header, len(h.fields))
	for _, f := range h.fields {
		out[http.CanonicalHeaderKey(f.Name)] = append(out[http.CanonicalHeaderKey(f.Name)], f.Value)
	}
	return out
}

// headerFromHTTP converts a net/http header map, lower-casing names and
// sorting them for a stable order. Repeated values stay separate fields in
// their received order.
func headerFromHTTP(hh http.Header) Header {
	names := make([]string, 0, len(hh))
	for name := range hh {
		names = append(names, name)
	}
	sort.Strings(names)

	h := Header{fields: make([]Field, 0, len(hh))}
	for _, name := range names {
		for _, value := range hh[name] {
			h.fields = append(h.fields, Field{Name: strings.ToLower(name), Value: value})
		}
	}
	return h
}
