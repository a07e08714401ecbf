package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	http "github.com/wesleyorama2/relay/http"
)

// Formatter renders requests and responses for terminal display.
type Formatter struct {
	Verbose bool
	scheme  *ColorScheme
}

// NewFormatter creates a new formatter. Color is disabled when noColor is
// set or stdout is not a terminal.
func NewFormatter(verbose, noColor bool) *Formatter {
	scheme := DefaultColorScheme()
	if noColor || !isTerminal() {
		scheme = NoColorScheme()
	}
	return &Formatter{Verbose: verbose, scheme: scheme}
}

// FormatRequest formats an outbound request for display.
func (f *Formatter) FormatRequest(req *http.Request) string {
	var buf strings.Builder

	opts := req.Options().Clean()
	buf.WriteString(fmt.Sprintf("▶ REQUEST: %s %s\n",
		f.scheme.Method.Sprint(opts.Method),
		f.scheme.URL.Sprint(req.URL())))

	if f.Verbose || opts.Headers.Len() > 0 {
		buf.WriteString("  Headers:\n")
		for _, field := range opts.Headers.Fields() {
			buf.WriteString(fmt.Sprintf("    %s: %s\n",
				f.scheme.HeaderKey.Sprint(field.Name),
				f.scheme.HeaderValue.Sprint(field.Value)))
		}
	}

	return buf.String()
}

// FormatResponse formats a received response for display. The body is
// passed in already buffered; an empty body prints nothing.
func (f *Formatter) FormatResponse(resp *http.Response, body string) string {
	var buf strings.Builder

	m := resp.Message()
	statusColor := f.scheme.StatusError
	switch {
	case m.StatusCode >= 200 && m.StatusCode < 300:
		statusColor = f.scheme.StatusOK
	case m.StatusCode >= 300 && m.StatusCode < 400:
		statusColor = f.scheme.StatusWarn
	}

	buf.WriteString(fmt.Sprintf("◀ RESPONSE: %s (%dms)\n",
		statusColor.Sprintf("%d %s", m.StatusCode, m.StatusMessage),
		resp.Timing().GetTotalTimeMillis()))

	if f.Verbose {
		timing := resp.Timing()
		buf.WriteString("  Timing:\n")
		buf.WriteString(fmt.Sprintf("    DNS Lookup:         %dms\n", timing.DNSLookupTime.Milliseconds()))
		buf.WriteString(fmt.Sprintf("    TCP Connection:     %dms\n", timing.TCPConnectTime.Milliseconds()))
		buf.WriteString(fmt.Sprintf("    TLS Handshake:      %dms\n", timing.TLSHandshakeTime.Milliseconds()))
		buf.WriteString(fmt.Sprintf("    Time to First Byte: %dms\n", timing.GetTimeToFirstByteMillis()))
		buf.WriteString(fmt.Sprintf("    Total:              %dms\n", timing.GetTotalTimeMillis()))

		buf.WriteString("  Headers:\n")
		for _, field := range m.Headers.Fields() {
			buf.WriteString(fmt.Sprintf("    %s: %s\n",
				f.scheme.HeaderKey.Sprint(field.Name),
				f.scheme.HeaderValue.Sprint(field.Value)))
		}
	}

	if body != "" {
		buf.WriteString("  Body:\n")
		buf.WriteString(formatJSONString(body))
		buf.WriteString("\n")
	}

	return buf.String()
}

// FormatError formats a terminal error line.
func (f *Formatter) FormatError(err error) string {
	return f.scheme.Error.Sprintf("Error: %v", err) + "\n"
}

// formatJSONString attempts to pretty-print a JSON string
func formatJSONString(s string) string {
	var prettyJSON bytes.Buffer
	err := json.Indent(&prettyJSON, []byte(s), "  ", "  ")
	if err != nil {
		return s
	}
	return prettyJSON.String()
}
