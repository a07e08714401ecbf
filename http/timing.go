package http

import (
	"crypto/tls"
	"net/http/httptrace"
	"time"
)

// TimingInfo captures per-phase timings for one round trip.
type TimingInfo struct {
	StartTime        time.Time
	DNSLookupTime    time.Duration
	TCPConnectTime   time.Duration
	TLSHandshakeTime time.Duration
	TimeToFirstByte  time.Duration
	TotalTime        time.Duration
}

// trace builds a httptrace.ClientTrace that fills t in as the phases of a
// round trip complete. TimeToFirstByte is measured from the end of the
// last completed phase, not from the start of the request.
func (t *TimingInfo) trace() *httptrace.ClientTrace {
	var dnsStart, connectStart, tlsStart time.Time
	var dnsDone, connectDone bool
	lastPhaseEnd := t.StartTime

	return &httptrace.ClientTrace{
		DNSStart: func(httptrace.DNSStartInfo) {
			dnsStart = time.Now()
		},
		DNSDone: func(httptrace.DNSDoneInfo) {
			now := time.Now()
			t.DNSLookupTime = now.Sub(dnsStart)
			dnsDone = true
			lastPhaseEnd = now
		},
		ConnectStart: func(network, addr string) {
			if dnsDone {
				connectStart = time.Now()
			}
		},
		ConnectDone: func(network, addr string, err error) {
			if err == nil {
				now := time.Now()
				t.TCPConnectTime = now.Sub(connectStart)
				connectDone = true
				lastPhaseEnd = now
			}
		},
		TLSHandshakeStart: func() {
			if connectDone {
				tlsStart = time.Now()
			}
		},
		TLSHandshakeDone: func(state tls.ConnectionState, err error) {
			if err == nil {
				now := time.Now()
				t.TLSHandshakeTime = now.Sub(tlsStart)
				lastPhaseEnd = now
			}
		},
		GotFirstResponseByte: func() {
			t.TimeToFirstByte = time.Since(lastPhaseEnd)
		},
	}
}

// GetTimeToFirstByteMillis returns the time to first byte in milliseconds.
func (t TimingInfo) GetTimeToFirstByteMillis() int64 {
	return t.TimeToFirstByte.Milliseconds()
}

// GetTotalTimeMillis returns the total round-trip time in milliseconds.
func (t TimingInfo) GetTotalTimeMillis() int64 {
	return t.TotalTime.Milliseconds()
}
