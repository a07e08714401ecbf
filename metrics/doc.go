// Package metrics provides an optional latency recorder for the HTTP
// client. It aggregates send durations into an HDR histogram for accurate
// percentiles and keeps lock-free success/failure counters.
package metrics
