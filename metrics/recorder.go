package metrics

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// Recorder aggregates request latencies and outcomes.
//
// It is safe for concurrent use: counters are atomic and the histogram is
// mutex protected. Wire one into a client with http.WithRecorder.
type Recorder struct {
	// Range: 1 microsecond to 1 hour, 3 significant figures
	hist   *hdrhistogram.Histogram
	histMu sync.Mutex

	total    atomic.Int64
	failures atomic.Int64
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		hist: hdrhistogram.New(1, int64(time.Hour/time.Microsecond), 3),
	}
}

// Record adds one observation. err is the outcome of the send; a non-nil
// err counts as a failure but its latency is recorded all the same.
func (r *Recorder) Record(d time.Duration, err error) {
	r.total.Add(1)
	if err != nil {
		r.failures.Add(1)
	}

	r.histMu.Lock()
	defer r.histMu.Unlock()
	// RecordValue only fails when the value is outside the histogram's
	// range; clamp instead of dropping the observation.
	micros := d.Microseconds()
	if micros < 1 {
		micros = 1
	}
	if micros > r.hist.HighestTrackableValue() {
		micros = r.hist.HighestTrackableValue()
	}
	_ = r.hist.RecordValue(micros)
}

// Summary is a point-in-time aggregate of a recorder.
type Summary struct {
	Count    int64
	Failures int64
	P50      time.Duration
	P95      time.Duration
	P99      time.Duration
	Max      time.Duration
}

// Summary returns the current aggregates.
func (r *Recorder) Summary() Summary {
	r.histMu.Lock()
	defer r.histMu.Unlock()

	return Summary{
		Count:    r.total.Load(),
		Failures: r.failures.Load(),
		P50:      time.Duration(r.hist.ValueAtQuantile(50)) * time.Microsecond,
		P95:      time.Duration(r.hist.ValueAtQuantile(95)) * time.Microsecond,
		P99:      time.Duration(r.hist.ValueAtQuantile(99)) * time.Microsecond,
		Max:      time.Duration(r.hist.Max()) * time.Microsecond,
	}
}
