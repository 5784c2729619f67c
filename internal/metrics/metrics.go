// Package metrics provides a small, backend-agnostic abstraction for recording
// batch-run metrics from the tariff tools.
//
//   - Backend is a narrow interface focused on counters and timings.
//   - Recorder wraps a Backend with the project's metric names and labels. A
//     zero Recorder (or one built with a nil Backend) is a no-op, so call sites
//     never need to check whether metrics are enabled.
//   - Concrete metric systems live in subpackages (prompush).
package metrics

import "time"

// Metric names shared by all backends.
const (
	StepTotal           = "tariff_step_total"
	StepDurationSeconds = "tariff_step_duration_seconds"
	RecordsTotal        = "tariff_records_total"
)

// Labels are string key/value pairs attached to a metric.
type Labels map[string]string

// Backend is the minimal interface for metrics backends.
type Backend interface {
	// IncCounter increments a counter by delta.
	IncCounter(name string, delta float64, labels Labels)
	// ObserveHistogram records a value in a latency/duration style metric.
	ObserveHistogram(name string, value float64, labels Labels)
	// Flush pushes or flushes metrics, if the backend needs it (e.g. Pushgateway).
	Flush() error
}

// Nop discards everything.
type Nop struct{}

func (Nop) IncCounter(string, float64, Labels)       {}
func (Nop) ObserveHistogram(string, float64, Labels) {}
func (Nop) Flush() error                             { return nil }

// Recorder records tariff metrics for one job.
type Recorder struct {
	job     string
	backend Backend
}

// NewRecorder binds a backend to a job name. A nil backend yields a no-op.
func NewRecorder(job string, b Backend) *Recorder {
	if b == nil {
		b = Nop{}
	}
	return &Recorder{job: job, backend: b}
}

func (r *Recorder) be() Backend {
	if r == nil || r.backend == nil {
		return Nop{}
	}
	return r.backend
}

// RecordStep measures latency and success/failure of one step.
func (r *Recorder) RecordStep(step string, err error, d time.Duration) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	lbls := Labels{"step": step, "status": status}
	if r != nil {
		lbls["job"] = r.job
	}
	r.be().IncCounter(StepTotal, 1, lbls)
	r.be().ObserveHistogram(StepDurationSeconds, d.Seconds(), lbls)
}

// RecordRows increments the record counter for kind ("read", "written",
// "duplicate_keys", ...). Non-positive deltas are ignored.
func (r *Recorder) RecordRows(kind string, delta int) {
	if delta <= 0 {
		return
	}
	lbls := Labels{"kind": kind}
	if r != nil {
		lbls["job"] = r.job
	}
	r.be().IncCounter(RecordsTotal, float64(delta), lbls)
}

// Flush delegates to the backend.
func (r *Recorder) Flush() error { return r.be().Flush() }
