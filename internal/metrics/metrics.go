// Package metrics records operational metrics for listings runs behind a
// pluggable Backend. The default backend discards everything, so callers can
// record unconditionally.
package metrics

import "time"

// Metric names emitted by the recorders below.
const (
	StepTotal    = "listings_step_total"
	StepDuration = "listings_step_duration_seconds"
	RowsTotal    = "listings_rows_total"
	BatchesTotal = "listings_batches_total"
)

// Pipeline steps.
const (
	StepRead      = "read"
	StepValidate  = "validate"
	StepNormalize = "normalize"
	StepAdmit     = "admit"
	StepWrite     = "write"
	StepLoad      = "load"
)

// Row kinds.
const (
	RowsRaw      = "raw"
	RowsAccepted = "accepted"
	RowsRejected = "rejected"
	RowsLoaded   = "loaded"
	RowsSkipped  = "skipped"
)

// Labels are string key/value pairs attached to a metric.
type Labels map[string]string

// Backend is implemented by concrete metric systems.
type Backend interface {
	IncCounter(name string, delta float64, labels Labels)
	ObserveHistogram(name string, value float64, labels Labels)
	// Flush pushes buffered metrics, if the backend needs it.
	Flush() error
}

type nopBackend struct{}

func (nopBackend) IncCounter(string, float64, Labels)       {}
func (nopBackend) ObserveHistogram(string, float64, Labels) {}
func (nopBackend) Flush() error                             { return nil }

var backend Backend = nopBackend{}

// SetBackend installs b. It must be called before recording starts. Passing
// nil keeps the current backend.
func SetBackend(b Backend) {
	if b == nil {
		return
	}
	backend = b
}

// Flush delegates to the current backend.
func Flush() error {
	return backend.Flush()
}

// RecordStep counts one execution of step and observes its duration.
func RecordStep(job, step string, err error, d time.Duration) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	lbls := Labels{"job": job, "step": step, "status": status}
	backend.IncCounter(StepTotal, 1, lbls)
	backend.ObserveHistogram(StepDuration, d.Seconds(), lbls)
}

// RecordRow adds delta rows of kind. Non-positive deltas are ignored.
func RecordRow(job, kind string, delta int64) {
	if delta <= 0 {
		return
	}
	backend.IncCounter(RowsTotal, float64(delta), Labels{"job": job, "kind": kind})
}

// RecordBatches adds delta database load batches.
func RecordBatches(job string, delta int64) {
	if delta <= 0 {
		return
	}
	backend.IncCounter(BatchesTotal, float64(delta), Labels{"job": job})
}
