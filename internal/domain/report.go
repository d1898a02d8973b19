package domain

import "time"

// ResourceReport summarizes one resource's pass.
type ResourceReport struct {
	Name string `json:"name"`

	// Batches and Records count what was handed downstream
	Batches int64 `json:"batches"`
	Records int64 `json:"records"`

	// EntriesRead counts archive entries returned by the reader
	EntriesRead int64 `json:"entries_read,omitempty"`

	// Skipped counts matching entries whose content was unavailable
	Skipped int64 `json:"skipped,omitempty"`

	// Failed counts entries dropped because their container could not be read
	Failed int64 `json:"failed,omitempty"`

	Duration time.Duration `json:"duration_ns"`

	// Error is set when the resource aborted
	Error string `json:"error,omitempty"`
}

// Succeeded returns true if the resource ran to completion.
func (r ResourceReport) Succeeded() bool {
	return r.Error == ""
}

// Report is the outcome of one run over a set of resources.
type Report struct {
	StartedAt  time.Time        `json:"started_at"`
	FinishedAt time.Time        `json:"finished_at"`
	Resources  []ResourceReport `json:"resources"`
}

// Records returns the total records emitted across resources.
func (r Report) Records() int64 {
	var n int64
	for _, rr := range r.Resources {
		n += rr.Records
	}
	return n
}

// Failed returns the resources that aborted.
func (r Report) Failed() []ResourceReport {
	var out []ResourceReport
	for _, rr := range r.Resources {
		if !rr.Succeeded() {
			out = append(out, rr)
		}
	}
	return out
}
