package executor

import (
	"time"

	"github.com/vk/flowgrid/internal/event"
	"github.com/vk/flowgrid/internal/steps"
)

// Conclusion is the terminal state of an entry or a run.
type Conclusion string

const (
	ConclusionSuccess Conclusion = "success"
	ConclusionFailure Conclusion = "failure"
)

// EntryResult is the outcome of one matrix entry.
type EntryResult struct {
	ID         string
	Conclusion Conclusion
	// Class is set on failure: infra, deps, or lint.
	Class    steps.FailureClass
	Err      error
	Duration time.Duration
}

// RunResult aggregates every entry of one workflow run.
type RunResult struct {
	Workflow   string
	Event      event.Event
	StartedAt  time.Time
	FinishedAt time.Time
	Entries    []EntryResult
}

// Conclusion is success only if every entry succeeded.
func (r *RunResult) Conclusion() Conclusion {
	for _, e := range r.Entries {
		if e.Conclusion != ConclusionSuccess {
			return ConclusionFailure
		}
	}
	return ConclusionSuccess
}

// Failed returns the entries that did not succeed.
func (r *RunResult) Failed() []EntryResult {
	var out []EntryResult
	for _, e := range r.Entries {
		if e.Conclusion != ConclusionSuccess {
			out = append(out, e)
		}
	}
	return out
}
