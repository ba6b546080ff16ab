package config

import (
	"github.com/hashicorp/hcl/v2"
)

// Model is the unified, format-agnostic representation of every workflow
// definition found at the configured paths.
type Model struct {
	Workflows []*Workflow
}

// Workflow is a single named pipeline: the events it subscribes to and the
// jobs it fans out into when one of those events matches.
type Workflow struct {
	Name     string
	Triggers *Triggers
	Jobs     []*Job
	// Source is the file the workflow was loaded from, for diagnostics.
	Source string
}

// Triggers describes the event subscriptions of a workflow. A nil filter
// means the workflow does not subscribe to that event type.
type Triggers struct {
	Push        *BranchFilter
	PullRequest *BranchFilter
	Dispatch    bool
	// Schedules holds standard 5-field cron expressions, validated at load.
	Schedules []string
}

// BranchFilter restricts an event subscription to branches matching any of
// the glob patterns. An empty pattern list matches every branch.
type BranchFilter struct {
	Branches []string
}

// Job is one job definition inside a workflow. The matrix fans it out into
// independent entries; the steps run sequentially inside each entry.
type Job struct {
	Name   string
	Matrix *Matrix
	Steps  []*Step
}

// Matrix holds the fan-out axes of a job. Axes are kept sorted by name so
// expansion order is deterministic regardless of source format.
type Matrix struct {
	Axes []*Axis
}

// Axis is a single matrix dimension: a name and its candidate values.
type Axis struct {
	Name   string
	Values []string
}

// Step is the format-agnostic representation of one step inside a job.
// Arguments are kept as unevaluated expressions so that matrix values can be
// substituted per entry at execution time.
type Step struct {
	Kind      string
	Name      string
	Arguments map[string]hcl.Expression
}
