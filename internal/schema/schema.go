// Package schema defines the HCL struct schema for workflow files. It is a
// thin, format-specific layer; the hcl package translates it into the
// format-agnostic config model.
package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// StepArgs represents the content of the 'arguments' block within a step.
// It is kept as a raw body so expressions like matrix.python stay
// unevaluated until execution time.
type StepArgs struct {
	Body hcl.Body `hcl:",remain"`
}

// Step represents a `step` block inside a job. The first label selects the
// built-in step kind, the second names this instance.
type Step struct {
	Kind      string    `hcl:"kind,label"`
	Name      string    `hcl:"name,label"`
	Arguments *StepArgs `hcl:"arguments,block"`
}

// MatrixBlock represents a `matrix` block. Every attribute is one axis whose
// value is a list of strings.
type MatrixBlock struct {
	Body hcl.Body `hcl:",remain"`
}

// Job represents a `job` block from a workflow file.
type Job struct {
	Name   string       `hcl:"name,label"`
	Matrix *MatrixBlock `hcl:"matrix,block"`
	Steps  []*Step      `hcl:"step,block"`
}

// BranchFilterBlock restricts a trigger to branches matching the patterns.
type BranchFilterBlock struct {
	Branches []string `hcl:"branches,optional"`
}

// DispatchBlock marks a workflow as manually triggerable. It carries no
// attributes.
type DispatchBlock struct {
	Body hcl.Body `hcl:",remain"`
}

// ScheduleBlock subscribes a workflow to a cron schedule.
type ScheduleBlock struct {
	Cron string `hcl:"cron"`
}

// OnBlock represents the `on` block listing a workflow's event
// subscriptions.
type OnBlock struct {
	Push        *BranchFilterBlock `hcl:"push,block"`
	PullRequest *BranchFilterBlock `hcl:"pull_request,block"`
	Dispatch    *DispatchBlock     `hcl:"workflow_dispatch,block"`
	Schedules   []*ScheduleBlock   `hcl:"schedule,block"`
}

// Workflow represents a top-level `workflow` block.
type Workflow struct {
	Name string   `hcl:"name,label"`
	On   *OnBlock `hcl:"on,block"`
	Jobs []*Job   `hcl:"job,block"`
}

// File represents the top-level structure of a single workflow file.
type File struct {
	Workflows []*Workflow `hcl:"workflow,block"`
	Body      hcl.Body    `hcl:",remain"`
}
