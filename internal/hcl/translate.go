package hcl

import (
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/vk/flowgrid/internal/config"
	"github.com/vk/flowgrid/internal/schema"
)

// translateWorkflow converts the HCL-specific workflow schema into the
// agnostic model.
func (l *Loader) translateWorkflow(w *schema.Workflow, source string) (*config.Workflow, error) {
	out := &config.Workflow{
		Name:     w.Name,
		Triggers: translateTriggers(w.On),
		Source:   source,
	}

	for _, j := range w.Jobs {
		job, err := l.translateJob(j)
		if err != nil {
			return nil, fmt.Errorf("workflow %q: %w", w.Name, err)
		}
		out.Jobs = append(out.Jobs, job)
	}
	return out, nil
}

// translateTriggers converts the `on` block. A missing block yields nil
// triggers, which config.Validate rejects.
func translateTriggers(on *schema.OnBlock) *config.Triggers {
	if on == nil {
		return nil
	}
	t := &config.Triggers{}
	if on.Push != nil {
		t.Push = &config.BranchFilter{Branches: on.Push.Branches}
	}
	if on.PullRequest != nil {
		t.PullRequest = &config.BranchFilter{Branches: on.PullRequest.Branches}
	}
	t.Dispatch = on.Dispatch != nil
	for _, s := range on.Schedules {
		t.Schedules = append(t.Schedules, s.Cron)
	}
	return t
}

// translateJob converts a `job` block, expanding its matrix attributes into
// sorted axes.
func (l *Loader) translateJob(j *schema.Job) (*config.Job, error) {
	job := &config.Job{Name: j.Name}

	if j.Matrix != nil {
		matrix, err := translateMatrix(j.Matrix)
		if err != nil {
			return nil, fmt.Errorf("job %q: %w", j.Name, err)
		}
		job.Matrix = matrix
	}

	for _, s := range j.Steps {
		job.Steps = append(job.Steps, &config.Step{
			Kind:      s.Kind,
			Name:      s.Name,
			Arguments: extractBodyAttributes(s.Arguments),
		})
	}
	return job, nil
}

// translateMatrix reads every attribute of the matrix block as one axis
// whose value must be a list of strings. Axes are sorted by name so
// expansion order does not depend on HCL attribute iteration order.
func translateMatrix(m *schema.MatrixBlock) (*config.Matrix, error) {
	attrs, diags := m.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid matrix block: %w", diags)
	}

	matrix := &config.Matrix{}
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("matrix axis %q: %w", name, diags)
		}
		converted, err := convert.Convert(val, cty.List(cty.String))
		if err != nil {
			return nil, fmt.Errorf("matrix axis %q must be a list of strings: %w", name, err)
		}
		axis := &config.Axis{Name: name}
		for it := converted.ElementIterator(); it.Next(); {
			_, v := it.Element()
			axis.Values = append(axis.Values, v.AsString())
		}
		matrix.Axes = append(matrix.Axes, axis)
	}

	sort.Slice(matrix.Axes, func(i, k int) bool {
		return matrix.Axes[i].Name < matrix.Axes[k].Name
	})
	return matrix, nil
}

// extractBodyAttributes flattens an arguments block into a map of named,
// unevaluated expressions.
func extractBodyAttributes(args *schema.StepArgs) map[string]hcl.Expression {
	out := make(map[string]hcl.Expression)
	if args == nil {
		return out
	}
	attrs, diags := args.Body.JustAttributes()
	if diags.HasErrors() {
		return out
	}
	for name, attr := range attrs {
		out[name] = attr.Expr
	}
	return out
}
