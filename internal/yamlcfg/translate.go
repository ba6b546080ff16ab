package yamlcfg

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/vk/flowgrid/internal/config"
)

// translateFile converts a parsed YAML workflow file into the agnostic
// model. One YAML file defines exactly one workflow.
func translateFile(file *workflowFile, source string) (*config.Workflow, error) {
	out := &config.Workflow{
		Name:     workflowName(file, source),
		Triggers: translateTriggers(file.On),
		Source:   source,
	}

	jobs, err := translateJobs(&file.Jobs)
	if err != nil {
		return nil, fmt.Errorf("workflow %q: %w", out.Name, err)
	}
	out.Jobs = jobs
	return out, nil
}

func translateTriggers(t *triggers) *config.Triggers {
	if t == nil {
		return nil
	}
	out := &config.Triggers{
		Dispatch:  t.Dispatch,
		Schedules: t.Schedules,
	}
	if t.Push != nil {
		out.Push = &config.BranchFilter{Branches: t.Push.Branches}
	}
	if t.PullRequest != nil {
		out.PullRequest = &config.BranchFilter{Branches: t.PullRequest.Branches}
	}
	return out
}

// translateJobs walks the `jobs` mapping node directly so job order follows
// the document instead of Go map iteration.
func translateJobs(node *yaml.Node) ([]*config.Job, error) {
	if node.Kind == 0 || node.Tag == "!!null" {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("'jobs' must be a mapping")
	}

	var jobs []*config.Job
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value

		var spec jobSpec
		if err := node.Content[i+1].Decode(&spec); err != nil {
			return nil, fmt.Errorf("job %q: %w", name, err)
		}

		job, err := translateJob(name, &spec)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

func translateJob(name string, spec *jobSpec) (*config.Job, error) {
	job := &config.Job{Name: name}

	if spec.Strategy != nil && len(spec.Strategy.Matrix) > 0 {
		matrix := &config.Matrix{}
		for axisName, rawValues := range spec.Strategy.Matrix {
			axis := &config.Axis{Name: axisName}
			for _, raw := range rawValues {
				axis.Values = append(axis.Values, stringifyScalar(raw))
			}
			matrix.Axes = append(matrix.Axes, axis)
		}
		sort.Slice(matrix.Axes, func(i, k int) bool {
			return matrix.Axes[i].Name < matrix.Axes[k].Name
		})
		job.Matrix = matrix
	}

	for i, s := range spec.Steps {
		step, err := translateStep(i, s)
		if err != nil {
			return nil, fmt.Errorf("job %q: %w", name, err)
		}
		job.Steps = append(job.Steps, step)
	}
	return job, nil
}

// translateStep maps the YAML step shorthand onto a step kind plus argument
// expressions. `run:` is shorthand for the `run` kind with a `command`
// argument; `uses:` selects a built-in kind directly.
func translateStep(index int, s stepSpec) (*config.Step, error) {
	if s.Uses != "" && s.Run != "" {
		return nil, fmt.Errorf("step %q sets both 'uses' and 'run'", s.Name)
	}
	if s.Uses == "" && s.Run == "" {
		return nil, fmt.Errorf("step %d sets neither 'uses' nor 'run'", index+1)
	}

	step := &config.Step{Name: s.Name}
	if step.Name == "" {
		step.Name = fmt.Sprintf("step-%d", index+1)
	}

	args := make(map[string]any, len(s.With)+1)
	for k, v := range s.With {
		args[k] = v
	}

	if s.Run != "" {
		step.Kind = "run"
		args["command"] = s.Run
	} else {
		step.Kind = s.Uses
	}

	exprs, err := synthesizeArgs(args)
	if err != nil {
		return nil, fmt.Errorf("step %q: %w", step.Name, err)
	}
	step.Arguments = exprs
	return step, nil
}
