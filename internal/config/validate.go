package config

import (
	"fmt"
	"path"

	"github.com/robfig/cron/v3"
)

// Validate checks the invariants every loader must uphold: unique workflow
// names, at least one trigger per workflow, well-formed branch patterns, and
// parseable cron schedules. Loaders call it after translation so the
// executor never sees a malformed model.
func Validate(m *Model) error {
	seen := make(map[string]string, len(m.Workflows))
	for _, w := range m.Workflows {
		if w.Name == "" {
			return fmt.Errorf("workflow in %s has no name", w.Source)
		}
		if prev, ok := seen[w.Name]; ok {
			return fmt.Errorf("duplicate workflow name %q (defined in %s and %s)", w.Name, prev, w.Source)
		}
		seen[w.Name] = w.Source

		if err := validateTriggers(w); err != nil {
			return err
		}
		if err := validateJobs(w); err != nil {
			return err
		}
	}
	return nil
}

func validateTriggers(w *Workflow) error {
	t := w.Triggers
	if t == nil || (t.Push == nil && t.PullRequest == nil && !t.Dispatch && len(t.Schedules) == 0) {
		return fmt.Errorf("workflow %q subscribes to no events", w.Name)
	}
	for _, f := range []*BranchFilter{t.Push, t.PullRequest} {
		if f == nil {
			continue
		}
		for _, p := range f.Branches {
			if _, err := path.Match(p, "probe"); err != nil {
				return fmt.Errorf("workflow %q: invalid branch pattern %q: %w", w.Name, p, err)
			}
		}
	}
	for _, expr := range t.Schedules {
		if _, err := cron.ParseStandard(expr); err != nil {
			return fmt.Errorf("workflow %q: invalid cron schedule %q: %w", w.Name, expr, err)
		}
	}
	return nil
}

func validateJobs(w *Workflow) error {
	if len(w.Jobs) == 0 {
		return fmt.Errorf("workflow %q defines no jobs", w.Name)
	}
	jobNames := make(map[string]struct{}, len(w.Jobs))
	for _, j := range w.Jobs {
		if j.Name == "" {
			return fmt.Errorf("workflow %q has a job with no name", w.Name)
		}
		if _, ok := jobNames[j.Name]; ok {
			return fmt.Errorf("workflow %q: duplicate job name %q", w.Name, j.Name)
		}
		jobNames[j.Name] = struct{}{}

		if len(j.Steps) == 0 {
			return fmt.Errorf("workflow %q: job %q defines no steps", w.Name, j.Name)
		}
		if j.Matrix != nil {
			for _, axis := range j.Matrix.Axes {
				if len(axis.Values) == 0 {
					return fmt.Errorf("workflow %q: job %q: matrix axis %q has no values", w.Name, j.Name, axis.Name)
				}
			}
		}
	}
	return nil
}
