package yamlcfg

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// workflowFile mirrors the GitHub-Actions-flavored YAML surface flowgrid
// accepts: a top-level name, an `on` trigger section, and a map of jobs.
type workflowFile struct {
	Name string    `yaml:"name"`
	On   *triggers `yaml:"on"`
	Jobs yaml.Node `yaml:"jobs"`
}

// triggers accepts the three YAML shapes of the `on` section: a single
// event name, a list of event names, or a mapping with per-event filters.
type triggers struct {
	Push        *branchFilter
	PullRequest *branchFilter
	Dispatch    bool
	Schedules   []string
}

type branchFilter struct {
	Branches []string `yaml:"branches"`
}

type scheduleEntry struct {
	Cron string `yaml:"cron"`
}

// UnmarshalYAML implements the yaml.Unmarshaler interface for the trigger
// section's three shapes.
func (t *triggers) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var name string
		if err := node.Decode(&name); err != nil {
			return err
		}
		return t.enable(name, nil)

	case yaml.SequenceNode:
		var names []string
		if err := node.Decode(&names); err != nil {
			return err
		}
		for _, name := range names {
			if err := t.enable(name, nil); err != nil {
				return err
			}
		}
		return nil

	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i].Value
			if err := t.enable(key, node.Content[i+1]); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("unsupported YAML shape for 'on' section")
}

// enable turns on one event subscription, decoding its filter node if any.
func (t *triggers) enable(name string, value *yaml.Node) error {
	switch name {
	case "push":
		t.Push = &branchFilter{}
		return decodeFilter(value, t.Push)
	case "pull_request":
		t.PullRequest = &branchFilter{}
		return decodeFilter(value, t.PullRequest)
	case "workflow_dispatch":
		t.Dispatch = true
		return nil
	case "schedule":
		if value == nil {
			return fmt.Errorf("'schedule' trigger requires a list of cron entries")
		}
		var entries []scheduleEntry
		if err := value.Decode(&entries); err != nil {
			return fmt.Errorf("invalid 'schedule' trigger: %w", err)
		}
		for _, e := range entries {
			t.Schedules = append(t.Schedules, e.Cron)
		}
		return nil
	default:
		return fmt.Errorf("unsupported trigger event %q", name)
	}
}

func decodeFilter(value *yaml.Node, into *branchFilter) error {
	if value == nil || value.Tag == "!!null" {
		return nil
	}
	return value.Decode(into)
}

// jobSpec is one entry of the `jobs` mapping.
type jobSpec struct {
	Strategy *strategy  `yaml:"strategy"`
	Steps    []stepSpec `yaml:"steps"`
}

type strategy struct {
	// Matrix axis values are decoded loosely: YAML scalars like 3.12 arrive
	// as numbers and are stringified during translation.
	Matrix map[string][]any `yaml:"matrix"`
}

// stepSpec is one list element of a job's `steps`. Exactly one of Uses and
// Run must be set; Run is shorthand for the `run` step kind.
type stepSpec struct {
	Name string         `yaml:"name"`
	Uses string         `yaml:"uses"`
	Run  string         `yaml:"run"`
	With map[string]any `yaml:"with"`
}
