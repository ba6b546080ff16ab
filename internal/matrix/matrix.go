// Package matrix expands a job's matrix axes into the independent entries
// the executor fans out over. Expansion is the cartesian product of all
// axes, in deterministic order: axes sorted by name (the loaders guarantee
// that), values in declaration order.
package matrix

import (
	"fmt"
	"strings"

	"github.com/vk/flowgrid/internal/config"
)

// Entry is one combination of axis values for a job. Entries share nothing;
// each one gets its own workspace and its own conclusion.
type Entry struct {
	Job string
	// Axes preserves the expansion order of Values for stable IDs.
	Axes   []string
	Values map[string]string
}

// ID renders the canonical entry identifier, e.g. "lint/python=3.11". A job
// without a matrix yields just the job name.
func (e Entry) ID() string {
	if len(e.Axes) == 0 {
		return e.Job
	}
	parts := make([]string, 0, len(e.Axes))
	for _, axis := range e.Axes {
		parts = append(parts, fmt.Sprintf("%s=%s", axis, e.Values[axis]))
	}
	return e.Job + "/" + strings.Join(parts, ",")
}

// Expand computes the cartesian product of the job's matrix. A nil or empty
// matrix expands to a single entry with no values.
func Expand(jobName string, m *config.Matrix) []Entry {
	if m == nil || len(m.Axes) == 0 {
		return []Entry{{Job: jobName, Values: map[string]string{}}}
	}

	axisNames := make([]string, 0, len(m.Axes))
	for _, axis := range m.Axes {
		axisNames = append(axisNames, axis.Name)
	}

	entries := []Entry{{Job: jobName, Axes: axisNames, Values: map[string]string{}}}
	for _, axis := range m.Axes {
		next := make([]Entry, 0, len(entries)*len(axis.Values))
		for _, base := range entries {
			for _, value := range axis.Values {
				values := make(map[string]string, len(base.Values)+1)
				for k, v := range base.Values {
					values[k] = v
				}
				values[axis.Name] = value
				next = append(next, Entry{Job: jobName, Axes: axisNames, Values: values})
			}
		}
		entries = next
	}
	return entries
}
