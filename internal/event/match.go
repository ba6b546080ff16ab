package event

import (
	"github.com/vk/flowgrid/internal/config"
)

// Matches reports whether the given triggers subscribe to the event. A nil
// Triggers never matches.
func Matches(t *config.Triggers, e Event) bool {
	if t == nil {
		return false
	}
	switch e.Type {
	case Push:
		return t.Push != nil && matchBranch(t.Push.Branches, e.Branch())
	case PullRequest:
		return t.PullRequest != nil && matchBranch(t.PullRequest.Branches, e.Branch())
	case Dispatch:
		return t.Dispatch
	case Schedule:
		return len(t.Schedules) > 0
	}
	return false
}

// Select filters the model down to the workflows triggered by the event,
// preserving load order.
func Select(m *config.Model, e Event) []*config.Workflow {
	var out []*config.Workflow
	for _, w := range m.Workflows {
		if Matches(w.Triggers, e) {
			out = append(out, w)
		}
	}
	return out
}
