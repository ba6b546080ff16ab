// Package event models repository events and decides which workflows they
// trigger. Branch filters use single-segment glob patterns ('*' never
// crosses a '/'), matched against the branch name with the "refs/heads/"
// prefix stripped.
package event

import (
	"fmt"
	"path"
	"strings"
)

// Type enumerates the event kinds a workflow can subscribe to.
type Type string

const (
	Push        Type = "push"
	PullRequest Type = "pull_request"
	Dispatch    Type = "workflow_dispatch"
	Schedule    Type = "schedule"
)

// ParseType converts a user-supplied string into an event Type.
func ParseType(s string) (Type, error) {
	switch t := Type(strings.ToLower(strings.TrimSpace(s))); t {
	case Push, PullRequest, Dispatch, Schedule:
		return t, nil
	default:
		return "", fmt.Errorf("unknown event type %q (expected push, pull_request, workflow_dispatch, or schedule)", s)
	}
}

// Event is a single repository event presented to the runner.
type Event struct {
	Type Type
	// Ref is the fully qualified git ref the event happened on, for example
	// "refs/heads/master". Pull request events carry the target branch ref.
	Ref string
	// Revision is the commit-ish to check out. Empty means HEAD.
	Revision string
}

// Branch returns the branch name of the event's ref.
func (e Event) Branch() string {
	return strings.TrimPrefix(e.Ref, "refs/heads/")
}

// matchBranch reports whether branch matches any of the patterns. An empty
// pattern list matches every branch.
func matchBranch(patterns []string, branch string) bool {
	if len(patterns) == 0 {
		return true
	}
	for _, p := range patterns {
		if ok, err := path.Match(p, branch); err == nil && ok {
			return true
		}
	}
	return false
}
