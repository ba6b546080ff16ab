package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/flowgrid/internal/config"
)

func TestParseType(t *testing.T) {
	t.Run("accepts known types", func(t *testing.T) {
		for _, s := range []string{"push", "pull_request", "workflow_dispatch", "schedule"} {
			typ, err := ParseType(s)
			require.NoError(t, err)
			assert.Equal(t, Type(s), typ)
		}
	})

	t.Run("normalizes case and whitespace", func(t *testing.T) {
		typ, err := ParseType("  Push ")
		require.NoError(t, err)
		assert.Equal(t, Push, typ)
	})

	t.Run("rejects unknown types", func(t *testing.T) {
		_, err := ParseType("merge_group")
		assert.ErrorContains(t, err, "unknown event type")
	})
}

func TestBranch(t *testing.T) {
	assert.Equal(t, "master", Event{Ref: "refs/heads/master"}.Branch())
	assert.Equal(t, "feature/x", Event{Ref: "refs/heads/feature/x"}.Branch())
	assert.Equal(t, "master", Event{Ref: "master"}.Branch())
}

func lintTriggers() *config.Triggers {
	return &config.Triggers{
		Push:        &config.BranchFilter{Branches: []string{"dev*", "devel", "master"}},
		PullRequest: &config.BranchFilter{},
		Dispatch:    true,
	}
}

func TestMatches(t *testing.T) {
	t.Run("push to filtered branches", func(t *testing.T) {
		trig := lintTriggers()

		assert.True(t, Matches(trig, Event{Type: Push, Ref: "refs/heads/master"}))
		assert.True(t, Matches(trig, Event{Type: Push, Ref: "refs/heads/devel"}))
		assert.True(t, Matches(trig, Event{Type: Push, Ref: "refs/heads/dev"}))
		assert.True(t, Matches(trig, Event{Type: Push, Ref: "refs/heads/dev-1.2"}))
	})

	t.Run("push to non-matching branch", func(t *testing.T) {
		trig := lintTriggers()

		assert.False(t, Matches(trig, Event{Type: Push, Ref: "refs/heads/feature/x"}))
		assert.False(t, Matches(trig, Event{Type: Push, Ref: "refs/heads/main"}))
	})

	t.Run("branch wildcard does not cross path segments", func(t *testing.T) {
		trig := lintTriggers()

		assert.False(t, Matches(trig, Event{Type: Push, Ref: "refs/heads/dev/nested"}))
	})

	t.Run("pull request matches any branch when filter is empty", func(t *testing.T) {
		trig := lintTriggers()

		assert.True(t, Matches(trig, Event{Type: PullRequest, Ref: "refs/heads/feature/x"}))
	})

	t.Run("dispatch requires subscription", func(t *testing.T) {
		assert.True(t, Matches(lintTriggers(), Event{Type: Dispatch}))
		assert.False(t, Matches(&config.Triggers{Push: &config.BranchFilter{}}, Event{Type: Dispatch}))
	})

	t.Run("nil triggers never match", func(t *testing.T) {
		assert.False(t, Matches(nil, Event{Type: Push, Ref: "refs/heads/master"}))
	})

	t.Run("schedule requires at least one cron entry", func(t *testing.T) {
		assert.False(t, Matches(lintTriggers(), Event{Type: Schedule}))
		assert.True(t, Matches(&config.Triggers{Schedules: []string{"0 6 * * *"}}, Event{Type: Schedule}))
	})
}

func TestSelect(t *testing.T) {
	model := &config.Model{Workflows: []*config.Workflow{
		{Name: "lint", Triggers: lintTriggers()},
		{Name: "nightly", Triggers: &config.Triggers{Schedules: []string{"0 6 * * *"}}},
	}}

	t.Run("push selects the subscribed workflow only", func(t *testing.T) {
		selected := Select(model, Event{Type: Push, Ref: "refs/heads/master"})
		require.Len(t, selected, 1)
		assert.Equal(t, "lint", selected[0].Name)
	})

	t.Run("non-matching push selects nothing", func(t *testing.T) {
		assert.Empty(t, Select(model, Event{Type: Push, Ref: "refs/heads/feature/x"}))
	})
}
