// Package scheduler fires scheduled workflow runs in daemon mode. It is a
// thin wrapper over a cron runner: workflows with `schedule` triggers are
// registered at startup and fired with a synthetic schedule event each time
// their cron expression matches.
package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/vk/flowgrid/internal/ctxlog"
)

// Scheduler owns the cron runner for a single daemon process.
type Scheduler struct {
	cron *cron.Cron
}

// New creates a scheduler using standard 5-field cron expressions.
func New() *Scheduler {
	return &Scheduler{cron: cron.New()}
}

// Add registers one schedule for a workflow. The fire callback runs on the
// cron goroutine; it must do its own error reporting.
func (s *Scheduler) Add(ctx context.Context, workflow, spec string, fire func()) error {
	logger := ctxlog.FromContext(ctx)
	if _, err := s.cron.AddFunc(spec, fire); err != nil {
		return fmt.Errorf("workflow %q: failed to schedule %q: %w", workflow, spec, err)
	}
	logger.Info("⏰ Scheduled workflow.", "workflow", workflow, "cron", spec)
	return nil
}

// Start begins firing schedules in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for in-flight fires to finish, unless the
// context gives up first.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop().Done()
	select {
	case <-done:
	case <-ctx.Done():
	}
}
