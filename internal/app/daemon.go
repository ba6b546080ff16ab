package app

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/vk/flowgrid/internal/config"
	"github.com/vk/flowgrid/internal/ctxlog"
	"github.com/vk/flowgrid/internal/event"
	"github.com/vk/flowgrid/internal/executor"
	"github.com/vk/flowgrid/internal/scheduler"
)

// drainTimeout bounds how long shutdown waits for in-flight scheduled runs.
const drainTimeout = 30 * time.Second

// runDaemon keeps the process alive and fires schedule-triggered workflows
// on their cron expressions until SIGINT/SIGTERM.
func (a *App) runDaemon(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	logger := ctxlog.FromContext(ctx)

	exec := executor.New(a.registry, a.converter, a.config.Workers, a.repo())
	sched := scheduler.New()

	scheduled := 0
	for _, wf := range a.model.Workflows {
		if wf.Triggers == nil {
			continue
		}
		for _, spec := range wf.Triggers.Schedules {
			if err := sched.Add(ctx, wf.Name, spec, a.fireScheduled(ctx, exec, wf.Name)); err != nil {
				return err
			}
			scheduled++
		}
	}
	if scheduled == 0 {
		logger.Warn("Daemon mode requested but no workflow defines a schedule trigger.")
	}

	sched.Start()
	logger.Info("Daemon running.", "schedules", scheduled)
	<-ctx.Done()

	logger.Info("Shutting down, draining in-flight runs.")
	drainCtx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()
	sched.Stop(drainCtx)
	return nil
}

// fireScheduled returns the cron callback for one workflow. Each fire runs
// the workflow against a synthetic schedule event and records it like any
// other run.
func (a *App) fireScheduled(ctx context.Context, exec *executor.Executor, workflowName string) func() {
	return func() {
		logger := ctxlog.FromContext(ctx).With("workflow", workflowName)
		wf := a.workflowByName(workflowName)
		if wf == nil {
			logger.Error("Scheduled workflow vanished from model.")
			return
		}

		ev := event.Event{Type: event.Schedule}
		result := exec.RunWorkflow(ctx, wf, ev)
		a.recordRun(ctx, result)
		a.reportRun(result)
		if result.Conclusion() != executor.ConclusionSuccess {
			logger.Error("Scheduled run failed.", "failed_entries", len(result.Failed()))
		}
	}
}

func (a *App) workflowByName(name string) *config.Workflow {
	for _, wf := range a.model.Workflows {
		if wf.Name == name {
			return wf
		}
	}
	return nil
}
