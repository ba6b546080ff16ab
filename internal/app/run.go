package app

import (
	"context"
	"fmt"

	"github.com/vk/flowgrid/internal/ctxlog"
	"github.com/vk/flowgrid/internal/event"
	"github.com/vk/flowgrid/internal/executor"
	"github.com/vk/flowgrid/internal/history"
)

// Run executes the main application logic based on the loaded configuration.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.HealthcheckPort > 0 {
		a.startHealthcheckServer(a.config.HealthcheckPort)
	}

	if a.config.ListRuns > 0 {
		return a.listRuns(ctx)
	}
	if a.config.Daemon {
		return a.runDaemon(ctx)
	}

	ev, err := a.eventFromConfig()
	if err != nil {
		return err
	}

	matched := event.Select(a.model, ev)
	if len(matched) == 0 {
		a.logger.Info("No workflows subscribe to this event.", "event", string(ev.Type), "ref", ev.Ref)
		fmt.Fprintf(a.outW, "no workflows triggered by %s on %s\n", ev.Type, ev.Ref)
		return nil
	}
	a.logger.Debug("Workflows matched event.", "count", len(matched))

	exec := executor.New(a.registry, a.converter, a.config.Workers, a.repo())

	failed := 0
	for _, wf := range matched {
		result := exec.RunWorkflow(ctx, wf, ev)
		a.recordRun(ctx, result)
		a.reportRun(result)
		failed += len(result.Failed())
	}

	if failed > 0 {
		return fmt.Errorf("%d matrix entr%s failed", failed, pluralY(failed))
	}
	a.logger.Debug("App.Run method finished.")
	return nil
}

// eventFromConfig builds the event presented to the loaded workflows.
func (a *App) eventFromConfig() (event.Event, error) {
	eventType, err := event.ParseType(a.config.EventType)
	if err != nil {
		return event.Event{}, err
	}
	return event.Event{
		Type:     eventType,
		Ref:      a.config.Ref,
		Revision: a.config.Revision,
	}, nil
}

func (a *App) repo() string {
	if a.config.Repo != "" {
		return a.config.Repo
	}
	return "."
}

// recordRun persists the run when history is enabled. History failures are
// logged and swallowed: they must never change the run's outcome.
func (a *App) recordRun(ctx context.Context, result *executor.RunResult) {
	if a.config.HistoryDir == "" {
		return
	}
	store, err := history.Open(a.config.HistoryDir)
	if err != nil {
		a.logger.Warn("Failed to open history store, run not recorded.", "error", err)
		return
	}
	defer store.Close()
	if _, err := store.SaveRun(ctx, result); err != nil {
		a.logger.Warn("Failed to record run.", "error", err)
	}
}

// reportRun prints the per-entry summary and feeds the healthcheck.
func (a *App) reportRun(result *executor.RunResult) {
	a.lastConclusion.Store(string(result.Conclusion()))

	fmt.Fprintf(a.outW, "workflow %s: %s\n", result.Workflow, result.Conclusion())
	for _, entry := range result.Entries {
		if entry.Conclusion == executor.ConclusionSuccess {
			fmt.Fprintf(a.outW, "  %-40s %s\n", entry.ID, entry.Conclusion)
			continue
		}
		fmt.Fprintf(a.outW, "  %-40s %s (%s): %v\n", entry.ID, entry.Conclusion, entry.Class, entry.Err)
	}
}

// listRuns prints recent history records, newest first.
func (a *App) listRuns(ctx context.Context) error {
	store, err := history.Open(a.config.HistoryDir)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.Recent(ctx, a.config.ListRuns)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(a.outW, "no recorded runs")
		return nil
	}
	for _, rec := range records {
		fmt.Fprintf(a.outW, "%s  %-12s %-20s %-10s %s\n",
			rec.StartedAt.Format("2006-01-02 15:04:05"), rec.Event, rec.Workflow, rec.Conclusion, rec.ID)
	}
	return nil
}

func pluralY(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
