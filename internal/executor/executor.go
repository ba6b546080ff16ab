// Package executor fans a triggered workflow out into its matrix entries
// and runs each entry's steps sequentially in an isolated workspace.
// Entries are independent: they run concurrently on a bounded pool, share
// no state, and one entry failing never cancels its siblings. A run's
// conclusion is the logical AND of its entries'.
package executor

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vk/flowgrid/internal/config"
	"github.com/vk/flowgrid/internal/ctxlog"
	"github.com/vk/flowgrid/internal/event"
	"github.com/vk/flowgrid/internal/matrix"
	"github.com/vk/flowgrid/internal/steps"
)

// Executor runs workflows against a repository.
type Executor struct {
	registry  *steps.Registry
	converter config.Converter
	workers   int
	repo      string
}

// New creates an executor. workers bounds how many matrix entries run at
// once; repo is the repository entries check out.
func New(registry *steps.Registry, converter config.Converter, workers int, repo string) *Executor {
	if workers < 1 {
		workers = 1
	}
	return &Executor{
		registry:  registry,
		converter: converter,
		workers:   workers,
		repo:      repo,
	}
}

// workItem pairs one matrix entry with the job definition it came from.
type workItem struct {
	job   *config.Job
	entry matrix.Entry
}

// RunWorkflow executes every matrix entry of every job in the workflow and
// returns the aggregated result. The returned error is reserved for setup
// problems; entry failures are reported through the result.
func (e *Executor) RunWorkflow(ctx context.Context, wf *config.Workflow, ev event.Event) *RunResult {
	logger := ctxlog.FromContext(ctx).With("workflow", wf.Name)
	ctx = ctxlog.WithLogger(ctx, logger)

	var items []workItem
	for _, job := range wf.Jobs {
		for _, entry := range matrix.Expand(job.Name, job.Matrix) {
			items = append(items, workItem{job: job, entry: entry})
		}
	}

	result := &RunResult{
		Workflow:  wf.Name,
		Event:     ev,
		StartedAt: time.Now(),
		Entries:   make([]EntryResult, len(items)),
	}

	logger.Info("🚀 Starting workflow run.", "entries", len(items), "workers", e.workers)

	// A plain errgroup without a derived context: sibling entries must keep
	// running when one fails.
	var g errgroup.Group
	g.SetLimit(e.workers)
	for i, item := range items {
		g.Go(func() error {
			result.Entries[i] = e.runEntry(ctx, item.job, item.entry, ev)
			return nil
		})
	}
	g.Wait()

	result.FinishedAt = time.Now()
	logger.Info("🏁 Workflow run finished.", "conclusion", result.Conclusion(), "duration", result.FinishedAt.Sub(result.StartedAt).Round(time.Millisecond))
	return result
}
