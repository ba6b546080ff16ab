package executor

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/flowgrid/internal/config"
	"github.com/vk/flowgrid/internal/ctxlog"
	"github.com/vk/flowgrid/internal/event"
	"github.com/vk/flowgrid/internal/matrix"
	"github.com/vk/flowgrid/internal/steps"
)

// runEntry executes one matrix entry: a fresh workspace, then the job's
// steps strictly in order, stopping at the first failure.
func (e *Executor) runEntry(ctx context.Context, job *config.Job, entry matrix.Entry, ev event.Event) EntryResult {
	id := entry.ID()
	logger := ctxlog.FromContext(ctx).With("entry", id)
	ctx = ctxlog.WithLogger(ctx, logger)

	logger.Info("▶️ Starting matrix entry.")
	start := time.Now()

	result := EntryResult{ID: id, Conclusion: ConclusionSuccess}

	workspace, err := os.MkdirTemp("", "flowgrid-*")
	if err != nil {
		return entryFailure(logger, result, start, steps.FailureInfra, fmt.Errorf("failed to create workspace: %w", err))
	}
	defer func() {
		if err := os.RemoveAll(workspace); err != nil {
			logger.Warn("Failed to clean up workspace.", "workspace", workspace, "error", err)
		}
	}()

	jobCtx := steps.NewJobContext(workspace, e.repo, ev.Revision)
	evalCtx := buildEvalContext(entry, workspace)

	for _, step := range job.Steps {
		if err := e.runStep(ctx, jobCtx, step, evalCtx); err != nil {
			return entryFailure(logger, result, start, steps.Classify(err), err)
		}
	}

	result.Duration = time.Since(start)
	logger.Info("✅ Matrix entry passed.", "duration", result.Duration.Round(time.Millisecond))
	return result
}

// runStep resolves the handler for one step, decodes its arguments against
// the entry's evaluation context, and invokes it.
func (e *Executor) runStep(ctx context.Context, jobCtx *steps.JobContext, step *config.Step, evalCtx *hcl.EvalContext) error {
	logger := ctxlog.FromContext(ctx).With("step", step.Name, "kind", step.Kind)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("Starting step.")

	handler, ok := e.registry.Lookup(step.Kind)
	if !ok {
		return fmt.Errorf("step %q: unknown step kind %q", step.Name, step.Kind)
	}

	var input any
	if handler.NewInput != nil {
		input = handler.NewInput()
		if err := e.converter.DecodeArgs(ctx, input, step.Arguments, evalCtx); err != nil {
			return fmt.Errorf("step %q: %w", step.Name, err)
		}
	}

	if err := handler.Fn(ctx, jobCtx, input); err != nil {
		return fmt.Errorf("step %q: %w", step.Name, err)
	}
	logger.Debug("Step finished.")
	return nil
}

// buildEvalContext exposes the entry's matrix values (and its workspace) to
// argument expressions like matrix.python.
func buildEvalContext(entry matrix.Entry, workspace string) *hcl.EvalContext {
	values := make(map[string]cty.Value, len(entry.Values))
	for k, v := range entry.Values {
		values[k] = cty.StringVal(v)
	}
	matrixVal := cty.EmptyObjectVal
	if len(values) > 0 {
		matrixVal = cty.ObjectVal(values)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"matrix":    matrixVal,
			"workspace": cty.StringVal(workspace),
		},
	}
}

// entryFailure finalizes a failed entry result.
func entryFailure(logger *slog.Logger, result EntryResult, start time.Time, class steps.FailureClass, err error) EntryResult {
	result.Conclusion = ConclusionFailure
	result.Class = class
	result.Err = err
	result.Duration = time.Since(start)
	logger.Error("Matrix entry failed.", "class", string(class), "error", err)
	return result
}
