package steps

import (
	"context"

	"github.com/vk/flowgrid/internal/ctxlog"
)

// RunInput configures the run step: a shell command executed in the
// workspace under the job environment.
type RunInput struct {
	Command string `flow:"command"`
	// Class overrides the failure class of a nonzero exit. The default is
	// deps, since installing dependencies is what run steps exist for in a
	// lint pipeline.
	Class string `flow:"class,optional"`
}

// runShell executes the command via the shell so pipelines and globs work
// the way they do in hosted CI step definitions.
func runShell(ctx context.Context, job *JobContext, input any) error {
	in := input.(*RunInput)
	logger := ctxlog.FromContext(ctx)

	class := FailureDeps
	if in.Class != "" {
		parsed, err := ParseFailureClass(in.Class)
		if err != nil {
			return failf(FailureInfra, "run: %v", err)
		}
		class = parsed
	}

	logger.Debug("Running shell command.", "command", in.Command)
	if out, err := runCommand(ctx, job, "sh", "-c", in.Command); err != nil {
		return failf(class, "command %q failed: %v\n%s", in.Command, err, outputTail(out))
	}
	return nil
}
