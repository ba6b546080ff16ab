package steps

import (
	"context"

	"github.com/vk/flowgrid/internal/ctxlog"
	"github.com/vk/flowgrid/internal/fileset"
)

// LintInput configures the lint step.
type LintInput struct {
	// Files is the glob selecting the tracked files to lint, e.g.
	// "hahomematic/**/*.py".
	Files string `flow:"files"`
	// Command is the linter binary, resolved against the job PATH so a
	// venv-installed linter wins. Defaults to pylint.
	Command string `flow:"command,optional"`
	// Args are extra flags passed before the file list.
	Args []string `flow:"args,optional"`
}

// runLint computes the file set and invokes the linter over exactly those
// paths. The linter's exit status is the step's result; configuration
// discovery is left entirely to the linter. An empty file set still invokes
// the linter, with no file arguments, and whatever it does then is its
// business.
func runLint(ctx context.Context, job *JobContext, input any) error {
	in := input.(*LintInput)
	logger := ctxlog.FromContext(ctx)

	command := in.Command
	if command == "" {
		command = "pylint"
	}

	files, err := fileset.List(ctx, job.Workspace, in.Files)
	if err != nil {
		return failf(FailureInfra, "lint: failed to compute file set: %v", err)
	}
	if len(files) == 0 {
		logger.Warn("Lint file set is empty, invoking linter with no file arguments.", "pattern", in.Files)
	}
	logger.Debug("Lint file set computed.", "pattern", in.Files, "count", len(files))

	linter, err := job.LookPath(command)
	if err != nil {
		return failf(FailureInfra, "lint: %v", err)
	}

	argv := make([]string, 0, len(in.Args)+len(files))
	argv = append(argv, in.Args...)
	argv = append(argv, files...)

	if out, err := runCommand(ctx, job, linter, argv...); err != nil {
		return failf(FailureLint, "%s reported problems: %v\n%s", command, err, outputTail(out))
	}
	return nil
}
