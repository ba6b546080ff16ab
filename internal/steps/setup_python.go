package steps

import (
	"context"
	"os/exec"
	"path/filepath"

	"github.com/vk/flowgrid/internal/ctxlog"
)

// SetupPythonInput configures the setup_python step.
type SetupPythonInput struct {
	// Version selects the interpreter, e.g. "3.11" resolves python3.11.
	Version string `flow:"version"`
	// Venv controls whether a virtual environment is created in the
	// workspace. Defaults to true so installs stay isolated per entry.
	Venv *bool `flow:"venv,optional"`
}

// runSetupPython resolves the requested interpreter on PATH and provisions
// an isolated environment for the entry. An unavailable interpreter version
// is an infrastructure failure.
func runSetupPython(ctx context.Context, job *JobContext, input any) error {
	in := input.(*SetupPythonInput)
	logger := ctxlog.FromContext(ctx)

	binary := "python" + in.Version
	interpreter, err := exec.LookPath(binary)
	if err != nil {
		return failf(FailureInfra, "setup_python: interpreter %s not found on PATH", binary)
	}
	job.Interpreter = interpreter
	logger.Debug("Interpreter resolved.", "version", in.Version, "path", interpreter)

	if in.Venv != nil && !*in.Venv {
		return nil
	}

	venvDir := filepath.Join(job.Workspace, ".venv")
	if out, err := runCommand(ctx, job, interpreter, "-m", "venv", venvDir); err != nil {
		return failf(FailureInfra, "setup_python: venv creation failed: %v\n%s", err, outputTail(out))
	}

	job.Interpreter = filepath.Join(venvDir, "bin", "python")
	job.Setenv("VIRTUAL_ENV", venvDir)
	job.PrependPath(filepath.Join(venvDir, "bin"))
	logger.Debug("Virtual environment ready.", "venv", venvDir)
	return nil
}
