package steps

import (
	"context"
	"os/exec"
	"strings"

	"github.com/vk/flowgrid/internal/ctxlog"
)

// commandOutputTailLines bounds how much captured output gets folded into a
// failure message; full output is always available at debug level.
const commandOutputTailLines = 20

// runCommand executes argv in the job workspace under the job environment
// and returns its combined output.
func runCommand(ctx context.Context, job *JobContext, name string, args ...string) ([]byte, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Running command.", "name", name, "args", args, "dir", job.Workspace)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = job.Workspace
	cmd.Env = job.Environ()

	out, err := cmd.CombinedOutput()
	if len(out) > 0 {
		logger.Debug("Command output.", "name", name, "output", string(out))
	}
	return out, err
}

// outputTail returns the last few lines of captured command output, for
// inclusion in failure messages.
func outputTail(out []byte) string {
	text := strings.TrimSpace(string(out))
	if text == "" {
		return "(no output)"
	}
	lines := strings.Split(text, "\n")
	if len(lines) > commandOutputTailLines {
		lines = lines[len(lines)-commandOutputTailLines:]
	}
	return strings.Join(lines, "\n")
}
