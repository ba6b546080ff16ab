package steps

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLinter installs a shell script on the job PATH that records its argv
// and exits with the given status.
func fakeLinter(t *testing.T, job *JobContext, name string, exitCode int) string {
	t.Helper()
	binDir := t.TempDir()
	argvFile := filepath.Join(binDir, "argv.txt")
	script := "#!/bin/sh\nprintf '%s\\n' \"$@\" > " + argvFile + "\nexit " + itoa(exitCode) + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(binDir, name), []byte(script), 0o755))
	job.PrependPath(binDir)
	return argvFile
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	return string(rune('0' + n))
}

func writeSource(t *testing.T, workspace, rel string) {
	t.Helper()
	path := filepath.Join(workspace, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("print()\n"), 0o644))
}

func TestRunLint(t *testing.T) {
	ctx := context.Background()

	t.Run("invokes linter over the matched files", func(t *testing.T) {
		workspace := t.TempDir()
		writeSource(t, workspace, "pkg/module.py")
		writeSource(t, workspace, "pkg/sub/other.py")
		writeSource(t, workspace, "README.md")

		job := NewJobContext(workspace, "", "")
		argvFile := fakeLinter(t, job, "pylint", 0)

		err := runLint(ctx, job, &LintInput{Files: "pkg/**/*.py"})
		require.NoError(t, err)

		data, err := os.ReadFile(argvFile)
		require.NoError(t, err)
		argv := strings.Fields(string(data))
		assert.Equal(t, []string{"pkg/module.py", "pkg/sub/other.py"}, argv)
	})

	t.Run("extra args come before the file list", func(t *testing.T) {
		workspace := t.TempDir()
		writeSource(t, workspace, "a.py")

		job := NewJobContext(workspace, "", "")
		argvFile := fakeLinter(t, job, "pylint", 0)

		err := runLint(ctx, job, &LintInput{Files: "*.py", Args: []string{"--jobs=2"}})
		require.NoError(t, err)

		data, err := os.ReadFile(argvFile)
		require.NoError(t, err)
		assert.Equal(t, []string{"--jobs=2", "a.py"}, strings.Fields(string(data)))
	})

	t.Run("nonzero exit is a lint failure", func(t *testing.T) {
		workspace := t.TempDir()
		writeSource(t, workspace, "a.py")

		job := NewJobContext(workspace, "", "")
		fakeLinter(t, job, "pylint", 2)

		err := runLint(ctx, job, &LintInput{Files: "*.py"})
		require.Error(t, err)
		assert.Equal(t, FailureLint, Classify(err))
		assert.ErrorContains(t, err, "pylint reported problems")
	})

	t.Run("empty file set still invokes the linter", func(t *testing.T) {
		workspace := t.TempDir()
		job := NewJobContext(workspace, "", "")
		argvFile := fakeLinter(t, job, "pylint", 0)

		err := runLint(ctx, job, &LintInput{Files: "**/*.py"})
		require.NoError(t, err)

		_, err = os.Stat(argvFile)
		assert.NoError(t, err, "linter was not invoked")
	})

	t.Run("missing linter is an infra failure", func(t *testing.T) {
		workspace := t.TempDir()
		job := NewJobContext(workspace, "", "")
		job.Setenv("PATH", t.TempDir())

		err := runLint(ctx, job, &LintInput{Files: "*.py"})
		require.Error(t, err)
		assert.Equal(t, FailureInfra, Classify(err))
	})

	t.Run("alternate linter command", func(t *testing.T) {
		workspace := t.TempDir()
		writeSource(t, workspace, "a.py")

		job := NewJobContext(workspace, "", "")
		fakeLinter(t, job, "ruff", 0)

		err := runLint(ctx, job, &LintInput{Files: "*.py", Command: "ruff"})
		assert.NoError(t, err)
	})
}
