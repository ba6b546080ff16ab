package integrationtests

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/flowgrid/internal/app"
	"github.com/vk/flowgrid/internal/testutil"
)

const lintPipelineHCL = `
workflow "python-lint" {
  on {
    workflow_dispatch {}
  }

  job "lint" {
    step "checkout" "source" {}

    step "lint" "pylint" {
      arguments {
        files = "pkg/**/*.py"
      }
    }
  }
}
`

// gitFixture creates a local repository holding a small python package.
func gitFixture(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available on PATH")
	}

	dir := t.TempDir()
	run := func(args ...string) {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		cmd.Env = append(os.Environ(),
			"GIT_AUTHOR_NAME=test", "GIT_AUTHOR_EMAIL=test@example.com",
			"GIT_COMMITTER_NAME=test", "GIT_COMMITTER_EMAIL=test@example.com",
		)
		out, err := cmd.CombinedOutput()
		require.NoError(t, err, "git %v: %s", args, out)
	}

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "pkg", "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pkg", "main.py"), []byte("print()\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pkg", "sub", "util.py"), []byte("print()\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "untracked.py"), []byte("print()\n"), 0o644))

	run("init", "--quiet")
	run("add", "pkg")
	run("commit", "--quiet", "-m", "initial")
	return dir
}

// installFakeLinter puts a pylint stand-in on the process PATH that records
// its argv and exits with the given status.
func installFakeLinter(t *testing.T, exitCode string) string {
	t.Helper()
	binDir := t.TempDir()
	argvFile := filepath.Join(binDir, "argv.txt")
	script := "#!/bin/sh\nprintf '%s\\n' \"$@\" > " + argvFile + "\nexit " + exitCode + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(binDir, "pylint"), []byte(script), 0o755))
	t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))
	return argvFile
}

// TestLintPipeline_TrackedFilesOnly runs the checkout-then-lint pipeline
// against a real repository and verifies the linter sees exactly the
// tracked files the glob selects.
func TestLintPipeline_TrackedFilesOnly(t *testing.T) {
	// --- Arrange ---
	repo := gitFixture(t)
	argvFile := installFakeLinter(t, "0")
	files := map[string]string{"python-lint.hcl": lintPipelineHCL}

	// --- Act ---
	result := testutil.RunWorkflowTest(t, files, func(cfg *app.Config) {
		cfg.Repo = repo
	})

	// --- Assert ---
	require.NoError(t, result.Err)
	assert.Contains(t, result.LogOutput, "workflow python-lint: success")

	argv, err := os.ReadFile(argvFile)
	require.NoError(t, err)
	assert.Contains(t, string(argv), "pkg/main.py")
	assert.Contains(t, string(argv), "pkg/sub/util.py")
	assert.NotContains(t, string(argv), "untracked.py")
}

// TestLintPipeline_FindingsFailTheRun verifies that linter findings produce
// a lint-classed failure.
func TestLintPipeline_FindingsFailTheRun(t *testing.T) {
	// --- Arrange ---
	repo := gitFixture(t)
	installFakeLinter(t, "4")
	files := map[string]string{"python-lint.hcl": lintPipelineHCL}

	// --- Act ---
	result := testutil.RunWorkflowTest(t, files, func(cfg *app.Config) {
		cfg.Repo = repo
	})

	// --- Assert ---
	require.Error(t, result.Err)
	assert.ErrorContains(t, result.Err, "1 matrix entry failed")
	assert.Contains(t, result.LogOutput, "failure (lint)")
	assert.Contains(t, result.LogOutput, "pylint reported problems")
}
