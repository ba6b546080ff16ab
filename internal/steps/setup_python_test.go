package steps

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSetupPython(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves versioned interpreter", func(t *testing.T) {
		binDir := t.TempDir()
		fake := filepath.Join(binDir, "python3.99")
		require.NoError(t, os.WriteFile(fake, []byte("#!/bin/sh\nexit 0\n"), 0o755))
		t.Setenv("PATH", binDir)

		job := NewJobContext(t.TempDir(), "", "")
		venv := false
		err := runSetupPython(ctx, job, &SetupPythonInput{Version: "3.99", Venv: &venv})
		require.NoError(t, err)
		assert.Equal(t, fake, job.Interpreter)
	})

	t.Run("missing interpreter is an infra failure", func(t *testing.T) {
		t.Setenv("PATH", t.TempDir())

		job := NewJobContext(t.TempDir(), "", "")
		err := runSetupPython(ctx, job, &SetupPythonInput{Version: "3.99"})
		require.Error(t, err)
		assert.Equal(t, FailureInfra, Classify(err))
		assert.ErrorContains(t, err, "python3.99 not found")
	})
}
