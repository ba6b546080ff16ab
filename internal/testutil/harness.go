// Package testutil provides the shared harness for integration tests: it
// writes workflow files into a temporary directory, runs the app end to end
// against them, and captures log output for assertions.
package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/flowgrid/internal/app"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	// LogOutput captures everything the app wrote: structured logs and the
	// run summary alike.
	LogOutput string
	Err       error
	App       *app.App
}

// RunWorkflowTest writes the given workflow files into a temp directory and
// runs the app against them with a workflow_dispatch event. mutate, when
// non-nil, adjusts the app config before the run.
func RunWorkflowTest(t *testing.T, files map[string]string, mutate func(*app.Config)) *HarnessResult {
	t.Helper()
	return RunWorkflowTestWithContext(context.Background(), t, files, mutate)
}

// RunWorkflowTestWithContext is RunWorkflowTest with a caller-provided
// context.
func RunWorkflowTestWithContext(ctx context.Context, t *testing.T, files map[string]string, mutate func(*app.Config)) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()
	for name, content := range files {
		filePath := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0o755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0o644))
	}

	cfg := app.Config{
		WorkflowPath: tmpDir,
		Repo:         tmpDir,
		EventType:    "workflow_dispatch",
		Workers:      4,
		LogFormat:    "text",
		LogLevel:     "debug",
	}
	if mutate != nil {
		mutate(&cfg)
	}
	appConfig, err := app.NewConfig(cfg)
	require.NoError(t, err)

	logBuffer := &SafeBuffer{}
	result := &HarnessResult{}

	// The app panics on invalid workflow definitions; surface that as an
	// error so tests can assert on it.
	func() {
		defer func() {
			if r := recover(); r != nil {
				result.Err = fmt.Errorf("startup panicked: %v", r)
			}
		}()
		result.App = app.NewApp(logBuffer, appConfig)
		result.Err = result.App.Run(ctx)
	}()

	result.LogOutput = logBuffer.String()
	if os.Getenv("FLOWGRID_TEST_LOGS") == "true" {
		t.Logf("--- HARNESS LOG OUTPUT ---\n%s", result.LogOutput)
	}
	return result
}
