package integrationtests

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/flowgrid/internal/testutil"
)

// TestMixedFormats_BothLoadedIntoOneModel verifies that HCL and YAML
// workflow definitions in the same directory run side by side.
func TestMixedFormats_BothLoadedIntoOneModel(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	files := map[string]string{
		"native.hcl": `
workflow "native" {
  on {
    workflow_dispatch {}
  }

  job "lint" {
    step "run" "noop" {
      arguments {
        command = "true"
      }
    }
  }
}
`,
		"imported.yml": `
name: imported
on: workflow_dispatch
jobs:
  lint:
    steps:
      - run: "true"
`,
	}

	// --- Act ---
	result := testutil.RunWorkflowTest(t, files, nil)

	// --- Assert ---
	require.NoError(t, result.Err)
	assert.Contains(t, result.LogOutput, "workflow native: success")
	assert.Contains(t, result.LogOutput, "workflow imported: success")
}

// TestMixedFormats_NameCollisionAcrossFormats verifies that the merged
// model rejects the same workflow name defined in two files.
func TestMixedFormats_NameCollisionAcrossFormats(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"one.hcl": `
workflow "lint" {
  on {
    workflow_dispatch {}
  }

  job "lint" {
    step "run" "noop" {
      arguments {
        command = "true"
      }
    }
  }
}
`,
		"two.yml": `
name: lint
on: workflow_dispatch
jobs:
  lint:
    steps:
      - run: "true"
`,
	}

	result := testutil.RunWorkflowTest(t, files, nil)
	require.Error(t, result.Err)
	assert.ErrorContains(t, result.Err, "duplicate workflow name")
}

// TestMixedFormats_YAMLMatrixInterpolation verifies GitHub-style
// interpolation syntax in a YAML definition.
func TestMixedFormats_YAMLMatrixInterpolation(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"grid.yml": `
name: grid
on: workflow_dispatch
jobs:
  lint:
    strategy:
      matrix:
        python: ["3.11", "3.12"]
    steps:
      - name: announce
        run: echo version=${{ matrix.python }}
`,
	}

	result := testutil.RunWorkflowTest(t, files, nil)
	require.NoError(t, result.Err)
	assert.Contains(t, result.LogOutput, "version=3.11")
	assert.Contains(t, result.LogOutput, "version=3.12")
}
