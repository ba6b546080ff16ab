package steps

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFailureClass(t *testing.T) {
	for _, name := range []string{"infra", "deps", "lint"} {
		class, err := ParseFailureClass(name)
		require.NoError(t, err)
		assert.Equal(t, FailureClass(name), class)
	}

	_, err := ParseFailureClass("flaky")
	assert.ErrorContains(t, err, `unknown failure class "flaky"`)
}

func TestClassify(t *testing.T) {
	t.Run("extracts class from wrapped errors", func(t *testing.T) {
		err := fmt.Errorf("step pylint: %w", failf(FailureLint, "pylint reported problems"))
		assert.Equal(t, FailureLint, Classify(err))
	})

	t.Run("unclassified errors count as infra", func(t *testing.T) {
		assert.Equal(t, FailureInfra, Classify(errors.New("disk full")))
	})
}

func TestError_Unwrap(t *testing.T) {
	inner := errors.New("exit status 2")
	err := &Error{Class: FailureDeps, Err: inner}
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, "exit status 2", err.Error())
}
