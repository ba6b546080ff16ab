package hcl

import (
	"context"
	"testing"

	hcllib "github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

type decodeTarget struct {
	Command string   `flow:"command"`
	Class   string   `flow:"class,optional"`
	Args    []string `flow:"args,optional"`
}

func parseExpr(t *testing.T, src string) hcllib.Expression {
	t.Helper()
	expr, diags := hclsyntax.ParseExpression([]byte(src), "test.hcl", hcllib.InitialPos)
	require.False(t, diags.HasErrors(), diags.Error())
	return expr
}

func matrixEvalContext() *hcllib.EvalContext {
	return &hcllib.EvalContext{
		Variables: map[string]cty.Value{
			"matrix": cty.ObjectVal(map[string]cty.Value{
				"python": cty.StringVal("3.12"),
			}),
		},
	}
}

func TestConverter_DecodeArgs(t *testing.T) {
	ctx := context.Background()
	converter := NewConverter()

	t.Run("populates fields from expressions", func(t *testing.T) {
		var target decodeTarget
		args := map[string]hcllib.Expression{
			"command": parseExpr(t, `"pylint --version"`),
			"args":    parseExpr(t, `["--jobs", "2"]`),
		}

		err := converter.DecodeArgs(ctx, &target, args, matrixEvalContext())
		require.NoError(t, err)
		assert.Equal(t, "pylint --version", target.Command)
		assert.Equal(t, []string{"--jobs", "2"}, target.Args)
		assert.Empty(t, target.Class)
	})

	t.Run("evaluates matrix variables", func(t *testing.T) {
		var target struct {
			Version string `flow:"version"`
		}
		args := map[string]hcllib.Expression{
			"version": parseExpr(t, `matrix.python`),
		}

		err := converter.DecodeArgs(ctx, &target, args, matrixEvalContext())
		require.NoError(t, err)
		assert.Equal(t, "3.12", target.Version)
	})

	t.Run("interpolates templates", func(t *testing.T) {
		var target decodeTarget
		args := map[string]hcllib.Expression{
			"command": parseExpr(t, `"pip install python==${matrix.python}"`),
		}

		err := converter.DecodeArgs(ctx, &target, args, matrixEvalContext())
		require.NoError(t, err)
		assert.Equal(t, "pip install python==3.12", target.Command)
	})

	t.Run("rejects missing required argument", func(t *testing.T) {
		var target decodeTarget

		err := converter.DecodeArgs(ctx, &target, nil, matrixEvalContext())
		assert.ErrorContains(t, err, `missing required argument "command"`)
	})

	t.Run("rejects unknown arguments", func(t *testing.T) {
		var target decodeTarget
		args := map[string]hcllib.Expression{
			"command": parseExpr(t, `"true"`),
			"comand":  parseExpr(t, `"typo"`),
		}

		err := converter.DecodeArgs(ctx, &target, args, matrixEvalContext())
		assert.ErrorContains(t, err, "unknown arguments: comand")
	})

	t.Run("rejects undefined variables", func(t *testing.T) {
		var target decodeTarget
		args := map[string]hcllib.Expression{
			"command": parseExpr(t, `matrix.nonexistent`),
		}

		err := converter.DecodeArgs(ctx, &target, args, matrixEvalContext())
		assert.ErrorContains(t, err, `failed to evaluate argument "command"`)
	})
}
