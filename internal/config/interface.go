package config

import (
	"context"

	"github.com/hashicorp/hcl/v2"
)

// Loader is the interface for a format-specific workflow loader.
type Loader interface {
	// Load reads workflow definitions from the given paths (files or
	// directories), translates them into the format-agnostic model, and
	// returns a matching Converter.
	Load(ctx context.Context, paths ...string) (*Model, Converter, error)
}

// Converter is the bridge between a step's raw argument expressions and the
// Go input structs used by step handlers.
type Converter interface {
	// DecodeArgs evaluates the argument expressions against evalCtx and
	// populates the target struct, honoring `flow` field tags.
	DecodeArgs(
		ctx context.Context,
		target any,
		args map[string]hcl.Expression,
		evalCtx *hcl.EvalContext,
	) error
}
