// Package steps provides the registry of built-in step kinds and their Go
// handlers. The registry maps the kind labels used in workflow files
// (checkout, setup_python, run, lint) to the compiled functions that
// implement them, mirroring how loaders map config onto code elsewhere in
// the codebase.
package steps

import (
	"context"
	"fmt"
	"log/slog"
)

// Handler holds the compiled Go parts of a step kind.
type Handler struct {
	// NewInput returns a fresh pointer to the kind's input struct, or nil
	// if the kind takes no arguments.
	NewInput func() any
	// Fn executes the step against the entry's job context.
	Fn func(ctx context.Context, job *JobContext, input any) error
}

// Registry holds the step handlers for a single application instance.
type Registry struct {
	handlers map[string]*Handler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]*Handler)}
}

// Register adds a handler for a step kind. Registering the same kind twice
// is a programmer error.
func (r *Registry) Register(kind string, h *Handler) {
	if _, exists := r.handlers[kind]; exists {
		panic(fmt.Sprintf("step handler for kind '%s' already registered", kind))
	}
	slog.Debug("Registering step handler.", "kind", kind)
	r.handlers[kind] = h
}

// Lookup returns the handler for a kind, if registered.
func (r *Registry) Lookup(kind string) (*Handler, bool) {
	h, ok := r.handlers[kind]
	return h, ok
}

// Kinds returns the number of registered step kinds.
func (r *Registry) Kinds() int {
	return len(r.handlers)
}

// Builtin returns a registry populated with the built-in step kinds.
func Builtin() *Registry {
	r := NewRegistry()
	r.Register("checkout", &Handler{
		NewInput: func() any { return &CheckoutInput{} },
		Fn:       runCheckout,
	})
	r.Register("setup_python", &Handler{
		NewInput: func() any { return &SetupPythonInput{} },
		Fn:       runSetupPython,
	})
	r.Register("run", &Handler{
		NewInput: func() any { return &RunInput{} },
		Fn:       runShell,
	})
	r.Register("lint", &Handler{
		NewInput: func() any { return &LintInput{} },
		Fn:       runLint,
	})
	return r
}
