package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/vk/flowgrid/internal/config"
	"github.com/vk/flowgrid/internal/ctxlog"
	"github.com/vk/flowgrid/internal/steps"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW      io.Writer
	logger    *slog.Logger
	registry  *steps.Registry
	model     *config.Model
	converter config.Converter
	config    *Config

	// lastConclusion feeds the healthcheck endpoint. Holds a string.
	lastConclusion atomic.Value
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger and step registry.
// Loading modes (ListRuns) skip workflow loading entirely.
func NewApp(outW io.Writer, cfg *Config, loaders ...config.Loader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	a := &App{
		outW:     outW,
		logger:   logger,
		registry: steps.Builtin(),
		config:   cfg,
	}
	logger.Debug("Built-in step handlers registered.", "count", a.registry.Kinds())

	if cfg.ListRuns > 0 {
		return a
	}

	model, converter, err := loadModel(ctx, cfg.WorkflowPath, loaders)
	if err != nil {
		// A failure to load workflow definitions is a fatal startup error.
		panic(fmt.Errorf("failed to load workflow definitions: %w", err))
	}
	if len(model.Workflows) == 0 {
		panic(fmt.Errorf("no workflow definitions found at %s", cfg.WorkflowPath))
	}
	a.model = model
	a.converter = converter
	logger.Debug("Workflow definitions loaded into unified model.", "workflows", len(model.Workflows))

	return a
}

// Model returns the loaded workflow model. This is primarily for testing.
func (a *App) Model() *config.Model {
	return a.model
}

// Registry returns the application's step registry. This is primarily for testing.
func (a *App) Registry() *steps.Registry {
	return a.registry
}
