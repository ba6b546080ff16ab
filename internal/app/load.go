package app

import (
	"context"
	"fmt"

	"github.com/vk/flowgrid/internal/config"
	"github.com/vk/flowgrid/internal/hcl"
	"github.com/vk/flowgrid/internal/yamlcfg"
)

// defaultLoaders covers both supported workflow formats.
func defaultLoaders() []config.Loader {
	return []config.Loader{hcl.NewLoader(), yamlcfg.NewLoader()}
}

// loadModel runs every loader over the workflow path and merges the results
// into one model. The merged model is re-validated so a workflow name
// defined in one format cannot collide with one defined in another.
func loadModel(ctx context.Context, path string, loaders []config.Loader) (*config.Model, config.Converter, error) {
	if len(loaders) == 0 {
		loaders = defaultLoaders()
	}

	merged := &config.Model{}
	var converter config.Converter
	for _, loader := range loaders {
		model, conv, err := loader.Load(ctx, path)
		if err != nil {
			return nil, nil, err
		}
		merged.Workflows = append(merged.Workflows, model.Workflows...)
		if converter == nil {
			converter = conv
		}
	}

	if err := config.Validate(merged); err != nil {
		return nil, nil, fmt.Errorf("merged workflow model is invalid: %w", err)
	}
	return merged, converter, nil
}
