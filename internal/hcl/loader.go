package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/flowgrid/internal/config"
	"github.com/vk/flowgrid/internal/ctxlog"
	"github.com/vk/flowgrid/internal/fsutil"
	"github.com/vk/flowgrid/internal/schema"
)

// Loader is the HCL implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL workflow loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl workflow file under the given paths and translates
// the result into the format-agnostic model.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, config.Converter, error) {
	logger := ctxlog.FromContext(ctx)

	model := &config.Model{}
	parser := hclparse.NewParser()

	for _, root := range paths {
		filePaths, err := fsutil.FindFilesByExtension(root, ".hcl")
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan workflow path %s: %w", root, err)
		}
		if len(filePaths) == 0 {
			logger.Debug("No .hcl workflow files found in path.", "path", root)
			continue
		}
		logger.Debug("Found HCL workflow files to load.", "path", root, "files", filePaths)

		for _, filePath := range filePaths {
			hclFile, diags := parser.ParseHCLFile(filePath)
			if diags.HasErrors() {
				return nil, nil, fmt.Errorf("failed to parse %s: %w", filePath, diags)
			}

			var file schema.File
			if diags := gohcl.DecodeBody(hclFile.Body, nil, &file); diags.HasErrors() {
				return nil, nil, fmt.Errorf("failed to decode %s: %w", filePath, diags)
			}

			for _, wf := range file.Workflows {
				translated, err := l.translateWorkflow(wf, filePath)
				if err != nil {
					return nil, nil, fmt.Errorf("in %s: %w", filePath, err)
				}
				model.Workflows = append(model.Workflows, translated)
			}
			logger.Debug("Loaded workflow definitions from file.", "file", filePath, "workflows", len(file.Workflows))
		}
	}

	if err := config.Validate(model); err != nil {
		return nil, nil, err
	}

	logger.Debug("HCL loading complete.", "workflows", len(model.Workflows))
	return model, NewConverter(), nil
}
