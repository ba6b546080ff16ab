// Package yamlcfg implements the config.Loader interface for workflow
// definitions written in GitHub-Actions-flavored YAML. Files are translated
// into the same format-agnostic model the HCL loader produces; `with:`
// values become synthesized HCL expressions so `${{ matrix.* }}`
// interpolation works identically in both formats.
package yamlcfg

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vk/flowgrid/internal/config"
	"github.com/vk/flowgrid/internal/ctxlog"
	"github.com/vk/flowgrid/internal/fsutil"
	hclloader "github.com/vk/flowgrid/internal/hcl"
)

// Loader is the YAML implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new YAML workflow loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .yml/.yaml workflow file under the given paths and
// translates the result into the format-agnostic model.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, config.Converter, error) {
	logger := ctxlog.FromContext(ctx)

	model := &config.Model{}

	for _, root := range paths {
		filePaths, err := fsutil.FindFilesByExtension(root, ".yml", ".yaml")
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan workflow path %s: %w", root, err)
		}
		if len(filePaths) == 0 {
			logger.Debug("No YAML workflow files found in path.", "path", root)
			continue
		}
		logger.Debug("Found YAML workflow files to load.", "path", root, "files", filePaths)

		for _, filePath := range filePaths {
			raw, err := os.ReadFile(filePath)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to read %s: %w", filePath, err)
			}

			var file workflowFile
			if err := yaml.Unmarshal(raw, &file); err != nil {
				return nil, nil, fmt.Errorf("failed to parse %s: %w", filePath, err)
			}

			translated, err := translateFile(&file, filePath)
			if err != nil {
				return nil, nil, fmt.Errorf("in %s: %w", filePath, err)
			}
			model.Workflows = append(model.Workflows, translated)
			logger.Debug("Loaded workflow definition from file.", "file", filePath, "workflow", translated.Name)
		}
	}

	if err := config.Validate(model); err != nil {
		return nil, nil, err
	}

	logger.Debug("YAML loading complete.", "workflows", len(model.Workflows))
	return model, hclloader.NewConverter(), nil
}

// workflowName falls back to the file name when the definition carries no
// top-level name.
func workflowName(file *workflowFile, path string) string {
	if file.Name != "" {
		return file.Name
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
