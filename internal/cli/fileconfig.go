package cli

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"

	"github.com/vk/flowgrid/internal/app"
)

// fileConfig is the TOML runner configuration. It carries the knobs that
// make sense to pin per checkout; event parameters stay flag-only because
// they change on every invocation.
type fileConfig struct {
	Repo            string `toml:"repo"`
	Workers         int    `toml:"workers" validate:"omitempty,min=1,max=256"`
	LogFormat       string `toml:"log_format" validate:"omitempty,oneof=text json"`
	LogLevel        string `toml:"log_level" validate:"omitempty,oneof=debug info warn error"`
	HealthcheckPort int    `toml:"healthcheck_port" validate:"omitempty,min=1,max=65535"`
	HistoryDir      string `toml:"history_dir"`
}

// applyFileConfig loads the TOML file and fills in every knob the user did
// not set explicitly on the command line.
func applyFileConfig(cfg *app.Config, path string, explicit map[string]bool) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(raw, &fc); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := validator.New().Struct(&fc); err != nil {
		return fmt.Errorf("invalid config file %s: %w", path, err)
	}

	if fc.Repo != "" && !explicit["repo"] {
		cfg.Repo = fc.Repo
	}
	if fc.Workers > 0 && !explicit["workers"] {
		cfg.Workers = fc.Workers
	}
	if fc.LogFormat != "" && !explicit["log-format"] {
		cfg.LogFormat = fc.LogFormat
	}
	if fc.LogLevel != "" && !explicit["log-level"] {
		cfg.LogLevel = fc.LogLevel
	}
	if fc.HealthcheckPort > 0 && !explicit["healthcheck-port"] {
		cfg.HealthcheckPort = fc.HealthcheckPort
	}
	if fc.HistoryDir != "" && !explicit["history-dir"] {
		cfg.HistoryDir = fc.HistoryDir
	}
	return nil
}
