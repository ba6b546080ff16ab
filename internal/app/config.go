package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// WorkflowPath points at a workflow file or a directory searched
	// recursively for .hcl/.yml/.yaml workflow files.
	WorkflowPath string
	// Repo is the repository entries check out. Defaults to the current
	// directory.
	Repo string

	// EventType, Ref and Revision describe the event presented to the
	// loaded workflows. Ignored in daemon and list modes.
	EventType string
	Ref       string
	Revision  string

	LogFormat       string
	LogLevel        string
	HealthcheckPort int
	Workers         int

	// HistoryDir enables persistent run records when non-empty.
	HistoryDir string
	// ListRuns prints that many recent run records and exits.
	ListRuns int
	// Daemon keeps the process alive, firing schedule-triggered workflows.
	Daemon bool
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ListRuns > 0 {
		if cfg.HistoryDir == "" {
			return nil, errors.New("listing runs requires a history directory")
		}
		return &cfg, nil
	}
	if cfg.WorkflowPath == "" {
		return nil, errors.New("WorkflowPath is a required configuration field and cannot be empty")
	}
	if cfg.Daemon && cfg.EventType != "" {
		return nil, errors.New("daemon mode fires schedule events; do not combine it with an explicit event")
	}
	return &cfg, nil
}
