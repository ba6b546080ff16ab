package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/flowgrid/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("flowgrid", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
flowgrid - a local CI workflow runner.

Usage:
  flowgrid [options] [WORKFLOW_PATH]

Arguments:
  WORKFLOW_PATH
    Path to a workflow file (.hcl, .yml, .yaml) or a directory containing
    workflow files.

Options:
`)
		flagSet.PrintDefaults()
	}

	workflowFlag := flagSet.String("workflow", "", "Path to the workflow file or directory.")
	wFlag := flagSet.String("w", "", "Path to the workflow file or directory (shorthand).")
	repoFlag := flagSet.String("repo", ".", "Repository to check out into each job workspace.")
	eventFlag := flagSet.String("event", "workflow_dispatch", "Event to present to the workflows. Options: 'push', 'pull_request', 'workflow_dispatch'.")
	refFlag := flagSet.String("ref", "", "Git ref the event happened on, e.g. 'refs/heads/master'.")
	revisionFlag := flagSet.String("revision", "", "Commit-ish to check out. Empty means HEAD.")
	workersFlag := flagSet.Int("workers", 4, "Number of matrix entries to run concurrently.")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the HTTP health check server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	historyDirFlag := flagSet.String("history-dir", "", "Directory for persistent run records. Empty disables history.")
	listRunsFlag := flagSet.Int("list-runs", 0, "Print this many recent run records and exit.")
	daemonFlag := flagSet.Bool("daemon", false, "Stay alive and fire schedule-triggered workflows.")
	configFlag := flagSet.String("config", "", "Optional TOML config file. Explicit flags override its values.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *workflowFlag != "" {
		path = *workflowFlag
	} else if *wFlag != "" {
		path = *wFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Workflow path determined.", "path", path)

	if path == "" && *listRunsFlag == 0 {
		slog.Debug("No workflow path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	cfg := app.Config{
		WorkflowPath:    path,
		Repo:            *repoFlag,
		EventType:       *eventFlag,
		Ref:             *refFlag,
		Revision:        *revisionFlag,
		Workers:         *workersFlag,
		HealthcheckPort: *healthPortFlag,
		LogFormat:       strings.ToLower(*logFormatFlag),
		LogLevel:        strings.ToLower(*logLevelFlag),
		HistoryDir:      *historyDirFlag,
		ListRuns:        *listRunsFlag,
		Daemon:          *daemonFlag,
	}

	// Daemon and list modes take no explicit event.
	if cfg.Daemon || cfg.ListRuns > 0 {
		cfg.EventType = ""
	}

	if *configFlag != "" {
		explicit := explicitFlags(flagSet)
		if err := applyFileConfig(&cfg, *configFlag, explicit); err != nil {
			return nil, false, &ExitError{Code: 2, Message: err.Error()}
		}
	}

	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

// explicitFlags returns the set of flag names the user actually passed, so
// file config never overrides an explicit flag.
func explicitFlags(flagSet *flag.FlagSet) map[string]bool {
	explicit := make(map[string]bool)
	flagSet.Visit(func(f *flag.Flag) {
		explicit[f.Name] = true
	})
	return explicit
}
