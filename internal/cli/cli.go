package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/plugforge/internal/app"
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
	flagSet := flag.NewFlagSet("plugforge", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
PlugForge - A declarative build composer for audio plugin projects.

Usage:
  plugforge [options] [PROJECT_PATH]

Arguments:
  PROJECT_PATH
    Path to a single .hcl descriptor or a directory containing .hcl descriptors.

Options:
`)
		flagSet.PrintDefaults()
	}

	projectFlag := flagSet.String("project", "", "Path to the project descriptor file or directory.")
	pFlag := flagSet.String("p", "", "Path to the project descriptor file or directory (shorthand).")
	outputFlag := flagSet.String("output", "json", "Build graph output format. Options: 'json' or 'yaml'.")
	executeFlag := flagSet.Bool("execute", false, "Run the toolchain over the graph instead of emitting it.")
	workersFlag := flagSet.Int("workers", 4, "Number of concurrent workers for the executor.")
	logFormatFlag := flagSet.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *projectFlag != "" {
		path = *projectFlag
	} else if *pFlag != "" {
		path = *pFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Project path determined.", "path", path)

	if path == "" {
		slog.Debug("No project path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	outputFormat := strings.ToLower(*outputFlag)
	if outputFormat != "json" && outputFormat != "yaml" {
		return nil, false, &ExitError{Code: 2, Message: "invalid output: must be 'json' or 'yaml'"}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		ProjectPath: path,
		Output:      outputFormat,
		Execute:     *executeFlag,
		Workers:     *workersFlag,
		LogFormat:   logFormat,
		LogLevel:    logLevel,
	})

	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
