package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// ProjectPath points at a descriptor file or a directory of them.
	ProjectPath string

	// Output selects the graph emission format: "json" or "yaml".
	Output string
	// Execute runs the toolchain over the graph instead of emitting it.
	Execute bool
	// Workers is the executor's concurrency when Execute is set.
	Workers int

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ProjectPath == "" {
		return nil, errors.New("ProjectPath is a required configuration field and cannot be empty")
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &cfg, nil
}
