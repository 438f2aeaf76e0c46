package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/plugforge/internal/config"
	"github.com/vk/plugforge/internal/ctxlog"
	"github.com/vk/plugforge/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	model    *config.Model
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and registry.
func NewApp(outW, logW io.Writer, cfg *Config, loader config.Loader, formats ...registry.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	// Load the descriptor files into the format-agnostic model first.
	model, err := loader.Load(ctx, cfg.ProjectPath)
	if err != nil {
		// A failure to load the build description is a fatal startup error.
		panic(fmt.Errorf("failed to load build description: %w", err))
	}
	logger.Debug("Build description loaded into unified model.",
		"modules", len(model.Modules), "targets", len(model.Targets))

	// Create and populate the registry with format handlers.
	reg := registry.New()
	if len(formats) == 0 {
		formats = coreFormats
	}
	for _, mod := range formats {
		mod.Register(reg)
	}
	logger.Debug("All output formats registered.", "count", len(formats))

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		model:    model,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}
