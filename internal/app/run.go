package app

import (
	"context"
	"fmt"

	"github.com/vk/plugforge/internal/composer"
	"github.com/vk/plugforge/internal/ctxlog"
	"github.com/vk/plugforge/internal/encode"
	"github.com/vk/plugforge/internal/executor"
)

// Run executes the main application logic based on the provided configuration.
func (a *App) Run(ctx context.Context, cfg *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	a.logger.Debug("Composing build graph from config model...")
	c, err := composer.FromModel(ctx, a.model, a.registry)
	if err != nil {
		return fmt.Errorf("failed to compose build graph: %w", err)
	}

	graph, err := c.Assemble()
	if err != nil {
		return fmt.Errorf("failed to assemble build graph: %w", err)
	}
	a.logger.Debug("Build graph assembled.",
		"modules", len(graph.Modules), "jobs", len(graph.Jobs))

	if !cfg.Execute {
		a.logger.Info("Emitting build graph.", "format", cfg.Output)
		return encode.Graph(graph, cfg.Output, a.outW)
	}

	if len(graph.Jobs) == 0 {
		a.logger.Warn("No build jobs in graph, execution not required.")
		return nil
	}

	a.logger.Info("🚀 Starting concurrent build...", "workers", cfg.Workers)
	exec := executor.New(graph, cfg.Workers, a.toolchain())
	if err := exec.Run(ctx); err != nil {
		return fmt.Errorf("build failed: %w", err)
	}
	a.logger.Info("🏁 Build finished.")

	return nil
}

// toolchain selects the executor's toolchain from the loaded model. Without
// a toolchain block the run is a dry run.
func (a *App) toolchain() executor.Toolchain {
	if a.model.Toolchain == nil {
		return executor.DryRun{}
	}
	return &executor.Command{
		CompileTemplate: a.model.Toolchain.CompileCommand,
		LinkTemplate:    a.model.Toolchain.LinkCommand,
	}
}
