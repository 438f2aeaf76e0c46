package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/plugforge/internal/config"
	"github.com/vk/plugforge/internal/ctxlog"
	"github.com/vk/plugforge/internal/fsutil"
	"github.com/vk/plugforge/internal/schema"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL build description loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load orchestrates the entire HCL loading process. It is agnostic to the
// origin of the paths and accepts any descriptor block from any file; all
// discovered files are merged into a single model.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.FindFilesByExtension(".hcl", paths...)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl descriptor files found in %v", paths)
	}
	logger.Debug("Discovered descriptor files.", "count", len(files))

	model := &config.Model{}
	parser := hclparse.NewParser()

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse descriptor file %s: %w", file, diags)
		}

		var root schema.Root
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode descriptor file %s: %w", file, diags)
		}

		if err := l.mergeFile(ctx, model, &root, file); err != nil {
			return nil, err
		}
	}

	if model.Project == nil {
		return nil, fmt.Errorf("descriptor declares no project block")
	}

	logger.Debug("HCL loading complete.",
		"project", model.Project.Name,
		"modules", len(model.Modules),
		"targets", len(model.Targets),
	)
	return model, nil
}

// mergeFile translates one decoded file into the model, enforcing the
// single-project and single-toolchain constraints across the whole set.
func (l *Loader) mergeFile(ctx context.Context, model *config.Model, root *schema.Root, file string) error {
	for _, p := range root.Projects {
		if model.Project != nil {
			return fmt.Errorf("duplicate project block '%s' in %s: project '%s' is already declared", p.Name, file, model.Project.Name)
		}
		model.Project = translateProject(p)
	}

	for _, m := range root.Modules {
		mod, err := l.translateModule(ctx, m)
		if err != nil {
			return fmt.Errorf("in %s: %w", file, err)
		}
		model.Modules = append(model.Modules, mod)
	}

	for _, t := range root.Targets {
		tgt, err := l.translateTarget(ctx, t)
		if err != nil {
			return fmt.Errorf("in %s: %w", file, err)
		}
		model.Targets = append(model.Targets, tgt)
	}

	for _, tc := range root.Toolchains {
		if model.Toolchain != nil {
			return fmt.Errorf("duplicate toolchain block in %s", file)
		}
		model.Toolchain = &config.Toolchain{
			CompileCommand: tc.CompileCommand,
			LinkCommand:    tc.LinkCommand,
		}
	}

	return nil
}
