package composer

import (
	"context"
	"fmt"

	"github.com/vk/plugforge/internal/config"
	"github.com/vk/plugforge/internal/ctxlog"
	"github.com/vk/plugforge/internal/registry"
)

// FromModel replays a loaded build description against a fresh Composer.
// Modules are declared in two passes (declare all, then link dependencies)
// so that descriptor files may reference modules in any order; a dependency
// on a name no descriptor declares is an UnknownModuleError.
func FromModel(ctx context.Context, model *config.Model, reg *registry.Registry) (*Composer, error) {
	logger := ctxlog.FromContext(ctx)

	if model.Project == nil {
		return nil, fmt.Errorf("build description has no project")
	}

	c, err := New(Project{
		Name:    model.Project.Name,
		Version: model.Project.Version,
		Company: model.Project.Company,
	}, reg)
	if err != nil {
		return nil, err
	}

	handles := make(map[string]ModuleHandle, len(model.Modules))
	for _, m := range model.Modules {
		h, err := c.DeclareModule(m.Name, m.SourceRoot)
		if err != nil {
			return nil, err
		}
		handles[m.Name] = h

		if err := c.SetFeatureFlags(h, Public, m.Flags.Public); err != nil {
			return nil, err
		}
		if err := c.SetFeatureFlags(h, Private, m.Flags.Private); err != nil {
			return nil, err
		}
	}
	logger.Debug("Modules declared.", "count", len(model.Modules))

	for _, m := range model.Modules {
		for _, depName := range m.DependsOn {
			dep, ok := handles[depName]
			if !ok {
				return nil, &UnknownModuleError{Name: depName}
			}
			if err := c.AddDependency(handles[m.Name], dep); err != nil {
				return nil, err
			}
		}
	}
	logger.Debug("Module dependencies linked.")

	for _, t := range model.Targets {
		targetModules := make([]ModuleHandle, 0, len(t.Modules))
		for _, name := range t.Modules {
			h, ok := handles[name]
			if !ok {
				return nil, &UnknownModuleError{Name: name}
			}
			targetModules = append(targetModules, h)
		}

		th, err := c.DeclareTarget(t.Name, t.Company, t.ManufacturerCode, t.ProductCode, t.Formats, targetModules...)
		if err != nil {
			return nil, err
		}
		if err := c.SetProductName(th, t.ProductName); err != nil {
			return nil, err
		}
		if err := c.SetFeatureFlags(th, Public, t.Flags.Public); err != nil {
			return nil, err
		}
		if err := c.SetFeatureFlags(th, Private, t.Flags.Private); err != nil {
			return nil, err
		}
	}
	logger.Debug("Targets declared.", "count", len(model.Targets))

	return c, nil
}
