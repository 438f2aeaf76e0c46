// This file contains the logic for translating HCL schema structs into the
// format-agnostic configuration model defined in the config package.

package hcl

import (
	"context"
	"fmt"

	"github.com/vk/plugforge/internal/config"
	"github.com/vk/plugforge/internal/schema"
	"github.com/zclconf/go-cty/cty"
)

// translateProject converts the HCL-specific project schema into the agnostic model.
func translateProject(p *schema.Project) *config.Project {
	return &config.Project{
		Name:    p.Name,
		Version: p.Version,
		Company: p.Company,
	}
}

// translateModule converts the HCL-specific module schema into the agnostic model.
func (l *Loader) translateModule(ctx context.Context, m *schema.Module) (*config.Module, error) {
	flags, err := l.translateFlags(ctx, m.FeatureFlags, "module", m.Name)
	if err != nil {
		return nil, err
	}
	return &config.Module{
		Name:       m.Name,
		SourceRoot: m.SourceRoot,
		DependsOn:  m.DependsOn,
		Flags:      flags,
	}, nil
}

// translateTarget converts the HCL-specific target schema into the agnostic model.
func (l *Loader) translateTarget(ctx context.Context, t *schema.Target) (*config.Target, error) {
	flags, err := l.translateFlags(ctx, t.FeatureFlags, "target", t.Name)
	if err != nil {
		return nil, err
	}
	return &config.Target{
		Name:             t.Name,
		Company:          t.Company,
		ManufacturerCode: t.ManufacturerCode,
		ProductCode:      t.ProductCode,
		ProductName:      t.ProductName,
		Formats:          t.Formats,
		Modules:          t.Modules,
		Flags:            flags,
	}, nil
}

// translateFlags evaluates both visibility bodies of a feature_flags block
// into rendered name=value pairs.
func (l *Loader) translateFlags(ctx context.Context, ff *schema.FeatureFlags, ownerKind, ownerName string) (config.FlagSet, error) {
	flags := config.FlagSet{}
	if ff == nil {
		return flags, nil
	}

	var err error
	if ff.Public != nil {
		flags.Public, err = l.evalFlagsBody(ff.Public, ownerKind, ownerName, "public")
		if err != nil {
			return flags, err
		}
	}
	if ff.Private != nil {
		flags.Private, err = l.evalFlagsBody(ff.Private, ownerKind, ownerName, "private")
		if err != nil {
			return flags, err
		}
	}
	return flags, nil
}

// evalFlagsBody evaluates every attribute of a flags body to a rendered
// define value. Expressions must be statically evaluable; flags are inert
// data, so no evaluation context is provided.
func (l *Loader) evalFlagsBody(body *schema.FlagsBody, ownerKind, ownerName, visibility string) (map[string]string, error) {
	if body.Body == nil {
		return nil, nil
	}
	attrs, diags := body.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid %s feature_flags in %s '%s': %w", visibility, ownerKind, ownerName, diags)
	}

	flags := make(map[string]string, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("invalid value for flag '%s' in %s '%s': %w", name, ownerKind, ownerName, diags)
		}
		rendered, err := renderFlagValue(val)
		if err != nil {
			return nil, fmt.Errorf("flag '%s' in %s '%s': %w", name, ownerKind, ownerName, err)
		}
		flags[name] = rendered
	}
	return flags, nil
}

// renderFlagValue converts a cty value into the string form a preprocessor
// define consumes. Booleans render as 1/0 to match compiler -D conventions.
func renderFlagValue(val cty.Value) (string, error) {
	if val.IsNull() {
		return "", fmt.Errorf("flag value must not be null")
	}
	switch val.Type() {
	case cty.Bool:
		if val.True() {
			return "1", nil
		}
		return "0", nil
	case cty.Number:
		return val.AsBigFloat().Text('f', -1), nil
	case cty.String:
		return val.AsString(), nil
	default:
		return "", fmt.Errorf("unsupported flag value type %s", val.Type().FriendlyName())
	}
}
