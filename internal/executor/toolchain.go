package executor

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/vk/plugforge/internal/composer"
	"github.com/vk/plugforge/internal/ctxlog"
)

// Toolchain is the external collaborator that turns build nodes into
// artifacts. The executor's only contract with it is ordering: a module is
// compiled after its dependencies, a target is linked after its modules.
type Toolchain interface {
	CompileModule(ctx context.Context, m composer.ModuleSpec) error
	LinkTarget(ctx context.Context, j composer.Job) error
}

// DryRun is a toolchain that only logs what a real toolchain would do. It
// is the default when the descriptor declares no toolchain block.
type DryRun struct{}

// CompileModule logs the compile step.
func (DryRun) CompileModule(ctx context.Context, m composer.ModuleSpec) error {
	ctxlog.FromContext(ctx).Info("Would compile module.",
		"module", m.Name,
		"source_root", m.SourceRoot,
		"defines", m.Defines,
	)
	return nil
}

// LinkTarget logs the link step.
func (DryRun) LinkTarget(ctx context.Context, j composer.Job) error {
	ctxlog.FromContext(ctx).Info("Would link target.",
		"target", j.Target,
		"format", j.Format,
		"artifact", j.Artifact,
		"modules", j.Modules,
	)
	return nil
}

// Command is a toolchain that renders the descriptor's command templates and
// runs them through the shell. Recognized placeholders: {module},
// {source_root}, {target}, {format}, {artifact}, {defines}.
type Command struct {
	CompileTemplate string
	LinkTemplate    string
}

// CompileModule renders and runs the compile command for one module.
func (c *Command) CompileModule(ctx context.Context, m composer.ModuleSpec) error {
	if c.CompileTemplate == "" {
		return DryRun{}.CompileModule(ctx, m)
	}
	cmd := renderTemplate(c.CompileTemplate, map[string]string{
		"module":      m.Name,
		"source_root": m.SourceRoot,
		"defines":     renderDefines(m.Defines),
	})
	return runShell(ctx, cmd)
}

// LinkTarget renders and runs the link command for one job.
func (c *Command) LinkTarget(ctx context.Context, j composer.Job) error {
	if c.LinkTemplate == "" {
		return DryRun{}.LinkTarget(ctx, j)
	}
	cmd := renderTemplate(c.LinkTemplate, map[string]string{
		"target":   j.Target,
		"format":   j.Format,
		"artifact": j.Artifact,
		"defines":  renderDefines(j.Defines),
	})
	return runShell(ctx, cmd)
}

// renderTemplate substitutes {placeholder} occurrences with their values.
func renderTemplate(template string, values map[string]string) string {
	out := template
	for key, value := range values {
		out = strings.ReplaceAll(out, "{"+key+"}", value)
	}
	return out
}

// renderDefines flattens a define list into compiler -D options.
func renderDefines(defines []string) string {
	opts := make([]string, 0, len(defines))
	for _, d := range defines {
		opts = append(opts, "-D"+d)
	}
	return strings.Join(opts, " ")
}

// runShell executes one rendered command, attaching its combined output to
// any failure.
func runShell(ctx context.Context, command string) error {
	ctxlog.FromContext(ctx).Debug("Running toolchain command.", "command", command)
	out, err := exec.CommandContext(ctx, "sh", "-c", command).CombinedOutput()
	if err != nil {
		return fmt.Errorf("toolchain command %q failed: %w\n%s", command, err, out)
	}
	return nil
}
