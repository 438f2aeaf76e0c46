package composer

import (
	"fmt"
	"regexp"

	"github.com/vk/plugforge/internal/registry"
)

// Project is the build description's identity. It is immutable once the
// composer is created; regenerating the description is the only way to
// change it.
type Project struct {
	Name    string
	Version string
	Company string
}

// versionRe matches a semantic version triple.
var versionRe = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

// Composer accumulates module and target declarations and resolves them into
// a deterministic BuildGraph. It has two states: open (accepting
// declarations) and assembled (graph frozen). A Composer is a single-writer
// structure; it is not intended for concurrent mutation.
type Composer struct {
	reg       *registry.Registry
	project   Project
	assembled bool

	modules map[string]*moduleEntry
	targets map[string]*targetEntry
	// targetOrder preserves declaration order so job output is stable.
	targetOrder []string
}

// moduleEntry is the composer's record of one declared module.
type moduleEntry struct {
	name       string
	sourceRoot string
	dependsOn  map[string]struct{}
	flags      flagTable
}

// targetEntry is the composer's record of one declared target.
type targetEntry struct {
	name             string
	company          string
	manufacturerCode string
	productCode      string
	productName      string
	formats          []registry.FormatHandler
	modules          []string
	flags            flagTable
}

// New creates an open Composer for the given project, validating the
// project's identity fields.
func New(project Project, reg *registry.Registry) (*Composer, error) {
	if project.Name == "" {
		return nil, fmt.Errorf("project name must not be empty")
	}
	if !versionRe.MatchString(project.Version) {
		return nil, fmt.Errorf("project version %q is not a semantic version triple", project.Version)
	}
	if reg == nil {
		return nil, fmt.Errorf("format registry must not be nil")
	}
	return &Composer{
		reg:     reg,
		project: project,
		modules: make(map[string]*moduleEntry),
		targets: make(map[string]*targetEntry),
	}, nil
}

// Project returns the project identity this composer was created with.
func (c *Composer) Project() Project {
	return c.project
}

// DeclareModule registers a named, independently buildable source module and
// returns an opaque handle for referencing it in later declarations.
func (c *Composer) DeclareModule(name, sourceRoot string) (ModuleHandle, error) {
	if c.assembled {
		return ModuleHandle{}, &FrozenGraphError{Op: "DeclareModule"}
	}
	if name == "" {
		return ModuleHandle{}, fmt.Errorf("module name must not be empty")
	}
	if sourceRoot == "" {
		return ModuleHandle{}, fmt.Errorf("module '%s': source root must not be empty", name)
	}
	if _, exists := c.modules[name]; exists {
		return ModuleHandle{}, &DuplicateModuleError{Name: name}
	}

	c.modules[name] = &moduleEntry{
		name:       name,
		sourceRoot: sourceRoot,
		dependsOn:  make(map[string]struct{}),
		flags:      newFlagTable(),
	}
	return ModuleHandle{owner: c, name: name}, nil
}

// AddDependency records that module m depends on each of deps. Dependencies
// may be added in any order once both modules are declared; cycles formed
// this way are detected at Assemble, except a self-dependency, which is
// rejected immediately.
func (c *Composer) AddDependency(m ModuleHandle, deps ...ModuleHandle) error {
	if c.assembled {
		return &FrozenGraphError{Op: "AddDependency"}
	}
	entry, err := c.resolveModule(m)
	if err != nil {
		return err
	}
	for _, dep := range deps {
		depEntry, err := c.resolveModule(dep)
		if err != nil {
			return err
		}
		if depEntry.name == entry.name {
			return &CyclicDependencyError{Node: entry.name}
		}
		entry.dependsOn[depEntry.name] = struct{}{}
	}
	return nil
}

// DeclareTarget registers the top-level pluggable artifact: its host-facing
// identity codes, the formats to produce, and the modules it aggregates.
func (c *Composer) DeclareTarget(name, company, manufacturerCode, productCode string, formats []string, modules ...ModuleHandle) (TargetHandle, error) {
	if c.assembled {
		return TargetHandle{}, &FrozenGraphError{Op: "DeclareTarget"}
	}
	if name == "" {
		return TargetHandle{}, fmt.Errorf("target name must not be empty")
	}
	if _, exists := c.targets[name]; exists {
		return TargetHandle{}, fmt.Errorf("target '%s' is already declared", name)
	}
	if len(formats) == 0 {
		return TargetHandle{}, &EmptyFormatSetError{Target: name}
	}
	if !validCode(manufacturerCode) {
		return TargetHandle{}, &InvalidCodeError{Target: name, Field: "manufacturer code", Code: manufacturerCode}
	}
	if !validCode(productCode) {
		return TargetHandle{}, &InvalidCodeError{Target: name, Field: "product code", Code: productCode}
	}

	handlers := make([]registry.FormatHandler, 0, len(formats))
	seenFormats := make(map[string]struct{}, len(formats))
	for _, f := range formats {
		h, ok := c.reg.Format(f)
		if !ok {
			return TargetHandle{}, &UnknownFormatError{Target: name, Format: f}
		}
		if _, dup := seenFormats[h.Name]; dup {
			continue
		}
		seenFormats[h.Name] = struct{}{}
		handlers = append(handlers, h)
	}

	moduleNames := make([]string, 0, len(modules))
	seenModules := make(map[string]struct{}, len(modules))
	for _, m := range modules {
		entry, err := c.resolveModule(m)
		if err != nil {
			return TargetHandle{}, err
		}
		if _, dup := seenModules[entry.name]; dup {
			continue
		}
		seenModules[entry.name] = struct{}{}
		moduleNames = append(moduleNames, entry.name)
	}

	c.targets[name] = &targetEntry{
		name:             name,
		company:          company,
		manufacturerCode: manufacturerCode,
		productCode:      productCode,
		productName:      name,
		formats:          handlers,
		modules:          moduleNames,
		flags:            newFlagTable(),
	}
	c.targetOrder = append(c.targetOrder, name)
	return TargetHandle{owner: c, name: name}, nil
}

// SetProductName overrides a target's display name. Display metadata only.
func (c *Composer) SetProductName(t TargetHandle, productName string) error {
	if c.assembled {
		return &FrozenGraphError{Op: "SetProductName"}
	}
	entry, err := c.resolveTarget(t)
	if err != nil {
		return err
	}
	if productName != "" {
		entry.productName = productName
	}
	return nil
}

// SetFeatureFlags merges flags into the scope's compile environment at the
// given visibility. Within one scope the merge is last-write-wins per flag
// name; overwriting is documented behavior, not an error. Conflicts across
// scopes are detected at Assemble.
func (c *Composer) SetFeatureFlags(scope Scope, vis Visibility, flags map[string]string) error {
	if c.assembled {
		return &FrozenGraphError{Op: "SetFeatureFlags"}
	}
	table, err := c.resolveScope(scope)
	if err != nil {
		return err
	}
	table.merge(vis, flags)
	return nil
}

// resolveModule checks a handle's provenance and returns its entry.
func (c *Composer) resolveModule(m ModuleHandle) (*moduleEntry, error) {
	if m.owner != c {
		return nil, &UnknownModuleError{Name: m.name}
	}
	entry, ok := c.modules[m.name]
	if !ok {
		return nil, &UnknownModuleError{Name: m.name}
	}
	return entry, nil
}

// resolveTarget checks a handle's provenance and returns its entry.
func (c *Composer) resolveTarget(t TargetHandle) (*targetEntry, error) {
	if t.owner != c {
		return nil, fmt.Errorf("unknown target '%s': not declared by this composer", t.name)
	}
	entry, ok := c.targets[t.name]
	if !ok {
		return nil, fmt.Errorf("unknown target '%s': not declared by this composer", t.name)
	}
	return entry, nil
}

// resolveScope maps a flag scope to its flag table.
func (c *Composer) resolveScope(scope Scope) (*flagTable, error) {
	switch s := scope.(type) {
	case ModuleHandle:
		entry, err := c.resolveModule(s)
		if err != nil {
			return nil, err
		}
		return &entry.flags, nil
	case TargetHandle:
		entry, err := c.resolveTarget(s)
		if err != nil {
			return nil, err
		}
		return &entry.flags, nil
	default:
		return nil, fmt.Errorf("unsupported flag scope %T", scope)
	}
}

// validCode reports whether a host identity code is exactly four printable
// ASCII characters.
func validCode(code string) bool {
	if len(code) != 4 {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < 0x20 || code[i] > 0x7e {
			return false
		}
	}
	return true
}
