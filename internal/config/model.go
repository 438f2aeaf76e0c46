package config

// Model is the unified, format-agnostic representation of an entire build
// description: the project, its modules, its targets, and the optional
// toolchain command templates.
type Model struct {
	Project   *Project
	Modules   []*Module
	Targets   []*Target
	Toolchain *Toolchain
}

// Project is the build description's identity: a name, a semantic version,
// and optional company attribution. It is immutable once declared.
type Project struct {
	Name    string
	Version string
	Company string
}

// Module is a named, independently buildable unit of source. The project
// references modules by name only; their internals belong to the module.
type Module struct {
	Name       string
	SourceRoot string
	DependsOn  []string
	Flags      FlagSet
}

// Target is the top-level pluggable artifact: it aggregates modules, carries
// the host-facing identity codes, and requests a set of output formats.
type Target struct {
	Name             string
	Company          string
	ManufacturerCode string
	ProductCode      string
	ProductName      string
	Formats          []string
	Modules          []string
	Flags            FlagSet
}

// FlagSet holds a scope's compile-time feature flags, split by visibility.
// Public flags propagate to every translation unit that links the scope;
// private flags stay within it. Values are already rendered to the string
// form a preprocessor define consumes.
type FlagSet struct {
	Public  map[string]string
	Private map[string]string
}

// Toolchain holds the optional command templates used by the exec toolchain.
// Recognized placeholders: {module}, {source_root}, {target}, {format},
// {artifact}, {defines}.
type Toolchain struct {
	CompileCommand string
	LinkCommand    string
}
