package composer

// BuildGraph is the frozen output of Assemble: the project identity, the
// module partial order, and one link job per target×format. It is a plain
// value with no behavior; downstream consumers (an emitter, or the executor
// driving a toolchain) own what happens next.
type BuildGraph struct {
	Project ProjectInfo `json:"project" yaml:"project"`

	// ModuleOrder is a deterministic topological ordering of all declared
	// modules: every module appears after all of its dependencies.
	ModuleOrder []string `json:"module_order" yaml:"module_order"`

	// Modules lists every module's compile inputs in topological order.
	// Each entry carries its direct dependencies, preserving the partial
	// order so an external scheduler can parallelize independent branches.
	Modules []ModuleSpec `json:"modules" yaml:"modules"`

	// Jobs holds one link job per requested target×format pair. Jobs for
	// the same target share the identical compiled module set.
	Jobs []Job `json:"jobs" yaml:"jobs"`
}

// ProjectInfo is the project identity carried into the graph output.
type ProjectInfo struct {
	Name    string `json:"name" yaml:"name"`
	Version string `json:"version" yaml:"version"`
	Company string `json:"company,omitempty" yaml:"company,omitempty"`
}

// ModuleSpec is one module's compile job: its sources, its direct
// dependencies, and the fully-resolved preprocessor defines for its
// translation units.
type ModuleSpec struct {
	Name       string   `json:"name" yaml:"name"`
	SourceRoot string   `json:"source_root" yaml:"source_root"`
	DependsOn  []string `json:"depends_on,omitempty" yaml:"depends_on,omitempty"`
	Defines    []string `json:"defines,omitempty" yaml:"defines,omitempty"`
}

// Job is one link job: it produces a single artifact for one target in one
// format, depending on the fully-linked module set listed in Modules.
type Job struct {
	Target           string   `json:"target" yaml:"target"`
	Format           string   `json:"format" yaml:"format"`
	Kind             string   `json:"kind" yaml:"kind"`
	Artifact         string   `json:"artifact" yaml:"artifact"`
	Company          string   `json:"company,omitempty" yaml:"company,omitempty"`
	ManufacturerCode string   `json:"manufacturer_code" yaml:"manufacturer_code"`
	ProductCode      string   `json:"product_code" yaml:"product_code"`
	ProductName      string   `json:"product_name" yaml:"product_name"`
	Modules          []string `json:"modules" yaml:"modules"`
	Defines          []string `json:"defines,omitempty" yaml:"defines,omitempty"`
}

// Module looks up a module spec by name.
func (g *BuildGraph) Module(name string) (ModuleSpec, bool) {
	for _, m := range g.Modules {
		if m.Name == name {
			return m, true
		}
	}
	return ModuleSpec{}, false
}
