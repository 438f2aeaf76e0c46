package schema

import "github.com/hashicorp/hcl/v2"

// --- Descriptor Structures ---

// FlagsBody captures the raw attribute body of a `public` or `private`
// block inside `feature_flags`. Attribute names are flag names; values are
// HCL expressions evaluated at translation time.
type FlagsBody struct {
	Body hcl.Body `hcl:",remain"`
}

// FeatureFlags represents a `feature_flags` block within a module or target.
type FeatureFlags struct {
	Public  *FlagsBody `hcl:"public,block"`
	Private *FlagsBody `hcl:"private,block"`
}

// Project represents the `project` block: the build description's identity.
type Project struct {
	Name    string `hcl:"name,label"`
	Version string `hcl:"version"`
	Company string `hcl:"company,optional"`
}

// Module represents a `module` block from a descriptor file. It is a named,
// independently buildable unit of source with its own dependencies.
type Module struct {
	Name         string        `hcl:"name,label"`
	SourceRoot   string        `hcl:"source_root"`
	DependsOn    []string      `hcl:"depends_on,optional"`
	FeatureFlags *FeatureFlags `hcl:"feature_flags,block"`
}

// Target represents a `target` block: the pluggable artifact aggregating
// modules, plus the identity codes the plugin host consumes verbatim.
type Target struct {
	Name             string        `hcl:"name,label"`
	Company          string        `hcl:"company,optional"`
	ManufacturerCode string        `hcl:"manufacturer_code"`
	ProductCode      string        `hcl:"product_code"`
	ProductName      string        `hcl:"product_name,optional"`
	Formats          []string      `hcl:"formats"`
	Modules          []string      `hcl:"modules"`
	FeatureFlags     *FeatureFlags `hcl:"feature_flags,block"`
}

// Toolchain represents the optional `toolchain` block with command
// templates for the exec toolchain.
type Toolchain struct {
	CompileCommand string `hcl:"compile_command,optional"`
	LinkCommand    string `hcl:"link_command,optional"`
}

// Root represents the top-level structure of a descriptor file. Any block
// may appear in any file; the loader merges all files into one model.
type Root struct {
	Projects   []*Project   `hcl:"project,block"`
	Modules    []*Module    `hcl:"module,block"`
	Targets    []*Target    `hcl:"target,block"`
	Toolchains []*Toolchain `hcl:"toolchain,block"`
	Body       hcl.Body     `hcl:",remain"`
}
