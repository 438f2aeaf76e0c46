package composer

// Handles are opaque tokens returned at declaration time. Later operations
// take handles rather than raw strings, so referencing an unregistered
// module is impossible to express accidentally; a handle from a different
// composer instance is rejected by provenance check.

// Scope marks the types that can carry feature flags: modules and targets.
type Scope interface {
	scopeLabel() string
}

// ModuleHandle references a module declared on a specific composer.
type ModuleHandle struct {
	owner *Composer
	name  string
}

// Name returns the module name the handle references.
func (h ModuleHandle) Name() string { return h.name }

func (h ModuleHandle) scopeLabel() string { return "module '" + h.name + "'" }

// TargetHandle references a target declared on a specific composer.
type TargetHandle struct {
	owner *Composer
	name  string
}

// Name returns the target name the handle references.
func (h TargetHandle) Name() string { return h.name }

func (h TargetHandle) scopeLabel() string { return "target '" + h.name + "'" }
