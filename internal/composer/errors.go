package composer

import "fmt"

// All composer errors are configuration-time errors: fatal to the call that
// detects them, never recoverable automatically. The only recovery path is
// correcting the declarative input and composing again.

// DuplicateModuleError reports a module name that is already registered.
type DuplicateModuleError struct {
	Name string
}

func (e *DuplicateModuleError) Error() string {
	return fmt.Sprintf("module '%s' is already declared", e.Name)
}

// UnknownModuleError reports a module reference that was not produced by
// this composer's DeclareModule.
type UnknownModuleError struct {
	Name string
}

func (e *UnknownModuleError) Error() string {
	return fmt.Sprintf("unknown module '%s': not declared by this composer", e.Name)
}

// EmptyFormatSetError reports a target that requests no output formats and
// therefore has no observable build product.
type EmptyFormatSetError struct {
	Target string
}

func (e *EmptyFormatSetError) Error() string {
	return fmt.Sprintf("target '%s' requests an empty format set", e.Target)
}

// UnknownFormatError reports a requested format absent from the registry.
type UnknownFormatError struct {
	Target string
	Format string
}

func (e *UnknownFormatError) Error() string {
	return fmt.Sprintf("target '%s' requests unknown format '%s'", e.Target, e.Format)
}

// InvalidCodeError reports a manufacturer or product code that fails the
// structural check. Only the shape is validated here; uniqueness across
// plugins is the host's invariant, not the composer's.
type InvalidCodeError struct {
	Target string
	Field  string
	Code   string
}

func (e *InvalidCodeError) Error() string {
	return fmt.Sprintf("target '%s': %s %q must be exactly 4 printable ASCII characters", e.Target, e.Field, e.Code)
}

// CyclicDependencyError reports a dependency cycle in the module graph.
// Node names a module known to participate in the cycle.
type CyclicDependencyError struct {
	Node string
}

func (e *CyclicDependencyError) Error() string {
	return fmt.Sprintf("cyclic module dependency involving '%s'", e.Node)
}

// FrozenGraphError reports a declaration attempted after Assemble has
// produced a build graph.
type FrozenGraphError struct {
	Op string
}

func (e *FrozenGraphError) Error() string {
	return fmt.Sprintf("%s rejected: build graph is already assembled", e.Op)
}

// FlagConflictError reports a feature flag assigned different values by two
// scopes whose compile environments overlap. Precedence between scopes is
// deliberately undefined, so a conflict is surfaced rather than resolved.
type FlagConflictError struct {
	Flag   string
	ScopeA string
	ValueA string
	ScopeB string
	ValueB string
}

func (e *FlagConflictError) Error() string {
	return fmt.Sprintf("feature flag '%s' has conflicting values: %s=%q from %s, %s=%q from %s",
		e.Flag, e.Flag, e.ValueA, e.ScopeA, e.Flag, e.ValueB, e.ScopeB)
}
