// Package composer resolves a declarative set of module and target
// declarations into a deterministic, reproducible build graph.
//
// A Composer is an explicit instance with an Open → Assembled lifecycle:
// while open it accepts declarations (modules, targets, feature flags);
// Assemble performs topological ordering with cycle detection and produces
// one link job per target×format pair, then freezes the instance. Any
// declaration after assembly fails with FrozenGraphError.
//
// Declarations hand back opaque handles rather than names, so referencing a
// module that was never registered cannot be expressed by accident; a stale
// or foreign handle surfaces as UnknownModuleError.
//
// The composer is a pure function of its declared inputs: identical
// declarations always produce a byte-identical BuildGraph. It performs no
// compilation itself; the executor (or any external scheduler) consumes the
// exposed partial order.
package composer
