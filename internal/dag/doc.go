// Package dag implements the directed acyclic graph underlying the build
// composer: nodes keyed by string ID, explicit dependency edges, cycle
// detection, and a deterministic topological sort.
//
// The graph stores both directions of every edge (dependencies and
// dependents) so that callers can walk the partial order either way: the
// composer needs dependencies-first ordering for compilation, while the
// executor needs dependents to unlock downstream work as nodes finish.
package dag
