// Package executor runs an assembled build graph through a Toolchain with a
// pool of concurrent workers.
//
// The composer only guarantees a partial order; the executor exploits it.
// Every module becomes a compile node whose dependencies mirror the module
// graph, and every target×format job becomes a link node depending on all
// of its modules. Nodes with no unfinished dependencies are fed to workers
// through a ready channel; as each node completes it decrements its
// dependents' counters, unlocking them. A failure cancels the run and
// transitively skips everything downstream, and the first real error is
// reported as the root cause.
package executor
