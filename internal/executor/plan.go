package executor

import (
	"sync"
	"sync/atomic"

	"github.com/vk/plugforge/internal/composer"
)

// nodeKind distinguishes module compile nodes from target link nodes.
type nodeKind int

const (
	compileNode nodeKind = iota
	linkNode
)

// Node states, stored atomically so workers can inspect them lock-free.
const (
	statePending int32 = iota
	stateRunning
	stateDone
	stateFailed
)

// node is one schedulable unit of work in the execution plan.
type node struct {
	ID   string
	Kind nodeKind

	// Module is set for compile nodes, Job for link nodes.
	Module *composer.ModuleSpec
	Job    *composer.Job

	Deps       []*node
	Dependents []*node

	// depCount tracks unfinished dependencies; a node is ready at zero.
	depCount atomic.Int32
	state    atomic.Int32
	err      error
	skipOnce sync.Once
}

// plan expands a BuildGraph into execution nodes: one compile node per
// module (edges follow the module partial order) and one link node per job,
// depending on every module the job links.
func plan(graph *composer.BuildGraph) map[string]*node {
	nodes := make(map[string]*node, len(graph.Modules)+len(graph.Jobs))

	for i := range graph.Modules {
		m := &graph.Modules[i]
		nodes["module."+m.Name] = &node{
			ID:     "module." + m.Name,
			Kind:   compileNode,
			Module: m,
		}
	}

	for i := range graph.Modules {
		m := &graph.Modules[i]
		n := nodes["module."+m.Name]
		for _, dep := range m.DependsOn {
			depNode := nodes["module."+dep]
			n.Deps = append(n.Deps, depNode)
			depNode.Dependents = append(depNode.Dependents, n)
		}
	}

	for i := range graph.Jobs {
		j := &graph.Jobs[i]
		id := "job." + j.Target + "." + j.Format
		n := &node{
			ID:   id,
			Kind: linkNode,
			Job:  j,
		}
		for _, name := range j.Modules {
			depNode := nodes["module."+name]
			n.Deps = append(n.Deps, depNode)
			depNode.Dependents = append(depNode.Dependents, n)
		}
		nodes[id] = n
	}

	for _, n := range nodes {
		n.depCount.Store(int32(len(n.Deps)))
	}

	return nodes
}
