package dag

import "sort"

// TopoSort returns a topological ordering of all node IDs: every node appears
// after all of its dependencies. The traversal is a depth-first search with a
// three-color marking scheme (unvisited, in-progress, done); re-encountering
// an in-progress node signals a cycle and yields a *CycleError.
//
// The result is deterministic: both the outer loop and each node's dependency
// list are visited in lexicographic order, so identical graphs always produce
// the identical ordering.
func (g *Graph) TopoSort() ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	done := make(map[string]bool, len(g.nodes))
	inProgress := make(map[string]bool)
	order := make([]string, 0, len(g.nodes))

	var visit func(n *node) error
	visit = func(n *node) error {
		if done[n.id] {
			return nil
		}
		if inProgress[n.id] {
			return &CycleError{NodeID: n.id}
		}

		inProgress[n.id] = true

		depIDs := make([]string, 0, len(n.deps))
		for depID := range n.deps {
			depIDs = append(depIDs, depID)
		}
		sort.Strings(depIDs)
		for _, depID := range depIDs {
			if err := visit(n.deps[depID]); err != nil {
				return err
			}
		}

		delete(inProgress, n.id)
		done[n.id] = true
		order = append(order, n.id)
		return nil
	}

	ids := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		if err := visit(g.nodes[id]); err != nil {
			return nil, err
		}
	}

	return order, nil
}

// DetectCycles checks the graph for any cycles. It returns a non-nil
// *CycleError if a cycle is found, naming a node involved in the cycle.
func (g *Graph) DetectCycles() error {
	_, err := g.TopoSort()
	return err
}
