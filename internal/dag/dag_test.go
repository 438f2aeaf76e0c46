package dag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	g := New()
	require.NotNil(t, g)
	assert.NotNil(t, g.nodes)
	assert.Empty(t, g.nodes)
}

func TestAddNode(t *testing.T) {
	g := New()

	g.AddNode("a")
	assert.Equal(t, 1, g.Len())
	nodeA, ok := g.nodes["a"]
	require.True(t, ok)
	assert.Equal(t, "a", nodeA.id)
	assert.NotNil(t, nodeA.deps)
	assert.NotNil(t, nodeA.dependents)

	g.AddNode("a") // Test idempotency
	assert.Equal(t, 1, g.Len())

	g.AddNode("b")
	assert.Equal(t, 2, g.Len())
	assert.Equal(t, []string{"a", "b"}, g.NodeIDs())
}

func TestAddEdge(t *testing.T) {
	t.Run("success case", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		g.AddNode("b")

		err := g.AddEdge("a", "b") // b depends on a
		require.NoError(t, err)

		deps, err := g.Dependencies("b")
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, deps)

		dependents, err := g.Dependents("a")
		require.NoError(t, err)
		assert.Equal(t, []string{"b"}, dependents)
	})

	t.Run("error cases", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		g.AddNode("b")

		err := g.AddEdge("dne", "a")
		assert.ErrorContains(t, err, "source node not found")

		err = g.AddEdge("a", "dne")
		assert.ErrorContains(t, err, "destination node not found")

		err = g.AddEdge("a", "a")
		assert.ErrorContains(t, err, "self-referential edge")
	})
}

func TestDependenciesUnknownNode(t *testing.T) {
	g := New()

	_, err := g.Dependencies("dne")
	assert.ErrorContains(t, err, "node not found")

	_, err = g.Dependents("dne")
	assert.ErrorContains(t, err, "node not found")
}

func TestDetectCycles(t *testing.T) {
	t.Run("empty graph has no cycles", func(t *testing.T) {
		g := New()
		assert.NoError(t, g.DetectCycles())
	})

	t.Run("graph with nodes but no edges has no cycles", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		g.AddNode("b")
		assert.NoError(t, g.DetectCycles())
	})

	t.Run("linear chain has no cycles", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		g.AddNode("b")
		g.AddNode("c")
		require.NoError(t, g.AddEdge("a", "b"))
		require.NoError(t, g.AddEdge("b", "c"))
		assert.NoError(t, g.DetectCycles())
	})

	t.Run("diamond has no cycles", func(t *testing.T) {
		g := New()
		for _, id := range []string{"a", "b", "c", "d"} {
			g.AddNode(id)
		}
		require.NoError(t, g.AddEdge("a", "b"))
		require.NoError(t, g.AddEdge("a", "c"))
		require.NoError(t, g.AddEdge("b", "d"))
		require.NoError(t, g.AddEdge("c", "d"))
		assert.NoError(t, g.DetectCycles())
	})

	t.Run("two-node cycle is detected", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		g.AddNode("b")
		require.NoError(t, g.AddEdge("a", "b"))
		require.NoError(t, g.AddEdge("b", "a"))

		err := g.DetectCycles()
		require.Error(t, err)
		var cycleErr *CycleError
		assert.ErrorAs(t, err, &cycleErr)
	})

	t.Run("longer cycle in a larger graph is detected", func(t *testing.T) {
		g := New()
		for _, id := range []string{"a", "b", "c", "d", "e"} {
			g.AddNode(id)
		}
		require.NoError(t, g.AddEdge("a", "b"))
		require.NoError(t, g.AddEdge("b", "c"))
		require.NoError(t, g.AddEdge("c", "d"))
		require.NoError(t, g.AddEdge("d", "b")) // b -> c -> d -> b
		require.NoError(t, g.AddEdge("a", "e"))

		err := g.DetectCycles()
		require.Error(t, err)
		assert.ErrorContains(t, err, "cycle detected")
	})
}

func TestTopoSort(t *testing.T) {
	t.Run("every node appears after all its dependencies", func(t *testing.T) {
		g := New()
		for _, id := range []string{"app", "dsp", "gui", "core"} {
			g.AddNode(id)
		}
		require.NoError(t, g.AddEdge("core", "dsp"))
		require.NoError(t, g.AddEdge("core", "gui"))
		require.NoError(t, g.AddEdge("dsp", "app"))
		require.NoError(t, g.AddEdge("gui", "app"))

		order, err := g.TopoSort()
		require.NoError(t, err)
		require.Len(t, order, 4)

		position := make(map[string]int, len(order))
		for i, id := range order {
			position[id] = i
		}
		for _, id := range order {
			deps, err := g.Dependencies(id)
			require.NoError(t, err)
			for _, dep := range deps {
				assert.Less(t, position[dep], position[id], "%s must come after %s", id, dep)
			}
		}
	})

	t.Run("ordering is deterministic across runs", func(t *testing.T) {
		build := func() *Graph {
			g := New()
			for _, id := range []string{"z", "m", "a", "q", "f"} {
				g.AddNode(id)
			}
			require.NoError(t, g.AddEdge("a", "z"))
			require.NoError(t, g.AddEdge("m", "z"))
			return g
		}

		first, err := build().TopoSort()
		require.NoError(t, err)
		for i := 0; i < 10; i++ {
			next, err := build().TopoSort()
			require.NoError(t, err)
			assert.Equal(t, first, next)
		}
	})

	t.Run("independent nodes sort lexicographically", func(t *testing.T) {
		g := New()
		g.AddNode("c")
		g.AddNode("a")
		g.AddNode("b")

		order, err := g.TopoSort()
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, order)
	})

	t.Run("cycle yields no order", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		g.AddNode("b")
		require.NoError(t, g.AddEdge("a", "b"))
		require.NoError(t, g.AddEdge("b", "a"))

		order, err := g.TopoSort()
		require.Error(t, err)
		assert.Nil(t, order)
	})
}
