package executor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/plugforge/internal/composer"
	"github.com/vk/plugforge/internal/registry"
)

// recordingToolchain captures the order in which nodes were executed and can
// be told to fail a specific module.
type recordingToolchain struct {
	mu         sync.Mutex
	events     []string
	failModule string
}

func (r *recordingToolchain) CompileModule(ctx context.Context, m composer.ModuleSpec) error {
	r.mu.Lock()
	r.events = append(r.events, "compile:"+m.Name)
	r.mu.Unlock()
	if m.Name == r.failModule {
		return errors.New("compiler exploded")
	}
	return nil
}

func (r *recordingToolchain) LinkTarget(ctx context.Context, j composer.Job) error {
	r.mu.Lock()
	r.events = append(r.events, "link:"+j.Target+"."+j.Format)
	r.mu.Unlock()
	return nil
}

func (r *recordingToolchain) position(event string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.events {
		if e == event {
			return i
		}
	}
	return -1
}

func testGraph(t *testing.T) *composer.BuildGraph {
	t.Helper()
	reg := registry.New()
	reg.RegisterFormat(registry.FormatHandler{Name: "VST3", Kind: registry.KindPluginBundle, Extension: ".vst3"})
	reg.RegisterFormat(registry.FormatHandler{Name: "AU", Kind: registry.KindPluginBundle, Extension: ".component"})

	c, err := composer.New(composer.Project{Name: "P", Version: "1.0.0"}, reg)
	require.NoError(t, err)

	core, err := c.DeclareModule("core", "src/core")
	require.NoError(t, err)
	dsp, err := c.DeclareModule("dsp", "src/dsp")
	require.NoError(t, err)
	gui, err := c.DeclareModule("gui", "src/gui")
	require.NoError(t, err)
	require.NoError(t, c.AddDependency(dsp, core))
	require.NoError(t, c.AddDependency(gui, core))

	_, err = c.DeclareTarget("T", "acme", "Acme", "Plg1", []string{"VST3", "AU"}, dsp, gui)
	require.NoError(t, err)

	graph, err := c.Assemble()
	require.NoError(t, err)
	return graph
}

func TestRun(t *testing.T) {
	t.Run("executes every node once respecting the partial order", func(t *testing.T) {
		graph := testGraph(t)
		tc := &recordingToolchain{}

		err := New(graph, 4, tc).Run(context.Background())
		require.NoError(t, err)

		// 3 compiles + 2 links, each exactly once.
		require.Len(t, tc.events, 5)

		corePos := tc.position("compile:core")
		dspPos := tc.position("compile:dsp")
		guiPos := tc.position("compile:gui")
		require.GreaterOrEqual(t, corePos, 0)
		assert.Greater(t, dspPos, corePos)
		assert.Greater(t, guiPos, corePos)

		for _, link := range []string{"link:T.VST3", "link:T.AU"} {
			linkPos := tc.position(link)
			require.GreaterOrEqual(t, linkPos, 0)
			assert.Greater(t, linkPos, dspPos)
			assert.Greater(t, linkPos, guiPos)
		}
	})

	t.Run("failed compile skips dependents and reports the root cause", func(t *testing.T) {
		graph := testGraph(t)
		tc := &recordingToolchain{failModule: "core"}

		err := New(graph, 2, tc).Run(context.Background())
		require.Error(t, err)
		assert.ErrorContains(t, err, "compiler exploded")
		assert.ErrorContains(t, err, "module.core")

		// Nothing downstream of core may have run.
		assert.Equal(t, -1, tc.position("compile:dsp"))
		assert.Equal(t, -1, tc.position("compile:gui"))
		assert.Equal(t, -1, tc.position("link:T.VST3"))
		assert.Equal(t, -1, tc.position("link:T.AU"))
	})

	t.Run("single worker still completes the whole graph", func(t *testing.T) {
		graph := testGraph(t)
		tc := &recordingToolchain{}

		err := New(graph, 1, tc).Run(context.Background())
		require.NoError(t, err)
		assert.Len(t, tc.events, 5)
	})

	t.Run("failure in one branch does not hang nodes queued in another", func(t *testing.T) {
		// The failing module and the a->b chain are independent, so a is
		// often already queued when the failure cancels the run. Its skip
		// must still propagate to b or the run never finishes. The orderings
		// race, so repeat to cover both.
		for i := 0; i < 20; i++ {
			graph := branchedGraph(t)
			tc := &recordingToolchain{failModule: "flaky"}

			done := make(chan error, 1)
			go func() { done <- New(graph, 1, tc).Run(context.Background()) }()

			select {
			case err := <-done:
				require.Error(t, err)
				assert.ErrorContains(t, err, "compiler exploded")
			case <-time.After(5 * time.Second):
				t.Fatal("Run did not return after a branch failure")
			}
		}
	})

	t.Run("caller cancellation is reported, not swallowed", func(t *testing.T) {
		graph := testGraph(t)
		tc := &recordingToolchain{}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := New(graph, 2, tc).Run(ctx)
		require.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, tc.events)
	})
}

// branchedGraph builds a graph with a module that has no relation to the
// a->b chain, so its failure races against work queued in the other branch.
func branchedGraph(t *testing.T) *composer.BuildGraph {
	t.Helper()
	reg := registry.New()
	reg.RegisterFormat(registry.FormatHandler{Name: "VST3", Kind: registry.KindPluginBundle, Extension: ".vst3"})

	c, err := composer.New(composer.Project{Name: "P", Version: "1.0.0"}, reg)
	require.NoError(t, err)

	flaky, err := c.DeclareModule("flaky", "src/flaky")
	require.NoError(t, err)
	a, err := c.DeclareModule("a", "src/a")
	require.NoError(t, err)
	b, err := c.DeclareModule("b", "src/b")
	require.NoError(t, err)
	require.NoError(t, c.AddDependency(b, a))

	_, err = c.DeclareTarget("T", "acme", "Acme", "Plg1", []string{"VST3"}, flaky, b)
	require.NoError(t, err)

	graph, err := c.Assemble()
	require.NoError(t, err)
	return graph
}

func TestRenderTemplate(t *testing.T) {
	cmd := renderTemplate("cc -c {source_root} {defines} # {module}", map[string]string{
		"module":      "core",
		"source_root": "src/core",
		"defines":     "-DX=1",
	})
	assert.Equal(t, "cc -c src/core -DX=1 # core", cmd)
}

func TestRenderDefines(t *testing.T) {
	assert.Equal(t, "-DA=1 -DB=0", renderDefines([]string{"A=1", "B=0"}))
	assert.Equal(t, "", renderDefines(nil))
}
