package composer

import (
	"errors"
	"fmt"
	"sort"

	"github.com/vk/plugforge/internal/dag"
)

// Assemble resolves the declared module and target graph into a BuildGraph:
// a deterministic topological ordering of modules plus one link job per
// target×format pair. On success the composer freezes; any later
// declaration, and any further Assemble call, fails with FrozenGraphError.
//
// All errors are fatal: no partial graph is ever returned.
func (c *Composer) Assemble() (*BuildGraph, error) {
	if c.assembled {
		return nil, &FrozenGraphError{Op: "Assemble"}
	}

	order, err := c.sortModules()
	if err != nil {
		return nil, err
	}

	position := make(map[string]int, len(order))
	for i, name := range order {
		position[name] = i
	}

	depClosure := c.moduleClosures(order)

	moduleEnvs, err := c.moduleEnvironments(order, depClosure)
	if err != nil {
		return nil, err
	}

	targetClosures := make(map[string][]string, len(c.targets))
	for _, tname := range c.targetOrder {
		targetClosures[tname] = c.targetClosure(c.targets[tname], depClosure, position)
	}

	// Target public flags must reach every module the target links, with no
	// partial application.
	for _, tname := range c.targetOrder {
		t := c.targets[tname]
		for _, mname := range targetClosures[tname] {
			if err := moduleEnvs[mname].addAll(t.flags.public, t.scopeSource()); err != nil {
				return nil, err
			}
		}
	}

	graph := &BuildGraph{
		Project: ProjectInfo{
			Name:    c.project.Name,
			Version: c.project.Version,
			Company: c.project.Company,
		},
		ModuleOrder: order,
	}

	for _, name := range order {
		m := c.modules[name]
		graph.Modules = append(graph.Modules, ModuleSpec{
			Name:       name,
			SourceRoot: m.sourceRoot,
			DependsOn:  sortedKeys(m.dependsOn),
			Defines:    moduleEnvs[name].render(),
		})
	}

	for _, tname := range c.targetOrder {
		t := c.targets[tname]
		jobs, err := c.targetJobs(t, targetClosures[tname])
		if err != nil {
			return nil, err
		}
		graph.Jobs = append(graph.Jobs, jobs...)
	}

	c.assembled = true
	return graph, nil
}

// sortModules builds the dependency DAG and returns its deterministic
// topological order, mapping a detected cycle to CyclicDependencyError.
func (c *Composer) sortModules() ([]string, error) {
	g := dag.New()
	for name := range c.modules {
		g.AddNode(name)
	}
	for name, m := range c.modules {
		for dep := range m.dependsOn {
			if err := g.AddEdge(dep, name); err != nil {
				return nil, fmt.Errorf("error building module graph: %w", err)
			}
		}
	}

	order, err := g.TopoSort()
	if err != nil {
		var cycleErr *dag.CycleError
		if errors.As(err, &cycleErr) {
			return nil, &CyclicDependencyError{Node: cycleErr.NodeID}
		}
		return nil, err
	}
	return order, nil
}

// moduleClosures computes each module's transitive dependency set. Walking
// in topological order lets every closure reuse its dependencies' closures.
func (c *Composer) moduleClosures(order []string) map[string]map[string]struct{} {
	closures := make(map[string]map[string]struct{}, len(order))
	for _, name := range order {
		closure := make(map[string]struct{})
		for dep := range c.modules[name].dependsOn {
			closure[dep] = struct{}{}
			for transitive := range closures[dep] {
				closure[transitive] = struct{}{}
			}
		}
		closures[name] = closure
	}
	return closures
}

// moduleEnvironments resolves every module's compile environment: its own
// private and public flags plus the public flags inherited from its
// transitive dependencies.
func (c *Composer) moduleEnvironments(order []string, depClosure map[string]map[string]struct{}) (map[string]defineEnv, error) {
	envs := make(map[string]defineEnv, len(order))
	for _, name := range order {
		m := c.modules[name]
		env := make(defineEnv)
		if err := env.addAll(m.flags.private, m.scopeSource()+" (private)"); err != nil {
			return nil, err
		}
		if err := env.addAll(m.flags.public, m.scopeSource()); err != nil {
			return nil, err
		}
		for _, dep := range sortedKeys(depClosure[name]) {
			if err := env.addAll(c.modules[dep].flags.public, c.modules[dep].scopeSource()); err != nil {
				return nil, err
			}
		}
		envs[name] = env
	}
	return envs, nil
}

// targetClosure expands a target's direct module list into its transitive
// closure, ordered by topological position so link inputs are dependency-first.
func (c *Composer) targetClosure(t *targetEntry, depClosure map[string]map[string]struct{}, position map[string]int) []string {
	seen := make(map[string]struct{})
	for _, name := range t.modules {
		seen[name] = struct{}{}
		for dep := range depClosure[name] {
			seen[dep] = struct{}{}
		}
	}
	closure := make([]string, 0, len(seen))
	for name := range seen {
		closure = append(closure, name)
	}
	sort.Slice(closure, func(i, j int) bool {
		return position[closure[i]] < position[closure[j]]
	})
	return closure
}

// targetJobs produces one link job per requested format. Every job for the
// same target references the identical module set and define environment.
func (c *Composer) targetJobs(t *targetEntry, closure []string) ([]Job, error) {
	env := make(defineEnv)
	if err := env.addAll(t.flags.private, t.scopeSource()+" (private)"); err != nil {
		return nil, err
	}
	if err := env.addAll(t.flags.public, t.scopeSource()); err != nil {
		return nil, err
	}
	for _, name := range closure {
		if err := env.addAll(c.modules[name].flags.public, c.modules[name].scopeSource()); err != nil {
			return nil, err
		}
	}
	defines := env.render()

	jobs := make([]Job, 0, len(t.formats))
	for _, h := range t.formats {
		jobs = append(jobs, Job{
			Target:           t.name,
			Format:           h.Name,
			Kind:             string(h.Kind),
			Artifact:         h.ArtifactName(t.productName),
			Company:          t.company,
			ManufacturerCode: t.manufacturerCode,
			ProductCode:      t.productCode,
			ProductName:      t.productName,
			Modules:          closure,
			Defines:          defines,
		})
	}
	return jobs, nil
}

func (m *moduleEntry) scopeSource() string { return "module '" + m.name + "'" }
func (t *targetEntry) scopeSource() string { return "target '" + t.name + "'" }

// sortedKeys flattens a string set into a sorted slice.
func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
