package composer

import (
	"fmt"
	"sort"
)

// Visibility controls how far a feature flag propagates.
type Visibility int

const (
	// Public flags are visible identically to every translation unit in the
	// scope and in everything that links the scope.
	Public Visibility = iota
	// Private flags stay within the declaring scope.
	Private
)

// String implements fmt.Stringer for log output.
func (v Visibility) String() string {
	if v == Public {
		return "public"
	}
	return "private"
}

// flagTable holds one scope's flags, split by visibility.
type flagTable struct {
	public  map[string]string
	private map[string]string
}

func newFlagTable() flagTable {
	return flagTable{
		public:  make(map[string]string),
		private: make(map[string]string),
	}
}

// merge applies flags at the given visibility, last-write-wins per name.
func (t *flagTable) merge(vis Visibility, flags map[string]string) {
	dst := t.public
	if vis == Private {
		dst = t.private
	}
	for name, value := range flags {
		dst[name] = value
	}
}

// define is one entry in an accumulated compile environment, tagged with the
// scope that contributed it so conflicts can name both sides.
type define struct {
	value  string
	source string
}

// defineEnv accumulates the effective preprocessor defines for one compile
// or link environment, rejecting conflicting assignments.
type defineEnv map[string]define

// add merges one flag into the environment. Re-asserting the same value from
// another scope is fine; a different value is a FlagConflictError.
func (env defineEnv) add(name, value, source string) error {
	if existing, ok := env[name]; ok {
		if existing.value != value {
			return &FlagConflictError{
				Flag:   name,
				ScopeA: existing.source,
				ValueA: existing.value,
				ScopeB: source,
				ValueB: value,
			}
		}
		return nil
	}
	env[name] = define{value: value, source: source}
	return nil
}

// addAll merges a whole flag map from one source scope. Names are visited
// in sorted order so that any conflict is reported deterministically.
func (env defineEnv) addAll(flags map[string]string, source string) error {
	names := make([]string, 0, len(flags))
	for name := range flags {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := env.add(name, flags[name], source); err != nil {
			return err
		}
	}
	return nil
}

// render flattens the environment into sorted NAME=value strings, the form
// a compiler's -D option consumes. Sorting keeps output byte-stable.
func (env defineEnv) render() []string {
	out := make([]string, 0, len(env))
	for name, d := range env {
		out = append(out, fmt.Sprintf("%s=%s", name, d.value))
	}
	sort.Strings(out)
	return out
}
