package analyses

import (
	"fmt"
	"sort"
	"sync"

	"github.com/starfold-labs/starfold/pkg/fold"
)

// Analysis describes one registered analysis: its result name, a short
// doc line for listings, its default options, and a builder producing
// an applier configured with the merged options.
type Analysis struct {
	Name     string
	Doc      string
	Defaults map[string]any
	Build    func(opts map[string]any) (fold.Applier, error)
}

// globalRegistry is the single registry all analyses register into.
var globalRegistry = &registry{byName: make(map[string]Analysis)}

type registry struct {
	mu     sync.RWMutex
	byName map[string]Analysis
}

// Register adds an analysis to the registry. Call from init() in the
// file defining the analysis.
func Register(a Analysis) {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	globalRegistry.byName[a.Name] = a
}

// Get returns the analysis registered under name.
func Get(name string) (Analysis, bool) {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	a, ok := globalRegistry.byName[name]
	return a, ok
}

// All returns every registered analysis, sorted by name.
func All() []Analysis {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	out := make([]Analysis, 0, len(globalRegistry.byName))
	for _, a := range globalRegistry.byName {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Names returns the registered analysis names, sorted.
func Names() []string {
	all := All()
	names := make([]string, len(all))
	for i, a := range all {
		names[i] = a.Name
	}
	return names
}

// BuildAll resolves each name against the registry and builds its
// applier with the given per-analysis options.
func BuildAll(names []string, opts map[string]map[string]any) ([]fold.Applier, error) {
	out := make([]fold.Applier, 0, len(names))
	for _, name := range names {
		a, ok := Get(name)
		if !ok {
			return nil, fmt.Errorf("unknown analysis %q (have %v)", name, Names())
		}
		merged := mergeOptions(a.Defaults, opts[name])
		applier, err := a.Build(merged)
		if err != nil {
			return nil, fmt.Errorf("build analysis %q: %w", name, err)
		}
		out = append(out, applier)
	}
	return out, nil
}

// mergeOptions overlays opts on defaults without mutating either.
func mergeOptions(defaults, opts map[string]any) map[string]any {
	merged := make(map[string]any, len(defaults)+len(opts))
	for k, v := range defaults {
		merged[k] = v
	}
	for k, v := range opts {
		merged[k] = v
	}
	return merged
}

// plain wraps an interpretation whose applier needs no options and no
// implicit context.
func plain[R any](in *fold.Interp[R]) func(map[string]any) (fold.Applier, error) {
	return func(map[string]any) (fold.Applier, error) {
		return in.Applier(), nil
	}
}
