package depgraph

import (
	"fmt"
	"maps"
	"sort"
	"strings"
)

// SortResult is the outcome of a topological sort.
//
// When OK is true, Order contains every declared module exactly once, each
// after all of its in-set prerequisites. When OK is false, Order is the
// partial order that could be resolved and Unresolved names the modules stuck
// in a dependency cycle.
type SortResult struct {
	Order      []string // resolved modules, dependency-consistent
	OK         bool     // true when every module was ordered
	Unresolved []string // modules left in a cycle, sorted; empty when OK
	Detail     string   // human-readable failure summary; empty when OK
}

// Sort computes the canonical topological order using Kahn's algorithm.
//
// The frontier of zero-in-degree modules is re-sorted lexicographically
// before every extraction, so the output is fully deterministic: the same
// declaration always produces the same order, regardless of map iteration
// order. Dangling prerequisites do not contribute to in-degrees.
//
// A cycle is reported, not fatal: Sort returns the partial order it could
// build plus the unresolved module set, and always terminates after at most
// one extraction per module.
func (g *Graph) Sort() SortResult {
	indegree := maps.Clone(g.indegree)

	frontier := make([]string, 0, len(g.modules))
	for _, id := range g.modules {
		if indegree[id] == 0 {
			frontier = append(frontier, id)
		}
	}

	order := make([]string, 0, len(g.modules))
	for len(frontier) > 0 {
		sort.Strings(frontier)
		id := frontier[0]
		frontier = frontier[1:]
		order = append(order, id)

		for _, dependent := range g.dependents[id] {
			indegree[dependent]--
			if indegree[dependent] == 0 {
				frontier = append(frontier, dependent)
			}
		}
	}

	if len(order) == len(g.modules) {
		return SortResult{Order: order, OK: true}
	}

	resolved := make(map[string]struct{}, len(order))
	for _, id := range order {
		resolved[id] = struct{}{}
	}
	unresolved := make([]string, 0, len(g.modules)-len(order))
	for _, id := range g.modules {
		if _, ok := resolved[id]; !ok {
			unresolved = append(unresolved, id)
		}
	}

	return SortResult{
		Order:      order,
		OK:         false,
		Unresolved: unresolved,
		Detail:     fmt.Sprintf("circular or unresolvable dependencies: %s", strings.Join(unresolved, ", ")),
	}
}
