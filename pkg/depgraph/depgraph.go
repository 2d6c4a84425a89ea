package depgraph

import (
	"errors"
	"fmt"
	"slices"
	"sort"
)

var (
	// ErrEmptyGraph is returned by [New] when the declaration has no modules.
	ErrEmptyGraph = errors.New("declaration must contain at least one module")

	// ErrInvalidModuleID is returned by [New] when a module ID is empty.
	// All modules must have non-empty identifiers.
	ErrInvalidModuleID = errors.New("module ID must not be empty")

	// ErrSelfDependency is returned by [New] when a module lists itself as a
	// prerequisite. Such a declaration can never form a valid order.
	ErrSelfDependency = errors.New("module depends on itself")
)

// Dangling records a prerequisite reference that does not correspond to any
// declared module. It is a declaration-quality finding, not a fatal error.
type Dangling struct {
	Module     string // declared module carrying the reference
	Dependency string // undeclared prerequisite identifier
}

func (d Dangling) String() string {
	return fmt.Sprintf("module %q depends on undeclared module %q", d.Module, d.Dependency)
}

// Graph is an immutable dependency graph. Vertices are the declaration keys;
// an edge dep→module exists for each declared (module, dep) pair where dep is
// itself a declared module.
//
// The zero value is not usable - use [New] to build a Graph from a
// declaration mapping.
type Graph struct {
	modules    []string            // sorted vertex set
	prereqs    map[string][]string // declaration order, including dangling refs
	dependents map[string][]string // edge dep -> dependents, in-set only
	indegree   map[string]int      // in-set prerequisite count per module
	dangling   []Dangling
	edgeCount  int
}

// New builds a Graph from a declaration mapping. The mapping is copied, so
// the caller may reuse or modify it afterwards.
//
// Returns ErrEmptyGraph for an empty mapping, ErrInvalidModuleID if any key
// is empty, or ErrSelfDependency if a module lists itself as a prerequisite.
// Dangling prerequisites (references to undeclared modules) are recorded, not
// rejected - retrieve them with [Graph.Dangling].
func New(decl map[string][]string) (*Graph, error) {
	if len(decl) == 0 {
		return nil, ErrEmptyGraph
	}

	g := &Graph{
		prereqs:    make(map[string][]string, len(decl)),
		dependents: make(map[string][]string, len(decl)),
		indegree:   make(map[string]int, len(decl)),
	}

	for id, deps := range decl {
		if id == "" {
			return nil, ErrInvalidModuleID
		}
		g.modules = append(g.modules, id)
		g.prereqs[id] = slices.Clone(deps)
		g.indegree[id] = 0
	}
	sort.Strings(g.modules)

	// Deterministic traversal keeps the dangling list and adjacency order
	// stable across runs.
	for _, id := range g.modules {
		for _, dep := range g.prereqs[id] {
			if dep == id {
				return nil, fmt.Errorf("module %q: %w", id, ErrSelfDependency)
			}
			if _, declared := g.prereqs[dep]; !declared {
				g.dangling = append(g.dangling, Dangling{Module: id, Dependency: dep})
				continue
			}
			g.dependents[dep] = append(g.dependents[dep], id)
			g.indegree[id]++
			g.edgeCount++
		}
	}

	return g, nil
}

// Modules returns the declared module IDs in lexicographic order.
// The returned slice is a copy and can be modified freely.
func (g *Graph) Modules() []string { return slices.Clone(g.modules) }

// Has reports whether id is a declared module.
func (g *Graph) Has(id string) bool {
	_, ok := g.prereqs[id]
	return ok
}

// Prerequisites returns the declared prerequisites of id in declaration
// order, including dangling references. Returns nil for unknown modules.
// The returned slice is a copy.
func (g *Graph) Prerequisites(id string) []string { return slices.Clone(g.prereqs[id]) }

// Dependents returns the declared modules that list id as a prerequisite.
// The returned slice is a copy.
func (g *Graph) Dependents(id string) []string { return slices.Clone(g.dependents[id]) }

// ModuleCount returns the number of declared modules.
func (g *Graph) ModuleCount() int { return len(g.modules) }

// EdgeCount returns the number of in-set dependency edges. Dangling
// references are not edges.
func (g *Graph) EdgeCount() int { return g.edgeCount }

// Dangling returns every prerequisite reference that does not correspond to a
// declared module, ordered by module then declaration position. The returned
// slice is a copy.
func (g *Graph) Dangling() []Dangling { return slices.Clone(g.dangling) }
