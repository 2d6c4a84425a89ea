// Package depgraph provides the dependency graph at the heart of topoplan.
//
// # Overview
//
// A [Graph] maps each declared module to its prerequisite modules. The set of
// vertices is fixed at construction time from the declaration keys; edges run
// from prerequisite to dependent, so a valid build order lists every module
// after all of its prerequisites.
//
// Build a graph from a declaration mapping:
//
//	g, err := depgraph.New(map[string][]string{
//	    "config":  {},
//	    "logging": {"config"},
//	})
//
// Compute the canonical order with [Graph.Sort]. The sort is Kahn's algorithm
// with a lexicographically re-sorted frontier, so the same declaration always
// yields the same order even when many valid topological orders exist. When
// the declaration contains a cycle, Sort returns the partial order plus the
// set of unresolved modules instead of failing.
//
// # Data quality
//
// A prerequisite that is not itself a declared module is a dangling
// dependency. Dangling dependencies are ignored when computing in-degrees
// (they cannot gate anything that exists) but are reported by
// [Graph.Dangling] so callers can surface the declaration problem.
//
// Self-dependencies are rejected at construction: a module that lists itself
// as a prerequisite can never be ordered and the declaration is statically
// wrong.
//
// # Concurrency
//
// A Graph is immutable after New returns and safe for concurrent readers.
package depgraph
