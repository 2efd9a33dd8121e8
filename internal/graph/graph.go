// Copyright (C) 2025 Depscope Contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package graph

import "sort"

// Graph is the validated module dependency graph.
//
// # Description
//
// Holds forward edges (module to its dependencies) and reverse edges
// (module to its dependents), both with sorted, deduplicated neighbor
// lists. Construction via Build guarantees the graph is acyclic and
// every edge endpoint exists.
//
// # Thread Safety
//
// Immutable after Build. Safe for concurrent use.
type Graph struct {
	nodes    []string
	forward  map[string][]string
	reverse  map[string][]string
	order    []string
	position map[string]int
}

// Modules returns all module names in lexical order.
func (g *Graph) Modules() []string {
	out := make([]string, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Has reports whether name is a module in the graph.
func (g *Graph) Has(name string) bool {
	_, ok := g.forward[name]
	return ok
}

// Dependencies returns the direct dependencies of name, sorted.
func (g *Graph) Dependencies(name string) ([]string, error) {
	deps, ok := g.forward[name]
	if !ok {
		return nil, &UnknownModuleError{Name: name}
	}
	out := make([]string, len(deps))
	copy(out, deps)
	return out, nil
}

// Dependents returns the direct dependents of name, sorted.
func (g *Graph) Dependents(name string) ([]string, error) {
	deps, ok := g.reverse[name]
	if !ok {
		return nil, &UnknownModuleError{Name: name}
	}
	out := make([]string, len(deps))
	copy(out, deps)
	return out, nil
}

// Order returns the full build order, dependencies before dependents.
// The order is total and deterministic for a given module set.
func (g *Graph) Order() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// SortInOrder returns the members of names that exist in the graph,
// arranged in build-order position. Names are deduplicated; unknown
// names are dropped.
func (g *Graph) SortInOrder(names []string) []string {
	seen := make(map[string]bool, len(names))
	var out []string
	for _, n := range names {
		if _, ok := g.position[n]; ok && !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return g.position[out[i]] < g.position[out[j]] })
	return out
}
