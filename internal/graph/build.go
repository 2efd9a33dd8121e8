// Copyright (C) 2025 Depscope Contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package graph

import (
	"sort"

	"github.com/depscope/depscope/internal/workspace"
)

// Build constructs a validated Graph from a discovered module set.
//
// # Description
//
// Validates that every declared dependency names a module in the set,
// deduplicates repeated declarations, builds the
// reverse adjacency, and computes the total build order. Any
// validation failure invalidates the whole graph.
//
// # Inputs
//
//   - modules: Discovered modules. May be empty.
//
// # Outputs
//
//   - *Graph: The validated graph.
//   - error: *UnknownReferenceError or *CycleError.
func Build(modules []workspace.Module) (*Graph, error) {
	g := &Graph{
		nodes:    make([]string, 0, len(modules)),
		forward:  make(map[string][]string, len(modules)),
		reverse:  make(map[string][]string, len(modules)),
		position: make(map[string]int, len(modules)),
	}

	for _, m := range modules {
		g.nodes = append(g.nodes, m.Name)
		g.forward[m.Name] = nil
		g.reverse[m.Name] = nil
	}
	sort.Strings(g.nodes)

	for _, m := range modules {
		seen := make(map[string]bool, len(m.Dependencies))
		for _, dep := range m.Dependencies {
			if _, ok := g.forward[dep]; !ok {
				return nil, &UnknownReferenceError{Module: m.Name, Missing: dep}
			}
			if dep == m.Name {
				return nil, &CycleError{Path: []string{m.Name, m.Name}}
			}
			if seen[dep] {
				continue
			}
			seen[dep] = true
			g.forward[m.Name] = append(g.forward[m.Name], dep)
			g.reverse[dep] = append(g.reverse[dep], m.Name)
		}
	}

	for _, adj := range []map[string][]string{g.forward, g.reverse} {
		for name := range adj {
			sort.Strings(adj[name])
		}
	}

	order, err := topoSort(g.nodes, g.forward)
	if err != nil {
		return nil, err
	}
	g.order = order
	for i, name := range order {
		g.position[name] = i
	}

	return g, nil
}
