// Copyright (C) 2025 Depscope Contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package impact

import "github.com/depscope/depscope/internal/graph"

// Closure computes the full impact set for a seed of directly changed
// modules.
//
// # Description
//
// Breadth-first traversal over reverse edges starting from every seed
// module at once. The visited set makes the traversal terminate and
// include each module exactly once even with diamond-shaped dependent
// chains. The result is arranged in build-order position so a build
// driver can execute it directly.
//
// Seed names not present in the graph are ignored; validation happens
// upstream.
func Closure(g *graph.Graph, seeds []string) []string {
	visited := make(map[string]bool, len(seeds))
	var queue []string
	for _, s := range seeds {
		if !g.Has(s) || visited[s] {
			continue
		}
		visited[s] = true
		queue = append(queue, s)
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		dependents, err := g.Dependents(current)
		if err != nil {
			continue
		}
		for _, d := range dependents {
			if visited[d] {
				continue
			}
			visited[d] = true
			queue = append(queue, d)
		}
	}

	members := make([]string, 0, len(visited))
	for name := range visited {
		members = append(members, name)
	}
	return g.SortInOrder(members)
}
