// Copyright (C) 2025 Depscope Contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package graph

// Traversal colors for cycle detection.
const (
	colorUnvisited = iota
	colorInProgress
	colorDone
)

// topoSort orders nodes so that every module appears after all of its
// dependencies.
//
// # Description
//
// Recursive depth-first sort over the forward adjacency. Nodes and
// neighbor lists are visited in lexical order, so the result depends
// only on the edge set, never on map iteration. A node still in
// progress when revisited closes a cycle; the error carries the cycle
// members in traversal order.
//
// nodes must be sorted and forward's neighbor lists must be sorted;
// Build guarantees both.
func topoSort(nodes []string, forward map[string][]string) ([]string, error) {
	color := make(map[string]int, len(nodes))
	order := make([]string, 0, len(nodes))
	var stack []string

	var visit func(name string) error
	visit = func(name string) error {
		switch color[name] {
		case colorDone:
			return nil
		case colorInProgress:
			return &CycleError{Path: cyclePath(stack, name)}
		}

		color[name] = colorInProgress
		stack = append(stack, name)
		for _, dep := range forward[name] {
			if err := visit(dep); err != nil {
				return err
			}
		}
		stack = stack[:len(stack)-1]
		color[name] = colorDone

		// Dependencies finish before the node itself, so appending in
		// finish order yields dependencies-first directly.
		order = append(order, name)
		return nil
	}

	for _, name := range nodes {
		if err := visit(name); err != nil {
			return nil, err
		}
	}
	return order, nil
}

// cyclePath extracts the cycle from the traversal stack: the segment
// from the first occurrence of repeated to the top, closed with
// repeated again.
func cyclePath(stack []string, repeated string) []string {
	start := 0
	for i, name := range stack {
		if name == repeated {
			start = i
			break
		}
	}
	path := make([]string, 0, len(stack)-start+1)
	path = append(path, stack[start:]...)
	path = append(path, repeated)
	return path
}
