// Copyright (C) 2025 Depscope Contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package impact

import (
	"github.com/depscope/depscope/internal/classify"
	"github.com/depscope/depscope/internal/graph"
)

// Analysis is the outcome of mapping a change set onto the module
// graph.
type Analysis struct {
	// Impacted is the full impact closure in build order.
	Impacted []string

	// Direct is the set of modules whose own files changed, in build
	// order. Subset of Impacted.
	Direct []string

	// WorkspaceWide reports that at least one changed path forced the
	// whole workspace to be treated as changed.
	WorkspaceWide bool

	// Classifications records the per-path classification, in input
	// order, for reporting.
	Classifications []classify.Result
}

// Analyzer maps changed paths to the modules that must rebuild.
//
// # Thread Safety
//
// Immutable after construction. Safe for concurrent use.
type Analyzer struct {
	graph      *graph.Graph
	classifier *classify.Classifier
}

// NewAnalyzer creates an Analyzer over a validated graph.
func NewAnalyzer(g *graph.Graph, c *classify.Classifier) *Analyzer {
	return &Analyzer{graph: g, classifier: c}
}

// Analyze classifies each changed path and computes the impact
// closure.
//
// # Description
//
// Paths owned by a module seed that module. A workspace-wide or
// unclassified path short-circuits impact to every module; docs-only
// paths seed nothing. An empty change set yields an empty impact set.
func (a *Analyzer) Analyze(paths []string) Analysis {
	var out Analysis
	seedSet := make(map[string]bool)

	for _, p := range paths {
		r := a.classifier.Classify(p)
		out.Classifications = append(out.Classifications, r)

		switch {
		case r.Module != "":
			seedSet[r.Module] = true
		case r.Category == classify.CategoryDocs:
			// No build effect.
		default:
			out.WorkspaceWide = true
		}
	}

	if out.WorkspaceWide {
		out.Impacted = a.graph.Order()
		out.Direct = a.graph.Order()
		return out
	}

	seeds := make([]string, 0, len(seedSet))
	for name := range seedSet {
		seeds = append(seeds, name)
	}
	out.Direct = a.graph.SortInOrder(seeds)
	out.Impacted = Closure(a.graph, seeds)
	return out
}

// EverythingImpacted returns an Analysis marking every module
// impacted. Used for the conservative fallback when change detection
// cannot establish a baseline.
func (a *Analyzer) EverythingImpacted() Analysis {
	return Analysis{
		Impacted:      a.graph.Order(),
		Direct:        a.graph.Order(),
		WorkspaceWide: true,
	}
}
