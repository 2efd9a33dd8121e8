// Copyright (C) 2025 Depscope Contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package resolver is the query facade over one workspace snapshot.
//
// # Description
//
// A Resolver is built once per invocation from the manifests on disk
// and answers every query from that immutable snapshot. There is no
// refresh; callers wanting newer answers build a new Resolver.
//
// # Thread Safety
//
// Resolver is immutable after New and safe for concurrent use.
package resolver

import (
	"context"
	"sort"

	"github.com/depscope/depscope/internal/classify"
	"github.com/depscope/depscope/internal/config"
	"github.com/depscope/depscope/internal/graph"
	"github.com/depscope/depscope/internal/impact"
	"github.com/depscope/depscope/internal/workspace"
	"github.com/depscope/depscope/pkg/logging"
)

// Resolver answers dependency and impact queries for one workspace
// snapshot.
type Resolver struct {
	modules  []workspace.Module
	graph    *graph.Graph
	analyzer *impact.Analyzer
}

// New discovers the workspace under root, validates the graph, and
// returns a ready Resolver.
//
// # Inputs
//
//   - ctx: Context for cancellation. Must not be nil.
//   - root: Workspace root directory.
//   - cfg: Workspace configuration.
//   - log: Logger. Must not be nil.
//
// # Outputs
//
//   - *Resolver: The resolver instance.
//   - error: Discovery or graph validation failure.
func New(ctx context.Context, root string, cfg config.Config, log *logging.Logger) (*Resolver, error) {
	modules, err := workspace.Discover(ctx, root, cfg)
	if err != nil {
		return nil, err
	}

	g, err := graph.Build(modules)
	if err != nil {
		return nil, err
	}

	roots := make(map[string]string, len(modules))
	for _, m := range modules {
		roots[m.RelRoot] = m.Name
	}
	classifier := classify.New(roots, cfg.WorkspacePatterns, cfg.DocsPatterns)

	log.Debug("workspace resolved", "modules", len(modules), "root", root)

	return &Resolver{
		modules:  modules,
		graph:    g,
		analyzer: impact.NewAnalyzer(g, classifier),
	}, nil
}

// Modules returns the discovered modules, sorted by name.
func (r *Resolver) Modules() []workspace.Module {
	out := make([]workspace.Module, len(r.modules))
	copy(out, r.modules)
	return out
}

// Order returns the full build order, dependencies before dependents.
func (r *Resolver) Order() []string {
	return r.graph.Order()
}

// OrderTo returns the build order restricted to name and its
// transitive dependencies.
func (r *Resolver) OrderTo(name string) ([]string, error) {
	if !r.graph.Has(name) {
		return nil, &graph.UnknownModuleError{Name: name}
	}

	needed := map[string]bool{name: true}
	stack := []string{name}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		deps, err := r.graph.Dependencies(current)
		if err != nil {
			return nil, err
		}
		for _, d := range deps {
			if needed[d] {
				continue
			}
			needed[d] = true
			stack = append(stack, d)
		}
	}

	members := make([]string, 0, len(needed))
	for n := range needed {
		members = append(members, n)
	}
	sort.Strings(members)
	return r.graph.SortInOrder(members), nil
}

// DependenciesOf returns the direct dependencies of name, sorted.
func (r *Resolver) DependenciesOf(name string) ([]string, error) {
	return r.graph.Dependencies(name)
}

// DependentsOf returns the direct dependents of name, sorted.
func (r *Resolver) DependentsOf(name string) ([]string, error) {
	return r.graph.Dependents(name)
}

// ImpactedBy classifies the changed paths and returns the impact
// closure in build order.
func (r *Resolver) ImpactedBy(paths []string) impact.Analysis {
	return r.analyzer.Analyze(paths)
}

// AllImpacted returns the conservative full-workspace impact set. Used
// when change detection has no usable baseline.
func (r *Resolver) AllImpacted() impact.Analysis {
	return r.analyzer.EverythingImpacted()
}
