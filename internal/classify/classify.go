// Copyright (C) 2025 Depscope Contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package classify maps changed file paths to modules or workspace-wide
// categories.
package classify

import (
	"path"
	"sort"
	"strings"
)

// Category labels for paths that do not belong to a single module.
const (
	// CategoryWorkspace marks paths whose change affects every module,
	// such as shared build configuration.
	CategoryWorkspace = "workspace-wide"

	// CategoryDocs marks paths whose change affects no module at all.
	CategoryDocs = "docs-only"

	// CategoryUnclassified marks paths matching no module root and no
	// configured pattern. Treated conservatively as workspace-wide by
	// impact analysis.
	CategoryUnclassified = "unclassified"
)

// Result is the classification of one changed path.
type Result struct {
	// Path is the workspace-relative path that was classified.
	Path string

	// Module is the owning module name when the path lies under a
	// module root, empty otherwise.
	Module string

	// Category is one of the Category constants when Module is empty.
	Category string
}

// Classifier assigns changed paths to modules or categories.
//
// # Thread Safety
//
// Immutable after New. Safe for concurrent use.
type Classifier struct {
	// roots maps module RelRoot (slash-separated, no trailing slash)
	// to module name, with roots sorted longest-first for matching.
	roots             []rootEntry
	workspacePatterns []string
	docsPatterns      []string
}

type rootEntry struct {
	rel  string
	name string
}

// New builds a Classifier from module roots and the configured path
// patterns. moduleRoots maps workspace-relative root to module name.
func New(moduleRoots map[string]string, workspacePatterns, docsPatterns []string) *Classifier {
	c := &Classifier{
		workspacePatterns: append([]string(nil), workspacePatterns...),
		docsPatterns:      append([]string(nil), docsPatterns...),
	}
	for rel, name := range moduleRoots {
		c.roots = append(c.roots, rootEntry{rel: strings.TrimSuffix(rel, "/"), name: name})
	}
	// Longest root wins so nested roots shadow their parents; ties
	// cannot happen because roots are unique paths.
	sort.Slice(c.roots, func(i, j int) bool {
		if len(c.roots[i].rel) != len(c.roots[j].rel) {
			return len(c.roots[i].rel) > len(c.roots[j].rel)
		}
		return c.roots[i].rel < c.roots[j].rel
	})
	return c
}

// Classify assigns one workspace-relative, slash-separated path.
//
// Module roots are checked first, then workspace patterns, then docs
// patterns. Anything left is unclassified.
func (c *Classifier) Classify(p string) Result {
	p = strings.TrimPrefix(path.Clean(p), "./")

	for _, root := range c.roots {
		if p == root.rel || strings.HasPrefix(p, root.rel+"/") {
			return Result{Path: p, Module: root.name}
		}
	}
	if matchAny(c.workspacePatterns, p) {
		return Result{Path: p, Category: CategoryWorkspace}
	}
	if matchAny(c.docsPatterns, p) {
		return Result{Path: p, Category: CategoryDocs}
	}
	return Result{Path: p, Category: CategoryUnclassified}
}

// matchAny reports whether p matches any pattern. A pattern ending in
// "/" matches every path under that directory; any other pattern is a
// glob tested against the path's base name and against the whole path.
func matchAny(patterns []string, p string) bool {
	base := path.Base(p)
	for _, pat := range patterns {
		if strings.HasSuffix(pat, "/") {
			dir := strings.TrimSuffix(pat, "/")
			if p == dir || strings.HasPrefix(p, dir+"/") {
				return true
			}
			continue
		}
		if ok, _ := path.Match(pat, base); ok {
			return true
		}
		if ok, _ := path.Match(pat, p); ok {
			return true
		}
	}
	return false
}
