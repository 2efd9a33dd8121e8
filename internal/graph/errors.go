// Copyright (C) 2025 Depscope Contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package graph builds and orders the module dependency graph.
//
// # Ownership Model
//
// A Graph is constructed once from a discovered module set and never
// mutated afterwards. All accessors return copies, so callers may hold
// and share a Graph across goroutines without coordination.
//
// # Error Policy
//
// Construction rejects graphs that cannot support impact analysis:
// references to modules that do not exist and dependency cycles. Both
// are configuration errors in the workspace, not runtime conditions,
// so they are reported eagerly at build time rather than on first
// traversal.
package graph

import (
	"fmt"
	"strings"
)

// UnknownReferenceError reports a manifest dependency naming a module
// that does not exist in the workspace.
type UnknownReferenceError struct {
	// Module is the module whose manifest holds the bad reference.
	Module string

	// Missing is the referenced name that matched no module.
	Missing string
}

func (e *UnknownReferenceError) Error() string {
	return fmt.Sprintf("module %q depends on %q, which does not exist in the workspace", e.Module, e.Missing)
}

// Kind returns the stable error category name.
func (e *UnknownReferenceError) Kind() string { return "UnknownModuleReference" }

// CycleError reports a dependency cycle.
type CycleError struct {
	// Path is the cycle as a module sequence whose first and last
	// elements are the same module, e.g. ["a", "b", "a"].
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("circular dependency: %s", strings.Join(e.Path, " -> "))
}

// Kind returns the stable error category name.
func (e *CycleError) Kind() string { return "CircularDependency" }

// UnknownModuleError reports a query against a module name that is not
// part of the graph.
type UnknownModuleError struct {
	// Name is the queried module name.
	Name string
}

func (e *UnknownModuleError) Error() string {
	return fmt.Sprintf("unknown module %q", e.Name)
}

// Kind returns the stable error category name.
func (e *UnknownModuleError) Kind() string { return "UnknownModuleQuery" }
