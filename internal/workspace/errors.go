// Copyright (C) 2025 Depscope Contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package workspace discovers modules and reads their manifests.
//
// A workspace is a directory tree containing one or more module
// directories (by default "modules/"), each subdirectory of which is a
// module root holding a manifest (by default "module.toml") that declares
// the module's name and its direct dependencies on other modules.
//
// # Ownership Model
//
// Discover returns a fresh []Module slice each call. Modules are plain
// values and are never mutated after discovery; manifests are the source
// of truth and are re-read on every invocation (no persistence).
//
// # Error Policy
//
// Every discovery failure is a configuration error that aborts resolver
// construction: a partial module set could produce a wrong build order or
// silently skip impacted modules. All error types carry a Kind() string
// used by the CLI to tag its single-line error output.
package workspace

import (
	"fmt"
	"time"
)

// ManifestMissingError reports a module directory without a readable
// manifest. Fatal: the module set would otherwise be incomplete.
type ManifestMissingError struct {
	// Module is the module directory name.
	Module string

	// Path is the manifest path that was expected.
	Path string
}

func (e *ManifestMissingError) Error() string {
	return fmt.Sprintf("module %q has no readable manifest at %s", e.Module, e.Path)
}

// Kind returns the error taxonomy tag.
func (e *ManifestMissingError) Kind() string { return "ManifestMissing" }

// ManifestParseError reports a manifest that exists but cannot be decoded.
type ManifestParseError struct {
	Module string
	Path   string
	Err    error
}

func (e *ManifestParseError) Error() string {
	return fmt.Sprintf("module %q: parsing %s: %v", e.Module, e.Path, e.Err)
}

func (e *ManifestParseError) Unwrap() error { return e.Err }

// Kind returns the error taxonomy tag.
func (e *ManifestParseError) Kind() string { return "ManifestInvalid" }

// ManifestTimeoutError reports that manifest reads exceeded the configured
// I/O budget. Distinct from other manifest errors so callers can tell
// "slow filesystem" from "broken workspace".
type ManifestTimeoutError struct {
	Timeout time.Duration
}

func (e *ManifestTimeoutError) Error() string {
	return fmt.Sprintf("reading manifests exceeded %s", e.Timeout)
}

// Kind returns the error taxonomy tag.
func (e *ManifestTimeoutError) Kind() string { return "ManifestReadTimeout" }

// DuplicateModuleError reports two module roots declaring the same name.
type DuplicateModuleError struct {
	Name       string
	FirstRoot  string
	SecondRoot string
}

func (e *DuplicateModuleError) Error() string {
	return fmt.Sprintf("module name %q declared by both %s and %s", e.Name, e.FirstRoot, e.SecondRoot)
}

// Kind returns the error taxonomy tag.
func (e *DuplicateModuleError) Kind() string { return "DuplicateModule" }

// NameMismatchError reports a manifest whose declared name differs from
// its directory name. Renaming a directory without updating the manifest
// (or vice versa) leaves stale references; refusing the mismatch surfaces
// that immediately instead of at some later unknown-reference failure.
type NameMismatchError struct {
	Dir      string
	Declared string
}

func (e *NameMismatchError) Error() string {
	return fmt.Sprintf("module directory %q declares name %q; names must match", e.Dir, e.Declared)
}

// Kind returns the error taxonomy tag.
func (e *NameMismatchError) Kind() string { return "ModuleNameMismatch" }

// NestedRootsError reports one module root nested inside another.
// Nested roots make longest-prefix path classification ambiguous.
type NestedRootsError struct {
	Outer string
	Inner string
}

func (e *NestedRootsError) Error() string {
	return fmt.Sprintf("module root %s is nested inside %s", e.Inner, e.Outer)
}

// Kind returns the error taxonomy tag.
func (e *NestedRootsError) Kind() string { return "NestedModuleRoots" }
