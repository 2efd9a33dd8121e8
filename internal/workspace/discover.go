// Copyright (C) 2025 Depscope Contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package workspace

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/depscope/depscope/internal/config"
)

// maxParallelReads caps concurrent manifest reads. Workspaces are small;
// this mostly avoids fd exhaustion on pathological layouts.
const maxParallelReads = 16

// Module is one discovered module.
//
// # Description
//
// Identity is the module name, which equals the directory name under the
// configured module directory. Modules are immutable for the lifetime of
// one resolver invocation.
type Module struct {
	// Name is the unique module name.
	Name string

	// Root is the absolute filesystem path of the module directory.
	Root string

	// RelRoot is the workspace-relative, slash-separated root path,
	// e.g. "modules/module1". Used for path classification.
	RelRoot string

	// Dependencies are the declared direct dependency names, in
	// declaration order.
	Dependencies []string
}

// Discover finds all modules in the workspace and reads their manifests.
//
// # Description
//
// Each configured module directory is scanned one level deep; every
// subdirectory is a module root and must contain a readable manifest.
// Manifests are read in parallel under cfg.ManifestTimeout. The result
// is sorted by module name, so callers see the same module set for the
// same workspace regardless of filesystem iteration order.
//
// # Inputs
//
//   - ctx: Context for cancellation. Must not be nil.
//   - root: Workspace root directory.
//   - cfg: Workspace configuration.
//
// # Outputs
//
//   - []Module: Discovered modules, sorted by name. Empty (not nil error)
//     when no module directory exists yet.
//   - error: One of the typed errors in this package, or a wrapped I/O
//     error. Any error means the module set is unusable.
func Discover(ctx context.Context, root string, cfg config.Config) ([]Module, error) {
	if ctx == nil {
		return nil, fmt.Errorf("ctx must not be nil")
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving workspace root: %w", err)
	}

	roots, err := collectModuleRoots(absRoot, cfg.ModuleDirs)
	if err != nil {
		return nil, err
	}
	if err := checkNesting(roots); err != nil {
		return nil, err
	}

	readCtx := ctx
	cancel := context.CancelFunc(func() {})
	if cfg.ManifestTimeout > 0 {
		readCtx, cancel = context.WithTimeout(ctx, cfg.ManifestTimeout)
	}
	defer cancel()

	modules := make([]Module, len(roots))
	g, readCtx := errgroup.WithContext(readCtx)
	g.SetLimit(maxParallelReads)
	for i, r := range roots {
		i, r := i, r
		g.Go(func() error {
			m, err := readModule(readCtx, r, cfg.ManifestName)
			if err != nil {
				return err
			}
			modules[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, &ManifestTimeoutError{Timeout: cfg.ManifestTimeout}
		}
		return nil, err
	}

	if err := checkDuplicates(modules); err != nil {
		return nil, err
	}

	sort.Slice(modules, func(i, j int) bool { return modules[i].Name < modules[j].Name })
	return modules, nil
}

// moduleRoot is a module directory candidate before its manifest is read.
type moduleRoot struct {
	abs string
	rel string // slash-separated, workspace-relative
}

// collectModuleRoots scans each configured module directory one level
// deep. A missing module directory is not an error (a fresh workspace has
// no modules yet); anything else unreadable is.
func collectModuleRoots(absRoot string, moduleDirs []string) ([]moduleRoot, error) {
	var roots []moduleRoot
	for _, dir := range moduleDirs {
		base := filepath.Join(absRoot, filepath.FromSlash(dir))
		entries, err := os.ReadDir(base)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("scanning %s: %w", base, err)
		}
		for _, entry := range entries {
			if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
				continue
			}
			roots = append(roots, moduleRoot{
				abs: filepath.Join(base, entry.Name()),
				rel: path.Join(filepath.ToSlash(dir), entry.Name()),
			})
		}
	}

	sort.Slice(roots, func(i, j int) bool { return roots[i].rel < roots[j].rel })
	return roots, nil
}

// checkNesting rejects configurations where one module root lies inside
// another. A single scan level cannot nest, but overlapping module_dirs
// entries (e.g. "modules" and "modules/tools") can. Adjacency in the
// sorted order is not enough: "a-x" sorts between "a" and "a/inner",
// so every root is checked against all of its ancestor paths instead.
func checkNesting(roots []moduleRoot) error {
	rels := make(map[string]bool, len(roots))
	for _, r := range roots {
		rels[r.rel] = true
	}
	for _, r := range roots {
		for ancestor := parentPath(r.rel); ancestor != ""; ancestor = parentPath(ancestor) {
			if rels[ancestor] {
				return &NestedRootsError{Outer: ancestor, Inner: r.rel}
			}
		}
	}
	return nil
}

// parentPath returns the slash-separated parent of p, or "" at the top.
func parentPath(p string) string {
	i := strings.LastIndexByte(p, '/')
	if i < 0 {
		return ""
	}
	return p[:i]
}

// readModule reads and validates one module's manifest.
func readModule(ctx context.Context, r moduleRoot, manifestName string) (Module, error) {
	select {
	case <-ctx.Done():
		return Module{}, ctx.Err()
	default:
	}

	dirName := path.Base(r.rel)
	manifestPath := filepath.Join(r.abs, manifestName)

	data, err := os.ReadFile(manifestPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
			return Module{}, &ManifestMissingError{Module: dirName, Path: manifestPath}
		}
		return Module{}, fmt.Errorf("module %q: reading %s: %w", dirName, manifestPath, err)
	}

	m, err := parseManifest(data)
	if err != nil {
		return Module{}, &ManifestParseError{Module: dirName, Path: manifestPath, Err: err}
	}

	name := m.Name
	if name == "" {
		name = dirName
	} else if name != dirName {
		return Module{}, &NameMismatchError{Dir: dirName, Declared: name}
	}

	return Module{
		Name:         name,
		Root:         r.abs,
		RelRoot:      r.rel,
		Dependencies: m.Dependencies,
	}, nil
}

// checkDuplicates rejects two roots resolving to the same module name.
func checkDuplicates(modules []Module) error {
	seen := make(map[string]string, len(modules))
	for _, m := range modules {
		if first, ok := seen[m.Name]; ok {
			return &DuplicateModuleError{Name: m.Name, FirstRoot: first, SecondRoot: m.RelRoot}
		}
		seen[m.Name] = m.RelRoot
	}
	return nil
}
