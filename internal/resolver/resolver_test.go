// Copyright (C) 2025 Depscope Contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package resolver

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/depscope/depscope/internal/config"
	"github.com/depscope/depscope/internal/graph"
	"github.com/depscope/depscope/pkg/logging"
)

func quietLogger() *logging.Logger {
	return logging.New(logging.Config{Quiet: true, Output: io.Discard})
}

// writeModule creates root/modules/<name> with a manifest declaring
// deps.
func writeModule(t *testing.T, root, name string, deps []string) {
	t.Helper()
	modRoot := filepath.Join(root, "modules", name)
	require.NoError(t, os.MkdirAll(modRoot, 0o755))

	content := "name = \"" + name + "\"\ndependencies = ["
	for i, d := range deps {
		if i > 0 {
			content += ", "
		}
		content += "\"" + d + "\""
	}
	content += "]\n"
	require.NoError(t, os.WriteFile(filepath.Join(modRoot, config.DefaultManifestName), []byte(content), 0o644))
}

// chainWorkspace builds modules {module1 <- module2 <- module3}.
func chainWorkspace(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeModule(t, root, "module1", nil)
	writeModule(t, root, "module2", []string{"module1"})
	writeModule(t, root, "module3", []string{"module2"})
	return root
}

func newResolver(t *testing.T, root string) *Resolver {
	t.Helper()
	r, err := New(context.Background(), root, config.Default(), quietLogger())
	require.NoError(t, err)
	return r
}

func TestResolverOrder(t *testing.T) {
	r := newResolver(t, chainWorkspace(t))
	assert.Equal(t, []string{"module1", "module2", "module3"}, r.Order())
}

func TestResolverQueries(t *testing.T) {
	r := newResolver(t, chainWorkspace(t))

	deps, err := r.DependenciesOf("module2")
	require.NoError(t, err)
	assert.Equal(t, []string{"module1"}, deps)

	dependents, err := r.DependentsOf("module2")
	require.NoError(t, err)
	assert.Equal(t, []string{"module3"}, dependents)

	_, err = r.DependenciesOf("module9")
	var unknown *graph.UnknownModuleError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "module9", unknown.Name)
}

func TestResolverOrderTo(t *testing.T) {
	root := t.TempDir()
	writeModule(t, root, "base", nil)
	writeModule(t, root, "lib", []string{"base"})
	writeModule(t, root, "app", []string{"lib"})
	writeModule(t, root, "other", nil)
	r := newResolver(t, root)

	order, err := r.OrderTo("lib")
	require.NoError(t, err)
	assert.Equal(t, []string{"base", "lib"}, order)

	order, err = r.OrderTo("app")
	require.NoError(t, err)
	assert.Equal(t, []string{"base", "lib", "app"}, order)

	_, err = r.OrderTo("ghost")
	var unknown *graph.UnknownModuleError
	require.ErrorAs(t, err, &unknown)
}

func TestResolverImpactedBy(t *testing.T) {
	r := newResolver(t, chainWorkspace(t))

	got := r.ImpactedBy([]string{"modules/module1/src/core.py"})
	assert.Equal(t, []string{"module1", "module2", "module3"}, got.Impacted)

	got = r.ImpactedBy([]string{"modules/module2/src/app.py"})
	assert.Equal(t, []string{"module2", "module3"}, got.Impacted)
	assert.Equal(t, []string{"module2"}, got.Direct)
	assert.False(t, got.WorkspaceWide)

	got = r.ImpactedBy([]string{"Makefile"})
	assert.True(t, got.WorkspaceWide)
	assert.Equal(t, []string{"module1", "module2", "module3"}, got.Impacted)

	got = r.ImpactedBy(nil)
	assert.Empty(t, got.Impacted)
}

func TestResolverAllImpacted(t *testing.T) {
	r := newResolver(t, chainWorkspace(t))

	got := r.AllImpacted()
	assert.True(t, got.WorkspaceWide)
	assert.Equal(t, []string{"module1", "module2", "module3"}, got.Impacted)
}

func TestResolverUnknownReference(t *testing.T) {
	root := t.TempDir()
	writeModule(t, root, "module1", nil)
	writeModule(t, root, "module2", []string{"module9"})

	_, err := New(context.Background(), root, config.Default(), quietLogger())
	var unknown *graph.UnknownReferenceError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "module2", unknown.Module)
	assert.Equal(t, "module9", unknown.Missing)
}

func TestResolverCycle(t *testing.T) {
	root := t.TempDir()
	writeModule(t, root, "x", []string{"y"})
	writeModule(t, root, "y", []string{"x"})

	_, err := New(context.Background(), root, config.Default(), quietLogger())
	var cycle *graph.CycleError
	require.ErrorAs(t, err, &cycle)
}

func TestResolverDeterministicAcrossInstances(t *testing.T) {
	root := t.TempDir()
	writeModule(t, root, "zeta", nil)
	writeModule(t, root, "alpha", []string{"zeta"})
	writeModule(t, root, "beta", []string{"zeta"})
	writeModule(t, root, "gamma", []string{"alpha", "beta"})

	first := newResolver(t, root)
	for i := 0; i < 5; i++ {
		r := newResolver(t, root)
		assert.Equal(t, first.Order(), r.Order())
		assert.Equal(t,
			first.ImpactedBy([]string{"modules/zeta/a.py"}).Impacted,
			r.ImpactedBy([]string{"modules/zeta/a.py"}).Impacted,
		)
	}
}

func TestResolverQueryOrderIndependent(t *testing.T) {
	r := newResolver(t, chainWorkspace(t))

	// Queries are pure; interleaving them must not change answers.
	before := r.Order()
	_, _ = r.DependentsOf("module1")
	_ = r.ImpactedBy([]string{"modules/module3/x.py"})
	_, _ = r.DependenciesOf("module3")
	assert.Equal(t, before, r.Order())

	got := r.ImpactedBy([]string{"modules/module3/x.py"})
	assert.Equal(t, []string{"module3"}, got.Impacted)
}
