// Copyright (C) 2025 Depscope Contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/depscope/depscope/internal/workspace"
)

// mods builds a module set from name -> dependencies.
func mods(defs map[string][]string) []workspace.Module {
	out := make([]workspace.Module, 0, len(defs))
	for name, deps := range defs {
		out = append(out, workspace.Module{Name: name, Dependencies: deps})
	}
	return out
}

func TestBuildChain(t *testing.T) {
	g, err := Build(mods(map[string][]string{
		"a": nil,
		"b": {"a"},
		"c": {"b"},
	}))
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, g.Order())
	assert.Equal(t, []string{"a", "b", "c"}, g.Modules())

	deps, err := g.Dependencies("c")
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, deps)

	dependents, err := g.Dependents("a")
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, dependents)
}

func TestBuildEmpty(t *testing.T) {
	g, err := Build(nil)
	require.NoError(t, err)
	assert.Empty(t, g.Order())
	assert.Empty(t, g.Modules())
}

func TestBuildIsolatedModules(t *testing.T) {
	g, err := Build(mods(map[string][]string{
		"zeta":  nil,
		"alpha": nil,
		"mid":   nil,
	}))
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, g.Order())

	deps, err := g.Dependencies("zeta")
	require.NoError(t, err)
	assert.Empty(t, deps)
}

func TestBuildUnknownReference(t *testing.T) {
	_, err := Build(mods(map[string][]string{
		"module2": {"module9"},
	}))
	var unknown *UnknownReferenceError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "module2", unknown.Module)
	assert.Equal(t, "module9", unknown.Missing)
	assert.Equal(t, "UnknownModuleReference", unknown.Kind())
}

func TestBuildCycle(t *testing.T) {
	_, err := Build(mods(map[string][]string{
		"x": {"y"},
		"y": {"x"},
	}))
	var cycle *CycleError
	require.ErrorAs(t, err, &cycle)
	assert.Equal(t, "circular dependency: x -> y -> x", cycle.Error())
}

func TestBuildLongerCycle(t *testing.T) {
	_, err := Build(mods(map[string][]string{
		"a": {"b"},
		"b": {"c"},
		"c": {"a"},
		"d": {"a"},
	}))
	var cycle *CycleError
	require.ErrorAs(t, err, &cycle)
	require.Len(t, cycle.Path, 4)
	assert.Equal(t, cycle.Path[0], cycle.Path[len(cycle.Path)-1])
}

func TestBuildSelfDependency(t *testing.T) {
	_, err := Build(mods(map[string][]string{
		"a": {"a"},
	}))
	var cycle *CycleError
	require.ErrorAs(t, err, &cycle)
	assert.Equal(t, "circular dependency: a -> a", cycle.Error())
}

func TestBuildDeduplicatesDeclarations(t *testing.T) {
	g, err := Build(mods(map[string][]string{
		"a": nil,
		"b": {"a", "a", "a"},
	}))
	require.NoError(t, err)

	deps, err := g.Dependencies("b")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, deps)

	dependents, err := g.Dependents("a")
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, dependents)
}

func TestOrderRespectsAllEdges(t *testing.T) {
	// Diamond plus a stray leaf.
	g, err := Build(mods(map[string][]string{
		"app":   {"left", "right"},
		"left":  {"base"},
		"right": {"base"},
		"base":  nil,
		"docs":  nil,
	}))
	require.NoError(t, err)

	order := g.Order()
	pos := make(map[string]int, len(order))
	for i, name := range order {
		pos[name] = i
	}
	for _, m := range []string{"app", "left", "right", "base", "docs"} {
		deps, err := g.Dependencies(m)
		require.NoError(t, err)
		for _, d := range deps {
			assert.Less(t, pos[d], pos[m], "%s must come before %s", d, m)
		}
	}
}

func TestOrderDeterministic(t *testing.T) {
	defs := map[string][]string{
		"a": {"d"},
		"b": {"d"},
		"c": nil,
		"d": nil,
		"e": {"a", "b"},
	}

	first, err := Build(mods(defs))
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		g, err := Build(mods(defs))
		require.NoError(t, err)
		assert.Equal(t, first.Order(), g.Order())
	}
	// Lexical tie-break: c and d have no dependencies, c sorts first.
	assert.Equal(t, []string{"c", "d"}, []string{first.Order()[0], first.Order()[1]})
}

func TestUnknownQueries(t *testing.T) {
	g, err := Build(mods(map[string][]string{"a": nil}))
	require.NoError(t, err)

	_, err = g.Dependencies("ghost")
	var unknown *UnknownModuleError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "ghost", unknown.Name)
	assert.Equal(t, "UnknownModuleQuery", unknown.Kind())

	_, err = g.Dependents("ghost")
	require.ErrorAs(t, err, &unknown)

	assert.True(t, g.Has("a"))
	assert.False(t, g.Has("ghost"))
}

func TestSortInOrder(t *testing.T) {
	g, err := Build(mods(map[string][]string{
		"a": nil,
		"b": {"a"},
		"c": {"b"},
	}))
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "c"}, g.SortInOrder([]string{"c", "a"}))
	assert.Equal(t, []string{"b"}, g.SortInOrder([]string{"b", "ghost", "b"}))
	assert.Empty(t, g.SortInOrder(nil))
}

func TestAccessorsReturnCopies(t *testing.T) {
	g, err := Build(mods(map[string][]string{
		"a": nil,
		"b": {"a"},
	}))
	require.NoError(t, err)

	order := g.Order()
	order[0] = "mutated"
	assert.Equal(t, []string{"a", "b"}, g.Order())

	deps, err := g.Dependencies("b")
	require.NoError(t, err)
	deps[0] = "mutated"
	fresh, err := g.Dependencies("b")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, fresh)
}
