// Copyright (C) 2025 Depscope Contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"

	"github.com/spf13/cobra"
)

var queryFormat string

var dependenciesCmd = &cobra.Command{
	Use:   "dependencies <module>",
	Short: "Show the direct dependencies of a module",
	Args:  cobra.ExactArgs(1),
	Run:   runDependencies,
}

var dependentsCmd = &cobra.Command{
	Use:   "dependents <module>",
	Short: "Show the modules that directly depend on a module",
	Args:  cobra.ExactArgs(1),
	Run:   runDependents,
}

var buildOrderCmd = &cobra.Command{
	Use:   "build-order [module]",
	Short: "Show the dependency-first build order",
	Long: `Show the topological build order of the workspace, dependencies
before dependents. With a module argument, the order is restricted to
that module and its transitive dependencies.

Examples:
  depscope build-order
  depscope build-order mymodule --format json`,
	Args: cobra.MaximumNArgs(1),
	Run:  runBuildOrder,
}

func init() {
	for _, cmd := range []*cobra.Command{dependenciesCmd, dependentsCmd, buildOrderCmd} {
		cmd.Flags().StringVar(&queryFormat, "format", "list",
			"Output format: list, json")
	}
}

func runDependencies(cmd *cobra.Command, args []string) {
	r := buildResolver(context.Background())

	deps, err := r.DependenciesOf(args[0])
	if err != nil {
		fail(err)
	}
	outputNames(deps, queryFormat)
}

func runDependents(cmd *cobra.Command, args []string) {
	r := buildResolver(context.Background())

	dependents, err := r.DependentsOf(args[0])
	if err != nil {
		fail(err)
	}
	outputNames(dependents, queryFormat)
}

func runBuildOrder(cmd *cobra.Command, args []string) {
	r := buildResolver(context.Background())

	if len(args) == 0 {
		outputNames(r.Order(), queryFormat)
		return
	}
	order, err := r.OrderTo(args[0])
	if err != nil {
		fail(err)
	}
	outputNames(order, queryFormat)
}
