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

var listFormat string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all modules in the workspace",
	Long: `List every module discovered in the workspace, in build order
(dependencies before dependents).

Examples:
  depscope list
  depscope list --format json`,
	Args: cobra.NoArgs,
	Run:  runList,
}

func init() {
	listCmd.Flags().StringVar(&listFormat, "format", "list",
		"Output format: list, json")
}

func runList(cmd *cobra.Command, args []string) {
	r := buildResolver(context.Background())
	outputNames(r.Order(), listFormat)
}
