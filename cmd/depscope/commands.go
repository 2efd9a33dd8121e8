// Copyright (C) 2025 Depscope Contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/depscope/depscope/internal/config"
	"github.com/depscope/depscope/internal/resolver"
	"github.com/depscope/depscope/pkg/logging"
)

// =============================================================================
// GLOBAL FLAGS
// =============================================================================

var (
	flagWorkspace string
	flagConfig    string
	flagVerbose   bool
	flagQuiet     bool
)

var log = logging.Default()

// =============================================================================
// ROOT COMMAND
// =============================================================================

var rootCmd = &cobra.Command{
	Use:   "depscope",
	Short: "Module dependency graph and change-impact resolver",
	Long: `depscope discovers module manifests in a monorepo, validates the
dependency graph, and answers build-order and change-impact queries.

Examples:
  depscope list
  depscope dependencies mymodule
  depscope dependents mymodule
  depscope build-order mymodule
  depscope impacted origin/main HEAD`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagWorkspace, "workspace", "w", ".",
		"Workspace root directory")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "",
		"Path to the workspace config (default <workspace>/"+config.FileName+")")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false,
		"Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false,
		"Suppress log output")

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		level := logging.LevelInfo
		if flagVerbose {
			level = logging.LevelDebug
		}
		log = logging.New(logging.Config{
			Level:   level,
			Service: "depscope",
			Quiet:   flagQuiet,
			Output:  os.Stderr,
		})
	}

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(dependenciesCmd)
	rootCmd.AddCommand(dependentsCmd)
	rootCmd.AddCommand(buildOrderCmd)
	rootCmd.AddCommand(impactedCmd)
	rootCmd.AddCommand(watchCmd)
}

// loadConfig reads the workspace configuration, falling back to
// defaults when no config file exists.
func loadConfig() config.Config {
	path := flagConfig
	if path == "" {
		path = filepath.Join(flagWorkspace, config.FileName)
	}
	cfg, err := config.Load(path)
	if err != nil {
		fail(err)
	}
	return cfg
}

// buildResolver constructs the resolver for the configured workspace,
// exiting on any discovery or graph error.
func buildResolver(ctx context.Context) *resolver.Resolver {
	cfg := loadConfig()
	r, err := resolver.New(ctx, flagWorkspace, cfg, log)
	if err != nil {
		fail(err)
	}
	return r
}
