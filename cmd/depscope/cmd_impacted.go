// Copyright (C) 2025 Depscope Contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/depscope/depscope/internal/impact"
)

var (
	impactedFiles   []string
	impactedFormat  string
	impactedTimeout time.Duration
)

var impactedCmd = &cobra.Command{
	Use:   "impacted <base-ref> <head-ref>",
	Short: "Compute the modules impacted by a change",
	Long: `Compute the set of modules that must rebuild and retest given the
changes between two git revisions: the modules whose files changed plus
every transitive dependent. The result is a JSON array in build order.

A base revision that does not exist (common on shallow CI clones) is
not an error: the whole workspace is reported as impacted so nothing
is silently skipped.

With --files, the change set is taken from the given paths instead of
git and no revisions are required.

Examples:
  depscope impacted origin/main HEAD
  depscope impacted --files modules/core/api.py --files README.md`,
	Args: cobra.RangeArgs(0, 2),
	Run:  runImpacted,
}

func init() {
	impactedCmd.Flags().StringSliceVar(&impactedFiles, "files", nil,
		"Changed paths to analyze instead of a git diff")
	impactedCmd.Flags().StringVar(&impactedFormat, "format", "json",
		"Output format: json, list")
	impactedCmd.Flags().DurationVar(&impactedTimeout, "timeout", 30*time.Second,
		"Timeout for git operations")
}

func runImpacted(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithTimeout(context.Background(), impactedTimeout)
	defer cancel()

	r := buildResolver(ctx)

	if len(impactedFiles) > 0 {
		if len(args) > 0 {
			fail(errors.New("--files cannot be combined with revision arguments"))
		}
		analysis := r.ImpactedBy(impactedFiles)
		reportImpact(analysis)
		return
	}

	if len(args) != 2 {
		fail(errors.New("expected <base-ref> <head-ref> (or --files)"))
	}
	base, head := args[0], args[1]

	client := impact.NewGitClient(flagWorkspace)
	paths, err := client.ChangedFiles(ctx, base, head)
	if err != nil {
		var unknown *impact.UnknownRevisionError
		if errors.As(err, &unknown) {
			log.Warn("revision not found, treating all modules as impacted",
				"revision", unknown.Rev)
			reportImpact(r.AllImpacted())
			return
		}
		fail(err)
	}

	analysis := r.ImpactedBy(paths)
	reportImpact(analysis)
}

func reportImpact(analysis impact.Analysis) {
	if analysis.WorkspaceWide {
		log.Info("workspace-wide change detected")
	}
	log.Debug("impact computed",
		"direct", len(analysis.Direct), "impacted", len(analysis.Impacted))

	outputNames(analysis.Impacted, impactedFormat)
	os.Exit(exitSuccess)
}
