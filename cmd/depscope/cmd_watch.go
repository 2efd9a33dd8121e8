// Copyright (C) 2025 Depscope Contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/depscope/depscope/internal/resolver"
	"github.com/depscope/depscope/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch manifests and report the build order on every change",
	Long: `Watch the workspace's module manifests and re-resolve the graph when
they change. Each change prints the new build order; validation errors
are reported without stopping the watch. Stop with Ctrl-C.`,
	Args: cobra.NoArgs,
	Run:  runWatch,
}

func runWatch(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := loadConfig()

	refresh := func() {
		r, err := resolver.New(ctx, flagWorkspace, cfg, log)
		if err != nil {
			log.Error("workspace invalid", "error", err)
			return
		}
		log.Info("workspace resolved", "modules", len(r.Modules()))
		outputLines(r.Order())
	}

	refresh()

	w, err := watch.New(flagWorkspace, cfg, log, func(paths []string) {
		log.Info("manifest change detected", "files", len(paths))
		refresh()
	})
	if err != nil {
		fail(err)
	}
	defer w.Stop()

	if err := w.Start(ctx); err != nil {
		fail(err)
	}

	log.Info("watching for manifest changes", "workspace", flagWorkspace)
	<-ctx.Done()
}
