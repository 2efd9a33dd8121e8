// Copyright (C) 2025 Depscope Contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package watch observes manifest files and reports batched changes.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/depscope/depscope/internal/config"
	"github.com/depscope/depscope/pkg/logging"
)

// DefaultDebounce is how long to wait for further manifest events
// before notifying. Editors write manifests in several syscalls;
// batching avoids rebuilding the graph per syscall.
const DefaultDebounce = 250 * time.Millisecond

// Handler is called with the batch of changed manifest paths after the
// debounce window closes. Paths are absolute and deduplicated.
type Handler func(paths []string)

// Watcher observes the workspace's module directories for manifest
// changes.
//
// # Description
//
// Watches each configured module directory and its immediate module
// roots. Only events on files named like the configured manifest, or
// directory creations that may introduce a new module, count as
// changes. Events are debounced so a burst of writes produces one
// notification.
//
// # Thread Safety
//
// Safe for concurrent use. The handler runs on a single goroutine.
type Watcher struct {
	root         string
	manifestName string
	moduleDirs   []string
	handler      Handler
	debounce     time.Duration
	log          *logging.Logger

	fsw      *fsnotify.Watcher
	events   chan string
	done     chan struct{}
	stopOnce sync.Once
}

// New creates a Watcher for the workspace under root.
//
// # Inputs
//
//   - root: Workspace root directory.
//   - cfg: Workspace configuration naming module dirs and manifest.
//   - log: Logger for watch diagnostics. Must not be nil.
//   - handler: Called with batched changes. Must not be nil.
//
// # Outputs
//
//   - *Watcher: Ready watcher; call Start to begin.
//   - error: Non-nil if the underlying notifier could not be created.
func New(root string, cfg config.Config, log *logging.Logger, handler Handler) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		root:         root,
		manifestName: cfg.ManifestName,
		moduleDirs:   cfg.ModuleDirs,
		handler:      handler,
		debounce:     DefaultDebounce,
		log:          log,
		fsw:          fsw,
		events:       make(chan string, 256),
		done:         make(chan struct{}),
	}, nil
}

// Start registers the watch points and begins delivering batched
// changes until ctx is canceled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	for _, dir := range w.moduleDirs {
		base := filepath.Join(w.root, filepath.FromSlash(dir))
		if err := w.addTree(base); err != nil {
			return err
		}
	}

	go w.processEvents(ctx)
	go w.debounceLoop(ctx)
	return nil
}

// Stop stops the watcher. Safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		w.fsw.Close()
	})
}

// addTree watches base and each module root directly under it. A
// missing module directory is skipped, matching discovery.
func (w *Watcher) addTree(base string) error {
	entries, err := os.ReadDir(base)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if err := w.fsw.Add(base); err != nil {
		return err
	}
	for _, entry := range entries {
		if !entry.IsDir() || entry.Name()[0] == '.' {
			continue
		}
		if err := w.fsw.Add(filepath.Join(base, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

// relevant reports whether an event path should trigger a refresh.
func (w *Watcher) relevant(name string, op fsnotify.Op) bool {
	if filepath.Base(name) == w.manifestName {
		return true
	}
	// A new directory under a module dir may become a module root.
	if op.Has(fsnotify.Create) {
		if info, err := os.Stat(name); err == nil && info.IsDir() {
			return true
		}
	}
	// Removal of a module root also changes the module set.
	if op.Has(fsnotify.Remove) || op.Has(fsnotify.Rename) {
		return filepath.Ext(name) == ""
	}
	return false
}

func (w *Watcher) processEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(event.Name, event.Op) {
				continue
			}
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.fsw.Add(event.Name); err != nil {
						w.log.Warn("cannot watch new module root",
							"path", event.Name, "error", err)
					}
				}
			}
			select {
			case w.events <- event.Name:
			default:
				// Buffer full; the debouncer will still fire for the
				// events already queued.
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", "error", err)
		}
	}
}

func (w *Watcher) debounceLoop(ctx context.Context) {
	seen := make(map[string]bool)
	var timer *time.Timer
	var timerC <-chan time.Time

	flush := func() {
		if len(seen) > 0 {
			batch := make([]string, 0, len(seen))
			for p := range seen {
				batch = append(batch, p)
			}
			w.handler(batch)
			seen = make(map[string]bool)
		}
		if timer != nil {
			timer.Stop()
			timer = nil
			timerC = nil
		}
	}

	for {
		select {
		case <-ctx.Done():
			flush()
			return
		case <-w.done:
			flush()
			return
		case p := <-w.events:
			seen[p] = true
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.debounce)
			}
		case <-timerC:
			flush()
		}
	}
}
