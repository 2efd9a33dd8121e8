// Copyright (C) 2025 Depscope Contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package config loads workspace configuration for depscope.
//
// Configuration lives in an optional depscope.yaml at the workspace root.
// Every field has a default, so a workspace without a config file is fully
// functional: modules are discovered under "modules/", each declaring its
// dependencies in a module.toml manifest.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the workspace configuration file name.
const FileName = "depscope.yaml"

// Default values applied when depscope.yaml is absent or leaves a
// field unset.
const (
	// DefaultManifestName is the per-module manifest file name.
	DefaultManifestName = "module.toml"

	// DefaultManifestTimeout bounds the total manifest-read I/O for one
	// discovery pass. Filesystem reads are the only place external latency
	// can enter the resolver, so they get an explicit budget.
	DefaultManifestTimeout = 10 * time.Second
)

// Config holds workspace-level settings for module discovery and
// path classification.
//
// # Fields
//
//   - ModuleDirs: directories scanned (one level deep) for module roots.
//   - ManifestName: per-module manifest file name.
//   - DocsPatterns: paths with no executable effect; changes there impact
//     no modules.
//   - WorkspacePatterns: paths that affect global behavior; changes there
//     impact every module.
//   - ManifestTimeout: bound on manifest-read I/O per discovery pass.
type Config struct {
	ModuleDirs        []string
	ManifestName      string
	DocsPatterns      []string
	WorkspacePatterns []string
	ManifestTimeout   time.Duration
}

// configFile is the on-disk shape of depscope.yaml. Durations are spelled
// as strings ("10s", "500ms") rather than raw nanosecond integers.
type configFile struct {
	ModuleDirs        []string `yaml:"module_dirs"`
	ManifestName      string   `yaml:"manifest_name"`
	DocsPatterns      []string `yaml:"docs_patterns"`
	WorkspacePatterns []string `yaml:"workspace_patterns"`
	ManifestTimeout   string   `yaml:"manifest_timeout"`
}

// Default returns the configuration used when no depscope.yaml exists.
func Default() Config {
	return Config{
		ModuleDirs:   []string{"modules"},
		ManifestName: DefaultManifestName,
		DocsPatterns: []string{
			"*.md",
			"*.rst",
			"*.txt",
			"docs/",
			"LICENSE*",
			"NOTICE*",
		},
		WorkspacePatterns: []string{
			"Makefile",
			".github/",
			".pre-commit-config.yaml",
			"scripts/",
			FileName,
		},
		ManifestTimeout: DefaultManifestTimeout,
	}
}

// Load reads the configuration file at path.
//
// # Description
//
// A missing file is not an error: defaults are returned. A present but
// unreadable or syntactically invalid file is a configuration error and
// aborts the invocation, since silently falling back to defaults could
// change which modules are considered impacted.
//
// Unset fields inherit their defaults, so a partial config file only
// overrides what it names.
//
// # Inputs
//
//   - path: Path to the configuration file (usually <workspace>/depscope.yaml).
//
// # Outputs
//
//   - Config: The effective configuration.
//   - error: Non-nil if the file exists but cannot be parsed.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	// Decode over a fresh struct so we can tell "unset" from "set to empty".
	var file configFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if len(file.ModuleDirs) > 0 {
		cfg.ModuleDirs = file.ModuleDirs
	}
	if file.ManifestName != "" {
		cfg.ManifestName = file.ManifestName
	}
	if len(file.DocsPatterns) > 0 {
		cfg.DocsPatterns = file.DocsPatterns
	}
	if len(file.WorkspacePatterns) > 0 {
		cfg.WorkspacePatterns = file.WorkspacePatterns
	}
	if file.ManifestTimeout != "" {
		d, err := time.ParseDuration(file.ManifestTimeout)
		if err != nil {
			return Config{}, fmt.Errorf("parsing config %s: manifest_timeout: %w", path, err)
		}
		if d > 0 {
			cfg.ManifestTimeout = d
		}
	}

	return cfg, nil
}
