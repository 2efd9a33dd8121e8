// Copyright (C) 2025 Depscope Contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package workspace

import (
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Manifest is the decoded per-module dependency declaration.
//
// Only the fields the resolver needs are decoded; everything else in the
// manifest (version, description, build settings) is opaque at this layer.
type Manifest struct {
	// Name is the declared module name. Optional: when empty the module
	// directory name is used. When present it must match the directory.
	Name string `toml:"name"`

	// Dependencies lists direct dependency module names in declaration
	// order. Order is preserved for diagnostics only; it has no semantic
	// meaning.
	Dependencies []string `toml:"dependencies"`
}

// parseManifest decodes manifest bytes. Dependency names are trimmed;
// empty entries are rejected by the caller's validation during graph
// construction (an empty name can never match a known module).
func parseManifest(data []byte) (Manifest, error) {
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return Manifest{}, err
	}
	m.Name = strings.TrimSpace(m.Name)
	for i, dep := range m.Dependencies {
		m.Dependencies[i] = strings.TrimSpace(dep)
	}
	return m, nil
}
