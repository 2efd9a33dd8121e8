// Copyright (C) 2025 Depscope Contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package workspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseManifest(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantName string
		wantDeps []string
		wantErr  bool
	}{
		{
			name:     "full manifest",
			input:    "name = \"module1\"\ndependencies = [\"module2\", \"module3\"]\n",
			wantName: "module1",
			wantDeps: []string{"module2", "module3"},
		},
		{
			name:     "no dependencies key",
			input:    "name = \"core\"\n",
			wantName: "core",
			wantDeps: nil,
		},
		{
			name:     "empty file",
			input:    "",
			wantName: "",
			wantDeps: nil,
		},
		{
			name:     "whitespace trimmed",
			input:    "name = \" module1 \"\ndependencies = [\" module2 \"]\n",
			wantName: "module1",
			wantDeps: []string{"module2"},
		},
		{
			name:    "malformed toml",
			input:   "name = [unclosed\n",
			wantErr: true,
		},
		{
			name:    "wrong dependency type",
			input:   "dependencies = \"module2\"\n",
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, err := parseManifest([]byte(tc.input))
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantName, m.Name)
			assert.Equal(t, tc.wantDeps, m.Dependencies)
		})
	}
}
