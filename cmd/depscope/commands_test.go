// Copyright (C) 2025 Depscope Contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import "testing"

func TestCommandsRegistered(t *testing.T) {
	want := map[string]bool{
		"list":         false,
		"dependencies": false,
		"dependents":   false,
		"build-order":  false,
		"impacted":     false,
		"watch":        false,
	}

	for _, cmd := range rootCmd.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestGlobalFlagDefaults(t *testing.T) {
	if got := rootCmd.PersistentFlags().Lookup("workspace").DefValue; got != "." {
		t.Errorf("workspace default = %q, want %q", got, ".")
	}
	if got := rootCmd.PersistentFlags().Lookup("quiet").DefValue; got != "false" {
		t.Errorf("quiet default = %q, want false", got)
	}
}

func TestImpactedArgsValidation(t *testing.T) {
	// Three positional args must be rejected before Run executes.
	if err := impactedCmd.Args(impactedCmd, []string{"a", "b", "c"}); err == nil {
		t.Error("expected error for three revision arguments")
	}
	if err := impactedCmd.Args(impactedCmd, []string{"a", "b"}); err != nil {
		t.Errorf("unexpected error for two revision arguments: %v", err)
	}
}
