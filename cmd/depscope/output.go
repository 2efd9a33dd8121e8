// Copyright (C) 2025 Depscope Contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/depscope/depscope/internal/graph"
)

// Exit codes. Unknown-module queries get their own code so CI scripts
// can tell a typo from a broken workspace.
const (
	exitSuccess       = 0
	exitFailure       = 1
	exitUnknownModule = 2
)

// kinder is implemented by every typed error in this program.
type kinder interface {
	Kind() string
}

// fail prints err on stderr, kind-tagged when available, and exits
// with the appropriate code.
func fail(err error) {
	var k kinder
	if errors.As(err, &k) {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", k.Kind(), err)
	} else {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}

	var unknown *graph.UnknownModuleError
	if errors.As(err, &unknown) {
		os.Exit(exitUnknownModule)
	}
	os.Exit(exitFailure)
}

// outputJSON writes v to stdout as indented JSON.
func outputJSON(v any) {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error: encoding JSON: %v\n", err)
		os.Exit(exitFailure)
	}
}

// outputLines writes one name per line to stdout.
func outputLines(names []string) {
	for _, n := range names {
		fmt.Println(n)
	}
}

// outputNames prints names in the requested format. An empty set
// prints nothing in list format and [] in JSON, so downstream tooling
// always gets valid input.
func outputNames(names []string, format string) {
	switch format {
	case "json":
		if names == nil {
			names = []string{}
		}
		outputJSON(names)
	case "list", "":
		outputLines(names)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown format %q (want list or json)\n", format)
		os.Exit(exitFailure)
	}
}
