// Copyright (C) 2025 Depscope Contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package impact computes the set of modules affected by a change.
//
// # Error Policy
//
// Git failures split into two kinds with very different handling. An
// unknown revision is an expected condition on shallow CI clones, and
// callers fall back to treating the whole workspace as impacted. Any
// other git failure (not a repository, binary missing, I/O error) is
// fatal.
package impact

import "fmt"

// UnknownRevisionError reports a base or head revision that does not
// resolve in the repository.
type UnknownRevisionError struct {
	// Rev is the revision that failed to resolve.
	Rev string
}

func (e *UnknownRevisionError) Error() string {
	return fmt.Sprintf("revision %q not found in repository", e.Rev)
}

// Kind returns the stable error category name.
func (e *UnknownRevisionError) Kind() string { return "UnknownRevision" }

// RevisionAccessError reports a git invocation failure other than an
// unresolvable revision.
type RevisionAccessError struct {
	// Op is the git operation that failed, e.g. "diff".
	Op string

	// Detail is the trailing stderr output, trimmed.
	Detail string

	// Err is the underlying execution error.
	Err error
}

func (e *RevisionAccessError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("git %s failed: %v: %s", e.Op, e.Err, e.Detail)
	}
	return fmt.Sprintf("git %s failed: %v", e.Op, e.Err)
}

func (e *RevisionAccessError) Unwrap() error { return e.Err }

// Kind returns the stable error category name.
func (e *RevisionAccessError) Kind() string { return "VersionControlAccessFailure" }
