// Copyright (C) 2025 Depscope Contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package impact

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// GitClient handles git operations for change detection.
//
// # Thread Safety
//
// GitClient is safe for concurrent use.
type GitClient struct {
	workDir string
}

// NewGitClient creates a new GitClient for the given working directory.
//
// # Inputs
//
//   - workDir: Working directory (workspace root). Must not be empty.
//
// # Outputs
//
//   - *GitClient: The git client instance.
func NewGitClient(workDir string) *GitClient {
	return &GitClient{workDir: workDir}
}

// IsGitRepo checks if the working directory is a git repository.
//
// # Outputs
//
//   - bool: True if the directory is a git repository.
func (g *GitClient) IsGitRepo() bool {
	cmd := exec.Command("git", "rev-parse", "--git-dir")
	cmd.Dir = g.workDir
	return cmd.Run() == nil
}

// ChangedFiles returns workspace-relative paths changed between base
// and head.
//
// # Description
//
// Uses the three-dot diff (merge-base of base and head against head),
// so only changes introduced on the head side count. Both revisions
// are resolved first; a revision that does not resolve surfaces as
// *UnknownRevisionError so callers can apply the conservative
// fallback instead of failing.
//
// # Inputs
//
//   - ctx: Context for cancellation. Must not be nil.
//   - base: Base revision (branch, tag, or commit).
//   - head: Head revision.
//
// # Outputs
//
//   - []string: Changed paths, slash-separated, relative to the
//     repository root.
//   - error: *UnknownRevisionError or *RevisionAccessError.
func (g *GitClient) ChangedFiles(ctx context.Context, base, head string) ([]string, error) {
	if ctx == nil {
		return nil, fmt.Errorf("ctx must not be nil")
	}

	for _, rev := range []string{base, head} {
		if err := g.verifyRevision(ctx, rev); err != nil {
			return nil, err
		}
	}

	cmd := exec.CommandContext(ctx, "git", "diff", "--name-only", base+"..."+head)
	cmd.Dir = g.workDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, &RevisionAccessError{Op: "diff", Detail: trimStderr(stderr.String()), Err: err}
	}

	var paths []string
	scanner := bufio.NewScanner(&stdout)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		paths = append(paths, filepath.ToSlash(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, &RevisionAccessError{Op: "diff", Err: err}
	}
	return paths, nil
}

// verifyRevision resolves rev, distinguishing "revision does not
// exist" from "git itself failed".
func (g *GitClient) verifyRevision(ctx context.Context, rev string) error {
	cmd := exec.CommandContext(ctx, "git", "rev-parse", "--verify", "--quiet", rev+"^{commit}")
	cmd.Dir = g.workDir

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
		// rev-parse --verify --quiet exits 1 when the name simply does
		// not resolve. Other codes mean git could not do its job.
		return &UnknownRevisionError{Rev: rev}
	}
	return &RevisionAccessError{Op: "rev-parse", Detail: trimStderr(stderr.String()), Err: err}
}

func trimStderr(s string) string {
	return strings.TrimSpace(s)
}
