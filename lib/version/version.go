// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports the orghelper build.
//
// Release builds stamp the variables below with -ldflags:
//
//	go build -ldflags "-X github.com/bureau-foundation/orghelper/lib/version.GitCommit=$(git rev-parse --short HEAD)" ./cmd/orghelper
//
// Unstamped builds fall back to the VCS settings the Go toolchain
// records in the binary.
package version

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
)

var (
	// GitCommit is the short commit hash.
	GitCommit = "unknown"

	// GitDirty is "true" when the tree had uncommitted changes.
	GitDirty = "false"

	// BuildTime is the UTC build timestamp.
	BuildTime = "unknown"

	// Version is the release version.
	Version = "0.1.0-dev"
)

// shortCommitLength matches git rev-parse --short.
const shortCommitLength = 7

// Info returns "<version> (<commit>[-dirty], <build time>)".
func Info() string {
	commit, dirty, buildTime := GitCommit, GitDirty == "true", BuildTime
	if commit == "unknown" {
		commit, dirty, buildTime = vcsStamp(commit, dirty, buildTime)
	}
	suffix := ""
	if dirty {
		suffix = "-dirty"
	}
	return fmt.Sprintf("%s (%s%s, %s)", Version, commit, suffix, buildTime)
}

// vcsStamp reads vcs.revision, vcs.modified and vcs.time from the
// embedded build info, keeping the given values for anything absent.
func vcsStamp(commit string, dirty bool, buildTime string) (string, bool, string) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return commit, dirty, buildTime
	}
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			commit = setting.Value
			if len(commit) > shortCommitLength {
				commit = commit[:shortCommitLength]
			}
		case "vcs.modified":
			dirty = setting.Value == "true"
		case "vcs.time":
			buildTime = setting.Value
		}
	}
	return commit, dirty, buildTime
}

// Full returns Info followed by the Go toolchain and platform lines.
func Full() string {
	return fmt.Sprintf("%s\n  Go: %s\n  Platform: %s/%s",
		Info(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Print writes "<binary> <Full()>" to w.
func Print(w io.Writer, binary string) {
	fmt.Fprintf(w, "%s %s\n", binary, Full())
}
