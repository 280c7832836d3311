// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable source of wall-clock time.
//
// Code that stamps time into signed artifacts (GitHub App assertions,
// for example) takes a Clock instead of calling time.Now directly, so
// tests can pin the instant and check the exact claims produced.
//
// In production:
//
//	resolver := github.NewResolver(github.ResolverConfig{Clock: clock.Real()})
//
// In tests:
//
//	fake := clock.Fake(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
//	resolver := github.NewResolver(github.ResolverConfig{Clock: fake})
//	fake.Advance(10 * time.Minute)
package clock
