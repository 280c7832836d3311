// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package orgauto runs organization-automation requests against
// GitHub: creating teams, creating Projects V2 boards (optionally
// linked to a team), and adding team members.
//
// [Orchestrator.Execute] runs one [Request] with one resolved
// [github.AuthHeaders] value and returns a [Result]. Creating a project
// for a team is a multi-step sequence in which the last step, linking
// the team, is allowed to fail: the project still exists, so the
// result is [OutcomePartial] with manual instructions rather than an
// error.
//
// [Runner] processes a list of requests in order, resolving the
// credential afresh for every record, and applies the continue-on-fail
// policy. [ParseRequests] reads such a list from a YAML or JSONC file.
package orgauto
