// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Orghelper automates GitHub organization setup: creating teams,
// creating Projects V2 boards (optionally linked to a team), and
// adding team members. Single operations run from flags; "run"
// processes a YAML or JSONC batch file record by record.
//
// Credentials (a personal access token or a GitHub App installation)
// come from the config file named by --config or ORGHELPER_CONFIG,
// optionally sealed with age via "credentials seal".
package main
