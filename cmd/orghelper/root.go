// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"

	"github.com/bureau-foundation/orghelper/cmd/orghelper/cli"
	"github.com/bureau-foundation/orghelper/lib/version"
)

// root builds the orghelper command tree.
func (a *app) root() *cli.Command {
	return &cli.Command{
		Name:   "orghelper",
		Output: a.stderr,
		Description: `orghelper: GitHub organization automation.

Create teams, create Projects V2 boards (optionally linked to a team),
and add team members, one at a time from flags or in bulk from a batch
file. Authenticates with a personal access token or as a GitHub App
installation, configured in orghelper.yaml.`,
		Subcommands: []*cli.Command{
			a.teamCommand(),
			a.projectCommand(),
			a.memberCommand(),
			a.runCommand(),
			a.credentialsCommand(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(_ context.Context, args []string) error {
					if len(args) > 0 {
						return cli.Validation("unexpected argument: %s", args[0])
					}
					version.Print(a.stdout, "orghelper")
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "Create a team",
				Command:     "orghelper team create --org acme --name platform --privacy secret",
			},
			{
				Description: "Run a batch file, recording failures instead of stopping",
				Command:     "orghelper run setup.yaml --continue-on-fail",
			},
		},
	}
}
