// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/orghelper/cmd/orghelper/cli"
	"github.com/bureau-foundation/orghelper/lib/orgauto"
	"github.com/bureau-foundation/orghelper/lib/report"
)

type runParams struct {
	CommonParams
	ContinueOnFail bool `flag:"continue-on-fail" desc:"record failed records and keep going (exit code 2 if any failed)"`
}

func (a *app) runCommand() *cli.Command {
	var params runParams
	return &cli.Command{
		Name:    "run",
		Summary: "Process a batch file of requests",
		Description: `Process a batch file of requests in order, one record at a time.

The file is a YAML (.yaml, .yml) or JSONC (anything else) array of
records. Each record names an operation (team.create, project.create,
project.create_for_team, team_member.add) and its fields:

  - operation: team.create
    organization: acme
    name: platform
    privacy: secret

  - operation: project.create_for_team
    organization: acme
    name: Platform Roadmap
    team_slug: platform

  - operation: team_member.add
    organization: acme
    team_slug: platform
    username: octocat
    role: maintainer

The credential is resolved separately for every record. Without
--continue-on-fail (or batch.continue_on_fail in the config) the first
failed record stops the run; records completed before it are still
reported.`,
		Usage: "orghelper run <batch-file> [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("run", &params)
		},
		Run: func(ctx context.Context, args []string) error {
			if len(args) != 1 {
				return cli.Validation("run requires exactly one batch file argument")
			}
			requests, err := orgauto.ReadRequestFile(args[0])
			if err != nil {
				return cli.Categorize(cli.CategoryValidation, err)
			}

			opened, err := a.open(params.CommonParams, "run")
			if err != nil {
				return err
			}
			opened.runner.ContinueOnFail = params.ContinueOnFail || opened.config.Batch.ContinueOnFail

			records, runErr := opened.runner.Run(ctx, opened.credential, requests)
			if err := report.Render(a.stdout, opened.format, records); err != nil {
				return cli.Internal("writing report: %v", err)
			}
			if runErr != nil {
				return categorize(runErr)
			}

			if failed := orgauto.FailedCount(records); failed > 0 {
				opened.logger.Warn("batch finished with failed records",
					"failed", failed,
					"total", len(records),
				)
				return &cli.ExitError{Code: 2}
			}
			return nil
		},
	}
}
