// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/orghelper/cmd/orghelper/cli"
	"github.com/bureau-foundation/orghelper/lib/orgauto"
)

func (a *app) teamCommand() *cli.Command {
	return &cli.Command{
		Name:    "team",
		Summary: "Manage organization teams",
		Subcommands: []*cli.Command{
			a.teamCreateCommand(),
		},
	}
}

type teamCreateParams struct {
	CommonParams
	Organization string `flag:"org" desc:"organization login (required)"`
	Name         string `flag:"name" desc:"team name (required)"`
	Description  string `flag:"description" desc:"team description"`
	Privacy      string `flag:"privacy" desc:"closed (visible to all members) or secret" default:"closed"`
}

func (a *app) teamCreateCommand() *cli.Command {
	var params teamCreateParams
	return &cli.Command{
		Name:    "create",
		Summary: "Create a team",
		Usage:   "orghelper team create --org <org> --name <name> [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("create", &params)
		},
		Run: func(ctx context.Context, args []string) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			return a.runSingle(ctx, params.CommonParams, orgauto.CreateTeam{
				Organization: params.Organization,
				Name:         params.Name,
				Description:  params.Description,
				Privacy:      orgauto.Privacy(params.Privacy),
			})
		},
	}
}

func (a *app) projectCommand() *cli.Command {
	return &cli.Command{
		Name:    "project",
		Summary: "Manage organization Projects V2 boards",
		Subcommands: []*cli.Command{
			a.projectCreateCommand(),
			a.projectCreateForTeamCommand(),
		},
	}
}

type projectCreateParams struct {
	CommonParams
	Organization string `flag:"org" desc:"organization login (required)"`
	Name         string `flag:"name" desc:"project title (required)"`
	Description  string `flag:"description" desc:"description to add in project settings afterwards"`
}

func (a *app) projectCreateCommand() *cli.Command {
	var params projectCreateParams
	return &cli.Command{
		Name:    "create",
		Summary: "Create an organization project",
		Description: `Create an organization-owned Projects V2 board.

Projects V2 boards take no description at creation time; when
--description is given the result carries a note with the text to add
in the project settings.`,
		Usage: "orghelper project create --org <org> --name <title> [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("create", &params)
		},
		Run: func(ctx context.Context, args []string) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			return a.runSingle(ctx, params.CommonParams, orgauto.CreateProject{
				Organization: params.Organization,
				Name:         params.Name,
				Description:  params.Description,
			})
		},
	}
}

type projectCreateForTeamParams struct {
	CommonParams
	Organization string `flag:"org" desc:"organization login (required)"`
	Name         string `flag:"name" desc:"project title (required)"`
	Team         string `flag:"team" desc:"slug of the team to link (required)"`
	Description  string `flag:"description" desc:"description to add in project settings afterwards"`
}

func (a *app) projectCreateForTeamCommand() *cli.Command {
	var params projectCreateForTeamParams
	return &cli.Command{
		Name:    "create-for-team",
		Summary: "Create a project and link a team to it",
		Description: `Create an organization-owned Projects V2 board and link a team.

If the board is created but the team cannot be linked, the result is
"partial" with the link error and instructions for linking by hand.`,
		Usage: "orghelper project create-for-team --org <org> --name <title> --team <slug> [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("create-for-team", &params)
		},
		Run: func(ctx context.Context, args []string) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			return a.runSingle(ctx, params.CommonParams, orgauto.CreateProjectForTeam{
				Organization: params.Organization,
				Name:         params.Name,
				Description:  params.Description,
				TeamSlug:     params.Team,
			})
		},
	}
}

func (a *app) memberCommand() *cli.Command {
	return &cli.Command{
		Name:    "member",
		Summary: "Manage team membership",
		Subcommands: []*cli.Command{
			a.memberAddCommand(),
		},
	}
}

type memberAddParams struct {
	CommonParams
	Organization string `flag:"org" desc:"organization login (required)"`
	Team         string `flag:"team" desc:"team slug (required)"`
	User         string `flag:"user" desc:"GitHub username (required)"`
	Role         string `flag:"role" desc:"member or maintainer" default:"member"`
}

func (a *app) memberAddCommand() *cli.Command {
	var params memberAddParams
	return &cli.Command{
		Name:    "add",
		Summary: "Add a user to a team",
		Usage:   "orghelper member add --org <org> --team <slug> --user <login> [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("add", &params)
		},
		Run: func(ctx context.Context, args []string) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			return a.runSingle(ctx, params.CommonParams, orgauto.AddTeamMember{
				Organization: params.Organization,
				TeamSlug:     params.Team,
				Username:     params.User,
				Role:         orgauto.Role(params.Role),
			})
		},
	}
}
