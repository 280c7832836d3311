// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package orgauto

import (
	"fmt"

	"github.com/bureau-foundation/orghelper/lib/github"
)

// Operation names a request variant. The values are what batch files
// carry in their "operation" field.
type Operation string

const (
	OperationCreateTeam           Operation = "team.create"
	OperationCreateProject        Operation = "project.create"
	OperationCreateProjectForTeam Operation = "project.create_for_team"
	OperationAddTeamMember        Operation = "team_member.add"
)

// Privacy is a team visibility level.
type Privacy string

const (
	// PrivacyClosed: visible to all organization members.
	PrivacyClosed Privacy = "closed"
	// PrivacySecret: visible to organization owners and team members.
	PrivacySecret Privacy = "secret"
)

// Role is a team membership role.
type Role string

const (
	RoleMember     Role = "member"
	RoleMaintainer Role = "maintainer"
)

// Request is one unit of organization automation. The implementations
// are CreateTeam, CreateProject, CreateProjectForTeam and
// AddTeamMember.
type Request interface {
	Operation() Operation

	// Validate checks required fields and enumerated values without
	// contacting GitHub.
	Validate() error

	request()
}

// CreateTeam creates a team in Organization.
type CreateTeam struct {
	Organization string
	Name         string
	Description  string

	// Privacy defaults to PrivacyClosed.
	Privacy Privacy
}

// CreateProject creates an organization-owned Projects V2 board.
// Projects V2 cannot take a description at creation time, so a
// non-empty Description only produces a note in the result.
type CreateProject struct {
	Organization string
	Name         string
	Description  string
}

// CreateProjectForTeam creates a board and links TeamSlug to it.
type CreateProjectForTeam struct {
	Organization string
	Name         string
	Description  string
	TeamSlug     string
}

// AddTeamMember adds Username to the team, or updates the role of an
// existing member.
type AddTeamMember struct {
	Organization string
	TeamSlug     string
	Username     string

	// Role defaults to RoleMember.
	Role Role
}

func (CreateTeam) Operation() Operation           { return OperationCreateTeam }
func (CreateProject) Operation() Operation        { return OperationCreateProject }
func (CreateProjectForTeam) Operation() Operation { return OperationCreateProjectForTeam }
func (AddTeamMember) Operation() Operation        { return OperationAddTeamMember }

func (CreateTeam) request()           {}
func (CreateProject) request()        {}
func (CreateProjectForTeam) request() {}
func (AddTeamMember) request()        {}

func (request CreateTeam) Validate() error {
	if err := require("organization", request.Organization); err != nil {
		return err
	}
	if err := require("name", request.Name); err != nil {
		return err
	}
	switch request.Privacy {
	case "", PrivacyClosed, PrivacySecret:
		return nil
	default:
		return invalid("privacy", "unknown privacy %q (want %q or %q)", request.Privacy, PrivacyClosed, PrivacySecret)
	}
}

func (request CreateProject) Validate() error {
	if err := require("organization", request.Organization); err != nil {
		return err
	}
	return require("name", request.Name)
}

func (request CreateProjectForTeam) Validate() error {
	if err := require("organization", request.Organization); err != nil {
		return err
	}
	if err := require("name", request.Name); err != nil {
		return err
	}
	return require("team_slug", request.TeamSlug)
}

func (request AddTeamMember) Validate() error {
	if err := require("organization", request.Organization); err != nil {
		return err
	}
	if err := require("team_slug", request.TeamSlug); err != nil {
		return err
	}
	if err := require("username", request.Username); err != nil {
		return err
	}
	switch request.Role {
	case "", RoleMember, RoleMaintainer:
		return nil
	default:
		return invalid("role", "unknown role %q (want %q or %q)", request.Role, RoleMember, RoleMaintainer)
	}
}

func (request CreateTeam) privacy() Privacy {
	if request.Privacy == "" {
		return PrivacyClosed
	}
	return request.Privacy
}

func (request AddTeamMember) role() Role {
	if request.Role == "" {
		return RoleMember
	}
	return request.Role
}

func require(field, value string) error {
	if value == "" {
		return github.MissingField(field, field+" is required")
	}
	return nil
}

func invalid(field, format string, args ...any) error {
	return &github.Error{
		Kind:    github.KindInvalidRequest,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}
