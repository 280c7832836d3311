// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package github

import (
	"context"
	"encoding/json"
)

// ProjectV2 is the subset of a Projects V2 board reported back to
// callers.
type ProjectV2 struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	URL    string `json:"url"`
	Number int    `json:"number"`
}

const organizationIDQuery = `query($org: String!) {
  organization(login: $org) {
    id
  }
}`

const organizationAndTeamQuery = `query($org: String!, $teamSlug: String!) {
  organization(login: $org) {
    id
    team(slug: $teamSlug) {
      id
    }
  }
}`

const createProjectMutation = `mutation($ownerId: ID!, $title: String!) {
  createProjectV2(input: {ownerId: $ownerId, title: $title}) {
    projectV2 {
      id
      title
      url
      number
    }
  }
}`

const linkProjectToTeamMutation = `mutation($projectId: ID!, $teamId: ID!) {
  linkProjectV2ToTeam(input: {projectId: $projectId, teamId: $teamId}) {
    clientMutationId
  }
}`

// OrganizationID returns the GraphQL node ID of org, or "" when the
// organization is not visible to the caller.
func (client *Client) OrganizationID(ctx context.Context, org string) (string, error) {
	var data struct {
		Organization *struct {
			ID string `json:"id"`
		} `json:"organization"`
	}
	if err := client.GraphQL(ctx, organizationIDQuery, map[string]any{"org": org}, &data); err != nil {
		return "", err
	}
	if data.Organization == nil {
		return "", nil
	}
	return data.Organization.ID, nil
}

// OrganizationAndTeamIDs looks up org and one of its teams in a single
// query. Either ID is "" when that node is missing.
func (client *Client) OrganizationAndTeamIDs(ctx context.Context, org, teamSlug string) (orgID, teamID string, err error) {
	var data struct {
		Organization *struct {
			ID   string `json:"id"`
			Team *struct {
				ID string `json:"id"`
			} `json:"team"`
		} `json:"organization"`
	}
	variables := map[string]any{"org": org, "teamSlug": teamSlug}
	if err := client.GraphQL(ctx, organizationAndTeamQuery, variables, &data); err != nil {
		return "", "", err
	}
	if data.Organization == nil {
		return "", "", nil
	}
	if data.Organization.Team != nil {
		teamID = data.Organization.Team.ID
	}
	return data.Organization.ID, teamID, nil
}

// CreateProjectV2 creates a board owned by ownerID. It returns the
// project and the project object as GitHub sent it. A nil project with
// a nil error means the mutation returned no projectV2 object.
func (client *Client) CreateProjectV2(ctx context.Context, ownerID, title string) (*ProjectV2, json.RawMessage, error) {
	var data struct {
		CreateProjectV2 *struct {
			ProjectV2 json.RawMessage `json:"projectV2"`
		} `json:"createProjectV2"`
	}
	variables := map[string]any{"ownerId": ownerID, "title": title}
	if err := client.GraphQL(ctx, createProjectMutation, variables, &data); err != nil {
		return nil, nil, err
	}
	if data.CreateProjectV2 == nil || len(data.CreateProjectV2.ProjectV2) == 0 || string(data.CreateProjectV2.ProjectV2) == "null" {
		return nil, nil, nil
	}

	var project ProjectV2
	if err := json.Unmarshal(data.CreateProjectV2.ProjectV2, &project); err != nil {
		return nil, nil, err
	}
	return &project, data.CreateProjectV2.ProjectV2, nil
}

// LinkProjectV2ToTeam grants teamID access to projectID.
func (client *Client) LinkProjectV2ToTeam(ctx context.Context, projectID, teamID string) error {
	variables := map[string]any{"projectId": projectID, "teamId": teamID}
	return client.GraphQL(ctx, linkProjectToTeamMutation, variables, nil)
}
