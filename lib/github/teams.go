// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package github

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
)

// CreateTeamRequest is the body of POST /orgs/{org}/teams.
type CreateTeamRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	// Privacy is "closed" (visible to organization members) or
	// "secret" (visible to owners and team members).
	Privacy string `json:"privacy"`
}

// CreateTeam creates a team in org and returns GitHub's team object
// unmodified.
func (client *Client) CreateTeam(ctx context.Context, org string, request CreateTeamRequest) (json.RawMessage, error) {
	body, err := client.do(ctx, http.MethodPost, "/orgs/"+url.PathEscape(org)+"/teams", request)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

// AddTeamMember adds or updates username's membership in the team
// identified by teamSlug. role is "member" or "maintainer". Returns
// GitHub's membership object unmodified.
func (client *Client) AddTeamMember(ctx context.Context, org, teamSlug, username, role string) (json.RawMessage, error) {
	path := "/orgs/" + url.PathEscape(org) + "/teams/" + url.PathEscape(teamSlug) + "/memberships/" + url.PathEscape(username)
	body, err := client.do(ctx, http.MethodPut, path, map[string]string{"role": role})
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}
