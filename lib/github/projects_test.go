// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// graphQLServer answers every /graphql POST with respond(query,
// variables).
func graphQLServer(t *testing.T, respond func(query string, variables map[string]any) string) *httptest.Server {
	t.Helper()
	server := httptest.NewTLSServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Path != "/graphql" || request.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", request.Method, request.URL.Path)
			writer.WriteHeader(http.StatusNotFound)
			return
		}
		data, _ := io.ReadAll(request.Body)
		var payload graphQLRequest
		if err := json.Unmarshal(data, &payload); err != nil {
			t.Errorf("decoding GraphQL request: %v", err)
		}
		writer.Header().Set("Content-Type", "application/json")
		fmt.Fprint(writer, respond(payload.Query, payload.Variables))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestOrganizationID(t *testing.T) {
	server := graphQLServer(t, func(query string, variables map[string]any) string {
		if variables["org"] != "acme" {
			t.Errorf("org variable = %v", variables["org"])
		}
		return `{"data":{"organization":{"id":"O_1"}}}`
	})

	id, err := newTestClient(t, server).OrganizationID(context.Background(), "acme")
	if err != nil {
		t.Fatalf("OrganizationID: %v", err)
	}
	if id != "O_1" {
		t.Errorf("id = %q, want O_1", id)
	}
}

func TestOrganizationID_Null(t *testing.T) {
	server := graphQLServer(t, func(string, map[string]any) string {
		return `{"data":{"organization":null}}`
	})

	id, err := newTestClient(t, server).OrganizationID(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("OrganizationID: %v", err)
	}
	if id != "" {
		t.Errorf("id = %q, want empty", id)
	}
}

func TestGraphQL_Errors(t *testing.T) {
	server := graphQLServer(t, func(string, map[string]any) string {
		return `{"data":{"organization":null},"errors":[{"type":"NOT_FOUND","path":["organization"],"message":"Could not resolve to an Organization with the login of 'ghost'."}]}`
	})

	_, err := newTestClient(t, server).OrganizationID(context.Background(), "ghost")
	var graphQLError *GraphQLError
	if !errors.As(err, &graphQLError) {
		t.Fatalf("error = %v, want *GraphQLError", err)
	}
	if len(graphQLError.Entries) != 1 || graphQLError.Entries[0].Type != "NOT_FOUND" {
		t.Errorf("Entries = %+v", graphQLError.Entries)
	}
	if !strings.HasPrefix(string(graphQLError.Raw), `[{"type":"NOT_FOUND"`) {
		t.Errorf("Raw = %s", graphQLError.Raw)
	}
}

func TestGraphQL_EmptyErrorsArray(t *testing.T) {
	server := graphQLServer(t, func(string, map[string]any) string {
		return `{"data":{"organization":{"id":"O_1"}},"errors":[]}`
	})

	if _, err := newTestClient(t, server).OrganizationID(context.Background(), "acme"); err != nil {
		t.Errorf("empty errors array treated as failure: %v", err)
	}
}

func TestOrganizationAndTeamIDs(t *testing.T) {
	tests := []struct {
		name     string
		response string
		wantOrg  string
		wantTeam string
	}{
		{"both", `{"data":{"organization":{"id":"O_1","team":{"id":"T_1"}}}}`, "O_1", "T_1"},
		{"no team", `{"data":{"organization":{"id":"O_1","team":null}}}`, "O_1", ""},
		{"no org", `{"data":{"organization":null}}`, "", ""},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			server := graphQLServer(t, func(query string, variables map[string]any) string {
				if variables["teamSlug"] != "platform" {
					t.Errorf("teamSlug variable = %v", variables["teamSlug"])
				}
				return test.response
			})

			orgID, teamID, err := newTestClient(t, server).OrganizationAndTeamIDs(context.Background(), "acme", "platform")
			if err != nil {
				t.Fatalf("OrganizationAndTeamIDs: %v", err)
			}
			if orgID != test.wantOrg || teamID != test.wantTeam {
				t.Errorf("ids = (%q, %q), want (%q, %q)", orgID, teamID, test.wantOrg, test.wantTeam)
			}
		})
	}
}

func TestCreateProjectV2(t *testing.T) {
	server := graphQLServer(t, func(query string, variables map[string]any) string {
		if !strings.Contains(query, "createProjectV2") {
			t.Errorf("query = %q", query)
		}
		if variables["ownerId"] != "O_1" || variables["title"] != "Roadmap" {
			t.Errorf("variables = %v", variables)
		}
		return `{"data":{"createProjectV2":{"projectV2":{"id":"PVT_1","title":"Roadmap","url":"https://github.com/orgs/acme/projects/3","number":3}}}}`
	})

	project, raw, err := newTestClient(t, server).CreateProjectV2(context.Background(), "O_1", "Roadmap")
	if err != nil {
		t.Fatalf("CreateProjectV2: %v", err)
	}
	if project == nil || project.ID != "PVT_1" || project.Number != 3 || project.URL != "https://github.com/orgs/acme/projects/3" {
		t.Errorf("project = %+v", project)
	}
	if !strings.Contains(string(raw), `"number":3`) {
		t.Errorf("raw = %s", raw)
	}
}

func TestCreateProjectV2_NoProject(t *testing.T) {
	server := graphQLServer(t, func(string, map[string]any) string {
		return `{"data":{"createProjectV2":{"projectV2":null}}}`
	})

	project, _, err := newTestClient(t, server).CreateProjectV2(context.Background(), "O_1", "Roadmap")
	if err != nil {
		t.Fatalf("CreateProjectV2: %v", err)
	}
	if project != nil {
		t.Errorf("project = %+v, want nil", project)
	}
}

func TestLinkProjectV2ToTeam(t *testing.T) {
	var gotVariables map[string]any
	server := graphQLServer(t, func(query string, variables map[string]any) string {
		gotVariables = variables
		return `{"data":{"linkProjectV2ToTeam":{"clientMutationId":null}}}`
	})

	if err := newTestClient(t, server).LinkProjectV2ToTeam(context.Background(), "PVT_1", "T_1"); err != nil {
		t.Fatalf("LinkProjectV2ToTeam: %v", err)
	}
	if gotVariables["projectId"] != "PVT_1" || gotVariables["teamId"] != "T_1" {
		t.Errorf("variables = %v", gotVariables)
	}
}
