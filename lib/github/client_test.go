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
	"testing"
)

// newTestClient creates a Client backed by the given httptest.Server
// with a static token header set.
func newTestClient(t *testing.T, server *httptest.Server) *Client {
	t.Helper()
	client, err := NewClient(Config{
		BaseURL:    server.URL,
		Headers:    bearerHeaders("test-token"),
		HTTPClient: server.Client(),
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

func TestNewClient_HTTPSEnforcement(t *testing.T) {
	_, err := NewClient(Config{
		BaseURL: "http://api.github.com",
		Headers: bearerHeaders("test"),
	})
	if err == nil {
		t.Fatal("expected error for HTTP URL")
	}
}

func TestNewClient_NoAuth(t *testing.T) {
	_, err := NewClient(Config{BaseURL: "https://api.github.com"})
	if err == nil {
		t.Fatal("expected error for empty Authorization header")
	}
}

func TestClient_HeaderInjection(t *testing.T) {
	var received http.Header
	server := httptest.NewTLSServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		received = request.Header.Clone()
		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(http.StatusCreated)
		fmt.Fprint(writer, `{"id":1,"slug":"platform"}`)
	}))
	defer server.Close()

	if _, err := newTestClient(t, server).CreateTeam(context.Background(), "acme", CreateTeamRequest{Name: "Platform", Privacy: "closed"}); err != nil {
		t.Fatalf("CreateTeam: %v", err)
	}

	checks := map[string]string{
		"Authorization":        "Bearer test-token",
		"Accept":               AcceptHeader,
		"User-Agent":           UserAgent,
		"X-Github-Api-Version": githubAPIVersion,
		"Content-Type":         "application/json",
	}
	for header, want := range checks {
		if got := received.Get(header); got != want {
			t.Errorf("%s = %q, want %q", header, got, want)
		}
	}
}

func TestCreateTeam(t *testing.T) {
	var path string
	var body map[string]any
	server := httptest.NewTLSServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		path = request.URL.Path
		data, _ := io.ReadAll(request.Body)
		json.Unmarshal(data, &body)
		writer.WriteHeader(http.StatusCreated)
		fmt.Fprint(writer, `{"id":7,"slug":"platform","privacy":"secret","extra":{"kept":true}}`)
	}))
	defer server.Close()

	team, err := newTestClient(t, server).CreateTeam(context.Background(), "acme", CreateTeamRequest{
		Name:    "Platform",
		Privacy: "secret",
	})
	if err != nil {
		t.Fatalf("CreateTeam: %v", err)
	}
	if path != "/orgs/acme/teams" {
		t.Errorf("path = %q", path)
	}
	if body["name"] != "Platform" || body["privacy"] != "secret" {
		t.Errorf("body = %v", body)
	}
	// The description is sent even when empty.
	if _, ok := body["description"]; !ok {
		t.Error("description missing from request body")
	}
	if string(team) != `{"id":7,"slug":"platform","privacy":"secret","extra":{"kept":true}}` {
		t.Errorf("team passthrough = %s", team)
	}
}

func TestCreateTeam_APIError(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusUnprocessableEntity)
		fmt.Fprint(writer, `{"message":"Validation Failed","errors":[{"resource":"Team","code":"already_exists","field":"name"}]}`)
	}))
	defer server.Close()

	_, err := newTestClient(t, server).CreateTeam(context.Background(), "acme", CreateTeamRequest{Name: "Platform"})
	var apiError *APIError
	if !errors.As(err, &apiError) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiError.StatusCode != http.StatusUnprocessableEntity || len(apiError.Errors) != 1 {
		t.Errorf("APIError = %+v", apiError)
	}
}

func TestAddTeamMember(t *testing.T) {
	var method, path string
	var body map[string]string
	server := httptest.NewTLSServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		method = request.Method
		path = request.URL.EscapedPath()
		data, _ := io.ReadAll(request.Body)
		json.Unmarshal(data, &body)
		fmt.Fprint(writer, `{"state":"pending","role":"maintainer"}`)
	}))
	defer server.Close()

	membership, err := newTestClient(t, server).AddTeamMember(context.Background(), "acme", "platform", "octo cat", "maintainer")
	if err != nil {
		t.Fatalf("AddTeamMember: %v", err)
	}
	if method != http.MethodPut {
		t.Errorf("method = %s, want PUT", method)
	}
	if path != "/orgs/acme/teams/platform/memberships/octo%20cat" {
		t.Errorf("path = %q", path)
	}
	if body["role"] != "maintainer" {
		t.Errorf("role = %q", body["role"])
	}
	if string(membership) != `{"state":"pending","role":"maintainer"}` {
		t.Errorf("membership passthrough = %s", membership)
	}
}
