// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package orgauto

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/bureau-foundation/orghelper/lib/github"
)

// fakeGitHub is an in-process GitHub serving the REST and GraphQL
// calls the orchestrator makes. Each handler field returns the status
// and body for its call; a nil handler fails the test when reached.
type fakeGitHub struct {
	t      *testing.T
	server *httptest.Server

	createTeam    func(body map[string]any) (int, string)
	addMember     func(path string, body map[string]any) (int, string)
	orgLookup     func(variables map[string]any) (int, string)
	orgTeamLookup func(variables map[string]any) (int, string)
	createProject func(variables map[string]any) (int, string)
	linkProject   func(variables map[string]any) (int, string)

	mu    sync.Mutex
	calls []string
}

func newFakeGitHub(t *testing.T) *fakeGitHub {
	t.Helper()
	fake := &fakeGitHub{t: t}
	fake.server = httptest.NewTLSServer(http.HandlerFunc(fake.serve))
	t.Cleanup(fake.server.Close)
	return fake
}

func (fake *fakeGitHub) record(call string) {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	fake.calls = append(fake.calls, call)
}

// Calls returns the sequence of call names served so far.
func (fake *fakeGitHub) Calls() []string {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	return append([]string(nil), fake.calls...)
}

func (fake *fakeGitHub) serve(writer http.ResponseWriter, request *http.Request) {
	data, _ := io.ReadAll(request.Body)
	var body map[string]any
	if len(data) > 0 {
		if err := json.Unmarshal(data, &body); err != nil {
			fake.t.Errorf("decoding %s %s body: %v", request.Method, request.URL.Path, err)
		}
	}

	var handler func() (int, string)
	var call string
	switch {
	case request.URL.Path == "/graphql":
		query, _ := body["query"].(string)
		variables, _ := body["variables"].(map[string]any)
		switch {
		case strings.Contains(query, "createProjectV2"):
			call, handler = "createProjectV2", bind(fake.createProject, variables)
		case strings.Contains(query, "linkProjectV2ToTeam"):
			call, handler = "linkProjectV2ToTeam", bind(fake.linkProject, variables)
		case strings.Contains(query, "team(slug"):
			call, handler = "orgTeamLookup", bind(fake.orgTeamLookup, variables)
		default:
			call, handler = "orgLookup", bind(fake.orgLookup, variables)
		}
	case request.Method == http.MethodPost && strings.HasSuffix(request.URL.Path, "/teams"):
		call, handler = "createTeam", bind(fake.createTeam, body)
	case request.Method == http.MethodPut && strings.Contains(request.URL.Path, "/memberships/"):
		if fake.addMember != nil {
			path := request.URL.Path
			call, handler = "addMember", func() (int, string) { return fake.addMember(path, body) }
		} else {
			call = "addMember"
		}
	default:
		call = request.Method + " " + request.URL.Path
	}

	fake.record(call)
	if handler == nil {
		fake.t.Errorf("unexpected call %s", call)
		writer.WriteHeader(http.StatusTeapot)
		return
	}
	status, response := handler()
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	fmt.Fprint(writer, response)
}

func bind[T any](handler func(T) (int, string), argument T) func() (int, string) {
	if handler == nil {
		return nil
	}
	return func() (int, string) { return handler(argument) }
}

func (fake *fakeGitHub) orchestrator() *Orchestrator {
	return New(Config{
		BaseURL:    fake.server.URL,
		HTTPClient: fake.server.Client(),
	})
}

var testHeaders = github.AuthHeaders{
	Authorization: "Bearer test-token",
	Accept:        github.AcceptHeader,
	UserAgent:     github.UserAgent,
}

func ok(body string) func(map[string]any) (int, string) {
	return func(map[string]any) (int, string) { return http.StatusOK, body }
}

const (
	orgFound      = `{"data":{"organization":{"id":"O_acme"}}}`
	orgTeamFound  = `{"data":{"organization":{"id":"O_acme","team":{"id":"T_platform"}}}}`
	projectFound  = `{"data":{"createProjectV2":{"projectV2":{"id":"PVT_1","title":"Roadmap","url":"https://github.com/orgs/acme/projects/3","number":3}}}}`
	linkSucceeded = `{"data":{"linkProjectV2ToTeam":{"clientMutationId":null}}}`
)
