// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package orgauto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/orghelper/lib/github"
)

// requestDocument is one entry of a batch file. Which fields are
// allowed depends on Operation.
type requestDocument struct {
	Operation    Operation `json:"operation" yaml:"operation"`
	Organization string    `json:"organization" yaml:"organization"`
	Name         string    `json:"name,omitempty" yaml:"name,omitempty"`
	Description  string    `json:"description,omitempty" yaml:"description,omitempty"`
	Privacy      Privacy   `json:"privacy,omitempty" yaml:"privacy,omitempty"`
	TeamSlug     string    `json:"team_slug,omitempty" yaml:"team_slug,omitempty"`
	Username     string    `json:"username,omitempty" yaml:"username,omitempty"`
	Role         Role      `json:"role,omitempty" yaml:"role,omitempty"`
}

// ReadRequestFile reads and parses a batch file from disk.
func ReadRequestFile(path string) ([]Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	requests, err := ParseRequests(path, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return requests, nil
}

// ParseRequests parses a batch file: a list of request objects, each
// with an "operation" field. name selects the format by extension:
// ".yaml" and ".yml" are YAML, anything else is JSON extended with
// comments and trailing commas. Unknown fields, and fields that do not
// apply to the record's operation, are errors. Errors name the 0-based
// record index.
func ParseRequests(name string, data []byte) ([]Request, error) {
	var documents []requestDocument
	var err error
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		documents, err = decodeYAML(data)
	default:
		documents, err = decodeJSONC(data)
	}
	if err != nil {
		return nil, err
	}

	requests := make([]Request, 0, len(documents))
	for index, document := range documents {
		request, err := document.request()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", index, err)
		}
		requests = append(requests, request)
	}
	return requests, nil
}

func decodeJSONC(data []byte) ([]requestDocument, error) {
	var elements []json.RawMessage
	if err := json.Unmarshal(jsonc.ToJSON(data), &elements); err != nil {
		return nil, fmt.Errorf("parsing requests: expected a list of request objects: %w", err)
	}

	documents := make([]requestDocument, len(elements))
	for index, element := range elements {
		decoder := json.NewDecoder(bytes.NewReader(element))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&documents[index]); err != nil {
			return nil, fmt.Errorf("record %d: %w", index, err)
		}
	}
	return documents, nil
}

func decodeYAML(data []byte) ([]requestDocument, error) {
	var nodes []yaml.Node
	if err := yaml.Unmarshal(data, &nodes); err != nil {
		return nil, fmt.Errorf("parsing requests: expected a list of request objects: %w", err)
	}

	documents := make([]requestDocument, len(nodes))
	for index := range nodes {
		// Node.Decode ignores unknown keys, so round-trip through a
		// strict decoder.
		encoded, err := yaml.Marshal(&nodes[index])
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", index, err)
		}
		decoder := yaml.NewDecoder(bytes.NewReader(encoded))
		decoder.KnownFields(true)
		if err := decoder.Decode(&documents[index]); err != nil {
			return nil, fmt.Errorf("record %d: %w", index, err)
		}
	}
	return documents, nil
}

func (document requestDocument) request() (Request, error) {
	var request Request
	var unused []string
	switch document.Operation {
	case OperationCreateTeam:
		request = CreateTeam{
			Organization: document.Organization,
			Name:         document.Name,
			Description:  document.Description,
			Privacy:      document.Privacy,
		}
		unused = document.setFields("team_slug", "username", "role")
	case OperationCreateProject:
		request = CreateProject{
			Organization: document.Organization,
			Name:         document.Name,
			Description:  document.Description,
		}
		unused = document.setFields("privacy", "team_slug", "username", "role")
	case OperationCreateProjectForTeam:
		request = CreateProjectForTeam{
			Organization: document.Organization,
			Name:         document.Name,
			Description:  document.Description,
			TeamSlug:     document.TeamSlug,
		}
		unused = document.setFields("privacy", "username", "role")
	case OperationAddTeamMember:
		request = AddTeamMember{
			Organization: document.Organization,
			TeamSlug:     document.TeamSlug,
			Username:     document.Username,
			Role:         document.Role,
		}
		unused = document.setFields("name", "description", "privacy")
	case "":
		return nil, github.MissingField("operation", "operation is required")
	default:
		return nil, invalid("operation", "unknown operation %q (want %s, %s, %s or %s)", document.Operation,
			OperationCreateTeam, OperationCreateProject, OperationCreateProjectForTeam, OperationAddTeamMember)
	}

	if len(unused) > 0 {
		return nil, invalid(unused[0], "field %q does not apply to operation %s", unused[0], document.Operation)
	}
	if err := request.Validate(); err != nil {
		return nil, err
	}
	return request, nil
}

// setFields returns which of the named fields carry a value.
func (document requestDocument) setFields(names ...string) []string {
	values := map[string]string{
		"name":        document.Name,
		"description": document.Description,
		"privacy":     string(document.Privacy),
		"team_slug":   document.TeamSlug,
		"username":    document.Username,
		"role":        string(document.Role),
	}
	var set []string
	for _, name := range names {
		if values[name] != "" {
			set = append(set, name)
		}
	}
	return set
}
