// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors json.RawMessage `json:"errors"`
}

// GraphQL posts query with variables to /graphql and decodes the data
// member into data (which may be nil). HTTP-level failures return an
// *APIError. A 2xx response with a non-empty errors array returns a
// *GraphQLError; data is not decoded in that case.
func (client *Client) GraphQL(ctx context.Context, query string, variables map[string]any, data any) error {
	body, err := client.do(ctx, http.MethodPost, "/graphql", graphQLRequest{
		Query:     query,
		Variables: variables,
	})
	if err != nil {
		return err
	}

	var response graphQLResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return fmt.Errorf("github: decoding GraphQL response: %w", err)
	}

	if graphQLError := decodeGraphQLErrors(response.Errors); graphQLError != nil {
		return graphQLError
	}

	if data == nil || len(response.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(response.Data, data); err != nil {
		return fmt.Errorf("github: decoding GraphQL data: %w", err)
	}
	return nil
}

// decodeGraphQLErrors returns nil for an absent, null, or empty errors
// member.
func decodeGraphQLErrors(raw json.RawMessage) *GraphQLError {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var entries []GraphQLErrorEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		// Not an array of objects; still a failure signal.
		return &GraphQLError{Raw: raw}
	}
	if len(entries) == 0 {
		return nil
	}
	return &GraphQLError{Entries: entries, Raw: raw}
}
