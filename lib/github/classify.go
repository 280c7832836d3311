// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package github

import (
	"errors"
	"fmt"
	"net/http"
)

// Classification describes how to read a failure from one upstream
// call. The caller knows what the call was about (an organization, a
// team, an installation) and therefore what a 404 or a GraphQL errors
// array most likely means.
type Classification struct {
	// Subject names the thing the call was about, for messages:
	// "organization 'acme'", "team 'platform' in organization 'acme'".
	Subject string

	// NotFound is the kind reported for HTTP 404. Defaults to
	// KindUpstreamError.
	NotFound Kind

	// Domain is the kind reported for GraphQL errors arrays. Defaults
	// to KindUpstreamError.
	Domain Kind

	// Hint is appended to domain failures, e.g. a token scope reminder.
	Hint string
}

// Classify maps err onto the Kind taxonomy. Already-classified errors
// pass through unchanged. Nil stays nil.
func (classification Classification) Classify(err error) error {
	if err == nil {
		return nil
	}

	var classified *Error
	if errors.As(err, &classified) {
		return err
	}

	var graphQLError *GraphQLError
	if errors.As(err, &graphQLError) {
		message := "GitHub GraphQL Error: " + string(graphQLError.Raw)
		if classification.Hint != "" {
			message += ". " + classification.Hint
		}
		return &Error{
			Kind:    orDefault(classification.Domain),
			Message: message,
			Body:    string(graphQLError.Raw),
		}
	}

	var apiError *APIError
	if errors.As(err, &apiError) {
		switch apiError.StatusCode {
		case http.StatusUnauthorized:
			return &Error{
				Kind:    KindAuthRejected,
				Message: "GitHub rejected the credentials (HTTP 401); check that the token or App installation is valid and not expired",
				Body:    apiError.Body,
				Err:     err,
			}
		case http.StatusNotFound:
			return &Error{
				Kind:    orDefault(classification.NotFound),
				Message: fmt.Sprintf("%s not found or you don't have access to it", classification.subject()),
				Body:    apiError.Body,
				Err:     err,
			}
		case http.StatusForbidden:
			return &Error{
				Kind:    KindUpstreamError,
				Message: fmt.Sprintf("GitHub refused access to %s (HTTP 403); the token likely lacks the required scope (admin:org for teams and memberships, project for projects)", classification.subject()),
				Body:    apiError.Body,
				Err:     err,
			}
		default:
			return &Error{
				Kind:    KindUpstreamError,
				Message: fmt.Sprintf("GitHub API returned HTTP %d for %s: %s", apiError.StatusCode, classification.subject(), apiError.Body),
				Body:    apiError.Body,
				Err:     err,
			}
		}
	}

	return &Error{
		Kind:    KindUpstreamError,
		Message: fmt.Sprintf("request for %s failed", classification.subject()),
		Err:     err,
	}
}

func (classification Classification) subject() string {
	if classification.Subject == "" {
		return "the requested resource"
	}
	return classification.Subject
}

func orDefault(kind Kind) Kind {
	if kind == "" {
		return KindUpstreamError
	}
	return kind
}
