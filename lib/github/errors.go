// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package github

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Kind classifies an organization-automation failure. The string
// values appear in machine-readable output.
type Kind string

const (
	// KindMissingField: a required credential or request field is empty.
	KindMissingField Kind = "missing_field"

	// KindInvalidRequest: a request field has a value outside its
	// allowed set (privacy, role, operation).
	KindInvalidRequest Kind = "invalid_request"

	// KindInvalidKeyFormat: the App private key is not PEM-bracketed.
	KindInvalidKeyFormat Kind = "invalid_key_format"

	// KindSigningError: the key is bracketed but cannot sign.
	KindSigningError Kind = "signing_error"

	// KindAuthRejected: GitHub answered 401.
	KindAuthRejected Kind = "auth_rejected"

	// KindInstallationNotFound: the installation ID is unknown or the
	// App is not installed.
	KindInstallationNotFound Kind = "installation_not_found"

	// KindTokenExchangeFailed: any other token exchange failure.
	KindTokenExchangeFailed Kind = "token_exchange_failed"

	KindOrgNotFound         Kind = "org_not_found"
	KindTeamNotFound        Kind = "team_not_found"
	KindProjectCreateFailed Kind = "project_create_failed"

	// KindUpstreamError is the catch-all. The raw body is attached.
	KindUpstreamError Kind = "upstream_error"
)

// Error is a classified failure. Message is written for the operator
// and names the probable cause; Err keeps the underlying chain.
type Error struct {
	Kind Kind

	// Field names the offending field for KindMissingField and
	// KindInvalidRequest.
	Field string

	Message string

	// Body is the raw upstream response body, when there was one.
	Body string

	Err error
}

func (err *Error) Error() string {
	if err.Err != nil {
		return err.Message + ": " + err.Err.Error()
	}
	return err.Message
}

func (err *Error) Unwrap() error { return err.Err }

// Errorf creates an unwrapped classified error.
func Errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// MissingField creates a KindMissingField error for field.
func MissingField(field, message string) *Error {
	return &Error{Kind: KindMissingField, Field: field, Message: message}
}

// KindOf returns the Kind of the first *Error in err's chain, or the
// empty Kind when there is none.
func KindOf(err error) Kind {
	var classified *Error
	if errors.As(err, &classified) {
		return classified.Kind
	}
	return ""
}

// IsKind reports whether err's chain contains an *Error of kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// APIError represents a non-2xx response from the GitHub API. GitHub
// returns structured JSON error bodies with a message, optional
// documentation URL, and optional field-level validation errors.
type APIError struct {
	// StatusCode is the HTTP response status code.
	StatusCode int

	// Message is the top-level error description from GitHub, or the
	// raw body when it was not JSON.
	Message string

	// DocumentationURL points to the relevant API documentation.
	DocumentationURL string

	// Errors contains field-level validation failures. Present only
	// on 422 Unprocessable Entity responses.
	Errors []ValidationError

	// Body is the raw (truncated) response body.
	Body string
}

// ValidationError describes a specific validation failure on a resource
// field. Returned by GitHub on 422 responses.
type ValidationError struct {
	Resource string `json:"resource"`
	Code     string `json:"code"`
	Field    string `json:"field"`
	Message  string `json:"message"`
}

func (err *APIError) Error() string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "github: HTTP %d: %s", err.StatusCode, err.Message)
	for _, validationError := range err.Errors {
		if validationError.Message != "" {
			fmt.Fprintf(&builder, "; %s.%s: %s", validationError.Resource, validationError.Field, validationError.Message)
		} else {
			fmt.Fprintf(&builder, "; %s.%s: %s", validationError.Resource, validationError.Field, validationError.Code)
		}
	}
	return builder.String()
}

// parseAPIError builds an APIError from a status code and body.
func parseAPIError(statusCode int, body []byte, truncated string) *APIError {
	apiError := &APIError{StatusCode: statusCode, Body: truncated}

	var wireError struct {
		Message          string            `json:"message"`
		DocumentationURL string            `json:"documentation_url"`
		Errors           []ValidationError `json:"errors"`
	}
	if json.Unmarshal(body, &wireError) == nil && wireError.Message != "" {
		apiError.Message = wireError.Message
		apiError.DocumentationURL = wireError.DocumentationURL
		apiError.Errors = wireError.Errors
	} else {
		apiError.Message = truncated
	}
	return apiError
}

// GraphQLError is a structurally valid GraphQL response that carried a
// non-empty errors array. It is a domain failure, not a transport one.
type GraphQLError struct {
	Entries []GraphQLErrorEntry

	// Raw is the errors array exactly as GitHub sent it.
	Raw json.RawMessage
}

// GraphQLErrorEntry is one element of a GraphQL errors array.
type GraphQLErrorEntry struct {
	Type    string `json:"type,omitempty"`
	Message string `json:"message"`

	// Path lists field names (strings) and list indices (numbers).
	Path []any `json:"path,omitempty"`
}

func (err *GraphQLError) Error() string {
	return "GitHub GraphQL Error: " + string(err.Raw)
}

// PathTouches reports whether any entry's path contains field.
func (err *GraphQLError) PathTouches(field string) bool {
	for _, entry := range err.Entries {
		for _, element := range entry.Path {
			if name, ok := element.(string); ok && name == field {
				return true
			}
		}
	}
	return false
}
