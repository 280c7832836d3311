// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package github

import (
	"log/slog"
	"net/http"
)

const (
	// AcceptHeader is sent on every request.
	AcceptHeader = "application/vnd.github.v3+json"

	// UserAgent identifies orghelper to GitHub. GitHub rejects
	// requests without a User-Agent.
	UserAgent = "bureau-orghelper"
)

// AuthHeaders is the resolved request header set for one unit of work.
// It is the only artifact that crosses from credential resolution into
// API calls.
type AuthHeaders struct {
	Authorization string
	Accept        string
	UserAgent     string
}

func bearerHeaders(token string) AuthHeaders {
	return AuthHeaders{
		Authorization: "Bearer " + token,
		Accept:        AcceptHeader,
		UserAgent:     UserAgent,
	}
}

func (headers AuthHeaders) apply(request *http.Request) {
	request.Header.Set("Authorization", headers.Authorization)
	request.Header.Set("Accept", headers.Accept)
	request.Header.Set("User-Agent", headers.UserAgent)
}

// LogValue keeps the bearer value out of logs.
func (headers AuthHeaders) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("authorization", redact(headers.Authorization)),
		slog.String("accept", headers.Accept),
		slog.String("user_agent", headers.UserAgent),
	)
}
