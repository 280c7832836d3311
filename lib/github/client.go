// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/bureau-foundation/orghelper/lib/netutil"
)

// githubAPIVersion is the GitHub REST API version header. Pinning the
// version ensures consistent behavior as GitHub evolves the API.
const githubAPIVersion = "2022-11-28"

// Config holds configuration for creating a GitHub API Client.
type Config struct {
	// BaseURL is the root URL for API requests. Defaults to
	// "https://api.github.com". Must use HTTPS.
	BaseURL string

	// Headers is the resolved header set every request carries.
	Headers AuthHeaders

	// HTTPClient is used for all HTTP requests. Defaults to
	// http.DefaultClient.
	HTTPClient *http.Client

	// Logger is used for structured logging. Defaults to slog.Default().
	Logger *slog.Logger
}

// Client is a typed client for the handful of REST and GraphQL calls
// organization automation needs. A Client is bound to one AuthHeaders
// value and is meant to live for one unit of work.
type Client struct {
	baseURL    string
	headers    AuthHeaders
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a client from config. Returns an error for a
// non-HTTPS base URL or an empty Authorization header.
func NewClient(config Config) (*Client, error) {
	baseURL, err := normalizeBaseURL(config.BaseURL)
	if err != nil {
		return nil, err
	}
	if config.Headers.Authorization == "" {
		return nil, fmt.Errorf("github: no authorization header configured")
	}

	headers := config.Headers
	if headers.Accept == "" {
		headers.Accept = AcceptHeader
	}
	if headers.UserAgent == "" {
		headers.UserAgent = UserAgent
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    baseURL,
		headers:    headers,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// do executes one request. The path is relative to the base URL. The
// request body is JSON-encoded from requestBody (nil for none).
//
// Returns the raw response body. On non-2xx responses, returns an
// *APIError.
func (client *Client) do(ctx context.Context, method, path string, requestBody any) ([]byte, error) {
	var bodyReader io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return nil, fmt.Errorf("github: encoding request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	url := client.baseURL + path
	request, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("github: creating request: %w", err)
	}
	client.headers.apply(request)
	request.Header.Set("X-GitHub-Api-Version", githubAPIVersion)
	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := client.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("github: %s %s: %w", method, url, err)
	}
	defer response.Body.Close()

	body, err := netutil.ReadResponse(response.Body)
	if err != nil {
		return nil, fmt.Errorf("github: reading response body: %w", err)
	}

	client.logger.Debug("github request",
		"method", method,
		"path", path,
		"status", response.StatusCode,
	)

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, parseAPIError(response.StatusCode, body, netutil.TruncateBody(body))
	}
	return body, nil
}
