// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package github

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/bureau-foundation/orghelper/lib/clock"
	"github.com/bureau-foundation/orghelper/lib/netutil"
)

// defaultBaseURL is the base URL for the public GitHub API.
const defaultBaseURL = "https://api.github.com"

// ResolverConfig configures a Resolver.
type ResolverConfig struct {
	// BaseURL is the root URL for the token exchange. Defaults to
	// "https://api.github.com". Must use HTTPS.
	BaseURL string

	// HTTPClient is used for the token exchange. Defaults to
	// http.DefaultClient.
	HTTPClient *http.Client

	// Clock supplies the assertion timestamps. Defaults to
	// clock.Real().
	Clock clock.Clock

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Resolver turns a stored Credential into the header set for one unit
// of work. It holds no token state: every App resolution mints a new
// assertion and performs a new exchange.
type Resolver struct {
	baseURL    string
	httpClient *http.Client
	clock      clock.Clock
	logger     *slog.Logger
}

// NewResolver validates config and returns a Resolver.
func NewResolver(config ResolverConfig) (*Resolver, error) {
	baseURL, err := normalizeBaseURL(config.BaseURL)
	if err != nil {
		return nil, err
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	clk := config.Clock
	if clk == nil {
		clk = clock.Real()
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Resolver{
		baseURL:    baseURL,
		httpClient: httpClient,
		clock:      clk,
		logger:     logger,
	}, nil
}

// normalizeBaseURL applies the default and enforces HTTPS.
func normalizeBaseURL(baseURL string) (string, error) {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")
	if !strings.HasPrefix(baseURL, "https://") {
		return "", fmt.Errorf("github: API client requires HTTPS (got %q)", baseURL)
	}
	return baseURL, nil
}

// Resolve produces the AuthHeaders for credential. Token credentials
// resolve without any network call. App credentials are checked for
// missing fields first (app_id, installation_id, private_key, in that
// order), then the key is normalized, an assertion is minted, and the
// assertion is exchanged for an installation token. The first failing
// stage's classified error is returned unchanged.
func (resolver *Resolver) Resolve(ctx context.Context, credential Credential) (AuthHeaders, error) {
	switch credential := credential.(type) {
	case TokenCredential:
		if credential.AccessToken == "" {
			return AuthHeaders{}, MissingField("access_token", "access token is required for token authentication")
		}
		return bearerHeaders(credential.AccessToken), nil
	case *TokenCredential:
		if credential == nil {
			break
		}
		return resolver.Resolve(ctx, *credential)
	case AppCredential:
		return resolver.resolveApp(ctx, credential)
	case *AppCredential:
		if credential == nil {
			break
		}
		return resolver.resolveApp(ctx, *credential)
	}
	return AuthHeaders{}, MissingField("auth_method", "no credential configured")
}

func (resolver *Resolver) resolveApp(ctx context.Context, credential AppCredential) (AuthHeaders, error) {
	switch {
	case credential.AppID == "":
		return AuthHeaders{}, MissingField("app_id", "App ID is required for GitHub App authentication")
	case credential.InstallationID == "":
		return AuthHeaders{}, MissingField("installation_id", "Installation ID is required for GitHub App authentication")
	case credential.PrivateKeyPEM == "":
		return AuthHeaders{}, MissingField("private_key", "private key is required for GitHub App authentication")
	}

	logger := resolver.logger.With(
		"app_id", credential.AppID,
		"installation_id", credential.InstallationID,
	)

	privateKey, err := NormalizePrivateKey(credential.PrivateKeyPEM)
	if err != nil {
		return AuthHeaders{}, err
	}

	assertion, err := MintAssertion(credential.AppID, privateKey, resolver.clock.Now())
	if err != nil {
		return AuthHeaders{}, err
	}
	logger.Debug("minted app assertion", "expires_at", assertion.ExpiresAt)

	token, err := resolver.ExchangeInstallationToken(ctx, assertion, credential.InstallationID)
	if err != nil {
		return AuthHeaders{}, err
	}
	logger.Debug("obtained installation token")

	return bearerHeaders(token), nil
}

// ExchangeInstallationToken trades a signed assertion for an
// installation access token with a single POST. The token is returned
// to the caller and not retained.
func (resolver *Resolver) ExchangeInstallationToken(ctx context.Context, assertion *Assertion, installationID string) (string, error) {
	endpoint := resolver.baseURL + "/app/installations/" + url.PathEscape(installationID) + "/access_tokens"
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return "", &Error{
			Kind:    KindTokenExchangeFailed,
			Message: "creating token exchange request",
			Err:     err,
		}
	}
	bearerHeaders(assertion.Token).apply(request)

	response, err := resolver.httpClient.Do(request)
	if err != nil {
		return "", &Error{
			Kind:    KindTokenExchangeFailed,
			Message: "failed to get installation token",
			Err:     err,
		}
	}
	defer response.Body.Close()

	body, err := netutil.ReadResponse(response.Body)
	if err != nil {
		return "", &Error{
			Kind:    KindTokenExchangeFailed,
			Message: "reading token exchange response",
			Err:     err,
		}
	}
	truncated := netutil.TruncateBody(body)

	switch {
	case response.StatusCode == http.StatusUnauthorized:
		return "", &Error{
			Kind: KindAuthRejected,
			Message: "GitHub App authentication failed (HTTP 401); check that the App ID is correct, " +
				"the private key belongs to this App, the installation ID is correct, " +
				"and this host's clock is accurate",
			Body: truncated,
		}
	case response.StatusCode == http.StatusNotFound:
		return "", &Error{
			Kind:    KindInstallationNotFound,
			Message: fmt.Sprintf("installation %s not found; check the installation ID and that the App is installed on the organization", installationID),
			Body:    truncated,
		}
	case response.StatusCode < 200 || response.StatusCode >= 300:
		return "", &Error{
			Kind:    KindTokenExchangeFailed,
			Message: fmt.Sprintf("failed to get installation token: HTTP %d: %s", response.StatusCode, truncated),
			Body:    truncated,
		}
	}

	var result struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(body, &result); err != nil || result.Token == "" {
		return "", &Error{
			Kind:    KindTokenExchangeFailed,
			Message: "failed to get installation token: response carried no token: " + truncated,
			Body:    truncated,
		}
	}
	return result.Token, nil
}
