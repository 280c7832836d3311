// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package github

import (
	"fmt"
	"log/slog"
)

// AuthMethod is the credential discriminator as written in config.
type AuthMethod string

const (
	AuthMethodToken AuthMethod = "token"
	AuthMethodApp   AuthMethod = "app"
)

// ParseAuthMethod validates a discriminator value. Empty means token,
// so token-only configurations can omit it.
func ParseAuthMethod(value string) (AuthMethod, error) {
	switch AuthMethod(value) {
	case "", AuthMethodToken:
		return AuthMethodToken, nil
	case AuthMethodApp:
		return AuthMethodApp, nil
	default:
		return "", &Error{
			Kind:    KindInvalidRequest,
			Field:   "auth_method",
			Message: fmt.Sprintf("unknown auth_method %q (want %q or %q)", value, AuthMethodToken, AuthMethodApp),
		}
	}
}

// Credential is a stored GitHub credential. The set of implementations
// is closed: TokenCredential and AppCredential.
//
// Implementations redact secret fields from String and slog output.
type Credential interface {
	AuthMethod() AuthMethod
	credential()
}

// TokenCredential is a personal access token or fine-grained token.
type TokenCredential struct {
	AccessToken string
}

func (TokenCredential) AuthMethod() AuthMethod { return AuthMethodToken }
func (TokenCredential) credential()            {}

func (credential TokenCredential) String() string {
	return "TokenCredential{AccessToken:" + redact(credential.AccessToken) + "}"
}

func (credential TokenCredential) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("auth_method", string(AuthMethodToken)),
		slog.String("access_token", redact(credential.AccessToken)),
	)
}

// AppCredential identifies a GitHub App installation.
type AppCredential struct {
	AppID          string
	InstallationID string
	PrivateKeyPEM  string
}

func (AppCredential) AuthMethod() AuthMethod { return AuthMethodApp }
func (AppCredential) credential()            {}

func (credential AppCredential) String() string {
	return fmt.Sprintf("AppCredential{AppID:%s InstallationID:%s PrivateKeyPEM:%s}",
		credential.AppID, credential.InstallationID, redact(credential.PrivateKeyPEM))
}

func (credential AppCredential) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("auth_method", string(AuthMethodApp)),
		slog.String("app_id", credential.AppID),
		slog.String("installation_id", credential.InstallationID),
		slog.String("private_key", redact(credential.PrivateKeyPEM)),
	)
}

func redact(value string) string {
	if value == "" {
		return "<empty>"
	}
	return "<redacted>"
}
