// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package github

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// assertionBackdate is subtracted from iat to tolerate clock skew
	// between this host and GitHub.
	assertionBackdate = 60 * time.Second

	// assertionLifetime is the exp offset from now. GitHub rejects
	// App JWTs that expire more than ten minutes out.
	assertionLifetime = 10 * time.Minute
)

// Assertion is a signed GitHub App identity claim, usable only to
// request an installation access token. It is minted per resolution
// and never stored.
type Assertion struct {
	// Token is the compact RS256 JWS.
	Token string

	Issuer    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// MintAssertion signs an App assertion for appID with the normalized
// PEM key at instant now: iss = appID, iat = now-60s, exp = now+600s.
// Times are truncated to whole seconds, as JWT NumericDate carries
// them. Returns KindSigningError when the key is not a usable RSA key
// (PKCS#1 or PKCS#8).
func MintAssertion(appID, privateKeyPEM string, now time.Time) (*Assertion, error) {
	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(privateKeyPEM))
	if err != nil {
		return nil, &Error{
			Kind:    KindSigningError,
			Field:   "private_key",
			Message: "invalid GitHub App private key; make sure to copy the entire PEM file content including the BEGIN and END lines",
			Err:     err,
		}
	}

	now = now.Truncate(time.Second)
	issuedAt := now.Add(-assertionBackdate)
	expiresAt := now.Add(assertionLifetime)

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.RegisteredClaims{
		Issuer:    appID,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})
	signed, err := token.SignedString(privateKey)
	if err != nil {
		return nil, &Error{
			Kind:    KindSigningError,
			Field:   "private_key",
			Message: "signing the GitHub App assertion failed",
			Err:     err,
		}
	}

	return &Assertion{
		Token:     signed,
		Issuer:    appID,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}, nil
}
