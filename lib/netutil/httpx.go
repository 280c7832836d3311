// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package netutil provides bounded HTTP response body helpers.
//
// GitHub API responses are small JSON documents. ReadResponse caps
// every body read at MaxResponseSize, and TruncateBody bounds what
// ends up inside error messages.
package netutil

import (
	"io"
	"strings"
)

// MaxResponseSize bounds JSON API response body reads: 16 MB.
const MaxResponseSize int64 = 16 << 20

// maxErrorBodyLength bounds how much of an error response body is
// copied into an error message.
const maxErrorBodyLength = 4096

// ReadResponse reads a JSON API response body up to MaxResponseSize
// bytes. Use instead of io.ReadAll when reading HTTP response bodies.
func ReadResponse(body io.Reader) ([]byte, error) {
	return io.ReadAll(io.LimitReader(body, MaxResponseSize))
}

// TruncateBody renders a response body for inclusion in an error
// message: surrounding whitespace trimmed, cut at a fixed length with
// an ellipsis marker.
func TruncateBody(data []byte) string {
	text := strings.TrimSpace(string(data))
	if len(text) > maxErrorBodyLength {
		return text[:maxErrorBodyLength] + "...(truncated)"
	}
	return text
}
