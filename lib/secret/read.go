// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// maxSecretSize bounds credential file reads. GitHub App private keys
// are a few kilobytes; sealed credential documents are similar.
const maxSecretSize = 1 << 20

// ReadFile reads a secret from path, or from stdin when path is "-".
// Surrounding whitespace is trimmed. Returns an error when the source
// is empty after trimming.
func ReadFile(path string) (*Buffer, error) {
	if path == "-" {
		return Read(os.Stdin)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("secret: %w", err)
	}
	defer file.Close()
	return Read(file)
}

// Read reads a secret from reader (up to 1 MB), trims surrounding
// whitespace, and moves it into a Buffer.
func Read(reader io.Reader) (*Buffer, error) {
	data, err := io.ReadAll(io.LimitReader(reader, maxSecretSize))
	if err != nil {
		Zero(data)
		return nil, fmt.Errorf("secret: reading: %w", err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		Zero(data)
		return nil, fmt.Errorf("secret: source is empty")
	}

	// FromBytes zeros trimmed; the whitespace around it is zeroed here.
	buffer, err := FromBytes(trimmed)
	Zero(data)
	return buffer, err
}
