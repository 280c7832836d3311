// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package sealed encrypts and decrypts credential documents with age.
//
// A sealed credential file is an ASCII-armored age message whose
// plaintext is a YAML credential section (see lib/config). Operators
// seal the file once to one or more X25519 recipients and keep only the
// ciphertext on disk; orghelper opens it at startup with the identity
// file named in the config.
//
// Identities and decrypted plaintext are handled as *secret.Buffer
// values and must be closed by the caller.
package sealed

import (
	"bytes"
	"fmt"
	"io"

	"filippo.io/age"
	"filippo.io/age/armor"

	"github.com/bureau-foundation/orghelper/lib/secret"
)

// Identity is a freshly generated X25519 keypair.
type Identity struct {
	// Secret holds the AGE-SECRET-KEY-1... string. Never log it.
	Secret *secret.Buffer

	// Recipient is the public age1... string. Safe to share.
	Recipient string
}

// Close releases the secret half.
func (identity *Identity) Close() error {
	if identity.Secret != nil {
		return identity.Secret.Close()
	}
	return nil
}

// GenerateIdentity creates a new X25519 identity.
func GenerateIdentity() (*Identity, error) {
	generated, err := age.GenerateX25519Identity()
	if err != nil {
		return nil, fmt.Errorf("generating age identity: %w", err)
	}
	protected, err := secret.FromBytes([]byte(generated.String()))
	if err != nil {
		return nil, fmt.Errorf("protecting age identity: %w", err)
	}
	return &Identity{
		Secret:    protected,
		Recipient: generated.Recipient().String(),
	}, nil
}

// Seal encrypts plaintext to every recipient and returns an armored
// age message.
func Seal(plaintext []byte, recipientKeys []string) ([]byte, error) {
	if len(recipientKeys) == 0 {
		return nil, fmt.Errorf("at least one recipient is required")
	}

	recipients := make([]age.Recipient, 0, len(recipientKeys))
	for _, key := range recipientKeys {
		recipient, err := age.ParseX25519Recipient(key)
		if err != nil {
			return nil, fmt.Errorf("parsing recipient %q: %w", key, err)
		}
		recipients = append(recipients, recipient)
	}

	var output bytes.Buffer
	armored := armor.NewWriter(&output)
	writer, err := age.Encrypt(armored, recipients...)
	if err != nil {
		return nil, fmt.Errorf("creating age encryptor: %w", err)
	}
	if _, err := writer.Write(plaintext); err != nil {
		return nil, fmt.Errorf("writing plaintext: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("finalizing age message: %w", err)
	}
	if err := armored.Close(); err != nil {
		return nil, fmt.Errorf("finalizing armor: %w", err)
	}
	return output.Bytes(), nil
}

// Open decrypts an age message (armored or binary) with the identities
// in identityFile, which uses the age-keygen file format (comment lines
// allowed). The identity buffer is borrowed, not closed.
func Open(ciphertext []byte, identityFile *secret.Buffer) (*secret.Buffer, error) {
	identities, err := age.ParseIdentities(bytes.NewReader(identityFile.Bytes()))
	if err != nil {
		return nil, fmt.Errorf("parsing age identity: %w", err)
	}

	var source io.Reader = bytes.NewReader(ciphertext)
	if bytes.HasPrefix(bytes.TrimSpace(ciphertext), []byte(armor.Header)) {
		source = armor.NewReader(bytes.NewReader(bytes.TrimSpace(ciphertext)))
	}

	reader, err := age.Decrypt(source, identities...)
	if err != nil {
		return nil, fmt.Errorf("decrypting sealed credentials: %w", err)
	}
	plaintext, err := io.ReadAll(reader)
	if err != nil {
		secret.Zero(plaintext)
		return nil, fmt.Errorf("reading decrypted credentials: %w", err)
	}
	if len(plaintext) == 0 {
		return nil, fmt.Errorf("sealed credentials are empty")
	}
	return secret.FromBytes(plaintext)
}
