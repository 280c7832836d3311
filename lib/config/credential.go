// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/orghelper/lib/github"
	"github.com/bureau-foundation/orghelper/lib/sealed"
	"github.com/bureau-foundation/orghelper/lib/secret"
)

// SecretReader reads one secret from path. "-" means stdin. The
// caller closes the returned buffer.
type SecretReader func(path string) (*secret.Buffer, error)

// sealedDocument is the plaintext of a sealed credential file.
type sealedDocument struct {
	AuthMethod     string `yaml:"auth_method"`
	AccessToken    string `yaml:"access_token"`
	AppID          string `yaml:"app_id"`
	InstallationID string `yaml:"installation_id"`
	PrivateKey     string `yaml:"private_key"`
}

// Load builds the credential. File sources are read with readSecret
// (secret.ReadFile when nil); every intermediate buffer is zeroed
// before Load returns. Missing values are not an error here: the
// resolver reports them by field name.
func (credential CredentialConfig) Load(readSecret SecretReader) (github.Credential, error) {
	if readSecret == nil {
		readSecret = secret.ReadFile
	}

	if credential.SealedFile != "" {
		opened, err := credential.openSealed()
		if err != nil {
			return nil, err
		}
		credential = opened
	}

	method, err := github.ParseAuthMethod(credential.AuthMethod)
	if err != nil {
		return nil, err
	}

	switch method {
	case github.AuthMethodApp:
		privateKey := credential.PrivateKey
		if credential.PrivateKeyFile != "" {
			privateKey, err = readString(readSecret, credential.PrivateKeyFile)
			if err != nil {
				return nil, fmt.Errorf("credential.private_key_file: %w", err)
			}
		}
		return github.AppCredential{
			AppID:          credential.AppID,
			InstallationID: credential.InstallationID,
			PrivateKeyPEM:  privateKey,
		}, nil
	default:
		token := credential.AccessToken
		if credential.AccessTokenFile != "" {
			token, err = readString(readSecret, credential.AccessTokenFile)
			if err != nil {
				return nil, fmt.Errorf("credential.access_token_file: %w", err)
			}
		}
		return github.TokenCredential{AccessToken: token}, nil
	}
}

// openSealed decrypts SealedFile and returns a config whose credential
// values come from the sealed document. The auth method from the
// document wins when it sets one.
func (credential CredentialConfig) openSealed() (CredentialConfig, error) {
	ciphertext, err := os.ReadFile(credential.SealedFile)
	if err != nil {
		return CredentialConfig{}, fmt.Errorf("credential.sealed_file: %w", err)
	}

	identity, err := secret.ReadFile(credential.IdentityFile)
	if err != nil {
		return CredentialConfig{}, fmt.Errorf("credential.identity_file: %w", err)
	}
	defer identity.Close()

	plaintext, err := sealed.Open(ciphertext, identity)
	if err != nil {
		return CredentialConfig{}, fmt.Errorf("credential.sealed_file: %w", err)
	}
	defer plaintext.Close()

	var document sealedDocument
	if err := yaml.Unmarshal(plaintext.Bytes(), &document); err != nil {
		// yaml errors can quote input; keep the plaintext out of them.
		return CredentialConfig{}, fmt.Errorf("credential.sealed_file: plaintext is not a YAML credential document")
	}

	opened := CredentialConfig{
		AuthMethod:     credential.AuthMethod,
		AccessToken:    document.AccessToken,
		AppID:          document.AppID,
		InstallationID: document.InstallationID,
		PrivateKey:     document.PrivateKey,
	}
	if document.AuthMethod != "" {
		opened.AuthMethod = document.AuthMethod
	}
	return opened, nil
}

// CheckSealedDocument reports whether plaintext is a credential
// document openSealed can use: known keys only and a valid auth_method.
// Errors never quote the plaintext.
func CheckSealedDocument(plaintext []byte) error {
	var document sealedDocument
	decoder := yaml.NewDecoder(bytes.NewReader(plaintext))
	decoder.KnownFields(true)
	if err := decoder.Decode(&document); err != nil {
		return fmt.Errorf("plaintext is not a YAML credential document (keys: auth_method, access_token, app_id, installation_id, private_key)")
	}
	if _, err := github.ParseAuthMethod(document.AuthMethod); err != nil {
		return err
	}
	return nil
}

func readString(readSecret SecretReader, path string) (string, error) {
	buffer, err := readSecret(path)
	if err != nil {
		return "", err
	}
	defer buffer.Close()
	return buffer.String(), nil
}
