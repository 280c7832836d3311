// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads orghelper configuration.
//
// Configuration is loaded from a single YAML file specified by:
//   - ORGHELPER_CONFIG environment variable, or
//   - --config flag passed to the command
//
// There are no fallbacks or automatic discovery, and environment
// variables never override values in the file. The only expansion
// performed is ${VAR} and ${VAR:-default} in file path fields.
//
// The credential section names where the GitHub credential comes from:
// inline values, separate files (read into locked memory through
// lib/secret), or an age-sealed credential document opened with
// lib/sealed. [CredentialConfig.Load] turns it into a
// github.Credential.
package config
