// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package secret holds credential material (access tokens, App private
// keys, age identities) in memory that is kept out of swap and core
// dumps and is zeroed as soon as it is released.
//
// A [Buffer] is an anonymous mmap region outside the Go heap, locked
// with mlock and marked MADV_DONTDUMP. [ReadFile] loads a credential
// file (or stdin for "-") straight into a Buffer and scrubs the
// intermediate heap copy. [Buffer.String] produces a heap copy for API
// boundaries that only accept strings, such as the JWT signer; keep
// those copies request-scoped.
//
// Depends on golang.org/x/sys/unix.
package secret
