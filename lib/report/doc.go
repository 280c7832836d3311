// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package report renders batch records for humans and machines.
//
// [Render] writes a slice of [orgauto.Record] in one of four formats:
// indented JSON, YAML, deterministic CBOR (via lib/codec), or styled
// text with one outcome badge per record. JSON and YAML keep the field
// order of the JSON encoding so the two formats read the same.
//
// Records carry only what GitHub returned plus the engine's
// annotations. No credential material reaches this package.
package report
