// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec wraps github.com/fxamacker/cbor/v2 with the encoding
// options orghelper uses for machine-readable result output.
//
// Encoding follows Core Deterministic Encoding (RFC 8949 §4.2) so the
// same result set always produces identical bytes. Struct fields are
// keyed by their json tags (the library's default), which keeps CBOR
// and JSON output field-for-field identical. json.RawMessage payloads
// are re-decoded into generic values first; see [Marshal].
package codec

import (
	"encoding/json"
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

var encMode cbor.EncMode

var decMode cbor.DecMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		// Decoding into any produces map[string]any, matching what
		// encoding/json produces for the same document.
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

// Marshal encodes v to deterministic CBOR. v is first round-tripped
// through encoding/json so that embedded json.RawMessage passthrough
// payloads become structured CBOR maps instead of opaque byte strings.
func Marshal(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return nil, err
	}
	return encMode.Marshal(generic)
}

// Unmarshal decodes CBOR data into v.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}
