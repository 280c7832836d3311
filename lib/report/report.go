// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/orghelper/lib/codec"
	"github.com/bureau-foundation/orghelper/lib/orgauto"
)

// Format selects the output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCBOR Format = "cbor"
	FormatText Format = "text"
)

// ParseFormat maps a --format value to a Format. "" and "auto" pick
// text when terminal is true and JSON otherwise.
func ParseFormat(value string, terminal bool) (Format, error) {
	switch value {
	case "", "auto":
		if terminal {
			return FormatText, nil
		}
		return FormatJSON, nil
	case string(FormatJSON), string(FormatYAML), string(FormatCBOR), string(FormatText):
		return Format(value), nil
	}
	return "", fmt.Errorf("unknown output format %q (want auto, json, yaml, cbor, or text)", value)
}

// Render writes records to w in format.
func Render(w io.Writer, format Format, records []orgauto.Record) error {
	if records == nil {
		records = []orgauto.Record{}
	}
	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(records)
	case FormatYAML:
		return renderYAML(w, records)
	case FormatCBOR:
		data, err := codec.Marshal(records)
		if err != nil {
			return fmt.Errorf("encoding CBOR report: %w", err)
		}
		_, err = w.Write(data)
		return err
	case FormatText:
		return renderText(w, records)
	}
	return fmt.Errorf("unknown output format %q", format)
}

// renderYAML goes through JSON so the embedded GitHub resources come
// out as mappings rather than byte sequences, and so keys keep the
// JSON field order.
func renderYAML(w io.Writer, records []orgauto.Record) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encoding YAML report: %w", err)
	}
	var document yaml.Node
	if err := yaml.Unmarshal(data, &document); err != nil {
		return fmt.Errorf("encoding YAML report: %w", err)
	}
	blockStyle(&document)

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(&document); err != nil {
		return fmt.Errorf("encoding YAML report: %w", err)
	}
	return encoder.Close()
}

// blockStyle clears the flow and quoting styles the JSON parse left on
// every node.
func blockStyle(node *yaml.Node) {
	node.Style = 0
	for _, child := range node.Content {
		blockStyle(child)
	}
}
