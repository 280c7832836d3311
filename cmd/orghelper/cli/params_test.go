// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"
)

type CommonParams struct {
	ConfigPath string `flag:"config" desc:"path to config file"`
	Format     string `flag:"format,f" desc:"output format" default:"auto"`
}

type testParams struct {
	CommonParams
	Organization   string        `flag:"org" desc:"organization login"`
	ContinueOnFail bool          `flag:"continue-on-fail" desc:"keep going"`
	Retries        int           `flag:"retries" default:"3"`
	Timeout        time.Duration `flag:"timeout" default:"30s"`
	Recipients     []string      `flag:"recipient"`
	Unbound        string
}

func TestBindFlags_Defaults(t *testing.T) {
	var params testParams
	flagSet := FlagsFromParams("test", &params)
	if err := flagSet.Parse(nil); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if params.Format != "auto" {
		t.Errorf("Format = %q, want auto", params.Format)
	}
	if params.Retries != 3 {
		t.Errorf("Retries = %d, want 3", params.Retries)
	}
	if params.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", params.Timeout)
	}
	if params.ContinueOnFail {
		t.Error("ContinueOnFail should default to false")
	}
	if flagSet.Lookup("unbound") != nil {
		t.Error("untagged field should not be bound")
	}
}

func TestBindFlags_ParsesValuesIncludingEmbedded(t *testing.T) {
	var params testParams
	flagSet := FlagsFromParams("test", &params)
	args := []string{
		"--config", "/etc/orghelper.yaml",
		"-f", "yaml",
		"--org", "acme",
		"--continue-on-fail",
		"--timeout", "5s",
		"--recipient", "age1aaa",
		"--recipient", "age1bbb",
	}
	if err := flagSet.Parse(args); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if params.ConfigPath != "/etc/orghelper.yaml" {
		t.Errorf("ConfigPath = %q", params.ConfigPath)
	}
	if params.Format != "yaml" {
		t.Errorf("Format = %q, want yaml", params.Format)
	}
	if params.Organization != "acme" {
		t.Errorf("Organization = %q", params.Organization)
	}
	if !params.ContinueOnFail {
		t.Error("ContinueOnFail should be true")
	}
	if params.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v", params.Timeout)
	}
	if len(params.Recipients) != 2 || params.Recipients[1] != "age1bbb" {
		t.Errorf("Recipients = %v", params.Recipients)
	}
}

func TestBindFlags_RejectsNonPointer(t *testing.T) {
	var params testParams
	if err := BindFlags(params, nil); err == nil {
		t.Error("expected error for non-pointer params")
	}
}

func TestBindFlags_RejectsUnsupportedType(t *testing.T) {
	var params struct {
		Ratio float64 `flag:"ratio"`
	}
	flagSet := FlagsFromParams("probe", &struct{}{})
	if err := BindFlags(&params, flagSet); err == nil {
		t.Error("expected error for float64 field")
	}
}

func TestBindFlags_BadDefault(t *testing.T) {
	var params struct {
		Timeout time.Duration `flag:"timeout" default:"soon"`
	}
	flagSet := FlagsFromParams("probe", &struct{}{})
	err := BindFlags(&params, flagSet)
	if err == nil || !strings.Contains(err.Error(), "--timeout") {
		t.Errorf("error = %v, want bad default for --timeout", err)
	}
}

func TestNewLogger_HandlerSelection(t *testing.T) {
	tests := []struct {
		name     string
		format   string
		terminal bool
		wantJSON bool
	}{
		{"auto on terminal", "auto", true, false},
		{"auto piped", "auto", false, true},
		{"forced json on terminal", "json", true, true},
		{"forced text piped", "text", false, false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var output bytes.Buffer
			logger := newLogger(&output, slog.LevelInfo, test.format, test.terminal)
			logger.Info("resolved", "installation_id", "42")

			isJSON := strings.HasPrefix(output.String(), "{")
			if isJSON != test.wantJSON {
				t.Errorf("output %q: json = %v, want %v", output.String(), isJSON, test.wantJSON)
			}
		})
	}
}

func TestNewLogger_RespectsLevel(t *testing.T) {
	var output bytes.Buffer
	logger := newLogger(&output, slog.LevelWarn, "json", false)
	logger.Info("dropped")
	if output.Len() != 0 {
		t.Errorf("info should be filtered at warn level, got %q", output.String())
	}
}
