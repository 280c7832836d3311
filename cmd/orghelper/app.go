// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"golang.org/x/term"

	"github.com/bureau-foundation/orghelper/cmd/orghelper/cli"
	"github.com/bureau-foundation/orghelper/lib/config"
	"github.com/bureau-foundation/orghelper/lib/github"
	"github.com/bureau-foundation/orghelper/lib/orgauto"
	"github.com/bureau-foundation/orghelper/lib/report"
	"github.com/bureau-foundation/orghelper/lib/secret"
)

// app holds the process-level dependencies the commands share.
// Tests replace the writers, the HTTP client, and the logger factory.
type app struct {
	stdout io.Writer
	stderr io.Writer

	// stdoutTerminal selects the text report for --format auto.
	stdoutTerminal bool

	// httpClient overrides the client built from github.timeout.
	httpClient *http.Client

	newLogger  func(level slog.Level, format string) *slog.Logger
	readSecret config.SecretReader
}

func newApp() *app {
	return &app{
		stdout:         os.Stdout,
		stderr:         os.Stderr,
		stdoutTerminal: cli.StdoutIsTerminal(),
		newLogger:      cli.NewCommandLogger,
		readSecret:     promptingSecretReader(os.Stderr),
	}
}

// CommonParams are the flags every engine command accepts.
type CommonParams struct {
	ConfigPath string `flag:"config" desc:"path to orghelper.yaml (default: $ORGHELPER_CONFIG)"`
	Format     string `flag:"format" desc:"output format: auto, json, yaml, cbor, or text" default:"auto"`
}

// session is everything one command invocation needs to run records.
type session struct {
	config     *config.Config
	credential github.Credential
	runner     *orgauto.Runner
	format     report.Format
	logger     *slog.Logger
}

// open loads the config, the credential, and wires the runner.
func (a *app) open(params CommonParams, command string) (*session, error) {
	format, err := report.ParseFormat(params.Format, a.stdoutTerminal)
	if err != nil {
		return nil, cli.Validation("--format: %v", err)
	}

	cfg, err := loadConfig(params.ConfigPath)
	if err != nil {
		return nil, cli.Validation("%v", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, cli.Validation("invalid config:\n%v", err)
	}

	level, _ := cfg.Log.SlogLevel()
	logger := a.newLogger(level, cfg.Log.Format).With("command", command)

	credential, err := cfg.Credential.Load(a.readSecret)
	if err != nil {
		return nil, categorize(err)
	}

	httpClient := a.httpClient
	if httpClient == nil {
		timeout, _ := cfg.GitHub.TimeoutDuration()
		httpClient = &http.Client{Timeout: timeout}
	}

	resolver, err := github.NewResolver(github.ResolverConfig{
		BaseURL:    cfg.GitHub.BaseURL,
		HTTPClient: httpClient,
		Logger:     logger,
	})
	if err != nil {
		return nil, cli.Validation("%v", err)
	}
	orchestrator := orgauto.New(orgauto.Config{
		BaseURL:    cfg.GitHub.BaseURL,
		HTTPClient: httpClient,
		Logger:     logger,
	})

	return &session{
		config:     cfg,
		credential: credential,
		runner: &orgauto.Runner{
			Resolver: resolver,
			Executor: orchestrator,
			Logger:   logger,
		},
		format: format,
		logger: logger,
	}, nil
}

// runSingle executes one request and renders its record.
func (a *app) runSingle(ctx context.Context, params CommonParams, request orgauto.Request) error {
	opened, err := a.open(params, string(request.Operation()))
	if err != nil {
		return err
	}
	records, err := opened.runner.Run(ctx, opened.credential, []orgauto.Request{request})
	if err != nil {
		var recordErr *orgauto.RecordError
		if errors.As(err, &recordErr) {
			err = recordErr.Err
		}
		return categorize(err)
	}
	if err := report.Render(a.stdout, opened.format, records); err != nil {
		return cli.Internal("writing report: %v", err)
	}
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

// categorize attaches a CLI error category to a classified engine
// error.
func categorize(err error) error {
	var classified *github.Error
	if !errors.As(err, &classified) {
		if errors.Is(err, context.Canceled) {
			return cli.Categorize(cli.CategoryInternal, fmt.Errorf("interrupted: %w", err))
		}
		return cli.Categorize(cli.CategoryInternal, err)
	}
	switch classified.Kind {
	case github.KindMissingField, github.KindInvalidRequest, github.KindInvalidKeyFormat, github.KindSigningError:
		return cli.Categorize(cli.CategoryValidation, err)
	case github.KindOrgNotFound, github.KindTeamNotFound, github.KindInstallationNotFound:
		return cli.Categorize(cli.CategoryNotFound, err)
	case github.KindAuthRejected:
		return cli.Categorize(cli.CategoryForbidden, err)
	default:
		return cli.Categorize(cli.CategoryInternal, err)
	}
}

// promptingSecretReader reads "-" from the terminal with echo off when
// stdin is a terminal, and from files or piped stdin otherwise.
func promptingSecretReader(prompt io.Writer) config.SecretReader {
	return func(path string) (*secret.Buffer, error) {
		if path != "-" || !cli.StdinIsTerminal() {
			return secret.ReadFile(path)
		}
		fmt.Fprint(prompt, "GitHub credential (input hidden): ")
		value, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(prompt)
		if err != nil {
			secret.Zero(value)
			return nil, fmt.Errorf("reading credential from terminal: %w", err)
		}
		if len(value) == 0 {
			return nil, fmt.Errorf("no credential entered")
		}
		return secret.FromBytes(value)
	}
}
