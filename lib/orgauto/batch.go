// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package orgauto

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bureau-foundation/orghelper/lib/github"
)

// CredentialResolver produces request headers from a stored
// credential. *github.Resolver implements it.
type CredentialResolver interface {
	Resolve(ctx context.Context, credential github.Credential) (github.AuthHeaders, error)
}

// Executor runs one request. *Orchestrator implements it.
type Executor interface {
	Execute(ctx context.Context, headers github.AuthHeaders, request Request) (*Result, error)
}

// Record is the result for the request at Index in the input.
type Record struct {
	Index int `json:"index"`
	*Result
}

// RecordError reports the record that stopped a run.
type RecordError struct {
	Index     int
	Operation Operation
	Err       error
}

func (err *RecordError) Error() string {
	return fmt.Sprintf("record %d (%s): %v", err.Index, err.Operation, err.Err)
}

func (err *RecordError) Unwrap() error { return err.Err }

// Runner processes requests one at a time, in input order.
type Runner struct {
	Resolver CredentialResolver
	Executor Executor

	// ContinueOnFail turns a failed record into an OutcomeFailed
	// marker and moves on. When false, the first failure stops the
	// run.
	ContinueOnFail bool

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Run executes requests with credential. The credential is resolved
// separately for every record, so App credentials mint and exchange
// once per record.
//
// Records are returned in input order. When a record fails and
// ContinueOnFail is false, Run returns the records completed before it
// together with a *RecordError. Cancelling ctx stops the run before the
// next record.
func (runner *Runner) Run(ctx context.Context, credential github.Credential, requests []Request) ([]Record, error) {
	logger := runner.Logger
	if logger == nil {
		logger = slog.Default()
	}

	records := make([]Record, 0, len(requests))
	for index, request := range requests {
		if err := ctx.Err(); err != nil {
			return records, err
		}

		var operation Operation
		if request != nil {
			operation = request.Operation()
		}

		result, err := runner.runOne(ctx, credential, request)
		if err != nil {
			logger.Info("record failed",
				"index", index,
				"operation", operation,
				"kind", github.KindOf(err),
				"error", err,
			)
			if !runner.ContinueOnFail {
				return records, &RecordError{Index: index, Operation: operation, Err: err}
			}
			result = failedResult(operation, err)
		}
		records = append(records, Record{Index: index, Result: result})
	}
	return records, nil
}

func (runner *Runner) runOne(ctx context.Context, credential github.Credential, request Request) (*Result, error) {
	if request == nil {
		return nil, github.MissingField("operation", "operation is required")
	}
	// Request problems are reported before any credential work.
	if err := request.Validate(); err != nil {
		return nil, err
	}
	headers, err := runner.Resolver.Resolve(ctx, credential)
	if err != nil {
		return nil, err
	}
	return runner.Executor.Execute(ctx, headers, request)
}

// FailedCount returns the number of OutcomeFailed records.
func FailedCount(records []Record) int {
	count := 0
	for _, record := range records {
		if record.Result != nil && record.Outcome == OutcomeFailed {
			count++
		}
	}
	return count
}
