// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package orgauto

import (
	"encoding/json"
	"errors"

	"github.com/bureau-foundation/orghelper/lib/github"
)

// Outcome is the three-valued status of one record.
type Outcome string

const (
	// OutcomeSucceeded: every step completed.
	OutcomeSucceeded Outcome = "succeeded"

	// OutcomePartial: the project exists but the team could not be
	// linked. ManualInstructions says how to finish by hand.
	OutcomePartial Outcome = "partial"

	// OutcomeFailed marks a record that failed under continue-on-fail.
	// Error is set and Resource is empty.
	OutcomeFailed Outcome = "failed"
)

// Result is the report for one record.
type Result struct {
	Operation Operation `json:"operation" yaml:"operation"`
	Outcome   Outcome   `json:"outcome" yaml:"outcome"`

	// Resource is the created or updated object as GitHub returned it:
	// the team, the membership, or the project {id, title, url, number}.
	Resource json.RawMessage `json:"resource,omitempty" yaml:"resource,omitempty"`

	// Linked is set only for project.create_for_team.
	Linked *bool `json:"linked,omitempty" yaml:"linked,omitempty"`

	Info               string `json:"info,omitempty" yaml:"info,omitempty"`
	Warning            string `json:"warning,omitempty" yaml:"warning,omitempty"`
	ManualInstructions string `json:"manual_instructions,omitempty" yaml:"manual_instructions,omitempty"`
	DescriptionNote    string `json:"description_note,omitempty" yaml:"description_note,omitempty"`

	Error *Failure `json:"error,omitempty" yaml:"error,omitempty"`
}

// Failure is the serializable form of a classified error.
type Failure struct {
	Kind    github.Kind `json:"kind" yaml:"kind"`
	Field   string      `json:"field,omitempty" yaml:"field,omitempty"`
	Message string      `json:"message" yaml:"message"`
}

// NewFailure converts err into a Failure. Unclassified errors are
// reported as github.KindUpstreamError.
func NewFailure(err error) *Failure {
	var classified *github.Error
	if errors.As(err, &classified) {
		return &Failure{Kind: classified.Kind, Field: classified.Field, Message: err.Error()}
	}
	return &Failure{Kind: github.KindUpstreamError, Message: err.Error()}
}

// failedResult is the continue-on-fail marker for a record.
func failedResult(operation Operation, err error) *Result {
	return &Result{
		Operation: operation,
		Outcome:   OutcomeFailed,
		Error:     NewFailure(err),
	}
}
