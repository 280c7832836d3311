// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package orgauto

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/bureau-foundation/orghelper/lib/github"
)

// projectScopeHint is appended to project creation failures.
const projectScopeHint = `Please ensure your GitHub token has "project" permissions`

// Config configures an Orchestrator.
type Config struct {
	// BaseURL is the GitHub API root. Defaults to
	// "https://api.github.com". Must use HTTPS.
	BaseURL string

	// HTTPClient defaults to http.DefaultClient.
	HTTPClient *http.Client

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Orchestrator executes requests. It keeps no state between calls to
// Execute; each call builds its own GitHub client from the headers it
// is given.
type Orchestrator struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// New returns an Orchestrator for config.
func New(config Config) *Orchestrator {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		baseURL:    config.BaseURL,
		httpClient: config.HTTPClient,
		logger:     logger,
	}
}

// Execute validates request and runs its call sequence with headers.
// Required-step failures return a classified *github.Error. A team link
// failure after a successful project creation is not an error: the
// Result has OutcomePartial.
func (orchestrator *Orchestrator) Execute(ctx context.Context, headers github.AuthHeaders, request Request) (*Result, error) {
	if request == nil {
		return nil, github.MissingField("operation", "operation is required")
	}
	if err := request.Validate(); err != nil {
		return nil, err
	}

	client, err := github.NewClient(github.Config{
		BaseURL:    orchestrator.baseURL,
		Headers:    headers,
		HTTPClient: orchestrator.httpClient,
		Logger:     orchestrator.logger,
	})
	if err != nil {
		return nil, err
	}

	logger := orchestrator.logger.With("operation", request.Operation())

	switch request := request.(type) {
	case CreateTeam:
		return createTeam(ctx, client, logger, request)
	case CreateProject:
		return createProject(ctx, client, logger, request)
	case CreateProjectForTeam:
		return createProjectForTeam(ctx, client, logger, request)
	case AddTeamMember:
		return addTeamMember(ctx, client, logger, request)
	default:
		return nil, invalid("operation", "unsupported operation %q", request.Operation())
	}
}

func createTeam(ctx context.Context, client *github.Client, logger *slog.Logger, request CreateTeam) (*Result, error) {
	logger.Debug("creating team", "organization", request.Organization, "name", request.Name)

	team, err := client.CreateTeam(ctx, request.Organization, github.CreateTeamRequest{
		Name:        request.Name,
		Description: request.Description,
		Privacy:     string(request.privacy()),
	})
	if err != nil {
		return nil, github.Classification{
			Subject:  fmt.Sprintf("organization '%s'", request.Organization),
			NotFound: github.KindOrgNotFound,
		}.Classify(err)
	}

	return &Result{
		Operation: OperationCreateTeam,
		Outcome:   OutcomeSucceeded,
		Resource:  team,
	}, nil
}

func addTeamMember(ctx context.Context, client *github.Client, logger *slog.Logger, request AddTeamMember) (*Result, error) {
	logger.Debug("adding team member",
		"organization", request.Organization,
		"team", request.TeamSlug,
		"username", request.Username,
	)

	membership, err := client.AddTeamMember(ctx, request.Organization, request.TeamSlug, request.Username, string(request.role()))
	if err != nil {
		return nil, github.Classification{
			Subject:  fmt.Sprintf("team '%s' in organization '%s'", request.TeamSlug, request.Organization),
			NotFound: github.KindTeamNotFound,
		}.Classify(err)
	}

	return &Result{
		Operation: OperationAddTeamMember,
		Outcome:   OutcomeSucceeded,
		Resource:  membership,
	}, nil
}

func createProject(ctx context.Context, client *github.Client, logger *slog.Logger, request CreateProject) (*Result, error) {
	logger.Debug("looking up organization", "organization", request.Organization)

	orgID, err := client.OrganizationID(ctx, request.Organization)
	if err != nil {
		return nil, orgClassification(request.Organization).Classify(err)
	}
	if orgID == "" {
		return nil, orgNotFound(request.Organization)
	}

	_, project, err := createBoard(ctx, client, logger, orgID, request.Organization, request.Name)
	if err != nil {
		return nil, err
	}

	return &Result{
		Operation:       OperationCreateProject,
		Outcome:         OutcomeSucceeded,
		Resource:        project,
		DescriptionNote: descriptionNote(request.Description),
	}, nil
}

func createProjectForTeam(ctx context.Context, client *github.Client, logger *slog.Logger, request CreateProjectForTeam) (*Result, error) {
	logger = logger.With("organization", request.Organization, "team", request.TeamSlug)
	logger.Debug("looking up organization and team")

	orgID, teamID, err := client.OrganizationAndTeamIDs(ctx, request.Organization, request.TeamSlug)
	if err != nil {
		return nil, orgAndTeamClassification(err, request.Organization, request.TeamSlug).Classify(err)
	}
	if orgID == "" {
		return nil, orgNotFound(request.Organization)
	}
	if teamID == "" {
		return nil, github.Errorf(github.KindTeamNotFound,
			"Team '%s' not found in organization '%s'", request.TeamSlug, request.Organization)
	}

	project, raw, err := createBoard(ctx, client, logger, orgID, request.Organization, request.Name)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Operation:       OperationCreateProjectForTeam,
		Outcome:         OutcomeSucceeded,
		Resource:        raw,
		DescriptionNote: descriptionNote(request.Description),
	}

	logger.Debug("linking team to project", "project", project.ID)
	linked := true
	if err := client.LinkProjectV2ToTeam(ctx, project.ID, teamID); err != nil {
		linked = false
		result.Outcome = OutcomePartial
		result.Warning = "Project created but failed to link team: " + linkFailureText(err)
		result.ManualInstructions = manualLinkInstructions(request.TeamSlug, project.URL)
		logger.Warn("team link failed; project created without team access",
			"project", project.ID,
			"error", err,
		)
	} else {
		result.Info = fmt.Sprintf("Project created successfully and team '%s' has been automatically added with access!", request.TeamSlug)
	}
	result.Linked = &linked

	return result, nil
}

// createBoard runs the createProjectV2 mutation and classifies its
// failures as KindProjectCreateFailed.
func createBoard(ctx context.Context, client *github.Client, logger *slog.Logger, orgID, org, title string) (*github.ProjectV2, json.RawMessage, error) {
	logger.Debug("creating project", "title", title)

	project, raw, err := client.CreateProjectV2(ctx, orgID, title)
	if err != nil {
		return nil, nil, github.Classification{
			Subject:  fmt.Sprintf("project '%s' in organization '%s'", title, org),
			NotFound: github.KindProjectCreateFailed,
			Domain:   github.KindProjectCreateFailed,
			Hint:     projectScopeHint,
		}.Classify(err)
	}
	if project == nil {
		return nil, nil, github.Errorf(github.KindProjectCreateFailed, "Failed to create project. %s.", projectScopeHint)
	}
	return project, raw, nil
}

func orgClassification(org string) github.Classification {
	return github.Classification{
		Subject:  fmt.Sprintf("organization '%s'", org),
		NotFound: github.KindOrgNotFound,
		Domain:   github.KindOrgNotFound,
	}
}

// orgAndTeamClassification picks the kind for a failed combined
// lookup. GraphQL reports a missing team with a path through "team";
// anything else is blamed on the organization.
func orgAndTeamClassification(err error, org, teamSlug string) github.Classification {
	classification := orgClassification(org)
	if graphQLError, ok := asGraphQLError(err); ok && graphQLError.PathTouches("team") {
		classification.Subject = fmt.Sprintf("team '%s' in organization '%s'", teamSlug, org)
		classification.Domain = github.KindTeamNotFound
	}
	return classification
}

func orgNotFound(org string) error {
	return github.Errorf(github.KindOrgNotFound, "Organization '%s' not found or you don't have access to it", org)
}

// linkFailureText is the serialized errors array for GraphQL failures
// and the error text otherwise.
func linkFailureText(err error) string {
	if graphQLError, ok := asGraphQLError(err); ok {
		return string(graphQLError.Raw)
	}
	return err.Error()
}

func asGraphQLError(err error) (*github.GraphQLError, bool) {
	var graphQLError *github.GraphQLError
	ok := errors.As(err, &graphQLError)
	return graphQLError, ok
}

func manualLinkInstructions(teamSlug, projectURL string) string {
	return fmt.Sprintf("To add team '%s' manually:\n1. Go to %s/settings/access\n2. Click \"Add teams\"\n3. Search for '%s' and add it",
		teamSlug, projectURL, teamSlug)
}

func descriptionNote(description string) string {
	if description == "" {
		return ""
	}
	return fmt.Sprintf("To add description: Go to project settings and add \"%s\"", description)
}
