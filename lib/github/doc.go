// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package github talks to the slice of the GitHub API that organization
// automation needs: credential resolution, team and membership REST
// endpoints, and the Projects V2 GraphQL queries and mutations.
//
// Authentication is a closed set of two strategies, [TokenCredential]
// and [AppCredential], dispatched by a single [Resolver]. App
// credentials are turned into an installation access token on every
// resolution: the private key is normalized ([NormalizePrivateKey]), a
// ten-minute RS256 assertion is minted ([MintAssertion]), and exchanged
// at /app/installations/{id}/access_tokens. Nothing is cached; the
// resulting [AuthHeaders] belong to one unit of work and are discarded
// afterwards.
//
// A [Client] is built from an AuthHeaders value and issues REST and
// GraphQL requests. Failures surface as *[APIError] (non-2xx HTTP) or
// *[GraphQLError] (2xx with a non-empty errors array).
// [Classification.Classify] maps those raw signals onto the [Kind]
// taxonomy with messages that name the likely root cause.
//
// All requests are made over HTTPS. The client and resolver refuse
// non-HTTPS base URLs.
package github
