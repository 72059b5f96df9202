// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package github

import (
	"context"

	"github.com/sirseerhq/sirseer-warden/internal/config"
	"github.com/sirseerhq/sirseer-warden/internal/stream"
)

// Client defines the interface for interacting with GitHub's API.
// This interface allows for easy mocking in tests. It composes the REST
// surface (lists, block mutation, follow check) with the GraphQL surface
// (viewer probe, batched profile queries).
type Client interface {
	// CurrentUser returns the authenticated user via the REST API.
	CurrentUser(ctx context.Context) (*User, error)

	// GetUser returns extended information for a single user, including
	// the account-creation timestamp.
	GetUser(ctx context.Context, username string) (*ExtendedUser, error)

	// Followers streams the accounts following the authenticated user.
	Followers(ctx context.Context) *stream.Stream[User]

	// Following streams the accounts the authenticated user follows.
	Following(ctx context.Context) *stream.Stream[User]

	// Blocks streams the accounts blocked by the authenticated user, or
	// by the given organization when org is non-empty.
	Blocks(ctx context.Context, org string) *stream.Stream[User]

	// PullRequests streams every pull request of the repository, in all
	// states (open, closed, merged).
	PullRequests(ctx context.Context, owner, repo string) *stream.Stream[PullRequest]

	// BlockUser attempts to block username, for the authenticated user or
	// for org when non-empty, and classifies the outcome. Expected
	// non-success responses (already blocked, user not found) come back as
	// BlockStatus values, not errors.
	BlockUser(ctx context.Context, org, username string) (*BlockStatus, error)

	// IsFollowing reports whether follower follows target. Not-following
	// is an ordinary false result, not an error.
	IsFollowing(ctx context.Context, follower, target string) (bool, error)

	// Viewer returns the authenticated user's login via the GraphQL API.
	// It doubles as the authentication probe: GraphQL rejects anonymous
	// requests, so an error here means the client is unauthenticated.
	Viewer(ctx context.Context) (string, error)

	// UsersInfo fetches extended profiles for the given logins in one
	// batched query. Logins that do not resolve are silently absent from
	// the result.
	UsersInfo(ctx context.Context, logins []string) ([]UserInfo, error)

	// UsersInfoChunked splits logins into batches of chunkSize and
	// flattens the per-batch results.
	UsersInfoChunked(ctx context.Context, logins []string, chunkSize int) ([]UserInfo, error)
}

// apiClient pairs the REST and GraphQL clients behind the Client interface.
type apiClient struct {
	*RESTClient
	*GraphQLClient
}

// NewClient builds the production client from a token and configuration.
// An empty token yields an anonymous client restricted to public REST
// operations; GraphQL calls will fail and are treated by callers as
// "not authenticated".
func NewClient(token string, cfg *config.Config) (Client, error) {
	rest, err := NewRESTClient(token, cfg.GitHub.APIEndpoint, cfg.Defaults.PageSize, NewClassifier(cfg.Block))
	if err != nil {
		return nil, err
	}
	gql := NewGraphQLClient(token, cfg.GitHub.GraphQLEndpoint)
	return &apiClient{RESTClient: rest, GraphQLClient: gql}, nil
}
