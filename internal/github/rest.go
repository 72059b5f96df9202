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
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	gogithub "github.com/google/go-github/v72/github"
	wardenerrors "github.com/sirseerhq/sirseer-warden/internal/errors"
	"github.com/sirseerhq/sirseer-warden/internal/giterror"
	"github.com/sirseerhq/sirseer-warden/pkg/version"
	"golang.org/x/oauth2"
)

// RESTClient implements the REST portion of the Client interface on top of
// google/go-github. Pagination state comes from the Link headers go-github
// parses into Response.NextPage.
type RESTClient struct {
	gh        *gogithub.Client
	pageSize  int
	classify  Classifier
	inspector giterror.Inspector
}

// NewRESTClient creates a REST client for the given endpoint. An empty
// token produces an unauthenticated client limited to public operations.
// The endpoint is configurable to support GitHub Enterprise deployments
// and mock servers in tests.
func NewRESTClient(token, endpoint string, pageSize int, classify Classifier) (*RESTClient, error) {
	httpClient := http.DefaultClient
	if token != "" {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), src)
	}

	gh := gogithub.NewClient(httpClient)
	gh.UserAgent = fmt.Sprintf("sirseer-warden/%s", version.Version)

	if endpoint != "" {
		base, err := url.Parse(endpoint)
		if err != nil {
			return nil, fmt.Errorf("invalid API endpoint %q: %w", endpoint, err)
		}
		// go-github resolves relative request paths against the base URL,
		// which must end in a slash.
		if !strings.HasSuffix(base.Path, "/") {
			base.Path += "/"
		}
		gh.BaseURL = base
	}

	return &RESTClient{
		gh:        gh,
		pageSize:  pageSize,
		classify:  classify,
		inspector: giterror.NewInspector(),
	}, nil
}

// mapError maps REST API errors to our domain errors with actionable
// messages. go-github surfaces failures as typed errors, so classification
// reads the types directly; the string inspector only handles transport
// failures, which arrive as plain url.Error values.
func (c *RESTClient) mapError(err error) error {
	if err == nil {
		return nil
	}

	// Check rate limit first, as 403 can be both auth and rate limit
	var rateErr *gogithub.RateLimitError
	var abuseErr *gogithub.AbuseRateLimitError
	if errors.As(err, &rateErr) || errors.As(err, &abuseErr) {
		return fmt.Errorf("GitHub API rate limit exceeded. Please wait before retrying: %w", wardenerrors.ErrRateLimit)
	}

	var apiErr *gogithub.ErrorResponse
	if errors.As(err, &apiErr) && apiErr.Response != nil {
		switch apiErr.Response.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("GitHub API authentication failed. Please provide a valid token via --token flag or GITHUB_TOKEN environment variable: %w", wardenerrors.ErrInvalidToken)
		case http.StatusNotFound:
			return fmt.Errorf("requested resource not found. Please check the name and your access permissions: %w", wardenerrors.ErrNotFound)
		}
		return err
	}

	if c.inspector.IsNetworkError(err) {
		return fmt.Errorf("network error connecting to GitHub API. Please check your internet connection and try again: %w", wardenerrors.ErrNetworkFailure)
	}

	return err
}

// CurrentUser returns the authenticated user. Failure here is how callers
// discover they are running anonymously.
func (c *RESTClient) CurrentUser(ctx context.Context) (*User, error) {
	u, _, err := c.gh.Users.Get(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch authenticated user: %w", c.mapError(err))
	}
	return &User{Login: u.GetLogin(), ID: u.GetID()}, nil
}

// GetUser returns extended information for a single user.
func (c *RESTClient) GetUser(ctx context.Context, username string) (*ExtendedUser, error) {
	u, _, err := c.gh.Users.Get(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user %s: %w", username, c.mapError(err))
	}
	return &ExtendedUser{
		User:      User{Login: u.GetLogin(), ID: u.GetID()},
		CreatedAt: u.GetCreatedAt().Time,
	}, nil
}

// BlockUser issues the block request and classifies the outcome. The
// request goes through NewRequest/Do rather than the typed service methods
// so the classifier sees the raw response and error body.
func (c *RESTClient) BlockUser(ctx context.Context, org, username string) (*BlockStatus, error) {
	path := fmt.Sprintf("user/blocks/%s", username)
	if org != "" {
		path = fmt.Sprintf("orgs/%s/blocks/%s", org, username)
	}

	req, err := c.gh.NewRequest(http.MethodPut, path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build block request for %s: %w", username, err)
	}

	resp, err := c.gh.Do(ctx, req, nil)
	status, err := c.classify.Block(resp, err)
	if err != nil {
		return nil, c.mapError(err)
	}
	return status, nil
}

// IsFollowing reports whether follower follows target.
func (c *RESTClient) IsFollowing(ctx context.Context, follower, target string) (bool, error) {
	req, err := c.gh.NewRequest(http.MethodGet, fmt.Sprintf("users/%s/following/%s", follower, target), nil)
	if err != nil {
		return false, fmt.Errorf("failed to build follow-check request: %w", err)
	}

	resp, err := c.gh.Do(ctx, req, nil)
	following, err := c.classify.Follow(resp, err)
	if err != nil {
		return false, c.mapError(err)
	}
	return following, nil
}
