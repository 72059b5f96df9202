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
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shurcooL/graphql"
	wardenerrors "github.com/sirseerhq/sirseer-warden/internal/errors"
	"github.com/sirseerhq/sirseer-warden/internal/giterror"
	"github.com/sirseerhq/sirseer-warden/pkg/version"
)

// GraphQLClient implements the GraphQL portion of the Client interface:
// the viewer identity probe and the batched user profile query.
type GraphQLClient struct {
	client     *graphql.Client
	httpClient *http.Client
	endpoint   string
	token      string
	inspector  giterror.Inspector
}

// NewGraphQLClient creates a new GitHub GraphQL client with the provided token and endpoint.
// The client is configured with:
//   - Authentication via the provided token
//   - Custom GraphQL endpoint URL (e.g., for GitHub Enterprise)
//   - Response size limiting to prevent memory issues
//   - User-Agent header for API compliance
//   - Optimized connection pooling for API performance
func NewGraphQLClient(token string, endpoint string) *GraphQLClient {
	// Create optimized transport with connection pooling
	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 10, // Increased from default 2
		MaxConnsPerHost:     10,
		IdleConnTimeout:     90 * time.Second,
		DisableCompression:  false,
		ForceAttemptHTTP2:   true, // Ensure HTTP/2 is used
	}

	httpClient := &http.Client{
		Transport: &authTransport{
			token: token,
			base:  transport,
		},
	}

	return &GraphQLClient{
		client:     graphql.NewClient(endpoint, httpClient),
		httpClient: httpClient,
		endpoint:   endpoint,
		token:      token,
		inspector:  giterror.NewInspector(),
	}
}

// Viewer returns the authenticated user's login. The GraphQL API rejects
// anonymous requests outright, so this call doubles as the authentication
// probe: any error means extended, authenticated-only data is unavailable.
func (c *GraphQLClient) Viewer(ctx context.Context) (string, error) {
	var query struct {
		Viewer struct {
			Login graphql.String
		}
	}

	if err := c.client.Query(ctx, &query, nil); err != nil {
		return "", c.mapError(err)
	}

	return string(query.Viewer.Login), nil
}

// mapError maps GraphQL errors to our domain errors with actionable messages
func (c *GraphQLClient) mapError(err error) error {
	if err == nil {
		return nil
	}

	// Check rate limit first, as 403 can be both auth and rate limit
	if c.inspector.IsRateLimitError(err) {
		return fmt.Errorf("GitHub API rate limit exceeded. Please wait before retrying: %w", wardenerrors.ErrRateLimit)
	}

	if c.inspector.IsAuthError(err) {
		return fmt.Errorf("GitHub API authentication failed. Please provide a valid token via --token flag or GITHUB_TOKEN environment variable: %w", wardenerrors.ErrInvalidToken)
	}

	if c.inspector.IsNotFoundError(err) {
		return fmt.Errorf("requested resource not found. Please check the name and your access permissions: %w", wardenerrors.ErrNotFound)
	}

	if c.inspector.IsNetworkError(err) {
		return fmt.Errorf("network error connecting to GitHub API. Please check your internet connection and try again: %w", wardenerrors.ErrNetworkFailure)
	}

	// Generic error
	return fmt.Errorf("graphql query failed: %w", err)
}

// limitedReader wraps a ReadCloser with a size limit to prevent excessive memory usage.
type limitedReader struct {
	io.ReadCloser
	limit int64
	read  int64
}

// Read implements io.Reader with size limit enforcement.
func (lr *limitedReader) Read(p []byte) (n int, err error) {
	if lr.read >= lr.limit {
		return 0, fmt.Errorf("response size exceeded limit of %d bytes", lr.limit)
	}

	// Calculate how much we can read
	remaining := lr.limit - lr.read
	if int64(len(p)) > remaining {
		p = p[:remaining]
	}

	n, err = lr.ReadCloser.Read(p)
	lr.read += int64(n)

	return n, err
}

// authTransport adds authentication header and safety limits to HTTP requests
type authTransport struct {
	token string
	base  http.RoundTripper
}

// RoundTrip implements http.RoundTripper
func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request to avoid modifying the original
	req = req.Clone(req.Context())

	// Add auth header
	if t.token != "" {
		req.Header.Set("Authorization", "Bearer "+t.token)
	}

	// Add user agent for identification
	req.Header.Set("User-Agent", fmt.Sprintf("sirseer-warden/%s", version.Version))

	// Execute the request
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	// Apply response size limit (10MB)
	if resp.Body != nil {
		resp.Body = &limitedReader{
			ReadCloser: resp.Body,
			limit:      10 * 1024 * 1024, // 10MB
		}
	}

	return resp, nil
}
