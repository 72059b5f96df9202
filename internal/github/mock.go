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

	wardenerrors "github.com/sirseerhq/sirseer-warden/internal/errors"
	"github.com/sirseerhq/sirseer-warden/internal/stream"
)

// MockClient is a mock implementation of the Client interface for testing.
// Streams are served from in-memory pages so pagination behavior is
// preserved.
type MockClient struct {
	// Data to return
	ViewerLogin      string
	User             *User
	Users            map[string]*ExtendedUser
	FollowersPages   [][]User
	FollowingPages   [][]User
	BlocksPages      [][]User
	PullRequestPages [][]PullRequest
	Infos            []UserInfo
	BlockStatuses    map[string]*BlockStatus
	FollowingResult  bool

	// Error to return from every call
	Err error

	// ViewerErr makes only the authentication probe fail, simulating an
	// anonymous client whose public REST operations still work.
	ViewerErr error

	// Track calls for verification
	BlockedUsers []string
	BlockedOrgs  []string
	InfoRequests [][]string
}

// NewMockClient creates a mock client with empty defaults.
func NewMockClient() *MockClient {
	return &MockClient{
		ViewerLogin:   "octocat",
		User:          &User{Login: "octocat", ID: 1},
		Users:         make(map[string]*ExtendedUser),
		BlockStatuses: make(map[string]*BlockStatus),
	}
}

// CurrentUser implements the Client interface.
func (m *MockClient) CurrentUser(ctx context.Context) (*User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.ViewerErr != nil {
		return nil, m.ViewerErr
	}
	return m.User, nil
}

// GetUser implements the Client interface.
func (m *MockClient) GetUser(ctx context.Context, username string) (*ExtendedUser, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	u, ok := m.Users[username]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", username, wardenerrors.ErrNotFound)
	}
	return u, nil
}

// Followers implements the Client interface.
func (m *MockClient) Followers(ctx context.Context) *stream.Stream[User] {
	return pagedStream(ctx, m.FollowersPages, m.Err)
}

// Following implements the Client interface.
func (m *MockClient) Following(ctx context.Context) *stream.Stream[User] {
	return pagedStream(ctx, m.FollowingPages, m.Err)
}

// Blocks implements the Client interface.
func (m *MockClient) Blocks(ctx context.Context, org string) *stream.Stream[User] {
	return pagedStream(ctx, m.BlocksPages, m.Err)
}

// PullRequests implements the Client interface.
func (m *MockClient) PullRequests(ctx context.Context, owner, repo string) *stream.Stream[PullRequest] {
	return pagedStream(ctx, m.PullRequestPages, m.Err)
}

// BlockUser implements the Client interface.
func (m *MockClient) BlockUser(ctx context.Context, org, username string) (*BlockStatus, error) {
	if m.Err != nil {
		return nil, m.Err
	}

	m.BlockedUsers = append(m.BlockedUsers, username)
	m.BlockedOrgs = append(m.BlockedOrgs, org)

	if status, ok := m.BlockStatuses[username]; ok {
		return status, nil
	}
	return &BlockStatus{Outcome: NewlyBlocked}, nil
}

// IsFollowing implements the Client interface.
func (m *MockClient) IsFollowing(ctx context.Context, follower, target string) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	return m.FollowingResult, nil
}

// Viewer implements the Client interface.
func (m *MockClient) Viewer(ctx context.Context) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	if m.ViewerErr != nil {
		return "", m.ViewerErr
	}
	return m.ViewerLogin, nil
}

// UsersInfo implements the Client interface.
func (m *MockClient) UsersInfo(ctx context.Context, logins []string) ([]UserInfo, error) {
	if m.Err != nil {
		return nil, m.Err
	}

	m.InfoRequests = append(m.InfoRequests, logins)

	requested := make(map[string]struct{}, len(logins))
	for _, login := range logins {
		requested[login] = struct{}{}
	}

	var infos []UserInfo
	for _, info := range m.Infos {
		if _, ok := requested[info.Login]; ok {
			infos = append(infos, info)
		}
	}
	return infos, nil
}

// UsersInfoChunked implements the Client interface.
func (m *MockClient) UsersInfoChunked(ctx context.Context, logins []string, chunkSize int) ([]UserInfo, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}

	var infos []UserInfo
	for start := 0; start < len(logins); start += chunkSize {
		end := min(start+chunkSize, len(logins))
		batch, err := m.UsersInfo(ctx, logins[start:end])
		if err != nil {
			return nil, err
		}
		infos = append(infos, batch...)
	}
	return infos, nil
}

// pagedStream serves fixed in-memory pages through the real stream
// machinery.
func pagedStream[T any](ctx context.Context, pages [][]T, failWith error) *stream.Stream[T] {
	return stream.New(ctx, func(_ context.Context, after string) (stream.Page[T], error) {
		if failWith != nil {
			return stream.Page[T]{}, failWith
		}

		idx := 0
		if after != "" {
			if _, err := fmt.Sscanf(after, "%d", &idx); err != nil {
				return stream.Page[T]{}, err
			}
		}
		if idx >= len(pages) {
			return stream.Page[T]{}, nil
		}

		page := stream.Page[T]{Items: pages[idx]}
		if idx+1 < len(pages) {
			page.Next = fmt.Sprintf("%d", idx+1)
		}
		return page, nil
	})
}

// Interface conformance check.
var _ Client = (*MockClient)(nil)
