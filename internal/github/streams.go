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
	"strconv"

	gogithub "github.com/google/go-github/v72/github"
	"github.com/sirseerhq/sirseer-warden/internal/stream"
)

// userListFunc is one page-numbered REST list call returning users.
type userListFunc func(ctx context.Context, page int) ([]*gogithub.User, *gogithub.Response, error)

// Followers streams the accounts following the authenticated user.
func (c *RESTClient) Followers(ctx context.Context) *stream.Stream[User] {
	return c.userStream(ctx, func(ctx context.Context, page int) ([]*gogithub.User, *gogithub.Response, error) {
		return c.gh.Users.ListFollowers(ctx, "", &gogithub.ListOptions{Page: page, PerPage: c.pageSize})
	})
}

// Following streams the accounts the authenticated user follows.
func (c *RESTClient) Following(ctx context.Context) *stream.Stream[User] {
	return c.userStream(ctx, func(ctx context.Context, page int) ([]*gogithub.User, *gogithub.Response, error) {
		return c.gh.Users.ListFollowing(ctx, "", &gogithub.ListOptions{Page: page, PerPage: c.pageSize})
	})
}

// Blocks streams blocked accounts. With an organization it reads the org
// block list, otherwise the authenticated user's. The two differ only in
// base path; the choice is a runtime branch, not a type distinction.
func (c *RESTClient) Blocks(ctx context.Context, org string) *stream.Stream[User] {
	list := func(ctx context.Context, page int) ([]*gogithub.User, *gogithub.Response, error) {
		opts := &gogithub.ListOptions{Page: page, PerPage: c.pageSize}
		if org != "" {
			return c.gh.Organizations.ListBlockedUsers(ctx, org, opts)
		}
		return c.gh.Users.ListBlockedUsers(ctx, opts)
	}
	return c.userStream(ctx, list)
}

// PullRequests streams every pull request of owner/repo in all states,
// oldest pagination order as served by the API.
func (c *RESTClient) PullRequests(ctx context.Context, owner, repo string) *stream.Stream[PullRequest] {
	return stream.New(ctx, func(ctx context.Context, after string) (stream.Page[PullRequest], error) {
		pageNum, err := parsePageToken(after)
		if err != nil {
			return stream.Page[PullRequest]{}, err
		}

		prs, resp, err := c.gh.PullRequests.List(ctx, owner, repo, &gogithub.PullRequestListOptions{
			State:       "all",
			ListOptions: gogithub.ListOptions{Page: pageNum, PerPage: c.pageSize},
		})
		if err != nil {
			return stream.Page[PullRequest]{}, fmt.Errorf("failed to list pull requests for %s/%s: %w", owner, repo, c.mapError(err))
		}

		page := stream.Page[PullRequest]{Items: make([]PullRequest, 0, len(prs))}
		for _, pr := range prs {
			page.Items = append(page.Items, PullRequest{
				Number:    pr.GetNumber(),
				CreatedAt: pr.GetCreatedAt().Time,
				Author: User{
					Login: pr.GetUser().GetLogin(),
					ID:    pr.GetUser().GetID(),
				},
			})
		}
		page.Next = nextPageToken(resp)
		return page, nil
	})
}

// userStream adapts a page-numbered user list call into a lazy stream.
func (c *RESTClient) userStream(ctx context.Context, list userListFunc) *stream.Stream[User] {
	return stream.New(ctx, func(ctx context.Context, after string) (stream.Page[User], error) {
		pageNum, err := parsePageToken(after)
		if err != nil {
			return stream.Page[User]{}, err
		}

		users, resp, err := list(ctx, pageNum)
		if err != nil {
			return stream.Page[User]{}, fmt.Errorf("failed to list users: %w", c.mapError(err))
		}

		page := stream.Page[User]{Items: make([]User, 0, len(users))}
		for _, u := range users {
			page.Items = append(page.Items, User{Login: u.GetLogin(), ID: u.GetID()})
		}
		page.Next = nextPageToken(resp)
		return page, nil
	})
}

// nextPageToken converts go-github's parsed Link header into a stream
// continuation token. Zero means the server sent no rel="next" link.
func nextPageToken(resp *gogithub.Response) string {
	if resp == nil || resp.NextPage == 0 {
		return ""
	}
	return strconv.Itoa(resp.NextPage)
}

// parsePageToken is the inverse of nextPageToken. The empty token requests
// the first page.
func parsePageToken(after string) (int, error) {
	if after == "" {
		return 0, nil
	}
	page, err := strconv.Atoi(after)
	if err != nil {
		return 0, fmt.Errorf("malformed page token %q: %w", after, err)
	}
	return page, nil
}
