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

import "time"

// User identifies a GitHub account. Login is unique but case-insensitive
// on the platform; ID is stable across login renames and serves as the
// join key across follower, following, block, and PR-author sets.
type User struct {
	Login string `json:"login"`
	ID    int64  `json:"id"`
}

// ExtendedUser is a User plus the account-creation timestamp, as returned
// by the REST /users/{login} endpoint.
type ExtendedUser struct {
	User
	CreatedAt time.Time `json:"created_at"`
}

// UserInfo is the profile subset returned by the batched GraphQL profile
// query. Name and TwitterUsername may be entirely absent server-side;
// absence decodes as the empty string and is not an error.
type UserInfo struct {
	Login           string    `json:"login"`
	CreatedAt       time.Time `json:"createdAt"`
	Name            string    `json:"name"`
	TwitterUsername string    `json:"twitterUsername"`
}

// PullRequest carries the subset of pull request metadata the contributor
// report needs: who opened it, when, and its number for reference.
type PullRequest struct {
	Number    int       `json:"number"`
	CreatedAt time.Time `json:"created_at"`
	Author    User      `json:"user"`
}
