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

// Package github provides clients for the GitHub REST and GraphQL APIs
// covering the operations sirseer-warden needs: listing followers,
// following, and blocked users; enumerating a repository's pull requests;
// blocking accounts; checking follow relationships; and batch-fetching
// extended user profiles.
//
// The package includes:
//   - A Client interface composing the full API surface, for easy mocking
//   - A REST implementation built on google/go-github with lazy pagination
//   - A GraphQL implementation for the viewer probe and batched profile queries
//   - The response classifier that maps block/follow outcomes to data
//   - Mock client for testing
//
// Basic usage:
//
//	client, err := github.NewClient("your-github-token", cfg)
//	if err != nil {
//	    // Handle error
//	}
//	followers := client.Followers(ctx)
//	for followers.Next() {
//	    // Process followers.Item()
//	}
//	if err := followers.Err(); err != nil {
//	    // Handle error
//	}
package github
