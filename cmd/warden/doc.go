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

// Package main implements the warden command-line interface.
// This tool automates GitHub account hygiene: blocking users in bulk,
// listing follow and block relationships, and auditing the pull request
// contributors of a repository.
//
// The CLI supports:
//   - Bulk blocking from a CSV username list on standard input
//   - Listing followers, followed accounts, and block lists as CSV
//   - Contributor reports with optional authenticated enrichment
//   - Follow relationship checks between two accounts
//   - GitHub token authentication via flag or environment variable
//   - Graceful error handling with appropriate exit codes
//
// Usage:
//
//	warden <command> [flags]
//
// Example:
//
//	export GITHUB_TOKEN=your_token
//	warden pr-contributors golang/go --output contributors.csv
//
// Exit codes:
//   - 0: Success
//   - 1: General error
//   - 2: Authentication/authorization error
//   - 3: Network error
package main
