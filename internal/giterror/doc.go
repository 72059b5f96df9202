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

// Package giterror classifies errors returned by the GitHub API into broad
// categories (authentication, not found, rate limit, network). The GraphQL
// endpoint in particular reports most failures as plain error strings, so
// classification falls back to string inspection when no typed error is
// available in the chain.
package giterror
