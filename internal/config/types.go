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

// Package config types define the configuration structures used throughout
// sirseer-warden. These types represent settings that can be loaded from
// YAML configuration files, environment variables, or command-line flags.
package config

// Config represents the complete configuration for sirseer-warden.
// It consolidates settings from various sources and provides a unified
// interface for accessing configuration values throughout the application.
type Config struct {
	GitHub   GitHubConfig   `yaml:"github"`
	Defaults DefaultsConfig `yaml:"defaults"`
	Block    BlockConfig    `yaml:"block"`
}

// GitHubConfig contains GitHub-specific settings including API endpoints
// and authentication configuration. This allows easy configuration for
// GitHub Enterprise deployments by specifying custom endpoints.
type GitHubConfig struct {
	APIEndpoint     string `yaml:"api_endpoint"`
	GraphQLEndpoint string `yaml:"graphql_endpoint"`
	TokenEnv        string `yaml:"token_env"`
}

// DefaultsConfig contains default settings that apply to all operations
// unless overridden by command-line flags. PageSize controls REST list
// pagination; UserBatchSize controls how many logins go into one batched
// profile query.
type DefaultsConfig struct {
	PageSize       int    `yaml:"page_size"`
	UserBatchSize  int    `yaml:"user_batch_size"`
	ExclusionsFile string `yaml:"exclusions_file"`
}

// BlockConfig contains the error-message matchers used to classify block
// responses. GitHub reports "already blocked" and "user not found" through
// ordinary error bodies, and these strings identify them. They are
// configuration rather than literals so tests can run against mock servers
// that phrase errors differently.
type BlockConfig struct {
	AlreadyBlockedMessage string `yaml:"already_blocked_message"`
	NotFoundMessage       string `yaml:"not_found_message"`
}

// DefaultConfig returns a Config with sensible defaults suitable for most
// use cases. These defaults are optimized for public GitHub.com usage but
// can be overridden for GitHub Enterprise or special requirements.
func DefaultConfig() *Config {
	return &Config{
		GitHub: GitHubConfig{
			APIEndpoint:     "https://api.github.com",
			GraphQLEndpoint: "https://api.github.com/graphql",
			TokenEnv:        "GITHUB_TOKEN",
		},
		Defaults: DefaultsConfig{
			PageSize:       100,
			UserBatchSize:  100,
			ExclusionsFile: "data/exclusions.csv",
		},
		Block: BlockConfig{
			AlreadyBlockedMessage: "Blocked user has already been blocked",
			NotFoundMessage:       "Not Found",
		},
	}
}
