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

// Package config provides configuration management for sirseer-warden with
// support for multiple configuration sources and a well-defined precedence
// order.
//
// Configuration sources (in precedence order, highest to lowest):
//  1. Command-line flags
//  2. Environment variables
//  3. Configuration file
//  4. Built-in defaults
//
// The package supports YAML configuration files and provides automatic
// discovery of configuration in standard locations. It's designed to work
// seamlessly with GitHub Enterprise deployments.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from multiple sources and applies them in
// the correct precedence order. If configPath is provided, it loads from
// that specific file. Otherwise, it searches standard locations:
//   - .warden.yaml (current directory)
//   - .warden.yml (current directory)
//   - ~/.warden/config.yaml
//   - ~/.warden/config.yml
//
// Environment variables are applied after loading the config file, allowing
// runtime overrides.
//
// Returns an error if the specified config file cannot be loaded, but will
// succeed with defaults if no config file is found in standard locations.
func LoadConfig(configPath string) (*Config, error) {
	// Start with defaults
	cfg := DefaultConfig()

	// Try to load config file if path is provided
	if configPath != "" {
		if err := loadConfigFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	} else {
		// Try default locations
		defaultPaths := []string{
			".warden.yaml",
			".warden.yml",
			filepath.Join(os.Getenv("HOME"), ".warden", "config.yaml"),
			filepath.Join(os.Getenv("HOME"), ".warden", "config.yml"),
		}

		for _, path := range defaultPaths {
			if _, err := os.Stat(path); err == nil {
				if err := loadConfigFile(path, cfg); err != nil {
					return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
				}
				break
			}
		}
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	// Expand paths
	cfg.Defaults.ExclusionsFile = expandPath(cfg.Defaults.ExclusionsFile)

	return cfg, nil
}

// loadConfigFile reads and parses a YAML config file
func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(cfg *Config) {
	// GitHub endpoints
	if endpoint := os.Getenv("GITHUB_API_ENDPOINT"); endpoint != "" {
		cfg.GitHub.APIEndpoint = endpoint
	}
	if endpoint := os.Getenv("GITHUB_GRAPHQL_ENDPOINT"); endpoint != "" {
		cfg.GitHub.GraphQLEndpoint = endpoint
	}

	// Defaults
	if pageSize := os.Getenv("WARDEN_PAGE_SIZE"); pageSize != "" {
		if size, err := parsePositiveInt(pageSize); err == nil {
			cfg.Defaults.PageSize = size
		}
	}
	if batchSize := os.Getenv("WARDEN_USER_BATCH_SIZE"); batchSize != "" {
		if size, err := parsePositiveInt(batchSize); err == nil {
			cfg.Defaults.UserBatchSize = size
		}
	}
	if exclusions := os.Getenv("WARDEN_EXCLUSIONS_FILE"); exclusions != "" {
		cfg.Defaults.ExclusionsFile = exclusions
	}
}

// expandPath expands ~ and environment variables in paths
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home := os.Getenv("HOME")
		if home == "" {
			home = os.Getenv("USERPROFILE") // Windows
		}
		path = filepath.Join(home, path[2:])
	}
	return os.ExpandEnv(path)
}

// parsePositiveInt parses a string to a positive integer
func parsePositiveInt(s string) (int, error) {
	var i int
	_, err := fmt.Sscanf(s, "%d", &i)
	if err != nil {
		return 0, fmt.Errorf("failed to parse integer from '%s': %w", s, err)
	}
	if i <= 0 {
		return 0, fmt.Errorf("value must be positive, got: %d", i)
	}
	return i, nil
}

// Validate checks if the configuration contains valid values. It ensures
// page sizes are within GitHub's limits, endpoints are not empty, and the
// classifier match strings are set. This should be called after loading
// configuration to catch invalid settings early.
func (c *Config) Validate() error {
	if c.Defaults.PageSize <= 0 {
		return fmt.Errorf("page size must be positive, got: %d", c.Defaults.PageSize)
	}
	if c.Defaults.PageSize > 100 {
		return fmt.Errorf("page size %d exceeds GitHub API limit of 100", c.Defaults.PageSize)
	}
	if c.Defaults.UserBatchSize <= 0 {
		return fmt.Errorf("user batch size must be positive, got: %d", c.Defaults.UserBatchSize)
	}
	if c.GitHub.APIEndpoint == "" {
		return fmt.Errorf("GitHub API endpoint cannot be empty")
	}
	if c.GitHub.GraphQLEndpoint == "" {
		return fmt.Errorf("GitHub GraphQL endpoint cannot be empty")
	}
	if c.Block.AlreadyBlockedMessage == "" || c.Block.NotFoundMessage == "" {
		return fmt.Errorf("block classifier match strings cannot be empty")
	}
	return nil
}
