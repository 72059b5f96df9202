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

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.GitHub.APIEndpoint != "https://api.github.com" {
		t.Errorf("unexpected API endpoint: %s", cfg.GitHub.APIEndpoint)
	}
	if cfg.GitHub.GraphQLEndpoint != "https://api.github.com/graphql" {
		t.Errorf("unexpected GraphQL endpoint: %s", cfg.GitHub.GraphQLEndpoint)
	}
	if cfg.Defaults.PageSize != 100 {
		t.Errorf("expected default page size 100, got %d", cfg.Defaults.PageSize)
	}
	if cfg.Defaults.UserBatchSize != 100 {
		t.Errorf("expected default user batch size 100, got %d", cfg.Defaults.UserBatchSize)
	}
	if cfg.Block.AlreadyBlockedMessage == "" || cfg.Block.NotFoundMessage == "" {
		t.Error("expected classifier match strings to be set")
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "warden.yaml")

	content := `
github:
  api_endpoint: https://github.example.com/api/v3
  graphql_endpoint: https://github.example.com/api/graphql
defaults:
  page_size: 50
  user_batch_size: 25
  exclusions_file: /etc/warden/exclusions.csv
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}

	if cfg.GitHub.APIEndpoint != "https://github.example.com/api/v3" {
		t.Errorf("unexpected API endpoint: %s", cfg.GitHub.APIEndpoint)
	}
	if cfg.Defaults.PageSize != 50 {
		t.Errorf("expected page size 50, got %d", cfg.Defaults.PageSize)
	}
	if cfg.Defaults.UserBatchSize != 25 {
		t.Errorf("expected user batch size 25, got %d", cfg.Defaults.UserBatchSize)
	}
	if cfg.Defaults.ExclusionsFile != "/etc/warden/exclusions.csv" {
		t.Errorf("unexpected exclusions file: %s", cfg.Defaults.ExclusionsFile)
	}

	// Unset fields keep their defaults.
	if cfg.Block.AlreadyBlockedMessage != "Blocked user has already been blocked" {
		t.Errorf("expected default already-blocked message, got %q", cfg.Block.AlreadyBlockedMessage)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("GITHUB_API_ENDPOINT", "https://ghe.internal/api/v3")
	t.Setenv("WARDEN_PAGE_SIZE", "30")
	t.Setenv("WARDEN_USER_BATCH_SIZE", "10")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}

	if cfg.GitHub.APIEndpoint != "https://ghe.internal/api/v3" {
		t.Errorf("env override not applied, got %s", cfg.GitHub.APIEndpoint)
	}
	if cfg.Defaults.PageSize != 30 {
		t.Errorf("expected page size 30, got %d", cfg.Defaults.PageSize)
	}
	if cfg.Defaults.UserBatchSize != 10 {
		t.Errorf("expected user batch size 10, got %d", cfg.Defaults.UserBatchSize)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid defaults",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name:    "zero page size",
			mutate:  func(c *Config) { c.Defaults.PageSize = 0 },
			wantErr: true,
		},
		{
			name:    "page size above github limit",
			mutate:  func(c *Config) { c.Defaults.PageSize = 250 },
			wantErr: true,
		},
		{
			name:    "zero user batch size",
			mutate:  func(c *Config) { c.Defaults.UserBatchSize = 0 },
			wantErr: true,
		},
		{
			name:    "empty api endpoint",
			mutate:  func(c *Config) { c.GitHub.APIEndpoint = "" },
			wantErr: true,
		},
		{
			name:    "empty graphql endpoint",
			mutate:  func(c *Config) { c.GitHub.GraphQLEndpoint = "" },
			wantErr: true,
		},
		{
			name:    "empty classifier match string",
			mutate:  func(c *Config) { c.Block.NotFoundMessage = "" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
