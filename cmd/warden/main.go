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

package main

import (
	"errors"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sirseerhq/sirseer-warden/internal/config"
	wardenerrors "github.com/sirseerhq/sirseer-warden/internal/errors"
	"github.com/sirseerhq/sirseer-warden/internal/github"
	"github.com/sirseerhq/sirseer-warden/internal/output"
	"github.com/sirseerhq/sirseer-warden/pkg/version"
)

// rootFlags are shared by every subcommand.
type rootFlags struct {
	token      string
	configFile string
	outputFile string
	verbose    bool
}

func newRootCommand() *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "warden",
		Short: "Audit and manage GitHub block lists and contributor activity",
		Long: `Warden automates GitHub account hygiene: blocking users in bulk,
listing follow and block relationships, and auditing the contributors of a
repository with optional profile enrichment.`,
		Version:       version.Version,
		SilenceUsage:  true, // Don't show usage on error
		SilenceErrors: true, // We'll handle error printing ourselves
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetOutput(os.Stderr)
			if flags.verbose {
				log.SetLevel(log.DebugLevel)
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&flags.token, "token", "", "GitHub personal access token (overrides GITHUB_TOKEN env var)")
	rootCmd.PersistentFlags().StringVar(&flags.configFile, "config", "", "Config file path (default: .warden.yaml, ~/.warden/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flags.outputFile, "output", "", "Output file path (default: stdout)")
	rootCmd.PersistentFlags().BoolVar(&flags.verbose, "verbose", false, "Enable debug logging")

	rootCmd.AddCommand(newBlockUsersCommand(flags))
	rootCmd.AddCommand(newListFollowersCommand(flags))
	rootCmd.AddCommand(newListFollowingCommand(flags))
	rootCmd.AddCommand(newListBlocksCommand(flags))
	rootCmd.AddCommand(newContributorsCommand(flags))
	rootCmd.AddCommand(newCheckFollowCommand(flags))

	return rootCmd
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(mapErrorToExitCode(err))
	}
}

// loadSetup resolves configuration and builds the production client.
func loadSetup(flags *rootFlags) (*config.Config, github.Client, error) {
	cfg, err := config.LoadConfig(flags.configFile)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	client, err := github.NewClient(getToken(flags.token, cfg), cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, client, nil
}

// getToken returns the GitHub token from flag or environment variable. An
// empty result means the client operates anonymously.
func getToken(flagToken string, cfg *config.Config) string {
	if flagToken != "" {
		return flagToken
	}
	return os.Getenv(cfg.GitHub.TokenEnv)
}

// newRecordWriter opens the record sink selected by --output.
func newRecordWriter(outputFile string) (output.RecordWriter, error) {
	if outputFile == "" {
		return output.NewWriter(os.Stdout), nil
	}
	return output.NewFileWriter(outputFile)
}

// mapErrorToExitCode maps internal errors to appropriate exit codes
func mapErrorToExitCode(err error) int {
	if err == nil {
		return 0
	}

	// Check for specific error types
	if errors.Is(err, wardenerrors.ErrInvalidToken) ||
		errors.Is(err, wardenerrors.ErrNotFound) ||
		errors.Is(err, wardenerrors.ErrRateLimit) {
		return 2 // Authentication/authorization errors
	}

	if errors.Is(err, wardenerrors.ErrNetworkFailure) {
		return 3 // Network errors
	}

	return 1 // General error
}
