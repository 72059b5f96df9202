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
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sirseerhq/sirseer-warden/internal/exclude"
	"github.com/sirseerhq/sirseer-warden/internal/github"
	"github.com/sirseerhq/sirseer-warden/internal/output"
	"github.com/sirseerhq/sirseer-warden/internal/report"
	"github.com/sirseerhq/sirseer-warden/internal/stream"
)

// contributorsOptions are the pr-contributors command knobs.
type contributorsOptions struct {
	omitTwitter   bool
	userBatchSize int
}

func newContributorsCommand(flags *rootFlags) *cobra.Command {
	var (
		omitTwitter      bool
		exclusionsFile   string
		ignoreExclusions bool
	)

	cmd := &cobra.Command{
		Use:   "pr-contributors <org>/<repo>",
		Short: "List the pull request contributors of a repository",
		Long: `Enumerate every pull request of a repository and report one row per
contributor: username, user ID, and pull request count.

With an authenticated token the report gains extended columns: account age
in days at the contributor's first pull request, display name, Twitter
handle, and whether the follow relationship exists in either direction.
Without a token the base columns are still produced.

Contributors listed in the exclusions table for this repository are
dropped from the report, as are well-known bot accounts.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, repo, err := parseRepository(args[0])
			if err != nil {
				return err
			}

			cfg, client, err := loadSetup(flags)
			if err != nil {
				return err
			}

			table := exclude.None()
			if !ignoreExclusions {
				path := exclusionsFile
				if path == "" {
					path = cfg.Defaults.ExclusionsFile
				}
				table, err = loadExclusions(path, exclusionsFile != "")
				if err != nil {
					return err
				}
			}

			writer, err := newRecordWriter(flags.outputFile)
			if err != nil {
				return err
			}
			defer writer.Close()

			opts := contributorsOptions{
				omitTwitter:   omitTwitter,
				userBatchSize: cfg.Defaults.UserBatchSize,
			}
			return runContributors(cmd.Context(), client, owner, repo, table, opts, writer)
		},
	}

	cmd.Flags().BoolVar(&omitTwitter, "omit-twitter", false, "Drop the Twitter column from extended output")
	cmd.Flags().StringVar(&exclusionsFile, "exclusions-file", "", "Exclusions CSV path (default from config)")
	cmd.Flags().BoolVar(&ignoreExclusions, "ignore-exclusions", false, "Report excluded contributors too")

	return cmd
}

// loadExclusions reads the exclusions table. A missing default file is an
// empty table; a missing explicitly-requested file is an error.
func loadExclusions(path string, explicit bool) (*exclude.Table, error) {
	table, err := exclude.LoadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			log.Debugf("No exclusions file at %s", path)
			return exclude.None(), nil
		}
		return nil, err
	}
	log.Debugf("Loaded %d exclusions from %s", table.Len(), path)
	return table, nil
}

// runContributors executes the pr-contributors command
func runContributors(ctx context.Context, client github.Client, owner, repo string, table *exclude.Table, opts contributorsOptions, writer output.RecordWriter) error {
	prs, err := stream.Collect(client.PullRequests(ctx, owner, repo))
	if err != nil {
		return err
	}

	contributors := report.Contributors(prs)
	repoName := fmt.Sprintf("%s/%s", owner, repo)

	kept := contributors[:0]
	for _, c := range contributors {
		if table.IsExcluded(repoName, c.Login) {
			log.Warnf("Excluding contributor %s", c.Login)
			continue
		}
		kept = append(kept, c)
	}

	// One authentication probe decides whether the extended columns are
	// available. Any failure means an anonymous report, not an error.
	var enr *report.Enrichment
	if viewer, err := client.Viewer(ctx); err != nil {
		log.Debugf("Not authenticated, producing base report: %v", err)
	} else {
		log.Debugf("Authenticated as %s", viewer)
		logins := make([]string, 0, len(kept))
		for _, c := range kept {
			logins = append(logins, c.Login)
		}
		enr, err = report.LoadEnrichment(ctx, client, logins, opts.userBatchSize)
		if err != nil {
			return err
		}
	}

	for _, c := range kept {
		if err := writer.Write(report.Row(c, enr, opts.omitTwitter)); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}
	return nil
}

// parseRepository parses an org/repo string into owner and repo components
func parseRepository(repoArg string) (owner, repo string, err error) {
	parts := strings.Split(repoArg, "/")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid repository format. Expected: <org>/<repo>, got: %s", repoArg)
	}

	owner = strings.TrimSpace(parts[0])
	repo = strings.TrimSpace(parts[1])

	if owner == "" || repo == "" {
		return "", "", fmt.Errorf("invalid repository format. Expected: <org>/<repo>, got: %s", repoArg)
	}

	return owner, repo, nil
}
