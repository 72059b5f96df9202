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
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sirseerhq/sirseer-warden/internal/github"
	"github.com/sirseerhq/sirseer-warden/internal/input"
	"github.com/sirseerhq/sirseer-warden/internal/stream"
)

func newBlockUsersCommand(flags *rootFlags) *cobra.Command {
	var (
		org   string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "block-users",
		Short: "Block the users listed on standard input",
		Long: `Block GitHub users in bulk. Usernames are read from standard input as
CSV, one record per line, first column only, so both bare username lists
and wider report files are accepted.

Unless --force is given, the current block list is fetched first and
already-blocked usernames are skipped without issuing requests.

With --org the block is applied to the organization's block list instead
of the authenticated user's.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, err := loadSetup(flags)
			if err != nil {
				return err
			}
			return runBlockUsers(cmd.Context(), client, os.Stdin, org, force)
		},
	}

	cmd.Flags().StringVar(&org, "org", "", "Block for this organization instead of the authenticated user")
	cmd.Flags().BoolVar(&force, "force", false, "Skip the known-blocked prefetch and block unconditionally")

	return cmd
}

// runBlockUsers executes the block-users command
func runBlockUsers(ctx context.Context, client github.Client, in io.Reader, org string, force bool) error {
	usernames, err := input.Usernames(in)
	if err != nil {
		return err
	}
	if len(usernames) == 0 {
		log.Info("No usernames to block")
		return nil
	}

	blocked := make(map[string]struct{})
	if !force {
		existing, err := stream.Collect(client.Blocks(ctx, org))
		if err != nil {
			return fmt.Errorf("failed to fetch current block list: %w", err)
		}
		for _, u := range existing {
			blocked[u.Login] = struct{}{}
		}
	}

	skipped := 0
	for _, username := range usernames {
		if _, ok := blocked[username]; ok {
			skipped++
			continue
		}

		status, err := client.BlockUser(ctx, org, username)
		if err != nil {
			return fmt.Errorf("failed to block %s: %w", username, err)
		}

		switch status.Outcome {
		case github.NewlyBlocked:
			log.Infof("Blocked %s", username)
		case github.AlreadyBlocked:
			log.Warnf("%s was already blocked", username)
		case github.UserNotFound:
			log.Warnf("No account named %s", username)
		case github.OtherSuccess:
			log.Warnf("Unexpected success status %d blocking %s", status.StatusCode, username)
		case github.OtherNonSuccess:
			log.Errorf("Failed to block %s: %s", username, status.Message)
		}
	}

	if skipped > 0 {
		log.Infof("Skipped %d already-blocked users", skipped)
	}
	return nil
}
