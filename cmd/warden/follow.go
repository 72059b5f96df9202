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

	"github.com/spf13/cobra"

	"github.com/sirseerhq/sirseer-warden/internal/github"
)

func newCheckFollowCommand(flags *rootFlags) *cobra.Command {
	var (
		follower string
		target   string
	)

	cmd := &cobra.Command{
		Use:   "check-follow",
		Short: "Check whether one user follows another",
		Long: `Print true or false depending on whether --follower follows --user.

When --user is omitted the target defaults to the authenticated user, so
the command answers "does this account follow me?".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, err := loadSetup(flags)
			if err != nil {
				return err
			}
			return runCheckFollow(cmd.Context(), client, follower, target, os.Stdout)
		},
	}

	cmd.Flags().StringVar(&follower, "follower", "", "Account whose follow relationship is checked")
	cmd.Flags().StringVar(&target, "user", "", "Account being followed (default: the authenticated user)")
	cmd.MarkFlagRequired("follower")

	return cmd
}

// runCheckFollow executes the check-follow command
func runCheckFollow(ctx context.Context, client github.Client, follower, target string, out io.Writer) error {
	if target == "" {
		viewer, err := client.CurrentUser(ctx)
		if err != nil {
			return fmt.Errorf("no --user given and unable to resolve the authenticated user: %w", err)
		}
		target = viewer.Login
	}

	following, err := client.IsFollowing(ctx, follower, target)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%t\n", following)
	return nil
}
