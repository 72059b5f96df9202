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
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sirseerhq/sirseer-warden/internal/github"
	"github.com/sirseerhq/sirseer-warden/internal/output"
	"github.com/sirseerhq/sirseer-warden/internal/stream"
)

func newListFollowersCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list-followers",
		Short: "List the accounts following the authenticated user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, err := loadSetup(flags)
			if err != nil {
				return err
			}
			return writeUserList(flags, func(ctx context.Context) *stream.Stream[github.User] {
				return client.Followers(ctx)
			}, cmd)
		},
	}
}

func newListFollowingCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list-following",
		Short: "List the accounts the authenticated user follows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, err := loadSetup(flags)
			if err != nil {
				return err
			}
			return writeUserList(flags, func(ctx context.Context) *stream.Stream[github.User] {
				return client.Following(ctx)
			}, cmd)
		},
	}
}

func newListBlocksCommand(flags *rootFlags) *cobra.Command {
	var org string

	cmd := &cobra.Command{
		Use:   "list-blocks",
		Short: "List blocked accounts",
		Long: `List the accounts blocked by the authenticated user, or by an
organization when --org is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, err := loadSetup(flags)
			if err != nil {
				return err
			}
			return writeUserList(flags, func(ctx context.Context) *stream.Stream[github.User] {
				return client.Blocks(ctx, org)
			}, cmd)
		},
	}

	cmd.Flags().StringVar(&org, "org", "", "List the organization's blocks instead of the authenticated user's")

	return cmd
}

// writeUserList streams users into the record sink as login,id rows.
func writeUserList(flags *rootFlags, open func(context.Context) *stream.Stream[github.User], cmd *cobra.Command) error {
	writer, err := newRecordWriter(flags.outputFile)
	if err != nil {
		return err
	}
	defer writer.Close()

	return writeUsers(open(cmd.Context()), writer)
}

// writeUsers drains the stream into the writer one record at a time, so
// output stays incremental for large lists.
func writeUsers(s *stream.Stream[github.User], writer output.RecordWriter) error {
	for s.Next() {
		u := s.Item()
		if err := writer.Write([]string{u.Login, strconv.FormatInt(u.ID, 10)}); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}
	return s.Err()
}
