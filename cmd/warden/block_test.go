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
	"strings"
	"testing"

	"github.com/sirseerhq/sirseer-warden/internal/github"
)

func TestRunBlockUsers(t *testing.T) {
	mock := github.NewMockClient()
	in := strings.NewReader("alice\nbob\ncarol\n")

	if err := runBlockUsers(context.Background(), mock, in, "", true); err != nil {
		t.Fatalf("runBlockUsers failed: %v", err)
	}

	if len(mock.BlockedUsers) != 3 {
		t.Fatalf("expected 3 block requests, got %v", mock.BlockedUsers)
	}
	for i, want := range []string{"alice", "bob", "carol"} {
		if mock.BlockedUsers[i] != want {
			t.Errorf("block %d: expected %q, got %q", i, want, mock.BlockedUsers[i])
		}
	}
}

func TestRunBlockUsersSkipsKnownBlocked(t *testing.T) {
	mock := github.NewMockClient()
	mock.BlocksPages = [][]github.User{{{Login: "alice", ID: 1}, {Login: "carol", ID: 3}}}
	in := strings.NewReader("alice\nbob\ncarol\n")

	if err := runBlockUsers(context.Background(), mock, in, "", false); err != nil {
		t.Fatalf("runBlockUsers failed: %v", err)
	}

	if len(mock.BlockedUsers) != 1 || mock.BlockedUsers[0] != "bob" {
		t.Errorf("expected only bob to be blocked, got %v", mock.BlockedUsers)
	}
}

func TestRunBlockUsersForceSkipsPrefetch(t *testing.T) {
	mock := github.NewMockClient()
	// alice is already in the block list; --force must still issue the request.
	mock.BlocksPages = [][]github.User{{{Login: "alice", ID: 1}}}
	in := strings.NewReader("alice\n")

	if err := runBlockUsers(context.Background(), mock, in, "", true); err != nil {
		t.Fatalf("runBlockUsers failed: %v", err)
	}
	if len(mock.BlockedUsers) != 1 {
		t.Errorf("expected 1 block request, got %v", mock.BlockedUsers)
	}
}

func TestRunBlockUsersOrgScope(t *testing.T) {
	mock := github.NewMockClient()
	in := strings.NewReader("spammer\n")

	if err := runBlockUsers(context.Background(), mock, in, "acme", true); err != nil {
		t.Fatalf("runBlockUsers failed: %v", err)
	}

	if len(mock.BlockedOrgs) != 1 || mock.BlockedOrgs[0] != "acme" {
		t.Errorf("expected org acme, got %v", mock.BlockedOrgs)
	}
}

func TestRunBlockUsersToleratesPerUserOutcomes(t *testing.T) {
	mock := github.NewMockClient()
	mock.BlockStatuses["gone"] = &github.BlockStatus{Outcome: github.UserNotFound}
	mock.BlockStatuses["dup"] = &github.BlockStatus{Outcome: github.AlreadyBlocked}
	in := strings.NewReader("gone\ndup\nfresh\n")

	// Expected non-success outcomes are reported, not fatal.
	if err := runBlockUsers(context.Background(), mock, in, "", true); err != nil {
		t.Fatalf("runBlockUsers failed: %v", err)
	}
	if len(mock.BlockedUsers) != 3 {
		t.Errorf("expected all 3 usernames attempted, got %v", mock.BlockedUsers)
	}
}

func TestRunBlockUsersEmptyInput(t *testing.T) {
	mock := github.NewMockClient()

	if err := runBlockUsers(context.Background(), mock, strings.NewReader(""), "", false); err != nil {
		t.Fatalf("runBlockUsers failed: %v", err)
	}
	if len(mock.BlockedUsers) != 0 {
		t.Errorf("expected no block requests, got %v", mock.BlockedUsers)
	}
}
