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

package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// graphqlRequestBody decodes the query document out of a GraphQL POST.
func graphqlRequestBody(t *testing.T, r *http.Request) string {
	t.Helper()
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		t.Fatalf("failed to read request body: %v", err)
	}
	var req struct {
		Query string `json:"query"`
	}
	if err := json.Unmarshal(raw, &req); err != nil {
		t.Fatalf("failed to decode request body: %v", err)
	}
	return req.Query
}

func TestUsersInfoQueryShape(t *testing.T) {
	var query string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = graphqlRequestBody(t, r)
		fmt.Fprint(w, `{"data":{
			"u0":{"login":"alice","createdAt":"2015-06-01T00:00:00Z","name":"Alice","twitterUsername":"alice_tw"},
			"u1":{"login":"bob","createdAt":"2018-01-01T00:00:00Z","name":null,"twitterUsername":null}
		}}`)
	}))
	defer server.Close()

	client := NewGraphQLClient("test-token", server.URL)
	infos, err := client.UsersInfo(context.Background(), []string{"alice", "bob"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		`u0: user(login: "alice")`,
		`u1: user(login: "bob")`,
		"fragment UserFields on User",
		"twitterUsername",
	} {
		if !strings.Contains(query, want) {
			t.Errorf("query missing %q:\n%s", want, query)
		}
	}

	if len(infos) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(infos))
	}
	if infos[0].Login != "alice" || infos[0].Name != "Alice" || infos[0].TwitterUsername != "alice_tw" {
		t.Errorf("unexpected first profile: %+v", infos[0])
	}
	if infos[1].Name != "" || infos[1].TwitterUsername != "" {
		t.Errorf("expected null fields to decode empty, got %+v", infos[1])
	}
	if infos[0].CreatedAt.Year() != 2015 {
		t.Errorf("expected createdAt year 2015, got %d", infos[0].CreatedAt.Year())
	}
}

func TestUsersInfoToleratesUnresolvedLogins(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// GitHub answers a partially unresolvable batch with null aliases
		// plus an errors list. That shape is not a failure.
		fmt.Fprint(w, `{
			"data":{
				"u0":{"login":"alice","createdAt":"2015-06-01T00:00:00Z","name":"Alice","twitterUsername":null},
				"u1":null,
				"u2":{"login":"carol","createdAt":"2020-03-01T00:00:00Z","name":null,"twitterUsername":null}
			},
			"errors":[{"message":"Could not resolve to a User with the login of 'ghost-account'."}]
		}`)
	}))
	defer server.Close()

	client := NewGraphQLClient("test-token", server.URL)
	infos, err := client.UsersInfo(context.Background(), []string{"alice", "ghost-account", "carol"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(infos) != 2 {
		t.Fatalf("expected 2 profiles, got %d: %+v", len(infos), infos)
	}
	if infos[0].Login != "alice" || infos[1].Login != "carol" {
		t.Errorf("expected [alice carol], got %+v", infos)
	}
}

func TestUsersInfoFailsWithoutData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":null,"errors":[{"message":"Something went wrong"}]}`)
	}))
	defer server.Close()

	client := NewGraphQLClient("test-token", server.URL)
	if _, err := client.UsersInfo(context.Background(), []string{"alice"}); err == nil {
		t.Fatal("expected error when response carries no data")
	}
}

func TestUsersInfoEmptyInput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for empty login list")
	}))
	defer server.Close()

	client := NewGraphQLClient("test-token", server.URL)
	infos, err := client.UsersInfo(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(infos) != 0 {
		t.Errorf("expected no profiles, got %+v", infos)
	}
}

func TestUsersInfoChunked(t *testing.T) {
	var requests int
	var batchSizes []int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		query := graphqlRequestBody(t, r)
		batchSizes = append(batchSizes, strings.Count(query, "user(login:"))
		fmt.Fprint(w, `{"data":{}}`)
	}))
	defer server.Close()

	logins := make([]string, 250)
	for i := range logins {
		logins[i] = fmt.Sprintf("user%d", i)
	}

	client := NewGraphQLClient("test-token", server.URL)
	if _, err := client.UsersInfoChunked(context.Background(), logins, 100); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if requests != 3 {
		t.Fatalf("expected 3 batched requests, got %d", requests)
	}
	want := []int{100, 100, 50}
	for i, size := range want {
		if batchSizes[i] != size {
			t.Errorf("batch %d: expected %d logins, got %d", i, size, batchSizes[i])
		}
	}
}

func TestUsersInfoChunkedRejectsBadChunkSize(t *testing.T) {
	client := NewGraphQLClient("test-token", "http://127.0.0.1:1")
	if _, err := client.UsersInfoChunked(context.Background(), []string{"alice"}, 0); err == nil {
		t.Fatal("expected error for zero chunk size")
	}
}
