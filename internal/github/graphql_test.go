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
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	wardenerrors "github.com/sirseerhq/sirseer-warden/internal/errors"
)

func TestViewer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("expected bearer auth header, got %q", got)
		}
		if ua := r.Header.Get("User-Agent"); !strings.HasPrefix(ua, "sirseer-warden/") {
			t.Errorf("expected warden user agent, got %q", ua)
		}
		fmt.Fprint(w, `{"data":{"viewer":{"login":"octocat"}}}`)
	}))
	defer server.Close()

	client := NewGraphQLClient("test-token", server.URL)
	login, err := client.Viewer(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if login != "octocat" {
		t.Errorf("expected octocat, got %q", login)
	}
}

func TestViewerAnonymousOmitsAuthHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "" {
			t.Errorf("expected no auth header, got %q", got)
		}
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"message":"This endpoint requires authentication."}`)
	}))
	defer server.Close()

	client := NewGraphQLClient("", server.URL)
	_, err := client.Viewer(context.Background())
	if err == nil {
		t.Fatal("expected error for anonymous viewer query")
	}
	if !errors.Is(err, wardenerrors.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestViewerMapsRateLimitError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"message":"API rate limit exceeded"}`)
	}))
	defer server.Close()

	client := NewGraphQLClient("test-token", server.URL)
	_, err := client.Viewer(context.Background())
	if !errors.Is(err, wardenerrors.ErrRateLimit) {
		t.Errorf("expected ErrRateLimit, got %v", err)
	}
}

func TestViewerMapsGraphQLErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"errors":[{"message":"Could not resolve to a User with the login of 'nobody'."}]}`)
	}))
	defer server.Close()

	client := NewGraphQLClient("test-token", server.URL)
	_, err := client.Viewer(context.Background())
	if !errors.Is(err, wardenerrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestResponseSizeLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 11MB body, past the 10MB response cap.
		w.Header().Set("Content-Type", "application/json")
		chunk := strings.Repeat("a", 1024)
		fmt.Fprint(w, `{"data":{"viewer":{"login":"`)
		for i := 0; i < 11*1024; i++ {
			fmt.Fprint(w, chunk)
		}
		fmt.Fprint(w, `"}}}`)
	}))
	defer server.Close()

	client := NewGraphQLClient("test-token", server.URL)
	if _, err := client.Viewer(context.Background()); err == nil {
		t.Fatal("expected error for oversized response")
	}
}
