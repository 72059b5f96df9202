package giterror

import (
	"errors"
	"fmt"
	"testing"
)

func TestGitHubErrorInspector_IsAuthError(t *testing.T) {
	inspector := NewInspector()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "401 unauthorized",
			err:  errors.New("401 Unauthorized"),
			want: true,
		},
		{
			name: "403 forbidden",
			err:  errors.New("403 Forbidden"),
			want: true,
		},
		{
			name: "bad credentials",
			err:  errors.New("Bad credentials"),
			want: true,
		},
		{
			name: "wrapped auth error",
			err:  fmt.Errorf("failed to query: %w", errors.New("401 Unauthorized")),
			want: true,
		},
		{
			name: "not an auth error",
			err:  errors.New("something went wrong"),
			want: false,
		},
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inspector.IsAuthError(tt.err); got != tt.want {
				t.Errorf("IsAuthError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGitHubErrorInspector_IsNotFoundError(t *testing.T) {
	inspector := NewInspector()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "404 status",
			err:  errors.New("404 Not Found"),
			want: true,
		},
		{
			name: "graphql repository resolution",
			err:  errors.New("Could not resolve to a Repository with the name 'octocat/missing'"),
			want: true,
		},
		{
			name: "graphql user resolution",
			err:  errors.New("Could not resolve to a User with the login of 'ghost-account'"),
			want: true,
		},
		{
			name: "unrelated error",
			err:  errors.New("bad gateway"),
			want: false,
		},
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inspector.IsNotFoundError(tt.err); got != tt.want {
				t.Errorf("IsNotFoundError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGitHubErrorInspector_IsRateLimitError(t *testing.T) {
	inspector := NewInspector()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "api rate limit exceeded",
			err:  errors.New("API rate limit exceeded for user"),
			want: true,
		},
		{
			name: "429 status",
			err:  errors.New("received status 429"),
			want: true,
		},
		{
			name: "unrelated error",
			err:  errors.New("connection reset"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inspector.IsRateLimitError(tt.err); got != tt.want {
				t.Errorf("IsRateLimitError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGitHubErrorInspector_IsNetworkError(t *testing.T) {
	inspector := NewInspector()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "connection refused",
			err:  errors.New("dial tcp 127.0.0.1:443: connect: connection refused"),
			want: true,
		},
		{
			name: "dns failure",
			err:  errors.New("no such host"),
			want: true,
		},
		{
			name: "timeout",
			err:  errors.New("context deadline exceeded (Client.Timeout exceeded)"),
			want: true,
		},
		{
			name: "unrelated error",
			err:  errors.New("invalid response"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inspector.IsNetworkError(tt.err); got != tt.want {
				t.Errorf("IsNetworkError() = %v, want %v", got, tt.want)
			}
		})
	}
}

type typedAuthError struct{}

func (typedAuthError) Error() string     { return "custom failure" }
func (typedAuthError) IsAuthError() bool { return true }

func TestErrorChainInspector(t *testing.T) {
	inspector := NewErrorChainInspector(NewInspector())

	// Typed error in the chain wins even when the message matches nothing.
	err := fmt.Errorf("request failed: %w", typedAuthError{})
	if !inspector.IsAuthError(err) {
		t.Error("expected typed auth error to be detected via the chain")
	}

	// String fallback still applies.
	if !inspector.IsNotFoundError(errors.New("404 Not Found")) {
		t.Error("expected string fallback to detect not-found error")
	}
}
