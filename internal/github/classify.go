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
	"errors"
	"fmt"
	"net/http"
	"strings"

	gogithub "github.com/google/go-github/v72/github"
	"github.com/sirseerhq/sirseer-warden/internal/config"
)

// BlockOutcome enumerates the semantic results of a block attempt.
type BlockOutcome int

const (
	// NewlyBlocked means the block was created by this request.
	NewlyBlocked BlockOutcome = iota
	// AlreadyBlocked means the target was blocked before this request.
	AlreadyBlocked
	// UserNotFound means the target account does not exist.
	UserNotFound
	// OtherSuccess means the API accepted the request with an unexpected
	// success status.
	OtherSuccess
	// OtherNonSuccess means the API rejected the request with an
	// unrecognized but well-formed error message.
	OtherNonSuccess
)

// String returns a human-readable name for the outcome.
func (o BlockOutcome) String() string {
	switch o {
	case NewlyBlocked:
		return "newly blocked"
	case AlreadyBlocked:
		return "already blocked"
	case UserNotFound:
		return "user not found"
	case OtherSuccess:
		return "other success"
	case OtherNonSuccess:
		return "other non-success"
	default:
		return fmt.Sprintf("unknown outcome %d", int(o))
	}
}

// BlockStatus is the classified result of one block attempt. Exactly one
// outcome holds per attempt. StatusCode is populated for OtherSuccess and
// Message for OtherNonSuccess.
type BlockStatus struct {
	Outcome    BlockOutcome
	StatusCode int
	Message    string
}

// Classifier maps raw API responses onto the closed set of block and
// follow outcomes. GitHub reports "already blocked" and "user not found"
// as ordinary non-2xx responses with structured bodies; those are expected,
// recoverable outcomes that callers branch on, so the classifier reifies
// them as data instead of surfacing them as errors. Responses carrying a
// field-level error list, and transport failures, stay hard errors.
//
// The match strings come from configuration so tests can exercise the
// classifier against mock servers that phrase errors differently.
type Classifier struct {
	alreadyBlockedMessage string
	notFoundMessage       string
}

// NewClassifier builds a Classifier from the configured match strings.
func NewClassifier(cfg config.BlockConfig) Classifier {
	return Classifier{
		alreadyBlockedMessage: cfg.AlreadyBlockedMessage,
		notFoundMessage:       cfg.NotFoundMessage,
	}
}

// Block classifies the result of a block attempt. The rules, checked in
// order:
//
//  1. Success with 204 No Content: NewlyBlocked.
//  2. Success with any other status: OtherSuccess with that status.
//  3. Structured error without a field-level error list whose message
//     contains the already-blocked match string: AlreadyBlocked.
//  4. Structured error without a field-level error list whose message
//     equals the not-found match string: UserNotFound.
//  5. Structured error without a field-level error list matching neither:
//     OtherNonSuccess with the message.
//  6. Anything else, including structured errors that do carry field-level
//     detail: propagated as a hard error.
func (c Classifier) Block(resp *gogithub.Response, err error) (*BlockStatus, error) {
	if err == nil {
		if resp != nil && resp.StatusCode == http.StatusNoContent {
			return &BlockStatus{Outcome: NewlyBlocked}, nil
		}
		status := 0
		if resp != nil {
			status = resp.StatusCode
		}
		return &BlockStatus{Outcome: OtherSuccess, StatusCode: status}, nil
	}

	var apiErr *gogithub.ErrorResponse
	if errors.As(err, &apiErr) && len(apiErr.Errors) == 0 {
		switch {
		case strings.Contains(apiErr.Message, c.alreadyBlockedMessage):
			return &BlockStatus{Outcome: AlreadyBlocked}, nil
		case apiErr.Message == c.notFoundMessage:
			return &BlockStatus{Outcome: UserNotFound}, nil
		default:
			return &BlockStatus{Outcome: OtherNonSuccess, Message: apiErr.Message}, nil
		}
	}

	return nil, err
}

// Follow classifies the result of a follow check: 204 No Content means the
// relationship exists, and a structured error without field-level detail
// means it does not. Any other failure propagates.
func (c Classifier) Follow(resp *gogithub.Response, err error) (bool, error) {
	if err == nil {
		return resp != nil && resp.StatusCode == http.StatusNoContent, nil
	}

	var apiErr *gogithub.ErrorResponse
	if errors.As(err, &apiErr) && len(apiErr.Errors) == 0 {
		return false, nil
	}

	return false, err
}
