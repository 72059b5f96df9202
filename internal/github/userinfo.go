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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// UsersInfo fetches extended profile data for the given logins in a single
// aliased query, bounding round-trips to one per batch instead of one per
// username. Logins that do not resolve (deleted accounts, bot accounts)
// are silently absent from the result; callers must treat a missing entry
// as a valid, non-error outcome.
func (c *GraphQLClient) UsersInfo(ctx context.Context, logins []string) ([]UserInfo, error) {
	if len(logins) == 0 {
		return nil, nil
	}

	data, err := c.rawQuery(ctx, buildUsersInfoQuery(logins))
	if err != nil {
		return nil, err
	}

	infos := make([]UserInfo, 0, len(logins))
	for i, login := range logins {
		raw, ok := data[userAlias(i)]
		if !ok || bytes.Equal(raw, []byte("null")) {
			continue
		}
		var info UserInfo
		if err := json.Unmarshal(raw, &info); err != nil {
			return nil, fmt.Errorf("failed to decode profile for %s: %w", login, err)
		}
		infos = append(infos, info)
	}

	return infos, nil
}

// UsersInfoChunked splits an arbitrarily large login list into fixed-size
// batches and flattens the per-batch results into one slice. No ordering
// guarantee is imposed across batch boundaries beyond batch order itself.
func (c *GraphQLClient) UsersInfoChunked(ctx context.Context, logins []string, chunkSize int) ([]UserInfo, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}

	var infos []UserInfo
	for start := 0; start < len(logins); start += chunkSize {
		end := min(start+chunkSize, len(logins))
		batch, err := c.UsersInfo(ctx, logins[start:end])
		if err != nil {
			return nil, err
		}
		infos = append(infos, batch...)
	}

	return infos, nil
}

// buildUsersInfoQuery constructs the aliased batch query. Each requested
// login becomes one aliased sub-query sharing a single fragment.
func buildUsersInfoQuery(logins []string) string {
	var b strings.Builder
	b.WriteString("query {")
	for i, login := range logins {
		fmt.Fprintf(&b, "\n%s: user(login: %q) { ...UserFields }", userAlias(i), login)
	}
	b.WriteString("\n}\nfragment UserFields on User { login createdAt name twitterUsername }")
	return b.String()
}

// userAlias names the i-th aliased sub-query.
func userAlias(i int) string {
	return fmt.Sprintf("u%d", i)
}

// graphqlErrors is the error portion of a GraphQL response body.
type graphqlErrors []struct {
	Message string `json:"message"`
}

// rawQuery posts a hand-built GraphQL document and returns the decoded
// data object. The shurcooL client derives queries from struct shapes,
// which cannot express per-login aliases, so the batched profile query
// goes through the same HTTP client directly.
//
// GitHub answers a batch containing unresolvable logins with both a data
// object (null for the missing aliases) and an errors list; as long as
// data is present the errors describe absences, not failure, and the
// partial data is returned.
func (c *GraphQLClient) rawQuery(ctx context.Context, query string) (map[string]json.RawMessage, error) {
	body, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return nil, fmt.Errorf("failed to encode graphql request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build graphql request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.mapError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.mapError(fmt.Errorf("graphql endpoint returned status %d", resp.StatusCode))
	}

	var out struct {
		Data   map[string]json.RawMessage `json:"data"`
		Errors graphqlErrors              `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode graphql response: %w", err)
	}

	if out.Data == nil {
		if len(out.Errors) > 0 {
			return nil, c.mapError(fmt.Errorf("graphql error: %s", out.Errors[0].Message))
		}
		return nil, fmt.Errorf("graphql response carried no data")
	}

	return out.Data, nil
}
