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

// Package report aggregates pull requests into per-contributor rows and
// enriches them with profile and follow data when a token is available.
package report

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	log "github.com/sirupsen/logrus"

	"github.com/sirseerhq/sirseer-warden/internal/github"
	"github.com/sirseerhq/sirseer-warden/internal/stream"
)

// Contributor is one account's pull request activity in a repository.
type Contributor struct {
	Login   string
	ID      int64
	PRCount int
	FirstPR github.PullRequest
}

// Contributors groups pull requests by author and returns one entry per
// contributor, sorted by login. FirstPR holds the author's earliest
// pull request.
func Contributors(prs []github.PullRequest) []Contributor {
	byLogin := make(map[string]*Contributor)
	for _, pr := range prs {
		c, ok := byLogin[pr.Author.Login]
		if !ok {
			byLogin[pr.Author.Login] = &Contributor{
				Login:   pr.Author.Login,
				ID:      pr.Author.ID,
				PRCount: 1,
				FirstPR: pr,
			}
			continue
		}
		c.PRCount++
		if pr.CreatedAt.Before(c.FirstPR.CreatedAt) {
			c.FirstPR = pr
		}
	}

	contributors := make([]Contributor, 0, len(byLogin))
	for _, c := range byLogin {
		contributors = append(contributors, *c)
	}
	sort.Slice(contributors, func(i, j int) bool {
		return contributors[i].Login < contributors[j].Login
	})
	return contributors
}

// Enrichment carries the authenticated-only report data: the viewer's
// follow relationships and extended contributor profiles.
type Enrichment struct {
	FollowsYou map[string]struct{}
	YouFollow  map[string]struct{}
	Profiles   map[string]github.UserInfo
}

// LoadEnrichment gathers follow relationships and batched profiles for
// the given contributor logins. It requires an authenticated client.
func LoadEnrichment(ctx context.Context, client github.Client, logins []string, chunkSize int) (*Enrichment, error) {
	followers, err := stream.Collect(client.Followers(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to list followers: %w", err)
	}
	following, err := stream.Collect(client.Following(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to list followed users: %w", err)
	}

	enr := &Enrichment{
		FollowsYou: make(map[string]struct{}, len(followers)),
		YouFollow:  make(map[string]struct{}, len(following)),
		Profiles:   make(map[string]github.UserInfo, len(logins)),
	}
	for _, u := range followers {
		enr.FollowsYou[u.Login] = struct{}{}
	}
	for _, u := range following {
		enr.YouFollow[u.Login] = struct{}{}
	}

	log.WithFields(log.Fields{
		"contributors": len(logins),
		"batch_size":   chunkSize,
	}).Debug("Fetching contributor profiles")

	infos, err := client.UsersInfoChunked(ctx, logins, chunkSize)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch contributor profiles: %w", err)
	}
	for _, info := range infos {
		enr.Profiles[info.Login] = info
	}

	return enr, nil
}

// Row renders one contributor as CSV fields. Without enrichment the row
// is login, user ID, and pull request count. Enrichment appends account
// age at first pull request (in whole days), display name, Twitter
// handle, and the two follow booleans; omitTwitter drops the Twitter
// column. A contributor whose profile did not resolve gets age -1 and
// empty profile fields.
func Row(c Contributor, enr *Enrichment, omitTwitter bool) []string {
	row := []string{
		c.Login,
		strconv.FormatInt(c.ID, 10),
		strconv.Itoa(c.PRCount),
	}
	if enr == nil {
		return row
	}

	age, name, twitter := "-1", "", ""
	if info, ok := enr.Profiles[c.Login]; ok {
		days := int64(c.FirstPR.CreatedAt.Sub(info.CreatedAt).Hours() / 24)
		age = strconv.FormatInt(days, 10)
		name = info.Name
		twitter = info.TwitterUsername
	}

	row = append(row, age, name)
	if !omitTwitter {
		row = append(row, twitter)
	}

	_, youFollow := enr.YouFollow[c.Login]
	_, followsYou := enr.FollowsYou[c.Login]
	return append(row, strconv.FormatBool(youFollow), strconv.FormatBool(followsYou))
}
