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

// Package exclude filters known-good accounts out of contributor reports.
// Exclusions come from a two-column CSV of repository and username; a
// small set of bot accounts is excluded everywhere regardless of the
// table contents.
package exclude

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// alwaysExcluded are bot accounts that never belong in a contributor
// report, regardless of repository.
var alwaysExcluded = []string{"ghost", "dependabot[bot]"}

// Table maps repositories to the usernames excluded for them. Lookups are
// case-insensitive on the username side.
type Table struct {
	byRepo map[string][]string
}

// None returns an empty table. The bot accounts are still excluded.
func None() *Table {
	return &Table{byRepo: make(map[string][]string)}
}

// Load reads a two-column CSV of repository,username records. Usernames
// are lowercased at load time so membership checks are case-insensitive.
func Load(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 2

	table := None()
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("malformed exclusions record: %w", err)
		}
		repo := strings.TrimSpace(record[0])
		username := strings.ToLower(strings.TrimSpace(record[1]))
		table.byRepo[repo] = append(table.byRepo[repo], username)
	}

	return table, nil
}

// LoadFile loads an exclusions table from disk.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open exclusions file: %w", err)
	}
	defer f.Close()

	table, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse exclusions file %s: %w", path, err)
	}
	return table, nil
}

// IsExcluded reports whether username is excluded for repo, either as one
// of the always-excluded bot accounts or through a table entry for that
// repository. Entries for other repositories do not apply.
func (t *Table) IsExcluded(repo, username string) bool {
	for _, bot := range alwaysExcluded {
		if strings.EqualFold(username, bot) {
			return true
		}
	}

	needle := strings.ToLower(username)
	for _, excluded := range t.byRepo[repo] {
		if excluded == needle {
			return true
		}
	}
	return false
}

// Len returns the number of table entries, not counting the built-in bot
// accounts.
func (t *Table) Len() int {
	n := 0
	for _, usernames := range t.byRepo {
		n += len(usernames)
	}
	return n
}
