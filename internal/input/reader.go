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

// Package input parses the username lists fed to bulk operations.
package input

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Usernames reads a headerless CSV and returns the first column of each
// record, in input order. Extra columns are ignored so the block command
// accepts both bare username lists and wider report files. Blank lines
// and records with an empty first field are skipped.
func Usernames(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var usernames []string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("malformed input record: %w", err)
		}
		if len(record) == 0 {
			continue
		}
		username := strings.TrimSpace(record[0])
		if username == "" {
			continue
		}
		usernames = append(usernames, username)
	}

	return usernames, nil
}
