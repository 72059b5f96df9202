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

// Package output provides utilities for writing tabular data as CSV.
// Lists and contributor reports are emitted one record per line, flushed
// as they are produced, so partial results are visible while a long
// enumeration is still running.
//
// The primary type is Writer, which provides thread-safe writing of CSV
// records to an io.Writer or file without accumulating them in memory.
//
// Example usage:
//
//	w, err := output.NewFileWriter("contributors.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer w.Close()
//
//	if err := w.Write([]string{"octocat", "1", "42"}); err != nil {
//	    log.Fatal(err)
//	}
package output
