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

// Package stream turns a paginated API endpoint into a lazy, forward-only
// sequence of typed items. A Stream walks pages one at a time, requesting
// the next page only after the current page's items have been consumed, so
// memory stays bounded by the page size regardless of the total result
// count.
//
// The iteration protocol follows bufio.Scanner:
//
//	s := stream.New(ctx, fetch)
//	for s.Next() {
//	    process(s.Item())
//	}
//	if err := s.Err(); err != nil {
//	    // Handle error
//	}
//
// A Stream is one-pass and not restartable: to iterate again, construct a
// new Stream from the original request.
package stream

import "context"

// Page is one server-delivered batch of items plus the continuation token
// for the batch after it. An empty Next token means the sequence is
// exhausted; exhaustion is terminal and never retried.
type Page[T any] struct {
	Items []T
	Next  string
}

// FetchFunc returns the page identified by the given continuation token.
// The empty token requests the first page. Implementations must be
// idempotent, side-effect-free reads.
type FetchFunc[T any] func(ctx context.Context, after string) (Page[T], error)

// Stream is a lazy cursor over a paginated sequence. Items are yielded in
// server order within and across page boundaries. The first failed fetch
// abandons the sequence; there is no partial retry.
type Stream[T any] struct {
	ctx     context.Context
	fetch   FetchFunc[T]
	page    Page[T]
	idx     int
	started bool
	done    bool
	err     error
}

// New creates a Stream over the given fetch capability. No request is made
// until the first call to Next.
func New[T any](ctx context.Context, fetch FetchFunc[T]) *Stream[T] {
	return &Stream[T]{ctx: ctx, fetch: fetch}
}

// Next advances the stream to the next item, fetching the next page on
// demand. It returns false when the sequence is exhausted or a fetch
// failed; the two cases are distinguished by Err.
func (s *Stream[T]) Next() bool {
	if s.err != nil || s.done {
		return false
	}

	if !s.started {
		s.started = true
		if !s.advance("") {
			return false
		}
	} else {
		s.idx++
	}

	// Skip over empty pages until an item or the end of the sequence is
	// found.
	for s.idx >= len(s.page.Items) {
		if s.page.Next == "" {
			s.done = true
			return false
		}
		if !s.advance(s.page.Next) {
			return false
		}
	}

	return true
}

// advance fetches the page at the given token and resets the item cursor.
func (s *Stream[T]) advance(after string) bool {
	page, err := s.fetch(s.ctx, after)
	if err != nil {
		s.err = err
		s.done = true
		return false
	}
	s.page = page
	s.idx = 0
	return true
}

// Item returns the current item. It is only valid after a call to Next
// that returned true.
func (s *Stream[T]) Item() T {
	return s.page.Items[s.idx]
}

// Err returns the first error encountered while fetching pages, if any.
func (s *Stream[T]) Err() error {
	return s.err
}

// Collect drains the stream into a slice. It returns the items consumed so
// far along with the fetch error, if iteration stopped on one.
func Collect[T any](s *Stream[T]) ([]T, error) {
	var items []T
	for s.Next() {
		items = append(items, s.Item())
	}
	return items, s.Err()
}
