// Package tablequery sorts and filters in-memory table rows.
//
// Sorting is stable: rows that compare equal keep their input order no matter
// which direction is requested. Filtering never reorders.
package tablequery

import (
	"cmp"
	"slices"
	"strings"
)

// Direction is the user-selected sort direction of a column
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection maps a query value to a Direction, defaulting to Asc
func ParseDirection(s string) Direction {
	if strings.EqualFold(s, string(Desc)) {
		return Desc
	}
	return Asc
}

// Comparator orders two rows, returning <0, 0 or >0
type Comparator[T any] func(a, b T) int

// Predicate reports whether a row should be kept
type Predicate[T any] func(row T) bool

// By builds a comparator from a key extractor
func By[T any, K cmp.Ordered](key func(T) K) Comparator[T] {
	return func(a, b T) int {
		return cmp.Compare(key(a), key(b))
	}
}

// Directed inverts cmp for Desc and returns it unchanged for Asc
func Directed[T any](c Comparator[T], dir Direction) Comparator[T] {
	if dir == Desc {
		return func(a, b T) int { return -c(a, b) }
	}
	return c
}

type indexed[T any] struct {
	row   T
	index int
}

// StableSort returns a sorted copy of rows. Ties are broken by input index.
func StableSort[T any](rows []T, c Comparator[T]) []T {
	decorated := make([]indexed[T], len(rows))
	for i, r := range rows {
		decorated[i] = indexed[T]{row: r, index: i}
	}

	slices.SortFunc(decorated, func(a, b indexed[T]) int {
		if order := c(a.row, b.row); order != 0 {
			return order
		}
		return a.index - b.index
	})

	out := make([]T, len(decorated))
	for i, d := range decorated {
		out[i] = d.row
	}
	return out
}

// Filter keeps the rows that satisfy every predicate. Nil predicates are skipped.
func Filter[T any](rows []T, preds ...Predicate[T]) []T {
	out := make([]T, 0, len(rows))
next:
	for _, r := range rows {
		for _, p := range preds {
			if p != nil && !p(r) {
				continue next
			}
		}
		out = append(out, r)
	}
	return out
}

// Apply sorts rows with c (when non-nil) and then filters them.
func Apply[T any](rows []T, c Comparator[T], preds ...Predicate[T]) []T {
	if c != nil {
		rows = StableSort(rows, c)
	}
	return Filter(rows, preds...)
}

// ContainsFold reports whether any field contains substr, ignoring case
func ContainsFold(substr string, fields ...string) bool {
	needle := strings.ToLower(substr)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}
