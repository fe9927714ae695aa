// Package listview implements the list-management pattern shared by
// every collection screen: a paginated, searchable window over a fully
// fetched collection, plus a draft buffer for modal edits. Pagination
// is pure client-side slicing; page numbers start at 1.
package listview

import "strings"

// DefaultPageSize matches the fixed table size of the collection screens.
const DefaultPageSize = 10

// Matcher reports whether a row matches a (lowercased) search query.
type Matcher[T any] func(row T, query string) bool

// MatchFields builds a Matcher from field extractors, applying the
// uniform rule: case-insensitive substring over any declared field.
func MatchFields[T any](fields ...func(T) string) Matcher[T] {
	return func(row T, query string) bool {
		for _, field := range fields {
			if strings.Contains(strings.ToLower(field(row)), query) {
				return true
			}
		}
		return false
	}
}

// Table is one collection screen's view state.
type Table[T any] struct {
	rows     []T
	filtered []T
	query    string
	page     int
	pageSize int
	match    Matcher[T]
}

func NewTable[T any](pageSize int, match Matcher[T]) *Table[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Table[T]{page: 1, pageSize: pageSize, match: match}
}

// SetRows replaces the backing collection, reapplying the current
// query. The page is clamped so a shrinking collection cannot leave the
// view past the end.
func (t *Table[T]) SetRows(rows []T) {
	t.rows = rows
	t.refilter()
	if t.page > t.PageCount() {
		t.page = t.PageCount()
	}
	if t.page < 1 {
		t.page = 1
	}
}

// SetQuery updates the search query and always resets to page 1.
func (t *Table[T]) SetQuery(query string) {
	t.query = strings.ToLower(strings.TrimSpace(query))
	t.page = 1
	t.refilter()
}

func (t *Table[T]) refilter() {
	if t.query == "" || t.match == nil {
		t.filtered = t.rows
		return
	}
	filtered := make([]T, 0, len(t.rows))
	for _, row := range t.rows {
		if t.match(row, t.query) {
			filtered = append(filtered, row)
		}
	}
	t.filtered = filtered
}

// Page returns the visible window of the filtered collection.
func (t *Table[T]) Page() []T {
	start := (t.page - 1) * t.pageSize
	if start >= len(t.filtered) {
		return nil
	}
	end := start + t.pageSize
	if end > len(t.filtered) {
		end = len(t.filtered)
	}
	return t.filtered[start:end]
}

func (t *Table[T]) PageIndex() int { return t.page }

func (t *Table[T]) PageSize() int { return t.pageSize }

func (t *Table[T]) Total() int { return len(t.filtered) }

// PageCount is ceil(N/P); an empty collection still has one page.
func (t *Table[T]) PageCount() int {
	count := (len(t.filtered) + t.pageSize - 1) / t.pageSize
	if count < 1 {
		count = 1
	}
	return count
}

func (t *Table[T]) HasPrevious() bool { return t.page > 1 }

func (t *Table[T]) HasNext() bool { return t.page < t.PageCount() }

// Next advances one page; past the last page it is a no-op.
func (t *Table[T]) Next() {
	if t.HasNext() {
		t.page++
	}
}

// Previous steps back one page; before page 1 it is a no-op.
func (t *Table[T]) Previous() {
	if t.HasPrevious() {
		t.page--
	}
}

// GoTo jumps to page n, ignoring out-of-range targets.
func (t *Table[T]) GoTo(n int) {
	if n >= 1 && n <= t.PageCount() {
		t.page = n
	}
}
