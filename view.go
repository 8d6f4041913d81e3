package tabview

import (
	"sort"
	"strings"
)

// SortDirection orders a sorted column ascending or descending.
type SortDirection int

const (
	// SortAscending sorts smallest first
	SortAscending SortDirection = iota
	// SortDescending sorts largest first
	SortDescending
)

// String returns "asc" or "desc".
func (d SortDirection) String() string {
	if d == SortDescending {
		return "desc"
	}
	return "asc"
}

// SortKey designates the sorted column and direction.
type SortKey struct {
	// Column is the header-positional index of the sorted column.
	Column int `json:"column"`
	// Direction flips the comparator, not the post-sort order, so
	// stability is preserved in both directions.
	Direction SortDirection `json:"direction"`
}

// ViewState is the mutable search/sort/page/visibility configuration
// applied to a store. One instance exists per active store; it is reset to
// defaults whenever a new store replaces the old one.
type ViewState struct {
	// Query is the free-text search query. Empty matches all rows.
	Query string
	// Sort is the active sort key, or nil for input order.
	Sort *SortKey
	// PageIndex is the zero-based requested page. Out-of-range values are
	// clamped to the last valid page at compute time.
	PageIndex int
	// PageSize is the number of rows per page.
	PageSize int
	// Visibility is aligned with the header; false hides the column from
	// rendered and exported output. Hidden columns still participate in
	// search matching.
	Visibility []bool
}

// NewViewState creates the default view state for a table with the given
// number of columns: no query, no sort, first page, default page size, all
// columns visible.
func NewViewState(columns int) ViewState {
	visibility := make([]bool, columns)
	for i := range visibility {
		visibility[i] = true
	}
	return ViewState{
		PageSize:   DefaultPageSize,
		Visibility: visibility,
	}
}

// IndexedRow is a record tagged with its original store index.
type IndexedRow struct {
	// Index is the record's position in the unfiltered store.
	Index int
	// Record is the typed row.
	Record Record
}

// Page is the bounded slice of filtered, sorted rows currently shown.
type Page struct {
	// Rows holds up to PageSize rows in display order.
	Rows []IndexedRow
	// TotalMatches is the number of rows matching the query across all
	// pages.
	TotalMatches int
	// PageIndex is the effective (clamped) zero-based page index.
	PageIndex int
	// PageCount is ceil(TotalMatches / PageSize).
	PageCount int
	// PageSize is the configured page size.
	PageSize int
}

// ComputePage derives the current page from a store and a view state by
// applying, in fixed order: filter, sort, paginate. Every view-state change
// recomputes all three steps in full; the target scale is bounded, so a
// full rescan is the deliberate design.
func ComputePage(store *Store, state ViewState) (Page, error) {
	matches, err := filterAndSort(store, state)
	if err != nil {
		return Page{}, err
	}

	pageSize := state.PageSize
	if pageSize <= 0 {
		return Page{}, ErrInvalidPageSize
	}
	if state.PageIndex < 0 {
		return Page{}, ErrInvalidPageIndex
	}

	total := len(matches)
	pageCount := (total + pageSize - 1) / pageSize

	// Clamp to the last valid page rather than returning an empty page
	// when a narrowed filter strands the page index.
	pageIndex := state.PageIndex
	if pageCount == 0 {
		pageIndex = 0
	} else if pageIndex >= pageCount {
		pageIndex = pageCount - 1
	}

	start := pageIndex * pageSize
	end := start + pageSize
	if end > total {
		end = total
	}
	var rows []IndexedRow
	if start < total {
		rows = matches[start:end]
	}

	return Page{
		Rows:         rows,
		TotalMatches: total,
		PageIndex:    pageIndex,
		PageCount:    pageCount,
		PageSize:     pageSize,
	}, nil
}

// filterAndSort produces the full filtered, sorted row sequence, ignoring
// pagination. Export uses this directly.
func filterAndSort(store *Store, state ViewState) ([]IndexedRow, error) {
	if state.Sort != nil && (state.Sort.Column < 0 || state.Sort.Column >= store.ColumnCount()) {
		return nil, ErrInvalidColumn
	}

	query := strings.ToLower(state.Query)
	matches := make([]IndexedRow, 0, store.RowCount())
	for i, record := range store.Records() {
		if query == "" || recordMatches(record, query) {
			matches = append(matches, IndexedRow{Index: i, Record: record})
		}
	}

	if state.Sort != nil {
		column := state.Sort.Column
		descending := state.Sort.Direction == SortDescending
		sort.SliceStable(matches, func(a, b int) bool {
			cmp := matches[a].Record[column].Compare(matches[b].Record[column])
			if descending {
				return cmp > 0
			}
			return cmp < 0
		})
	}

	return matches, nil
}

// recordMatches reports whether the lowered query is a substring of at
// least one cell's string form. All columns participate, visible or not:
// search covers everything regardless of visibility.
func recordMatches(record Record, loweredQuery string) bool {
	for _, cell := range record {
		if strings.Contains(strings.ToLower(cell.String()), loweredQuery) {
			return true
		}
	}
	return false
}

// VisibleCells projects a record through a visibility sequence. A nil
// visibility, or indices beyond its length, count as visible.
func VisibleCells(record Record, visibility []bool) []Value {
	cells := make([]Value, 0, len(record))
	for i, cell := range record {
		if columnVisible(visibility, i) {
			cells = append(cells, cell)
		}
	}
	return cells
}

// visibleColumns projects header names through a visibility sequence.
func visibleColumns(header Header, visibility []bool) []string {
	names := make([]string, 0, len(header))
	for i, name := range header {
		if columnVisible(visibility, i) {
			names = append(names, name)
		}
	}
	return names
}

// columnVisible reports whether column i is visible under the sequence.
func columnVisible(visibility []bool, i int) bool {
	if visibility == nil || i >= len(visibility) {
		return true
	}
	return visibility[i]
}
