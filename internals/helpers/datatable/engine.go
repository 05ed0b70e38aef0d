// file: internals/helpers/datatable/engine.go
package datatable

import "slices"

// DefaultPageSize sama dengan ukuran halaman tabel di dashboard admin.
const DefaultPageSize = 15

type Options struct {
	PageSize int
}

// Table is the stateful search → sort → paginate pipeline over a
// caller-owned slice. The slice is never mutated: sorting happens on a copy.
//
// A Table has a single owner (one console page, one request); it is not safe
// for concurrent use.
type Table[T any] struct {
	rows     []T
	columns  []Column[T]
	byKey    map[string]int
	term     string
	sort     Sort
	page     int
	pageSize int

	view []T // hasil filter+sort, dihitung ulang tiap state berubah
}

func New[T any](rows []T, columns []Column[T], opt Options) *Table[T] {
	size := opt.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	cols := slices.Clone(columns)
	byKey := make(map[string]int, len(cols))
	for i, c := range cols {
		byKey[c.Key] = i
	}
	t := &Table[T]{
		rows:     rows,
		columns:  cols,
		byKey:    byKey,
		page:     1,
		pageSize: size,
	}
	t.recompute()
	return t
}

/* ===============================
   Mutators (user interaction)
=================================*/

// SetRows swaps the underlying data (e.g. after a refetch). Search and sort
// state are kept; the page is clamped into the new range.
func (t *Table[T]) SetRows(rows []T) {
	t.rows = rows
	t.recompute()
}

// SetSearchTerm stores the term. A changed term moves back to page 1;
// repeating the same term changes nothing.
func (t *Table[T]) SetSearchTerm(term string) {
	if term == t.term {
		return
	}
	t.term = term
	t.page = 1
	t.recompute()
}

// SetSort handles a click on a column header: the active column flips
// between ascending and descending, another sortable column becomes the
// active key ascending. Unknown or non-sortable keys are ignored.
func (t *Table[T]) SetSort(key string) {
	idx, ok := t.byKey[key]
	if !ok || !t.columns[idx].Sortable {
		return
	}
	if t.sort.Key == key {
		if t.sort.Direction == Asc {
			t.sort.Direction = Desc
		} else {
			t.sort.Direction = Asc
		}
	} else {
		t.sort = Sort{Key: key, Direction: Asc}
	}
	t.recompute()
}

// SetPage moves to page n. Pages outside [1, TotalPages] are rejected and
// the current page is kept; the return value reports whether it moved.
func (t *Table[T]) SetPage(n int) bool {
	if n < 1 || n > t.TotalPages() {
		return false
	}
	t.page = n
	return true
}

/* ===============================
   Readers
=================================*/

func (t *Table[T]) Columns() []Column[T] { return t.columns }
func (t *Table[T]) SearchTerm() string    { return t.term }
func (t *Table[T]) SortState() Sort       { return t.sort }
func (t *Table[T]) Page() int             { return t.page }
func (t *Table[T]) PageSize() int         { return t.pageSize }
func (t *Table[T]) Total() int            { return len(t.rows) }
func (t *Table[T]) Filtered() int         { return len(t.view) }

// TotalPages is ceil(filtered/pageSize); zero when nothing matches.
func (t *Table[T]) TotalPages() int {
	return totalPages(len(t.view), t.pageSize)
}

// VisibleRows returns the current page of the filtered and sorted rows.
func (t *Table[T]) VisibleRows() []T {
	return pageSlice(t.view, t.page, t.pageSize)
}

// Rows returns every filtered and sorted row (all pages).
func (t *Table[T]) Rows() []T { return t.view }

// View bundles everything a renderer needs.
type View[T any] struct {
	Rows       []T
	Page       int
	PageSize   int
	TotalPages int
	Filtered   int
	Total      int
	Term       string
	Sort       Sort
	Empty      bool
}

func (t *Table[T]) Snapshot() View[T] {
	rows := t.VisibleRows()
	return View[T]{
		Rows:       rows,
		Page:       t.page,
		PageSize:   t.pageSize,
		TotalPages: t.TotalPages(),
		Filtered:   len(t.view),
		Total:      len(t.rows),
		Term:       t.term,
		Sort:       t.sort,
		Empty:      len(rows) == 0,
	}
}

/* ===============================
   Pipeline
=================================*/

func (t *Table[T]) recompute() {
	t.view = run(t.rows, t.columns, t.byKey, t.term, t.sort)
	t.page = clampPage(t.page, totalPages(len(t.view), t.pageSize))
}

func run[T any](rows []T, columns []Column[T], byKey map[string]int, term string, s Sort) []T {
	out := filterRows(rows, columns, term)
	if s.Key == "" {
		return out
	}
	idx, ok := byKey[s.Key]
	if !ok {
		return out
	}
	sortRows(out, columns[idx], s.Direction)
	return out
}

// filterRows: OR across columns, substring case-insensitive. Selalu return
// slice baru supaya sort tidak menyentuh slice milik caller.
func filterRows[T any](rows []T, columns []Column[T], term string) []T {
	out := make([]T, 0, len(rows))
	if term == "" {
		return append(out, rows...)
	}
	for _, row := range rows {
		for _, c := range columns {
			if Contains(c.Render(row), term) {
				out = append(out, row)
				break
			}
		}
	}
	return out
}

func sortRows[T any](rows []T, col Column[T], dir Direction) {
	sign := 1
	if dir == Desc {
		sign = -1
	}
	slices.SortStableFunc(rows, func(a, b T) int {
		return sign * Compare(col.raw(a), col.raw(b))
	})
}

func totalPages(n, size int) int {
	if n <= 0 || size <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

func clampPage(page, pages int) int {
	if pages < 1 || page < 1 {
		return 1
	}
	if page > pages {
		return pages
	}
	return page
}

func pageSlice[T any](rows []T, page, size int) []T {
	start := (page - 1) * size
	if start < 0 || start >= len(rows) {
		return []T{}
	}
	end := start + size
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}
