// file: internals/helpers/datatable/query.go
package datatable

// Query is the request-scoped form of the table state (search, sort and page
// parsed from a request). Apply runs the same pipeline as Table without
// keeping state around.
type Query struct {
	Term     string
	Sort     Sort
	Page     int
	PageSize int
}

// Result = satu halaman + metadata pagination.
type Result[T any] struct {
	Rows       []T
	Page       int
	PageSize   int
	TotalPages int
	Filtered   int
	Total      int
}

func (r Result[T]) HasNext() bool { return r.TotalPages > 0 && r.Page < r.TotalPages }
func (r Result[T]) HasPrev() bool { return r.Page > 1 }

// Apply filters, sorts and pages rows. An out-of-range page is clamped to
// the nearest valid page; unknown or non-sortable sort keys are ignored.
func Apply[T any](rows []T, columns []Column[T], q Query) Result[T] {
	size := q.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	byKey := make(map[string]int, len(columns))
	for i, c := range columns {
		byKey[c.Key] = i
	}
	s := q.Sort
	if idx, ok := byKey[s.Key]; !ok || !columns[idx].Sortable {
		s = Sort{}
	}

	view := run(rows, columns, byKey, q.Term, s)
	pages := totalPages(len(view), size)
	page := clampPage(q.Page, pages)

	return Result[T]{
		Rows:       pageSlice(view, page, size),
		Page:       page,
		PageSize:   size,
		TotalPages: pages,
		Filtered:   len(view),
		Total:      len(rows),
	}
}

// SortableKeys lists the keys a caller may sort by.
func SortableKeys[T any](columns []Column[T]) []string {
	out := make([]string, 0, len(columns))
	for _, c := range columns {
		if c.Sortable {
			out = append(out, c.Key)
		}
	}
	return out
}
