// file: internals/helpers/datatable/column.go
package datatable

import "strings"

// Align hanya metadata untuk renderer (console / API), engine tidak memakainya.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// Direction arah sort aktif.
type Direction int

const (
	Asc Direction = iota
	Desc
)

func (d Direction) String() string {
	if d == Desc {
		return "desc"
	}
	return "asc"
}

// ParseDirection menerima "asc"/"desc" (case-insensitive); selain itu Asc.
func ParseDirection(s string) Direction {
	if strings.EqualFold(strings.TrimSpace(s), "desc") {
		return Desc
	}
	return Asc
}

// Column describes one column of a table.
//
// Accessor returns the rendered value (used for search and display). Field
// returns the raw value used for ordering. When one of them is nil the other
// is used for both purposes.
type Column[T any] struct {
	Key      string
	Header   string
	Accessor func(T) any
	Field    func(T) any
	Sortable bool
	Align    Align
	Width    int
	Class    string
}

func (c Column[T]) rendered(row T) any {
	if c.Accessor != nil {
		return c.Accessor(row)
	}
	if c.Field != nil {
		return c.Field(row)
	}
	return nil
}

func (c Column[T]) raw(row T) any {
	if c.Field != nil {
		return c.Field(row)
	}
	if c.Accessor != nil {
		return c.Accessor(row)
	}
	return nil
}

// Render returns the display string of the column for row.
func (c Column[T]) Render(row T) string {
	return Stringify(c.rendered(row))
}

// Sort adalah state sort aktif. Key kosong = urutan input.
type Sort struct {
	Key       string
	Direction Direction
}

// Active reports whether a sort key is set.
func (s Sort) Active() bool { return s.Key != "" }
