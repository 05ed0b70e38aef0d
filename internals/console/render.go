// file: internals/console/render.go
package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"reflectify_backend/internals/console/client"
	"reflectify_backend/internals/helpers/datatable"
)

// Render menulis tabel halaman aktif beserta footer pagination.
// LoadFailed → error satu halaman penuh; LoadStale → tabel + banner.
func Render[T any, D any](w io.Writer, p *Page[T, D]) error {
	switch p.LoadState() {
	case LoadFailed:
		fmt.Fprintf(w, "❌ Could not load %s: %s\n", p.Name(), client.Message(p.LoadError()))
		fmt.Fprintln(w, "   Type 'refresh' to try again.")
		return nil
	case LoadIdle, Loading:
		fmt.Fprintf(w, "⏳ Loading %s...\n", p.Name())
		return nil
	case LoadStale:
		fmt.Fprintf(w, "⚠️  Showing cached data, last refresh failed: %s\n", client.Message(p.LoadError()))
	}

	v := p.View()
	cols := p.Columns()

	if v.Empty {
		if v.Term != "" {
			fmt.Fprintf(w, "No %s match %q.\n", p.Name(), v.Term)
		} else {
			fmt.Fprintf(w, "No %s yet.\n", p.Name())
		}
		return nil
	}

	tw := tablewriter.NewWriter(w)
	header := make([]any, 0, len(cols)+1)
	header = append(header, "#")
	for _, c := range cols {
		header = append(header, headerLabel(c, v.Sort))
	}
	tw.Header(header...)

	for i, row := range v.Rows {
		line := make([]string, 0, len(cols)+1)
		line = append(line, fmt.Sprint(i+1))
		for _, c := range cols {
			line = append(line, c.Render(row))
		}
		if err := tw.Append(line); err != nil {
			return err
		}
	}
	if err := tw.Render(); err != nil {
		return err
	}

	fmt.Fprintln(w, Footer(v))
	return nil
}

func headerLabel[T any](c datatable.Column[T], s datatable.Sort) string {
	if s.Key != c.Key {
		return c.Header
	}
	if s.Direction == datatable.Desc {
		return c.Header + " ↓"
	}
	return c.Header + " ↑"
}

// Footer: "Showing 1-15 of 17 (page 1/2)".
func Footer[T any](v datatable.View[T]) string {
	if v.Empty {
		return "Showing 0 of 0"
	}
	from := (v.Page-1)*v.PageSize + 1
	to := from + len(v.Rows) - 1
	out := fmt.Sprintf("Showing %d-%d of %d (page %d/%d)", from, to, v.Filtered, v.Page, v.TotalPages)
	if v.Filtered != v.Total {
		out += fmt.Sprintf(", filtered from %d", v.Total)
	}
	return out
}

// RenderDraft menampilkan isi form yang sedang diisi.
func RenderDraft[T any, D any](w io.Writer, p *Page[T, D]) {
	mode := p.Mode()
	switch m := mode.(type) {
	case Adding:
		fmt.Fprintf(w, "New %s:\n", p.cfg.Singular)
	case Editing[T]:
		fmt.Fprintf(w, "Editing %s:\n", p.Label(m.Entity))
	case ConfirmingDelete[T]:
		fmt.Fprintf(w, "Delete %s? Type 'confirm' or 'cancel'.\n", p.Label(m.Entity))
		return
	default:
		return
	}
	if p.cfg.GetField == nil {
		return
	}
	width := 0
	for _, f := range p.cfg.Fields {
		if len(f) > width {
			width = len(f)
		}
	}
	for _, f := range p.cfg.Fields {
		val := p.cfg.GetField(p.draft, f)
		if val == "" {
			val = "-"
		}
		fmt.Fprintf(w, "  %-*s  %s\n", width, f, val)
	}
}

// RenderStats: satu tabel kecil per kelompok statistik.
func RenderStats(w io.Writer, stats []Stat) error {
	if len(stats) == 0 {
		fmt.Fprintln(w, "No statistics for this page.")
		return nil
	}
	for _, s := range stats {
		fmt.Fprintln(w, strings.ToUpper(s.Label))
		tw := tablewriter.NewWriter(w)
		tw.Header("Key", "Count")
		for _, c := range s.Counts {
			if err := tw.Append([]string{c.Key, fmt.Sprint(c.N)}); err != nil {
				return err
			}
		}
		if err := tw.Render(); err != nil {
			return err
		}
	}
	return nil
}
