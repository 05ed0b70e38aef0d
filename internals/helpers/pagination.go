// file: internals/helpers/pagination.go
package helper

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"reflectify_backend/internals/helpers/datatable"
)

const (
	DefaultPage = 1
)

type Options struct {
	DefaultPerPage int
	MaxPerPage     int
	AllowAll       bool // izinkan per_page=all
	AllHardCap     int  // batas saat all
}

// ===== Preset =====
var AdminOpts = Options{DefaultPerPage: datatable.DefaultPageSize, MaxPerPage: 500, AllowAll: true, AllHardCap: 10_000}

// Params = hasil parse query list: ?q=&sort_by=&order=&page=&per_page=
type Params struct {
	Search    string
	Page      int
	PerPage   int
	SortBy    string
	SortOrder string // asc|desc, kosong kalau tidak ada sort
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// ParseFiber parses search/paging/sorting straight from the fiber ctx.
// Without sort_by the rows keep their stored order (no implicit sort).
func ParseFiber(c *fiber.Ctx, defaultSortBy, defaultSortOrder string, opt Options) Params {
	q := c.Queries()

	page := atoiDefault(q["page"], DefaultPage)
	if page < 1 {
		page = DefaultPage
	}

	perRaw := strings.TrimSpace(firstNonEmpty(q["per_page"], q["limit"]))
	per := opt.DefaultPerPage

	if opt.AllowAll && strings.EqualFold(perRaw, "all") {
		page = 1
		if opt.AllHardCap > 0 {
			per = opt.AllHardCap
		} else {
			per = opt.MaxPerPage
		}
	} else {
		if n, err := strconv.Atoi(perRaw); err == nil && n > 0 {
			per = n
		}
		if opt.MaxPerPage > 0 && per > opt.MaxPerPage {
			per = opt.MaxPerPage
		}
		if per < 1 {
			per = datatable.DefaultPageSize
		}
	}

	sortBy := strings.TrimSpace(q["sort_by"])
	if sortBy == "" {
		sortBy = defaultSortBy
	}

	order := ""
	if sortBy != "" {
		order = strings.ToLower(strings.TrimSpace(firstNonEmpty(q["order"], q["sort"])))
		if order != "asc" && order != "desc" {
			order = strings.ToLower(defaultSortOrder)
			if order != "asc" && order != "desc" {
				order = "asc"
			}
		}
	}

	return Params{
		Search:    strings.TrimSpace(firstNonEmpty(q["q"], q["search"])),
		Page:      page,
		PerPage:   per,
		SortBy:    sortBy,
		SortOrder: order,
	}
}

// Query converts the params into the datatable engine query.
func (p Params) Query() datatable.Query {
	q := datatable.Query{
		Term:     p.Search,
		Page:     p.Page,
		PageSize: p.PerPage,
	}
	if p.SortBy != "" {
		q.Sort = datatable.Sort{Key: p.SortBy, Direction: datatable.ParseDirection(p.SortOrder)}
	}
	return q
}

// PaginationFromResult builds the response pagination block from an engine result.
func PaginationFromResult[T any](r datatable.Result[T]) Pagination {
	return Pagination{
		Page:       r.Page,
		PerPage:    r.PageSize,
		Total:      int64(r.Filtered),
		TotalPages: r.TotalPages,
		HasNext:    r.HasNext(),
		HasPrev:    r.HasPrev(),
		Count:      len(r.Rows),
	}
}
