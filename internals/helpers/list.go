// file: internals/helpers/list.go
package helper

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"reflectify_backend/internals/databases/repository"
	"reflectify_backend/internals/helpers/datatable"
)

func queryBool(c *fiber.Ctx, key string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(c.Query(key)))
	return err == nil && b
}

// SoftDeleteScope membaca ?include_deleted=true / ?only_deleted=true ke Filter.
func SoftDeleteScope(c *fiber.Ctx, f repository.Filter) repository.Filter {
	f.WithDeleted = queryBool(c, "include_deleted")
	f.OnlyDeleted = queryBool(c, "only_deleted")
	return f
}

// RespondList runs rows through the datatable engine with the request's
// q/sort_by/order/page/per_page and writes the list envelope. sort_by di luar
// kolom sortable -> 400.
func RespondList[T any, R any](c *fiber.Ctx, message string, rows []T, cols []datatable.Column[T], p Params, toDTO func(T) R) error {
	if p.SortBy != "" {
		keys := datatable.SortableKeys(cols)
		if !slices.Contains(keys, p.SortBy) {
			return JsonError(c, fiber.StatusBadRequest,
				fmt.Sprintf("sort_by %q tidak valid, pilihan: %s", p.SortBy, strings.Join(keys, ", ")))
		}
	}
	res := datatable.Apply(rows, cols, p.Query())
	out := make([]R, 0, len(res.Rows))
	for _, r := range res.Rows {
		out = append(out, toDTO(r))
	}
	return JsonList(c, message, out, PaginationFromResult(res))
}
