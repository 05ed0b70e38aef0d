// file: internals/helpers/pg_errors.go
package helper

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// MapDBError maps gorm / pgx / lib/pq errors to an HTTP status + message.
func MapDBError(err error) (int, string) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return http.StatusNotFound, "Data tidak ditemukan"
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return http.StatusConflict, "Data duplikat (unique violation)."
	}

	// pgx
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return pgCode(pgxErr.Code, pgxErr.Message)
	}
	// lib/pq
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pgCode(string(pqErr.Code), pqErr.Message)
	}
	return http.StatusInternalServerError, err.Error()
}

func pgCode(code, msg string) (int, string) {
	switch code {
	case "23503":
		return http.StatusBadRequest, "Referensi tidak ditemukan (FK violation)."
	case "23505":
		return http.StatusConflict, "Data duplikat (unique violation)."
	case "23514":
		return http.StatusBadRequest, "Data melanggar constraint (check violation)."
	default:
		return http.StatusInternalServerError, msg
	}
}

// JsonDBError writes MapDBError as the standard error envelope. 5xx
// responses keep the fallback message so driver details do not leak.
func JsonDBError(c *fiber.Ctx, err error, fallback string) error {
	code, msg := MapDBError(err)
	if code >= 500 {
		msg = fallback
	}
	return JsonError(c, code, msg)
}
