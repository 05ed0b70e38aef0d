// file: internals/helpers/bind.go
package helper

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// NewValidator: field error di-key pakai nama json (bukan nama field Go).
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("academic_year", func(fl validator.FieldLevel) bool {
		return ValidAcademicYear(fl.Field().String())
	})
	return v
}

// ValidAcademicYear: "2024-25", tahun kedua = tahun pertama + 1.
func ValidAcademicYear(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) != 7 || s[4] != '-' {
		return false
	}
	first, err1 := strconv.Atoi(s[:4])
	second, err2 := strconv.Atoi(s[5:])
	if err1 != nil || err2 != nil {
		return false
	}
	return (first+1)%100 == second
}

// BindAndValidate parses the JSON body into dst and runs validator tags.
// The returned error is already written to the response; handlers just
// return it.
func BindAndValidate[T any](c *fiber.Ctx, v *validator.Validate, dst *T) (bool, error) {
	if err := c.BodyParser(dst); err != nil {
		return false, JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if v != nil {
		if err := v.Struct(dst); err != nil {
			return false, ValidationError(c, err)
		}
	}
	return true, nil
}

// ParseIDParam reads a uuid path param. ok=false means a 400 was written.
func ParseIDParam(c *fiber.Ctx, name string) (uuid.UUID, bool, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params(name)))
	if err != nil {
		return uuid.Nil, false, JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}
	return id, true, nil
}

// ParseUUIDQuery reads an optional uuid query param.
func ParseUUIDQuery(c *fiber.Ctx, name string) (*uuid.UUID, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, name+" invalid")
	}
	return &id, nil
}

// TrimPtr trims *s and maps "" to nil.
func TrimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
