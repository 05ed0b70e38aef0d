// file: internals/helpers/auth_locals.go
package helper

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Key c.Locals yang diisi middleware auth.
const (
	LocalUserID      = "user_id"
	LocalUserRole    = "userRole"
	LocalUserEmail   = "user_email"
	LocalAccessToken = "access_token"
	LocalTokenExp    = "token_exp"
)

// GetUserIDFromToken: 401 kalau belum login, 400 kalau formatnya tidak valid.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	switch t := c.Locals(LocalUserID).(type) {
	case uuid.UUID:
		if t == uuid.Nil {
			break
		}
		return t, nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			break
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "User ID pada token tidak valid")
		}
		return id, nil
	}
	return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "User belum login")
}

func GetUserRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserRole).(string)
	return s
}

// GetAccessToken returns the raw bearer token and its expiry as stored by
// the auth middleware.
func GetAccessToken(c *fiber.Ctx) (string, time.Time) {
	raw, _ := c.Locals(LocalAccessToken).(string)
	exp, _ := c.Locals(LocalTokenExp).(time.Time)
	return raw, exp
}

// BearerToken membaca "Authorization: Bearer xxx" (toleran spasi & kutip),
// fallback ke cookie access_token.
func BearerToken(c *fiber.Ctx) (string, bool) {
	auth := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if auth == "" {
		if tok := strings.TrimSpace(c.Cookies("access_token")); tok != "" {
			return tok, true
		}
		return "", false
	}
	fields := strings.Fields(auth)
	if len(fields) < 2 || !strings.EqualFold(fields[0], "Bearer") {
		return "", false
	}
	tok := strings.Trim(strings.TrimSpace(fields[1]), "\"'")
	return tok, tok != ""
}
