package auth

import (
	"log"

	"github.com/gofiber/fiber/v2"

	helper "reflectify_backend/internals/helpers"
)

const defaultForbidden = "Forbidden: you are not authorized to access this resource"

// OnlyRoles dipasang setelah AuthJWT. Role kosong di locals berarti token
// belum diverifikasi (401); role di luar daftar jadi 403 dengan message.
func OnlyRoles(message string, roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	if message == "" {
		message = defaultForbidden
	}
	return func(c *fiber.Ctx) error {
		role := helper.GetUserRole(c)
		if role == "" {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized: missing role information")
		}
		if _, ok := allowed[role]; ok {
			return c.Next()
		}
		log.Printf("[WARN] role %q (%v) ditolak untuk %s %s", role, c.Locals(helper.LocalUserEmail), c.Method(), c.Path())
		return helper.JsonError(c, fiber.StatusForbidden, message)
	}
}
