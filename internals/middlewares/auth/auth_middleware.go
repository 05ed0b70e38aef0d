// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"reflectify_backend/internals/databases/repository"
	authModel "reflectify_backend/internals/features/users/auth/model"
	authService "reflectify_backend/internals/features/users/auth/service"
	helper "reflectify_backend/internals/helpers"
)

type AuthJWTOpts struct {
	Tokens    *authService.TokenService
	Blacklist *authService.Blacklist
	Users     repository.Repository[authModel.AdminUserModel]
}

// AuthJWT: bearer token wajib, tidak di-blacklist, dan user masih aktif.
func AuthJWT(opt AuthJWTOpts) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, ok := helper.BearerToken(c)
		if !ok {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - No token provided")
		}

		// 1) blacklist (sekali per request)
		if c.Locals("token_checked") == nil && opt.Blacklist != nil {
			listed, err := opt.Blacklist.IsBlacklisted(c.UserContext(), raw)
			if err != nil {
				log.Println("[ERROR] DB error saat cek blacklist:", err)
				return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
			}
			if listed {
				log.Println("[WARNING] Token ditemukan di blacklist")
				return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Token is blacklisted")
			}
			c.Locals("token_checked", true)
		}

		// 2) parse + exp
		claims, err := opt.Tokens.Parse(raw)
		switch {
		case errors.Is(err, authService.ErrTokenExpired):
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Token expired")
		case errors.Is(err, authService.ErrMissingSecret):
			log.Println("[ERROR] JWT_SECRET kosong")
			return helper.JsonError(c, fiber.StatusInternalServerError, "Missing JWT Secret")
		case err != nil:
			log.Println("[ERROR] Gagal parse token:", err)
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Token parse error")
		}

		// 3) user aktif
		if opt.Users != nil {
			uid, _ := uuid.Parse(claims.UserID)
			u, err := opt.Users.Get(c.UserContext(), uid)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - User not found")
				}
				return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
			}
			if !u.AdminUserIsActive {
				return helper.JsonError(c, fiber.StatusForbidden, "Akun Anda telah dinonaktifkan")
			}
		}

		c.Locals(helper.LocalUserID, claims.UserID)
		c.Locals(helper.LocalUserRole, claims.Role)
		c.Locals(helper.LocalUserEmail, claims.Email)
		c.Locals(helper.LocalAccessToken, raw)
		if claims.ExpiresAt != nil {
			c.Locals(helper.LocalTokenExp, claims.ExpiresAt.Time)
		}
		return c.Next()
	}
}
