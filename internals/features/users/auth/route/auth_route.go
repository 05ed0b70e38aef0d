// file: internals/features/users/auth/route/auth_route.go
package route

import (
	"github.com/gofiber/fiber/v2"

	controller "reflectify_backend/internals/features/users/auth/controller"
)

// AuthRoutes: base /api/auth. loginLimiter bisa nil (test).
func AuthRoutes(app fiber.Router, ac *controller.AuthController, authMw, loginLimiter fiber.Handler) {
	baseAuth := app.Group("/api/auth")

	if loginLimiter != nil {
		baseAuth.Post("/login", loginLimiter, ac.Login)
	} else {
		baseAuth.Post("/login", ac.Login)
	}

	baseAuth.Post("/logout", authMw, ac.Logout)
	baseAuth.Get("/me", authMw, ac.Me)
}
