package details

import (
	"github.com/gofiber/fiber/v2"

	database "reflectify_backend/internals/databases"
	authController "reflectify_backend/internals/features/users/auth/controller"
	authRoute "reflectify_backend/internals/features/users/auth/route"
	authService "reflectify_backend/internals/features/users/auth/service"
)

func AuthRoutes(app fiber.Router, st *database.Stores, tokens *authService.TokenService, bl *authService.Blacklist, authMw, loginLimiter fiber.Handler) {
	ac := authController.NewAuthController(st.Admins, tokens, bl)
	authRoute.AuthRoutes(app, ac, authMw, loginLimiter)
}
