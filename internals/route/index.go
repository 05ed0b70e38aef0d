// file: internals/route/index.go
package routes

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"reflectify_backend/internals/constants"
	database "reflectify_backend/internals/databases"
	formService "reflectify_backend/internals/features/feedback/forms/service"
	authService "reflectify_backend/internals/features/users/auth/service"
	authMiddleware "reflectify_backend/internals/middlewares/auth"
	routeDetails "reflectify_backend/internals/route/details"
)

var startTime time.Time

// Dependencies: semua yang dibutuhkan route. Limiter boleh nil (test).
type Dependencies struct {
	Stores    *database.Stores
	Tokens    *authService.TokenService
	Blacklist *authService.Blacklist
	Forms     *formService.FormService

	Ping          func(ctx context.Context) error
	IsDevelopment func() bool
	Environment   string

	LoginLimiter  fiber.Handler
	SubmitLimiter fiber.Handler
}

func SetupRoutes(app *fiber.App, deps Dependencies) {
	startTime = time.Now()

	BaseRoutes(app, deps.Ping, deps.Environment)

	authMw := authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
		Tokens:    deps.Tokens,
		Blacklist: deps.Blacklist,
		Users:     deps.Stores.Admins,
	})

	// ===================== AUTH =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(app, deps.Stores, deps.Tokens, deps.Blacklist, authMw, deps.LoginLimiter)

	// ===================== GROUPS =====================

	// PUBLIC → tanpa JWT (form mahasiswa)
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/public")

	// ADMIN → JWT wajib
	log.Println("[INFO] Setting up ADMIN group (Auth)...")
	admin := app.Group("/api/a",
		authMw,
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("admin"), constants.AdminRoles...),
	)

	// ===================== MOUNT ROUTES =====================

	log.Println("[INFO] Mounting Academics routes...")
	routeDetails.AcademicsAdminRoutes(admin, deps.Stores)

	log.Println("[INFO] Mounting Feedback routes...")
	routeDetails.FeedbackPublicRoutes(public, deps.Stores, deps.Forms, deps.SubmitLimiter)
	routeDetails.FeedbackAdminRoutes(admin, deps.Stores, deps.Forms)

	log.Println("[INFO] Mounting Analytics routes...")
	routeDetails.AnalyticsAdminRoutes(admin, deps.Stores)

	routeDetails.DevAdminRoutes(admin, deps.Stores, deps.IsDevelopment)
}
