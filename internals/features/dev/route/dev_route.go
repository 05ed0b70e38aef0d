package route

import (
	"github.com/gofiber/fiber/v2"

	"reflectify_backend/internals/constants"
	"reflectify_backend/internals/features/dev/controller"
	authMiddleware "reflectify_backend/internals/middlewares/auth"
)

// DevAdminRoutes: /api/a/dev, hanya super_admin.
func DevAdminRoutes(admin fiber.Router, store controller.Purger, isDev func() bool) {
	ctl := controller.NewDevController(store, isDev)

	g := admin.Group("/dev", authMiddleware.OnlyRoles(constants.RoleErrorSuperAdmin("hapus semua data"), constants.SuperAdminOnly...))
	g.Delete("/all-data", ctl.DeleteAllData)
}
