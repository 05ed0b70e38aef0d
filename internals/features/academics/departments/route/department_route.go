package route

import (
	"github.com/gofiber/fiber/v2"

	"reflectify_backend/internals/databases/repository"
	"reflectify_backend/internals/features/academics/departments/controller"
	"reflectify_backend/internals/features/academics/departments/model"
)

// DepartmentAdminRoutes: /api/a/departments
func DepartmentAdminRoutes(admin fiber.Router, repo repository.Repository[model.DepartmentModel]) {
	ctl := controller.NewDepartmentController(repo)

	g := admin.Group("/departments")
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.Get)
	g.Post("/", ctl.Create)
	g.Patch("/:id", ctl.Patch)
	g.Delete("/:id", ctl.Delete)
	g.Post("/:id/restore", ctl.Restore)
}
