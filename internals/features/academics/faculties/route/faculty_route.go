package route

import (
	"github.com/gofiber/fiber/v2"

	"reflectify_backend/internals/databases/repository"
	deptModel "reflectify_backend/internals/features/academics/departments/model"
	"reflectify_backend/internals/features/academics/faculties/controller"
	"reflectify_backend/internals/features/academics/faculties/model"
)

// FacultyAdminRoutes: /api/a/faculties
func FacultyAdminRoutes(admin fiber.Router, repo repository.Repository[model.FacultyModel], departments repository.Repository[deptModel.DepartmentModel]) {
	ctl := controller.NewFacultyController(repo, departments)

	g := admin.Group("/faculties")
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.Get)
	g.Post("/", ctl.Create)
	g.Patch("/:id", ctl.Patch)
	g.Delete("/:id", ctl.Delete)
	g.Post("/:id/restore", ctl.Restore)
}
