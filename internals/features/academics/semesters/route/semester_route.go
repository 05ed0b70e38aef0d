package route

import (
	"github.com/gofiber/fiber/v2"

	"reflectify_backend/internals/databases/repository"
	deptModel "reflectify_backend/internals/features/academics/departments/model"
	"reflectify_backend/internals/features/academics/semesters/controller"
	"reflectify_backend/internals/features/academics/semesters/model"
)

// SemesterAdminRoutes: /api/a/semesters
func SemesterAdminRoutes(admin fiber.Router, repo repository.Repository[model.SemesterModel], departments repository.Repository[deptModel.DepartmentModel]) {
	ctl := controller.NewSemesterController(repo, departments)

	g := admin.Group("/semesters")
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.Get)
	g.Post("/", ctl.Create)
	g.Patch("/:id", ctl.Patch)
	g.Delete("/:id", ctl.Delete)
	g.Post("/:id/restore", ctl.Restore)
}
