package route

import (
	"github.com/gofiber/fiber/v2"

	"reflectify_backend/internals/databases/repository"
	deptModel "reflectify_backend/internals/features/academics/departments/model"
	semModel "reflectify_backend/internals/features/academics/semesters/model"
	"reflectify_backend/internals/features/academics/subjects/controller"
	"reflectify_backend/internals/features/academics/subjects/model"
)

// SubjectAdminRoutes: /api/a/subjects
func SubjectAdminRoutes(
	admin fiber.Router,
	repo repository.Repository[model.SubjectModel],
	departments repository.Repository[deptModel.DepartmentModel],
	semesters repository.Repository[semModel.SemesterModel],
) {
	ctl := controller.NewSubjectController(repo, departments, semesters)

	g := admin.Group("/subjects")
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.Get)
	g.Post("/", ctl.Create)
	g.Patch("/:id", ctl.Patch)
	g.Delete("/:id", ctl.Delete)
	g.Post("/:id/restore", ctl.Restore)
}
