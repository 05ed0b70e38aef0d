package route

import (
	"github.com/gofiber/fiber/v2"

	"reflectify_backend/internals/databases/repository"
	formModel "reflectify_backend/internals/features/feedback/forms/model"
	"reflectify_backend/internals/features/feedback/override_students/controller"
	"reflectify_backend/internals/features/feedback/override_students/model"
)

// OverrideStudentAdminRoutes: /api/a/feedback-forms/:id/override-students
func OverrideStudentAdminRoutes(
	admin fiber.Router,
	repo repository.Repository[model.OverrideStudentModel],
	forms repository.Repository[formModel.FeedbackFormModel],
) {
	ctl := controller.NewOverrideStudentController(repo, forms)

	g := admin.Group("/feedback-forms/:id/override-students")
	g.Get("/", ctl.List)
	g.Post("/", ctl.Add)
	g.Delete("/", ctl.Clear)
	g.Delete("/:student_id", ctl.Delete)
}
