package route

import (
	"github.com/gofiber/fiber/v2"

	"reflectify_backend/internals/databases/repository"
	facultyModel "reflectify_backend/internals/features/academics/faculties/model"
	semModel "reflectify_backend/internals/features/academics/semesters/model"
	subjectModel "reflectify_backend/internals/features/academics/subjects/model"
	"reflectify_backend/internals/features/feedback/forms/controller"
	"reflectify_backend/internals/features/feedback/forms/model"
	"reflectify_backend/internals/features/feedback/forms/service"
)

// FormAdminRoutes: /api/a/feedback-forms
func FormAdminRoutes(
	admin fiber.Router,
	repo repository.Repository[model.FeedbackFormModel],
	semesters repository.Repository[semModel.SemesterModel],
	faculties repository.Repository[facultyModel.FacultyModel],
	subjects repository.Repository[subjectModel.SubjectModel],
	svc *service.FormService,
) {
	ctl := controller.NewFormController(repo, semesters, faculties, subjects, svc)

	g := admin.Group("/feedback-forms")
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.Get)
	g.Post("/", ctl.Create)
	g.Patch("/:id", ctl.Patch)
	g.Delete("/:id", ctl.Delete)
	g.Post("/:id/restore", ctl.Restore)

	g.Post("/:id/publish", ctl.Publish)
	g.Post("/:id/resend", ctl.Resend)
	g.Post("/:id/close", ctl.Close)
}
