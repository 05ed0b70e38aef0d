package route

import (
	"github.com/gofiber/fiber/v2"

	"reflectify_backend/internals/databases/repository"
	formModel "reflectify_backend/internals/features/feedback/forms/model"
	formService "reflectify_backend/internals/features/feedback/forms/service"
	"reflectify_backend/internals/features/feedback/responses/controller"
	"reflectify_backend/internals/features/feedback/responses/model"
)

// ResponseAdminRoutes: /api/a/feedback-forms/:id/responses
func ResponseAdminRoutes(
	admin fiber.Router,
	repo repository.Repository[model.FeedbackResponseModel],
	forms repository.Repository[formModel.FeedbackFormModel],
	svc *formService.FormService,
) {
	ctl := controller.NewResponseController(repo, forms, svc)

	g := admin.Group("/feedback-forms/:id/responses")
	g.Get("/", ctl.List)
	g.Delete("/:response_id", ctl.Delete)
}

// ResponsePublicRoutes: /api/public/forms/:slug
func ResponsePublicRoutes(
	public fiber.Router,
	repo repository.Repository[model.FeedbackResponseModel],
	forms repository.Repository[formModel.FeedbackFormModel],
	svc *formService.FormService,
	submitLimiter fiber.Handler,
) {
	ctl := controller.NewResponseController(repo, forms, svc)

	g := public.Group("/forms")
	g.Get("/:slug", ctl.PublicForm)
	if submitLimiter != nil {
		g.Post("/:slug/responses", submitLimiter, ctl.Submit)
	} else {
		g.Post("/:slug/responses", ctl.Submit)
	}
}
