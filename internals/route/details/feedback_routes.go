// internals/route/details/feedback_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"

	database "reflectify_backend/internals/databases"
	FormRoutes "reflectify_backend/internals/features/feedback/forms/route"
	formService "reflectify_backend/internals/features/feedback/forms/service"
	OverrideStudentRoutes "reflectify_backend/internals/features/feedback/override_students/route"
	ResponseRoutes "reflectify_backend/internals/features/feedback/responses/route"
)

/* ===================== PUBLIC ===================== */

func FeedbackPublicRoutes(public fiber.Router, st *database.Stores, svc *formService.FormService, submitLimiter fiber.Handler) {
	ResponseRoutes.ResponsePublicRoutes(public, st.Responses, st.Forms, svc, submitLimiter)
}

/* ===================== ADMIN ===================== */

func FeedbackAdminRoutes(admin fiber.Router, st *database.Stores, svc *formService.FormService) {
	OverrideStudentRoutes.OverrideStudentAdminRoutes(admin, st.OverrideStudents, st.Forms)
	ResponseRoutes.ResponseAdminRoutes(admin, st.Responses, st.Forms, svc)
	FormRoutes.FormAdminRoutes(admin, st.Forms, st.Semesters, st.Faculties, st.Subjects, svc)
}
