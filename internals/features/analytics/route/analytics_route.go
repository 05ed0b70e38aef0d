package route

import (
	"github.com/gofiber/fiber/v2"

	"reflectify_backend/internals/features/analytics/controller"
	"reflectify_backend/internals/features/analytics/service"
)

// AnalyticsAdminRoutes: /api/a/analytics
func AnalyticsAdminRoutes(admin fiber.Router, svc *service.AnalyticsService) {
	ctl := controller.NewAnalyticsController(svc)

	g := admin.Group("/analytics")
	g.Get("/overview", ctl.Overview)
	g.Get("/subject-ratings", ctl.SubjectRatings)
	g.Get("/faculty-ratings", ctl.FacultyRatings)
	g.Get("/semester-trend", ctl.SemesterTrend)
}
