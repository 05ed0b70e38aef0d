package details

import (
	"github.com/gofiber/fiber/v2"

	database "reflectify_backend/internals/databases"
	AnalyticsRoutes "reflectify_backend/internals/features/analytics/route"
	analyticsService "reflectify_backend/internals/features/analytics/service"
	DevRoutes "reflectify_backend/internals/features/dev/route"
)

func NewAnalyticsService(st *database.Stores) *analyticsService.AnalyticsService {
	return &analyticsService.AnalyticsService{
		Departments: st.Departments,
		Faculties:   st.Faculties,
		Semesters:   st.Semesters,
		Subjects:    st.Subjects,
		Forms:       st.Forms,
		Responses:   st.Responses,
	}
}

func AnalyticsAdminRoutes(admin fiber.Router, st *database.Stores) {
	AnalyticsRoutes.AnalyticsAdminRoutes(admin, NewAnalyticsService(st))
}

// DevAdminRoutes: route destruktif, handler sendiri menolak di luar development.
func DevAdminRoutes(admin fiber.Router, st *database.Stores, isDev func() bool) {
	DevRoutes.DevAdminRoutes(admin, st, isDev)
}
