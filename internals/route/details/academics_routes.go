// internals/route/details/academics_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"

	database "reflectify_backend/internals/databases"
	DepartmentRoutes "reflectify_backend/internals/features/academics/departments/route"
	FacultyRoutes "reflectify_backend/internals/features/academics/faculties/route"
	SemesterRoutes "reflectify_backend/internals/features/academics/semesters/route"
	SubjectRoutes "reflectify_backend/internals/features/academics/subjects/route"
)

/* ===================== ADMIN ===================== */

func AcademicsAdminRoutes(admin fiber.Router, st *database.Stores) {
	DepartmentRoutes.DepartmentAdminRoutes(admin, st.Departments)
	FacultyRoutes.FacultyAdminRoutes(admin, st.Faculties, st.Departments)
	SemesterRoutes.SemesterAdminRoutes(admin, st.Semesters, st.Departments)
	SubjectRoutes.SubjectAdminRoutes(admin, st.Subjects, st.Departments, st.Semesters)
}
