// file: internals/console/override_students_page.go
package console

import (
	"context"

	"github.com/google/uuid"

	"reflectify_backend/internals/console/client"
	osDTO "reflectify_backend/internals/features/feedback/override_students/dto"
	"reflectify_backend/internals/helpers/datatable"
)

// NewOverrideStudentsPage: daftar mahasiswa override satu form, read-only
// (search + paging saja).
func NewOverrideStudentsPage(c *client.Client, formID uuid.UUID, n Notifier) *Page[osDTO.OverrideStudentResponse, struct{}] {
	res := client.NewResource[osDTO.OverrideStudentResponse](c, "/api/a/feedback-forms/"+formID.String()+"/override-students")
	type row = osDTO.OverrideStudentResponse
	return NewPage(PageConfig[row, struct{}]{
		Name:     "override students",
		Singular: "Override student",
		Columns: []datatable.Column[row]{
			{Key: "override_student_enrollment_number", Header: "Enrollment", Sortable: true,
				Field: func(s row) any { return s.OverrideStudentEnrollmentNumber }},
			{Key: "override_student_name", Header: "Name", Sortable: true,
				Field: func(s row) any { return s.OverrideStudentName }},
			{Key: "override_student_email", Header: "Email", Sortable: true,
				Field: func(s row) any { return s.OverrideStudentEmail }},
			{Key: "override_student_batch", Header: "Batch", Sortable: true,
				Field: func(s row) any { return s.OverrideStudentBatch }},
			{Key: "override_student_phone_number", Header: "Phone",
				Field: func(s row) any { return s.OverrideStudentPhoneNumber }},
		},
		Fetcher: FetchFunc[row](func(ctx context.Context) ([]row, error) {
			return res.List(ctx, nil)
		}),
		ID:    func(s row) uuid.UUID { return s.OverrideStudentID },
		Label: func(s row) string { return s.OverrideStudentName },
		Stats: func(rows []row) []Stat {
			return []Stat{
				{Label: "by batch", Counts: countBy(rows, func(s row) string { return derefString(s.OverrideStudentBatch) })},
			}
		},
	}, n)
}
