// file: internals/console/semester_page.go
package console

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"reflectify_backend/internals/console/client"
	semDTO "reflectify_backend/internals/features/academics/semesters/dto"
	"reflectify_backend/internals/helpers/datatable"
)

var academicYearRe = regexp.MustCompile(`^\d{4}-\d{2}$`)

type SemesterDraft struct {
	Department   string
	Number       string
	AcademicYear string
	Type         string
	StartDate    string
	EndDate      string
}

var semesterFields = []string{"department", "number", "academic_year", "type", "start_date", "end_date"}

func (d *SemesterDraft) set(field, value string) error {
	switch field {
	case "department", "dept":
		d.Department = value
	case "number":
		d.Number = value
	case "academic_year", "year":
		d.AcademicYear = value
	case "type":
		d.Type = value
	case "start_date":
		d.StartDate = value
	case "end_date":
		d.EndDate = value
	default:
		return unknownField(field)
	}
	return nil
}

func (d SemesterDraft) get(field string) string {
	switch field {
	case "department":
		return d.Department
	case "number":
		return d.Number
	case "academic_year":
		return d.AcademicYear
	case "type":
		return d.Type
	case "start_date":
		return d.StartDate
	case "end_date":
		return d.EndDate
	}
	return ""
}

func (d SemesterDraft) toCreate(l *Lookups) (semDTO.SemesterCreateDTO, error) {
	var out semDTO.SemesterCreateDTO
	if strings.TrimSpace(d.Department) == "" {
		return out, Required("department")
	}
	deptID, ok := l.ResolveDepartment(d.Department)
	if !ok {
		return out, &ValidationError{Field: "department", Message: "unknown department"}
	}
	if strings.TrimSpace(d.Number) == "" {
		return out, Required("number")
	}
	n, err := strconv.Atoi(strings.TrimSpace(d.Number))
	if err != nil || n < 1 || n > 12 {
		return out, &ValidationError{Field: "number", Message: "must be between 1 and 12"}
	}
	year := strings.TrimSpace(d.AcademicYear)
	if year == "" {
		return out, Required("academic_year")
	}
	if !academicYearRe.MatchString(year) {
		return out, &ValidationError{Field: "academic_year", Message: "must look like 2024-25"}
	}
	typ := strings.ToUpper(strings.TrimSpace(d.Type))
	if typ != "" && typ != "ODD" && typ != "EVEN" {
		return out, &ValidationError{Field: "type", Message: "must be ODD or EVEN"}
	}
	start, err := parseDate("start_date", d.StartDate)
	if err != nil {
		return out, err
	}
	end, err := parseDate("end_date", d.EndDate)
	if err != nil {
		return out, err
	}
	if start != nil && end != nil && end.Before(*start) {
		return out, &ValidationError{Field: "end_date", Message: "must not be before start_date"}
	}
	return semDTO.SemesterCreateDTO{
		SemesterDepartmentID: deptID,
		SemesterNumber:       n,
		SemesterAcademicYear: year,
		SemesterType:         typ,
		SemesterStartDate:    start,
		SemesterEndDate:      end,
	}, nil
}

type semesterMutations struct {
	res     *client.Resource[semDTO.SemesterResponse]
	lookups *Lookups
}

func (m semesterMutations) Create(ctx context.Context, d SemesterDraft) (semDTO.SemesterResponse, error) {
	body, err := d.toCreate(m.lookups)
	if err != nil {
		return semDTO.SemesterResponse{}, err
	}
	return m.res.Create(ctx, body)
}

func (m semesterMutations) Update(ctx context.Context, id uuid.UUID, d SemesterDraft) (semDTO.SemesterResponse, error) {
	c, err := d.toCreate(m.lookups)
	if err != nil {
		return semDTO.SemesterResponse{}, err
	}
	upd := semDTO.SemesterUpdateDTO{
		SemesterDepartmentID: &c.SemesterDepartmentID,
		SemesterNumber:       &c.SemesterNumber,
		SemesterAcademicYear: &c.SemesterAcademicYear,
		SemesterStartDate:    c.SemesterStartDate,
		SemesterEndDate:      c.SemesterEndDate,
	}
	if c.SemesterType != "" {
		upd.SemesterType = &c.SemesterType
	}
	return m.res.Update(ctx, id, upd)
}

func (m semesterMutations) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return m.res.Delete(ctx, id)
}

// NewSemesterPage: CRUD semester di /api/a/semesters.
func NewSemesterPage(c *client.Client, l *Lookups, n Notifier) *Page[semDTO.SemesterResponse, SemesterDraft] {
	res := client.NewResource[semDTO.SemesterResponse](c, "/api/a/semesters")
	type row = semDTO.SemesterResponse
	return NewPage(PageConfig[row, SemesterDraft]{
		Name:     "semesters",
		Singular: "Semester",
		Columns: []datatable.Column[row]{
			{Key: "semester_department", Header: "Dept", Sortable: true,
				Accessor: func(s row) any { return l.DepartmentLabel(s.SemesterDepartmentID) }},
			{Key: "semester_number", Header: "No", Sortable: true, Align: datatable.AlignRight,
				Field: func(s row) any { return s.SemesterNumber }},
			{Key: "semester_academic_year", Header: "Year", Sortable: true,
				Field: func(s row) any { return s.SemesterAcademicYear }},
			{Key: "semester_type", Header: "Type", Sortable: true,
				Field: func(s row) any { return s.SemesterType }},
			{Key: "semester_start_date", Header: "Start", Sortable: true,
				Accessor: func(s row) any { return fmtDate(s.SemesterStartDate) },
				Field:    func(s row) any { return s.SemesterStartDate }},
			{Key: "semester_end_date", Header: "End", Sortable: true,
				Accessor: func(s row) any { return fmtDate(s.SemesterEndDate) },
				Field:    func(s row) any { return s.SemesterEndDate }},
		},
		Fetcher: FetchFunc[row](func(ctx context.Context) ([]row, error) {
			if err := l.Load(ctx); err != nil {
				return nil, err
			}
			return res.List(ctx, nil)
		}),
		Mutations: semesterMutations{res: res, lookups: l},
		ID:        func(s row) uuid.UUID { return s.SemesterID },
		Label:     func(s row) string { return l.SemesterLabel(s.SemesterID) },
		DraftFrom: func(s row) SemesterDraft {
			return SemesterDraft{
				Department:   l.DepartmentRef(s.SemesterDepartmentID),
				Number:       strconv.Itoa(s.SemesterNumber),
				AcademicYear: s.SemesterAcademicYear,
				Type:         s.SemesterType,
				StartDate:    fmtDate(s.SemesterStartDate),
				EndDate:      fmtDate(s.SemesterEndDate),
			}
		},
		SetField: func(d *SemesterDraft, field, value string) error { return d.set(field, value) },
		GetField: func(d SemesterDraft, field string) string { return d.get(field) },
		Fields:   semesterFields,
		Validate: func(d SemesterDraft) error {
			_, err := d.toCreate(l)
			return err
		},
		Stats: func(rows []row) []Stat {
			return []Stat{
				{Label: "by type", Counts: countBy(rows, func(s row) string { return s.SemesterType })},
				{Label: "by department", Counts: countBy(rows, func(s row) string { return l.DepartmentLabel(s.SemesterDepartmentID) })},
			}
		},
	}, n)
}
