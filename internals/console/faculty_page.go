// file: internals/console/faculty_page.go
package console

import (
	"context"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"reflectify_backend/internals/console/client"
	facDTO "reflectify_backend/internals/features/academics/faculties/dto"
	"reflectify_backend/internals/helpers/datatable"
)

type FacultyDraft struct {
	Name         string
	Abbreviation string
	Email        string
	Designation  string
	Seniority    string
	Department   string
	JoiningDate  string
}

var facultyFields = []string{"name", "abbreviation", "email", "designation", "seniority", "department", "joining_date"}

func (d *FacultyDraft) set(field, value string) error {
	switch field {
	case "name":
		d.Name = value
	case "abbreviation", "abbr":
		d.Abbreviation = value
	case "email":
		d.Email = value
	case "designation":
		d.Designation = value
	case "seniority":
		d.Seniority = value
	case "department", "dept":
		d.Department = value
	case "joining_date":
		d.JoiningDate = value
	default:
		return unknownField(field)
	}
	return nil
}

func (d FacultyDraft) get(field string) string {
	switch field {
	case "name":
		return d.Name
	case "abbreviation":
		return d.Abbreviation
	case "email":
		return d.Email
	case "designation":
		return d.Designation
	case "seniority":
		return d.Seniority
	case "department":
		return d.Department
	case "joining_date":
		return d.JoiningDate
	}
	return ""
}

// toCreate juga dipakai sebagai validasi: semua cek di sini jalan sebelum
// request dikirim.
func (d FacultyDraft) toCreate(l *Lookups) (facDTO.FacultyCreateDTO, error) {
	var out facDTO.FacultyCreateDTO
	if strings.TrimSpace(d.Name) == "" {
		return out, Required("name")
	}
	if strings.TrimSpace(d.Email) == "" {
		return out, Required("email")
	}
	if strings.TrimSpace(d.Designation) == "" {
		return out, Required("designation")
	}
	designation, ok := facDTO.NormalizeDesignation(d.Designation)
	if !ok {
		return out, &ValidationError{Field: "designation", Message: "unknown designation"}
	}
	if strings.TrimSpace(d.Department) == "" {
		return out, Required("department")
	}
	deptID, ok := l.ResolveDepartment(d.Department)
	if !ok {
		return out, &ValidationError{Field: "department", Message: "unknown department"}
	}
	seniority := 0
	if s := strings.TrimSpace(d.Seniority); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return out, &ValidationError{Field: "seniority", Message: "must be a non-negative number"}
		}
		seniority = n
	}
	joining, err := parseDate("joining_date", d.JoiningDate)
	if err != nil {
		return out, err
	}
	return facDTO.FacultyCreateDTO{
		FacultyName:         strings.TrimSpace(d.Name),
		FacultyAbbreviation: optString(d.Abbreviation),
		FacultyEmail:        strings.TrimSpace(d.Email),
		FacultyDesignation:  designation,
		FacultySeniority:    seniority,
		FacultyDepartmentID: deptID,
		FacultyJoiningDate:  joining,
	}, nil
}

type facultyMutations struct {
	res     *client.Resource[facDTO.FacultyResponse]
	lookups *Lookups
}

func (m facultyMutations) Create(ctx context.Context, d FacultyDraft) (facDTO.FacultyResponse, error) {
	body, err := d.toCreate(m.lookups)
	if err != nil {
		return facDTO.FacultyResponse{}, err
	}
	return m.res.Create(ctx, body)
}

func (m facultyMutations) Update(ctx context.Context, id uuid.UUID, d FacultyDraft) (facDTO.FacultyResponse, error) {
	c, err := d.toCreate(m.lookups)
	if err != nil {
		return facDTO.FacultyResponse{}, err
	}
	return m.res.Update(ctx, id, facDTO.FacultyUpdateDTO{
		FacultyName:         &c.FacultyName,
		FacultyAbbreviation: c.FacultyAbbreviation,
		FacultyEmail:        &c.FacultyEmail,
		FacultyDesignation:  &c.FacultyDesignation,
		FacultySeniority:    &c.FacultySeniority,
		FacultyDepartmentID: &c.FacultyDepartmentID,
		FacultyJoiningDate:  c.FacultyJoiningDate,
	})
}

func (m facultyMutations) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return m.res.Delete(ctx, id)
}

func facultyColumns(l *Lookups) []datatable.Column[facDTO.FacultyResponse] {
	return []datatable.Column[facDTO.FacultyResponse]{
		{Key: "faculty_name", Header: "Name", Sortable: true,
			Field: func(f facDTO.FacultyResponse) any { return f.FacultyName }},
		{Key: "faculty_abbreviation", Header: "Abbr", Sortable: true,
			Field: func(f facDTO.FacultyResponse) any { return f.FacultyAbbreviation }},
		{Key: "faculty_email", Header: "Email", Sortable: true,
			Field: func(f facDTO.FacultyResponse) any { return f.FacultyEmail }},
		{Key: "faculty_designation", Header: "Designation", Sortable: true,
			Field: func(f facDTO.FacultyResponse) any { return f.FacultyDesignation }},
		{Key: "faculty_seniority", Header: "Seniority", Sortable: true, Align: datatable.AlignRight,
			Field: func(f facDTO.FacultyResponse) any { return f.FacultySeniority }},
		{Key: "faculty_department", Header: "Dept", Sortable: true,
			Accessor: func(f facDTO.FacultyResponse) any { return l.DepartmentLabel(f.FacultyDepartmentID) }},
	}
}

// NewFacultyPage: CRUD dosen di /api/a/faculties.
func NewFacultyPage(c *client.Client, l *Lookups, n Notifier) *Page[facDTO.FacultyResponse, FacultyDraft] {
	res := client.NewResource[facDTO.FacultyResponse](c, "/api/a/faculties")
	return NewPage(PageConfig[facDTO.FacultyResponse, FacultyDraft]{
		Name:     "faculties",
		Singular: "Faculty",
		Columns:  facultyColumns(l),
		Fetcher: FetchFunc[facDTO.FacultyResponse](func(ctx context.Context) ([]facDTO.FacultyResponse, error) {
			if err := l.Load(ctx); err != nil {
				return nil, err
			}
			return res.List(ctx, nil)
		}),
		Mutations: facultyMutations{res: res, lookups: l},
		ID:        func(f facDTO.FacultyResponse) uuid.UUID { return f.FacultyID },
		Label:     func(f facDTO.FacultyResponse) string { return f.FacultyName },
		DraftFrom: func(f facDTO.FacultyResponse) FacultyDraft {
			d := FacultyDraft{
				Name:         f.FacultyName,
				Abbreviation: derefString(f.FacultyAbbreviation),
				Email:        f.FacultyEmail,
				Designation:  f.FacultyDesignation,
				Department:   l.DepartmentRef(f.FacultyDepartmentID),
				JoiningDate:  fmtDate(f.FacultyJoiningDate),
			}
			d.Seniority = strconv.Itoa(f.FacultySeniority)
			return d
		},
		SetField: func(d *FacultyDraft, field, value string) error { return d.set(field, value) },
		GetField: func(d FacultyDraft, field string) string { return d.get(field) },
		Fields:   facultyFields,
		Validate: func(d FacultyDraft) error {
			_, err := d.toCreate(l)
			return err
		},
		Stats: func(rows []facDTO.FacultyResponse) []Stat {
			return []Stat{
				{Label: "by designation", Counts: countBy(rows, func(f facDTO.FacultyResponse) string { return f.FacultyDesignation })},
				{Label: "by department", Counts: countBy(rows, func(f facDTO.FacultyResponse) string { return l.DepartmentLabel(f.FacultyDepartmentID) })},
			}
		},
	}, n)
}
