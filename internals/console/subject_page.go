// file: internals/console/subject_page.go
package console

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"reflectify_backend/internals/console/client"
	subDTO "reflectify_backend/internals/features/academics/subjects/dto"
	"reflectify_backend/internals/helpers/datatable"
)

type SubjectDraft struct {
	Name         string
	Abbreviation string
	Code         string
	Type         string
	Department   string
	Semester     string
}

var subjectFields = []string{"name", "abbreviation", "code", "type", "department", "semester"}

func (d *SubjectDraft) set(field, value string) error {
	switch field {
	case "name":
		d.Name = value
	case "abbreviation", "abbr":
		d.Abbreviation = value
	case "code":
		d.Code = value
	case "type":
		d.Type = value
	case "department", "dept":
		d.Department = value
	case "semester", "sem":
		d.Semester = value
	default:
		return unknownField(field)
	}
	return nil
}

func (d SubjectDraft) get(field string) string {
	switch field {
	case "name":
		return d.Name
	case "abbreviation":
		return d.Abbreviation
	case "code":
		return d.Code
	case "type":
		return d.Type
	case "department":
		return d.Department
	case "semester":
		return d.Semester
	}
	return ""
}

func (d SubjectDraft) toCreate(l *Lookups) (subDTO.SubjectCreateDTO, error) {
	var out subDTO.SubjectCreateDTO
	for _, f := range [][2]string{{"name", d.Name}, {"abbreviation", d.Abbreviation}, {"code", d.Code}, {"department", d.Department}, {"semester", d.Semester}} {
		if strings.TrimSpace(f[1]) == "" {
			return out, Required(f[0])
		}
	}
	typ := strings.ToUpper(strings.TrimSpace(d.Type))
	if typ != "" && typ != "MANDATORY" && typ != "ELECTIVE" {
		return out, &ValidationError{Field: "type", Message: "must be MANDATORY or ELECTIVE"}
	}
	deptID, ok := l.ResolveDepartment(d.Department)
	if !ok {
		return out, &ValidationError{Field: "department", Message: "unknown department"}
	}
	semID, ok := l.ResolveSemester(d.Semester)
	if !ok {
		return out, &ValidationError{Field: "semester", Message: "unknown semester (use UUID or DEPT-number)"}
	}
	return subDTO.SubjectCreateDTO{
		SubjectName:         strings.TrimSpace(d.Name),
		SubjectAbbreviation: strings.TrimSpace(d.Abbreviation),
		SubjectCode:         strings.ToUpper(strings.TrimSpace(d.Code)),
		SubjectType:         typ,
		SubjectDepartmentID: deptID,
		SubjectSemesterID:   semID,
	}, nil
}

type subjectMutations struct {
	res     *client.Resource[subDTO.SubjectResponse]
	lookups *Lookups
}

func (m subjectMutations) Create(ctx context.Context, d SubjectDraft) (subDTO.SubjectResponse, error) {
	body, err := d.toCreate(m.lookups)
	if err != nil {
		return subDTO.SubjectResponse{}, err
	}
	return m.res.Create(ctx, body)
}

func (m subjectMutations) Update(ctx context.Context, id uuid.UUID, d SubjectDraft) (subDTO.SubjectResponse, error) {
	c, err := d.toCreate(m.lookups)
	if err != nil {
		return subDTO.SubjectResponse{}, err
	}
	upd := subDTO.SubjectUpdateDTO{
		SubjectName:         &c.SubjectName,
		SubjectAbbreviation: &c.SubjectAbbreviation,
		SubjectCode:         &c.SubjectCode,
		SubjectDepartmentID: &c.SubjectDepartmentID,
		SubjectSemesterID:   &c.SubjectSemesterID,
	}
	if c.SubjectType != "" {
		upd.SubjectType = &c.SubjectType
	}
	return m.res.Update(ctx, id, upd)
}

func (m subjectMutations) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return m.res.Delete(ctx, id)
}

// NewSubjectPage: CRUD mata kuliah di /api/a/subjects.
func NewSubjectPage(c *client.Client, l *Lookups, n Notifier) *Page[subDTO.SubjectResponse, SubjectDraft] {
	res := client.NewResource[subDTO.SubjectResponse](c, "/api/a/subjects")
	type row = subDTO.SubjectResponse
	return NewPage(PageConfig[row, SubjectDraft]{
		Name:     "subjects",
		Singular: "Subject",
		Columns: []datatable.Column[row]{
			{Key: "subject_code", Header: "Code", Sortable: true,
				Field: func(s row) any { return s.SubjectCode }},
			{Key: "subject_name", Header: "Name", Sortable: true,
				Field: func(s row) any { return s.SubjectName }},
			{Key: "subject_abbreviation", Header: "Abbr", Sortable: true,
				Field: func(s row) any { return s.SubjectAbbreviation }},
			{Key: "subject_type", Header: "Type", Sortable: true,
				Field: func(s row) any { return s.SubjectType }},
			{Key: "subject_semester", Header: "Semester", Sortable: true,
				Accessor: func(s row) any { return l.SemesterLabel(s.SubjectSemesterID) }},
		},
		Fetcher: FetchFunc[row](func(ctx context.Context) ([]row, error) {
			if err := l.Load(ctx); err != nil {
				return nil, err
			}
			return res.List(ctx, nil)
		}),
		Mutations: subjectMutations{res: res, lookups: l},
		ID:        func(s row) uuid.UUID { return s.SubjectID },
		Label:     func(s row) string { return s.SubjectCode + " " + s.SubjectName },
		DraftFrom: func(s row) SubjectDraft {
			return SubjectDraft{
				Name:         s.SubjectName,
				Abbreviation: s.SubjectAbbreviation,
				Code:         s.SubjectCode,
				Type:         s.SubjectType,
				Department:   l.DepartmentRef(s.SubjectDepartmentID),
				Semester:     s.SubjectSemesterID.String(),
			}
		},
		SetField: func(d *SubjectDraft, field, value string) error { return d.set(field, value) },
		GetField: func(d SubjectDraft, field string) string { return d.get(field) },
		Fields:   subjectFields,
		Validate: func(d SubjectDraft) error {
			_, err := d.toCreate(l)
			return err
		},
		Stats: func(rows []row) []Stat {
			return []Stat{
				{Label: "by type", Counts: countBy(rows, func(s row) string { return s.SubjectType })},
				{Label: "by semester", Counts: countBy(rows, func(s row) string { return l.SemesterLabel(s.SubjectSemesterID) })},
			}
		},
	}, n)
}
