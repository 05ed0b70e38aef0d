package academics

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"strings"

	"github.com/bytedance/sonic"

	database "reflectify_backend/internals/databases"
	"reflectify_backend/internals/databases/repository"
	deptModel "reflectify_backend/internals/features/academics/departments/model"
	facultyDTO "reflectify_backend/internals/features/academics/faculties/dto"
	facultyModel "reflectify_backend/internals/features/academics/faculties/model"
	semModel "reflectify_backend/internals/features/academics/semesters/model"
	subjectModel "reflectify_backend/internals/features/academics/subjects/model"
)

type SubjectSeed struct {
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	Code         string `json:"code"`
	Type         string `json:"type"`
}

type SemesterSeed struct {
	Number       int           `json:"number"`
	AcademicYear string        `json:"academic_year"`
	Subjects     []SubjectSeed `json:"subjects"`
}

type FacultySeed struct {
	Name         string  `json:"name"`
	Abbreviation *string `json:"abbreviation"`
	Email        string  `json:"email"`
	Designation  string  `json:"designation"`
	Seniority    int     `json:"seniority"`
}

type DepartmentSeed struct {
	Name         string         `json:"name"`
	Abbreviation string         `json:"abbreviation"`
	HODName      *string        `json:"hod_name"`
	HODEmail     *string        `json:"hod_email"`
	Faculties    []FacultySeed  `json:"faculties"`
	Semesters    []SemesterSeed `json:"semesters"`
}

// firstOrCreate: ambil baris yang cocok f, atau buat ent.
func firstOrCreate[T any](ctx context.Context, repo repository.Repository[T], f repository.Filter, ent *T) (*T, bool, error) {
	found, err := repo.First(ctx, f)
	if err == nil {
		return found, false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, false, err
	}
	if err := repo.Create(ctx, ent); err != nil {
		return nil, false, err
	}
	return ent, true, nil
}

func SeedAcademicsFromJSON(ctx context.Context, st *database.Stores, fsys fs.FS, path string) error {
	log.Println("📥 Membaca file akademik:", path)

	file, err := fs.ReadFile(fsys, path)
	if err != nil {
		return err
	}
	var inputs []DepartmentSeed
	if err := sonic.Unmarshal(file, &inputs); err != nil {
		return err
	}

	for _, d := range inputs {
		abbr := strings.ToUpper(strings.TrimSpace(d.Abbreviation))
		dept, created, err := firstOrCreate(ctx, st.Departments,
			repository.Where("department_abbreviation", abbr),
			&deptModel.DepartmentModel{
				DepartmentName:         d.Name,
				DepartmentAbbreviation: abbr,
				DepartmentHODName:      d.HODName,
				DepartmentHODEmail:     d.HODEmail,
			})
		if err != nil {
			return err
		}
		if created {
			log.Printf("✅ Departemen %s dibuat", abbr)
		} else {
			log.Printf("ℹ️ Departemen %s sudah ada, dilewati.", abbr)
		}

		for _, f := range d.Faculties {
			designation, ok := facultyDTO.NormalizeDesignation(f.Designation)
			if !ok {
				log.Printf("⚠️ Designation '%s' untuk %s tidak dikenal, dilewati.", f.Designation, f.Email)
				continue
			}
			email := strings.ToLower(strings.TrimSpace(f.Email))
			if _, _, err := firstOrCreate(ctx, st.Faculties,
				repository.Where("faculty_email", email),
				&facultyModel.FacultyModel{
					FacultyDepartmentID: dept.DepartmentID,
					FacultyName:         f.Name,
					FacultyAbbreviation: f.Abbreviation,
					FacultyEmail:        email,
					FacultyDesignation:  designation,
					FacultySeniority:    f.Seniority,
				}); err != nil {
				return err
			}
		}

		for _, s := range d.Semesters {
			sem, _, err := firstOrCreate(ctx, st.Semesters,
				repository.Where("semester_department_id", dept.DepartmentID).
					And("semester_number", s.Number).
					And("semester_academic_year", s.AcademicYear),
				&semModel.SemesterModel{
					SemesterDepartmentID: dept.DepartmentID,
					SemesterNumber:       s.Number,
					SemesterAcademicYear: s.AcademicYear,
					SemesterType:         semModel.TypeForNumber(s.Number),
				})
			if err != nil {
				return err
			}
			for _, sub := range s.Subjects {
				code := strings.ToUpper(strings.TrimSpace(sub.Code))
				typ := strings.ToUpper(strings.TrimSpace(sub.Type))
				if typ == "" {
					typ = subjectModel.SubjectTypeMandatory
				}
				if _, _, err := firstOrCreate(ctx, st.Subjects,
					repository.Where("subject_department_id", dept.DepartmentID).And("subject_code", code),
					&subjectModel.SubjectModel{
						SubjectDepartmentID: dept.DepartmentID,
						SubjectSemesterID:   sem.SemesterID,
						SubjectName:         sub.Name,
						SubjectAbbreviation: sub.Abbreviation,
						SubjectCode:         code,
						SubjectType:         typ,
					}); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
