// file: internals/databases/stores.go
package database

import (
	"context"

	"gorm.io/gorm"

	"reflectify_backend/internals/databases/repository"
	deptModel "reflectify_backend/internals/features/academics/departments/model"
	facultyModel "reflectify_backend/internals/features/academics/faculties/model"
	semModel "reflectify_backend/internals/features/academics/semesters/model"
	subjectModel "reflectify_backend/internals/features/academics/subjects/model"
	formModel "reflectify_backend/internals/features/feedback/forms/model"
	overrideModel "reflectify_backend/internals/features/feedback/override_students/model"
	responseModel "reflectify_backend/internals/features/feedback/responses/model"
	authModel "reflectify_backend/internals/features/users/auth/model"
)

// Models: urutan AutoMigrate.
func Models() []any {
	return []any{
		&authModel.AdminUserModel{},
		&authModel.TokenBlacklistModel{},
		&deptModel.DepartmentModel{},
		&facultyModel.FacultyModel{},
		&semModel.SemesterModel{},
		&subjectModel.SubjectModel{},
		&formModel.FeedbackFormModel{},
		&overrideModel.OverrideStudentModel{},
		&responseModel.FeedbackResponseModel{},
	}
}

// Stores: satu repository per tabel.
type Stores struct {
	Admins           repository.Repository[authModel.AdminUserModel]
	Blacklist        repository.Repository[authModel.TokenBlacklistModel]
	Departments      repository.Repository[deptModel.DepartmentModel]
	Faculties        repository.Repository[facultyModel.FacultyModel]
	Semesters        repository.Repository[semModel.SemesterModel]
	Subjects         repository.Repository[subjectModel.SubjectModel]
	Forms            repository.Repository[formModel.FeedbackFormModel]
	OverrideStudents repository.Repository[overrideModel.OverrideStudentModel]
	Responses        repository.Repository[responseModel.FeedbackResponseModel]
}

func NewGormStores(db *gorm.DB) *Stores {
	return &Stores{
		Admins:           repository.NewGorm[authModel.AdminUserModel](db),
		Blacklist:        repository.NewGorm[authModel.TokenBlacklistModel](db),
		Departments:      repository.NewGorm[deptModel.DepartmentModel](db),
		Faculties:        repository.NewGorm[facultyModel.FacultyModel](db),
		Semesters:        repository.NewGorm[semModel.SemesterModel](db),
		Subjects:         repository.NewGorm[subjectModel.SubjectModel](db),
		Forms:            repository.NewGorm[formModel.FeedbackFormModel](db),
		OverrideStudents: repository.NewGorm[overrideModel.OverrideStudentModel](db),
		Responses:        repository.NewGorm[responseModel.FeedbackResponseModel](db),
	}
}

// NewMemoryStores: untuk test dan server dev tanpa database.
func NewMemoryStores() *Stores {
	return &Stores{
		Admins:           repository.NewMemory[authModel.AdminUserModel](),
		Blacklist:        repository.NewMemory[authModel.TokenBlacklistModel](),
		Departments:      repository.NewMemory[deptModel.DepartmentModel](),
		Faculties:        repository.NewMemory[facultyModel.FacultyModel](),
		Semesters:        repository.NewMemory[semModel.SemesterModel](),
		Subjects:         repository.NewMemory[subjectModel.SubjectModel](),
		Forms:            repository.NewMemory[formModel.FeedbackFormModel](),
		OverrideStudents: repository.NewMemory[overrideModel.OverrideStudentModel](),
		Responses:        repository.NewMemory[responseModel.FeedbackResponseModel](),
	}
}

// purger: bagian Repository yang dipakai PurgeDomain.
type purger interface {
	Purge(ctx context.Context) error
}

// PurgeDomain menghapus permanen semua data domain, anak dulu baru induk.
// Akun admin dan blacklist tidak ikut supaya sesi dev tetap jalan.
func (s *Stores) PurgeDomain(ctx context.Context) ([]string, error) {
	steps := []struct {
		name string
		p    purger
	}{
		{"feedback_responses", s.Responses},
		{"override_students", s.OverrideStudents},
		{"feedback_forms", s.Forms},
		{"subjects", s.Subjects},
		{"semesters", s.Semesters},
		{"faculties", s.Faculties},
		{"departments", s.Departments},
	}
	done := make([]string, 0, len(steps))
	for _, st := range steps {
		if err := st.p.Purge(ctx); err != nil {
			return done, err
		}
		done = append(done, st.name)
	}
	return done, nil
}
