// file: internals/features/academics/semesters/model/semester_model.go
package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SemesterTypeOdd  = "ODD"
	SemesterTypeEven = "EVEN"
)

type SemesterModel struct {
	SemesterID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:semester_id" json:"semester_id"`
	SemesterDepartmentID uuid.UUID `gorm:"type:uuid;not null;index;column:semester_department_id" json:"semester_department_id"`

	SemesterNumber int `gorm:"type:integer;not null;column:semester_number" json:"semester_number"`
	// Example academic_year: "2024-25"
	SemesterAcademicYear string     `gorm:"type:varchar(9);not null;column:semester_academic_year" json:"semester_academic_year"`
	SemesterType         string     `gorm:"type:varchar(4);not null;column:semester_type" json:"semester_type"`
	SemesterStartDate    *time.Time `gorm:"type:date;column:semester_start_date" json:"semester_start_date,omitempty"`
	SemesterEndDate      *time.Time `gorm:"type:date;column:semester_end_date" json:"semester_end_date,omitempty"`

	SemesterCreatedAt time.Time      `gorm:"type:timestamptz;not null;autoCreateTime;column:semester_created_at" json:"semester_created_at"`
	SemesterUpdatedAt time.Time      `gorm:"type:timestamptz;not null;autoUpdateTime;column:semester_updated_at" json:"semester_updated_at"`
	SemesterDeletedAt gorm.DeletedAt `gorm:"column:semester_deleted_at;index" json:"semester_deleted_at,omitempty"`
}

func (SemesterModel) TableName() string { return "semesters" }

// TypeForNumber: semester ganjil = ODD, genap = EVEN.
func TypeForNumber(n int) string {
	if n%2 == 0 {
		return SemesterTypeEven
	}
	return SemesterTypeOdd
}

func (m *SemesterModel) BeforeSave(tx *gorm.DB) error {
	if m.SemesterStartDate != nil && m.SemesterEndDate != nil && m.SemesterEndDate.Before(*m.SemesterStartDate) {
		return errors.New("semester_end_date must be >= semester_start_date")
	}
	m.SemesterAcademicYear = strings.TrimSpace(m.SemesterAcademicYear)
	m.SemesterType = strings.ToUpper(strings.TrimSpace(m.SemesterType))
	return nil
}
