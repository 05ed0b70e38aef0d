// file: internals/features/academics/faculties/model/faculty_model.go
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Designation yang dipakai di form dashboard.
const (
	DesignationHOD          = "HOD"
	DesignationProfessor    = "Professor"
	DesignationAssociate    = "Associate Professor"
	DesignationAssistant    = "Assistant Professor"
	DesignationLabAssistant = "Lab Assistant"
)

type FacultyModel struct {
	FacultyID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:faculty_id" json:"faculty_id"`
	FacultyDepartmentID uuid.UUID `gorm:"type:uuid;not null;index;column:faculty_department_id" json:"faculty_department_id"`

	FacultyName         string     `gorm:"type:text;not null;column:faculty_name" json:"faculty_name"`
	FacultyAbbreviation *string    `gorm:"type:varchar(16);column:faculty_abbreviation" json:"faculty_abbreviation,omitempty"`
	FacultyEmail        string     `gorm:"type:text;not null;uniqueIndex:uq_faculty_email,where:faculty_deleted_at IS NULL;column:faculty_email" json:"faculty_email"`
	FacultyDesignation  string     `gorm:"type:text;not null;column:faculty_designation" json:"faculty_designation"`
	FacultySeniority    int        `gorm:"type:integer;not null;default:0;column:faculty_seniority" json:"faculty_seniority"`
	FacultyJoiningDate  *time.Time `gorm:"type:date;column:faculty_joining_date" json:"faculty_joining_date,omitempty"`

	FacultyCreatedAt time.Time      `gorm:"type:timestamptz;not null;autoCreateTime;column:faculty_created_at" json:"faculty_created_at"`
	FacultyUpdatedAt time.Time      `gorm:"type:timestamptz;not null;autoUpdateTime;column:faculty_updated_at" json:"faculty_updated_at"`
	FacultyDeletedAt gorm.DeletedAt `gorm:"column:faculty_deleted_at;index" json:"faculty_deleted_at,omitempty"`
}

func (FacultyModel) TableName() string { return "faculties" }

func (m *FacultyModel) BeforeSave(tx *gorm.DB) error {
	m.FacultyName = strings.TrimSpace(m.FacultyName)
	m.FacultyEmail = strings.ToLower(strings.TrimSpace(m.FacultyEmail))
	if m.FacultyAbbreviation != nil {
		a := strings.ToUpper(strings.TrimSpace(*m.FacultyAbbreviation))
		if a == "" {
			m.FacultyAbbreviation = nil
		} else {
			m.FacultyAbbreviation = &a
		}
	}
	return nil
}
