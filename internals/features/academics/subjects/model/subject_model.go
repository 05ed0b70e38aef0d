// file: internals/features/academics/subjects/model/subject_model.go
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SubjectTypeMandatory = "MANDATORY"
	SubjectTypeElective  = "ELECTIVE"
)

type SubjectModel struct {
	SubjectID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:subject_id" json:"subject_id"`
	SubjectDepartmentID uuid.UUID `gorm:"type:uuid;not null;index;column:subject_department_id" json:"subject_department_id"`
	SubjectSemesterID   uuid.UUID `gorm:"type:uuid;not null;index;column:subject_semester_id" json:"subject_semester_id"`

	SubjectName         string `gorm:"type:text;not null;column:subject_name" json:"subject_name"`
	SubjectAbbreviation string `gorm:"type:varchar(16);not null;column:subject_abbreviation" json:"subject_abbreviation"`
	SubjectCode         string `gorm:"type:varchar(24);not null;column:subject_code" json:"subject_code"`
	SubjectType         string `gorm:"type:varchar(16);not null;default:'MANDATORY';column:subject_type" json:"subject_type"`

	SubjectCreatedAt time.Time      `gorm:"type:timestamptz;not null;autoCreateTime;column:subject_created_at" json:"subject_created_at"`
	SubjectUpdatedAt time.Time      `gorm:"type:timestamptz;not null;autoUpdateTime;column:subject_updated_at" json:"subject_updated_at"`
	SubjectDeletedAt gorm.DeletedAt `gorm:"column:subject_deleted_at;index" json:"subject_deleted_at,omitempty"`
}

func (SubjectModel) TableName() string { return "subjects" }

func (m *SubjectModel) BeforeSave(tx *gorm.DB) error {
	m.SubjectName = strings.TrimSpace(m.SubjectName)
	m.SubjectAbbreviation = strings.ToUpper(strings.TrimSpace(m.SubjectAbbreviation))
	m.SubjectCode = strings.ToUpper(strings.TrimSpace(m.SubjectCode))
	if m.SubjectType == "" {
		m.SubjectType = SubjectTypeMandatory
	}
	return nil
}
