// file: internals/features/academics/departments/model/department_model.go
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DepartmentModel struct {
	DepartmentID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:department_id" json:"department_id"`

	DepartmentName         string  `gorm:"type:text;not null;column:department_name" json:"department_name"`
	DepartmentAbbreviation string  `gorm:"type:varchar(16);not null;uniqueIndex:uq_department_abbr,where:department_deleted_at IS NULL;column:department_abbreviation" json:"department_abbreviation"`
	DepartmentHODName      *string `gorm:"type:text;column:department_hod_name" json:"department_hod_name,omitempty"`
	DepartmentHODEmail     *string `gorm:"type:text;column:department_hod_email" json:"department_hod_email,omitempty"`

	DepartmentCreatedAt time.Time      `gorm:"type:timestamptz;not null;autoCreateTime;column:department_created_at" json:"department_created_at"`
	DepartmentUpdatedAt time.Time      `gorm:"type:timestamptz;not null;autoUpdateTime;column:department_updated_at" json:"department_updated_at"`
	DepartmentDeletedAt gorm.DeletedAt `gorm:"column:department_deleted_at;index" json:"department_deleted_at,omitempty"`
}

func (DepartmentModel) TableName() string { return "departments" }

func (m *DepartmentModel) BeforeSave(tx *gorm.DB) error {
	m.DepartmentName = strings.TrimSpace(m.DepartmentName)
	m.DepartmentAbbreviation = strings.ToUpper(strings.TrimSpace(m.DepartmentAbbreviation))
	return nil
}
