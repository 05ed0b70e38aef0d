// file: internals/features/feedback/override_students/model/override_student_model.go
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OverrideStudentModel: mahasiswa yang ditambahkan manual ke satu form,
// di luar roster divisi.
type OverrideStudentModel struct {
	OverrideStudentID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:override_student_id" json:"override_student_id"`
	OverrideStudentFormID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uq_override_form_email,where:override_student_deleted_at IS NULL;column:override_student_form_id" json:"override_student_form_id"`

	OverrideStudentEnrollmentNumber string  `gorm:"type:varchar(32);not null;column:override_student_enrollment_number" json:"override_student_enrollment_number"`
	OverrideStudentName             string  `gorm:"type:text;not null;column:override_student_name" json:"override_student_name"`
	OverrideStudentEmail            string  `gorm:"type:text;not null;uniqueIndex:uq_override_form_email,where:override_student_deleted_at IS NULL;column:override_student_email" json:"override_student_email"`
	OverrideStudentBatch            *string `gorm:"type:varchar(16);column:override_student_batch" json:"override_student_batch,omitempty"`
	OverrideStudentPhoneNumber      *string `gorm:"type:varchar(20);column:override_student_phone_number" json:"override_student_phone_number,omitempty"`

	OverrideStudentCreatedAt time.Time      `gorm:"type:timestamptz;not null;autoCreateTime;column:override_student_created_at" json:"override_student_created_at"`
	OverrideStudentUpdatedAt time.Time      `gorm:"type:timestamptz;not null;autoUpdateTime;column:override_student_updated_at" json:"override_student_updated_at"`
	OverrideStudentDeletedAt gorm.DeletedAt `gorm:"column:override_student_deleted_at;index" json:"override_student_deleted_at,omitempty"`
}

func (OverrideStudentModel) TableName() string { return "override_students" }

func (m *OverrideStudentModel) BeforeSave(tx *gorm.DB) error {
	m.OverrideStudentName = strings.TrimSpace(m.OverrideStudentName)
	m.OverrideStudentEmail = strings.ToLower(strings.TrimSpace(m.OverrideStudentEmail))
	m.OverrideStudentEnrollmentNumber = strings.ToUpper(strings.TrimSpace(m.OverrideStudentEnrollmentNumber))
	return nil
}
