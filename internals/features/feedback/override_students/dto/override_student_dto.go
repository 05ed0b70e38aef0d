// file: internals/features/feedback/override_students/dto/override_student_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"reflectify_backend/internals/features/feedback/override_students/model"
	helper "reflectify_backend/internals/helpers"
)

type OverrideStudentDTO struct {
	OverrideStudentEnrollmentNumber string  `json:"override_student_enrollment_number" validate:"required,max=32"`
	OverrideStudentName             string  `json:"override_student_name" validate:"required,min=2,max=120"`
	OverrideStudentEmail            string  `json:"override_student_email" validate:"required,email"`
	OverrideStudentBatch            *string `json:"override_student_batch,omitempty" validate:"omitempty,max=16"`
	OverrideStudentPhoneNumber      *string `json:"override_student_phone_number,omitempty" validate:"omitempty,max=20"`
}

// OverrideStudentsAddDTO: tambah banyak sekaligus.
type OverrideStudentsAddDTO struct {
	Students []OverrideStudentDTO `json:"students" validate:"required,min=1,max=1000,dive"`
}

type OverrideStudentResponse struct {
	OverrideStudentID               uuid.UUID `json:"override_student_id"`
	OverrideStudentFormID           uuid.UUID `json:"override_student_form_id"`
	OverrideStudentEnrollmentNumber string    `json:"override_student_enrollment_number"`
	OverrideStudentName             string    `json:"override_student_name"`
	OverrideStudentEmail            string    `json:"override_student_email"`
	OverrideStudentBatch            *string   `json:"override_student_batch,omitempty"`
	OverrideStudentPhoneNumber      *string   `json:"override_student_phone_number,omitempty"`
	OverrideStudentCreatedAt        time.Time `json:"override_student_created_at"`
}

func (p *OverrideStudentDTO) ToModel(formID uuid.UUID) model.OverrideStudentModel {
	return model.OverrideStudentModel{
		OverrideStudentFormID:           formID,
		OverrideStudentEnrollmentNumber: strings.ToUpper(strings.TrimSpace(p.OverrideStudentEnrollmentNumber)),
		OverrideStudentName:             strings.TrimSpace(p.OverrideStudentName),
		OverrideStudentEmail:            strings.ToLower(strings.TrimSpace(p.OverrideStudentEmail)),
		OverrideStudentBatch:            helper.TrimPtr(p.OverrideStudentBatch),
		OverrideStudentPhoneNumber:      helper.TrimPtr(p.OverrideStudentPhoneNumber),
	}
}

func FromModel(m model.OverrideStudentModel) OverrideStudentResponse {
	return OverrideStudentResponse{
		OverrideStudentID:               m.OverrideStudentID,
		OverrideStudentFormID:           m.OverrideStudentFormID,
		OverrideStudentEnrollmentNumber: m.OverrideStudentEnrollmentNumber,
		OverrideStudentName:             m.OverrideStudentName,
		OverrideStudentEmail:            m.OverrideStudentEmail,
		OverrideStudentBatch:            m.OverrideStudentBatch,
		OverrideStudentPhoneNumber:      m.OverrideStudentPhoneNumber,
		OverrideStudentCreatedAt:        m.OverrideStudentCreatedAt,
	}
}
