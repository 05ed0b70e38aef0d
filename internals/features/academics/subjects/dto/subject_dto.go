// file: internals/features/academics/subjects/dto/subject_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"reflectify_backend/internals/features/academics/subjects/model"
)

// =======================
// Request DTO
// =======================

type SubjectCreateDTO struct {
	SubjectName         string    `json:"subject_name" validate:"required,min=2,max=160"`
	SubjectAbbreviation string    `json:"subject_abbreviation" validate:"required,max=16"`
	SubjectCode         string    `json:"subject_code" validate:"required,max=24"`
	SubjectType         string    `json:"subject_type,omitempty" validate:"omitempty,oneof=MANDATORY ELECTIVE mandatory elective"`
	SubjectDepartmentID uuid.UUID `json:"subject_department_id" validate:"required"`
	SubjectSemesterID   uuid.UUID `json:"subject_semester_id" validate:"required"`
}

type SubjectUpdateDTO struct {
	SubjectName         *string    `json:"subject_name,omitempty" validate:"omitempty,min=2,max=160"`
	SubjectAbbreviation *string    `json:"subject_abbreviation,omitempty" validate:"omitempty,max=16"`
	SubjectCode         *string    `json:"subject_code,omitempty" validate:"omitempty,max=24"`
	SubjectType         *string    `json:"subject_type,omitempty" validate:"omitempty,oneof=MANDATORY ELECTIVE mandatory elective"`
	SubjectDepartmentID *uuid.UUID `json:"subject_department_id,omitempty"`
	SubjectSemesterID   *uuid.UUID `json:"subject_semester_id,omitempty"`
}

// =======================
// Response DTO
// =======================

type SubjectResponse struct {
	SubjectID           uuid.UUID  `json:"subject_id"`
	SubjectName         string     `json:"subject_name"`
	SubjectAbbreviation string     `json:"subject_abbreviation"`
	SubjectCode         string     `json:"subject_code"`
	SubjectType         string     `json:"subject_type"`
	SubjectDepartmentID uuid.UUID  `json:"subject_department_id"`
	SubjectSemesterID   uuid.UUID  `json:"subject_semester_id"`
	SubjectCreatedAt    time.Time  `json:"subject_created_at"`
	SubjectUpdatedAt    time.Time  `json:"subject_updated_at"`
	SubjectDeletedAt    *time.Time `json:"subject_deleted_at,omitempty"`
}

func (p *SubjectCreateDTO) ToModel() model.SubjectModel {
	typ := strings.ToUpper(strings.TrimSpace(p.SubjectType))
	if typ == "" {
		typ = model.SubjectTypeMandatory
	}
	return model.SubjectModel{
		SubjectDepartmentID: p.SubjectDepartmentID,
		SubjectSemesterID:   p.SubjectSemesterID,
		SubjectName:         strings.TrimSpace(p.SubjectName),
		SubjectAbbreviation: strings.ToUpper(strings.TrimSpace(p.SubjectAbbreviation)),
		SubjectCode:         strings.ToUpper(strings.TrimSpace(p.SubjectCode)),
		SubjectType:         typ,
	}
}

func (u *SubjectUpdateDTO) ApplyUpdates(ent *model.SubjectModel) {
	if u.SubjectName != nil {
		ent.SubjectName = strings.TrimSpace(*u.SubjectName)
	}
	if u.SubjectAbbreviation != nil {
		ent.SubjectAbbreviation = strings.ToUpper(strings.TrimSpace(*u.SubjectAbbreviation))
	}
	if u.SubjectCode != nil {
		ent.SubjectCode = strings.ToUpper(strings.TrimSpace(*u.SubjectCode))
	}
	if u.SubjectType != nil {
		ent.SubjectType = strings.ToUpper(strings.TrimSpace(*u.SubjectType))
	}
	if u.SubjectDepartmentID != nil {
		ent.SubjectDepartmentID = *u.SubjectDepartmentID
	}
	if u.SubjectSemesterID != nil {
		ent.SubjectSemesterID = *u.SubjectSemesterID
	}
}

func FromModel(ent model.SubjectModel) SubjectResponse {
	var deletedAt *time.Time
	if ent.SubjectDeletedAt.Valid {
		t := ent.SubjectDeletedAt.Time
		deletedAt = &t
	}
	return SubjectResponse{
		SubjectID:           ent.SubjectID,
		SubjectName:         ent.SubjectName,
		SubjectAbbreviation: ent.SubjectAbbreviation,
		SubjectCode:         ent.SubjectCode,
		SubjectType:         ent.SubjectType,
		SubjectDepartmentID: ent.SubjectDepartmentID,
		SubjectSemesterID:   ent.SubjectSemesterID,
		SubjectCreatedAt:    ent.SubjectCreatedAt,
		SubjectUpdatedAt:    ent.SubjectUpdatedAt,
		SubjectDeletedAt:    deletedAt,
	}
}
