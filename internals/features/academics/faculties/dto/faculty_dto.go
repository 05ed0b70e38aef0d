// file: internals/features/academics/faculties/dto/faculty_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"reflectify_backend/internals/features/academics/faculties/model"
	helper "reflectify_backend/internals/helpers"
)

// Designation yang diterima (validator oneof pakai underscore).
var designations = map[string]string{
	"HOD":                 model.DesignationHOD,
	"PROFESSOR":           model.DesignationProfessor,
	"ASSOCIATE_PROFESSOR": model.DesignationAssociate,
	"ASSOCIATE PROFESSOR": model.DesignationAssociate,
	"ASSISTANT_PROFESSOR": model.DesignationAssistant,
	"ASSISTANT PROFESSOR": model.DesignationAssistant,
	"LAB_ASSISTANT":       model.DesignationLabAssistant,
	"LAB ASSISTANT":       model.DesignationLabAssistant,
}

// NormalizeDesignation returns the canonical designation, ok=false when unknown.
func NormalizeDesignation(s string) (string, bool) {
	d, ok := designations[strings.ToUpper(strings.TrimSpace(s))]
	return d, ok
}

// =======================
// Request DTO
// =======================

type FacultyCreateDTO struct {
	FacultyName         string     `json:"faculty_name" validate:"required,min=2,max=120"`
	FacultyAbbreviation *string    `json:"faculty_abbreviation,omitempty" validate:"omitempty,max=16"`
	FacultyEmail        string     `json:"faculty_email" validate:"required,email"`
	FacultyDesignation  string     `json:"faculty_designation" validate:"required"`
	FacultySeniority    int        `json:"faculty_seniority" validate:"min=0,max=60"`
	FacultyDepartmentID uuid.UUID  `json:"faculty_department_id" validate:"required"`
	FacultyJoiningDate  *time.Time `json:"faculty_joining_date,omitempty"`
}

type FacultyUpdateDTO struct {
	FacultyName         *string    `json:"faculty_name,omitempty" validate:"omitempty,min=2,max=120"`
	FacultyAbbreviation *string    `json:"faculty_abbreviation,omitempty" validate:"omitempty,max=16"`
	FacultyEmail        *string    `json:"faculty_email,omitempty" validate:"omitempty,email"`
	FacultyDesignation  *string    `json:"faculty_designation,omitempty"`
	FacultySeniority    *int       `json:"faculty_seniority,omitempty" validate:"omitempty,min=0,max=60"`
	FacultyDepartmentID *uuid.UUID `json:"faculty_department_id,omitempty"`
	FacultyJoiningDate  *time.Time `json:"faculty_joining_date,omitempty"`
}

// =======================
// Response DTO
// =======================

type FacultyResponse struct {
	FacultyID           uuid.UUID  `json:"faculty_id"`
	FacultyName         string     `json:"faculty_name"`
	FacultyAbbreviation *string    `json:"faculty_abbreviation,omitempty"`
	FacultyEmail        string     `json:"faculty_email"`
	FacultyDesignation  string     `json:"faculty_designation"`
	FacultySeniority    int        `json:"faculty_seniority"`
	FacultyDepartmentID uuid.UUID  `json:"faculty_department_id"`
	FacultyJoiningDate  *time.Time `json:"faculty_joining_date,omitempty"`
	FacultyCreatedAt    time.Time  `json:"faculty_created_at"`
	FacultyUpdatedAt    time.Time  `json:"faculty_updated_at"`
	FacultyDeletedAt    *time.Time `json:"faculty_deleted_at,omitempty"`
}

func (p *FacultyCreateDTO) ToModel() model.FacultyModel {
	d, _ := NormalizeDesignation(p.FacultyDesignation)
	return model.FacultyModel{
		FacultyDepartmentID: p.FacultyDepartmentID,
		FacultyName:         strings.TrimSpace(p.FacultyName),
		FacultyAbbreviation: helper.TrimPtr(p.FacultyAbbreviation),
		FacultyEmail:        strings.ToLower(strings.TrimSpace(p.FacultyEmail)),
		FacultyDesignation:  d,
		FacultySeniority:    p.FacultySeniority,
		FacultyJoiningDate:  p.FacultyJoiningDate,
	}
}

func (u *FacultyUpdateDTO) ApplyUpdates(ent *model.FacultyModel) {
	if u.FacultyName != nil {
		ent.FacultyName = strings.TrimSpace(*u.FacultyName)
	}
	if u.FacultyAbbreviation != nil {
		ent.FacultyAbbreviation = helper.TrimPtr(u.FacultyAbbreviation)
	}
	if u.FacultyEmail != nil {
		ent.FacultyEmail = strings.ToLower(strings.TrimSpace(*u.FacultyEmail))
	}
	if u.FacultyDesignation != nil {
		if d, ok := NormalizeDesignation(*u.FacultyDesignation); ok {
			ent.FacultyDesignation = d
		}
	}
	if u.FacultySeniority != nil {
		ent.FacultySeniority = *u.FacultySeniority
	}
	if u.FacultyDepartmentID != nil {
		ent.FacultyDepartmentID = *u.FacultyDepartmentID
	}
	if u.FacultyJoiningDate != nil {
		ent.FacultyJoiningDate = u.FacultyJoiningDate
	}
}

func FromModel(ent model.FacultyModel) FacultyResponse {
	var deletedAt *time.Time
	if ent.FacultyDeletedAt.Valid {
		t := ent.FacultyDeletedAt.Time
		deletedAt = &t
	}
	return FacultyResponse{
		FacultyID:           ent.FacultyID,
		FacultyName:         ent.FacultyName,
		FacultyAbbreviation: ent.FacultyAbbreviation,
		FacultyEmail:        ent.FacultyEmail,
		FacultyDesignation:  ent.FacultyDesignation,
		FacultySeniority:    ent.FacultySeniority,
		FacultyDepartmentID: ent.FacultyDepartmentID,
		FacultyJoiningDate:  ent.FacultyJoiningDate,
		FacultyCreatedAt:    ent.FacultyCreatedAt,
		FacultyUpdatedAt:    ent.FacultyUpdatedAt,
		FacultyDeletedAt:    deletedAt,
	}
}
