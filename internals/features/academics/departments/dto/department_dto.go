// file: internals/features/academics/departments/dto/department_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"reflectify_backend/internals/features/academics/departments/model"
)

// =======================
// Request DTO
// =======================

type DepartmentCreateDTO struct {
	DepartmentName         string  `json:"department_name" validate:"required,min=2,max=120"`
	DepartmentAbbreviation string  `json:"department_abbreviation" validate:"required,min=1,max=16"`
	DepartmentHODName      *string `json:"department_hod_name,omitempty" validate:"omitempty,max=120"`
	DepartmentHODEmail     *string `json:"department_hod_email,omitempty" validate:"omitempty,email"`
}

type DepartmentUpdateDTO struct {
	DepartmentName         *string `json:"department_name,omitempty" validate:"omitempty,min=2,max=120"`
	DepartmentAbbreviation *string `json:"department_abbreviation,omitempty" validate:"omitempty,min=1,max=16"`
	DepartmentHODName      *string `json:"department_hod_name,omitempty" validate:"omitempty,max=120"`
	DepartmentHODEmail     *string `json:"department_hod_email,omitempty" validate:"omitempty,email"`
}

// =======================
// Response DTO
// =======================

type DepartmentResponse struct {
	DepartmentID           uuid.UUID  `json:"department_id"`
	DepartmentName         string     `json:"department_name"`
	DepartmentAbbreviation string     `json:"department_abbreviation"`
	DepartmentHODName      *string    `json:"department_hod_name,omitempty"`
	DepartmentHODEmail     *string    `json:"department_hod_email,omitempty"`
	DepartmentCreatedAt    time.Time  `json:"department_created_at"`
	DepartmentUpdatedAt    time.Time  `json:"department_updated_at"`
	DepartmentDeletedAt    *time.Time `json:"department_deleted_at,omitempty"`
}

// =======================
// Helpers
// =======================

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

func (p *DepartmentCreateDTO) ToModel() model.DepartmentModel {
	return model.DepartmentModel{
		DepartmentName:         strings.TrimSpace(p.DepartmentName),
		DepartmentAbbreviation: strings.ToUpper(strings.TrimSpace(p.DepartmentAbbreviation)),
		DepartmentHODName:      trimPtr(p.DepartmentHODName),
		DepartmentHODEmail:     trimPtr(p.DepartmentHODEmail),
	}
}

func (u *DepartmentUpdateDTO) ApplyUpdates(ent *model.DepartmentModel) {
	if u.DepartmentName != nil {
		ent.DepartmentName = strings.TrimSpace(*u.DepartmentName)
	}
	if u.DepartmentAbbreviation != nil {
		ent.DepartmentAbbreviation = strings.ToUpper(strings.TrimSpace(*u.DepartmentAbbreviation))
	}
	if u.DepartmentHODName != nil {
		ent.DepartmentHODName = trimPtr(u.DepartmentHODName)
	}
	if u.DepartmentHODEmail != nil {
		ent.DepartmentHODEmail = trimPtr(u.DepartmentHODEmail)
	}
}

// Mapper entity -> response
func FromModel(ent model.DepartmentModel) DepartmentResponse {
	var deletedAt *time.Time
	if ent.DepartmentDeletedAt.Valid {
		t := ent.DepartmentDeletedAt.Time
		deletedAt = &t
	}
	return DepartmentResponse{
		DepartmentID:           ent.DepartmentID,
		DepartmentName:         ent.DepartmentName,
		DepartmentAbbreviation: ent.DepartmentAbbreviation,
		DepartmentHODName:      ent.DepartmentHODName,
		DepartmentHODEmail:     ent.DepartmentHODEmail,
		DepartmentCreatedAt:    ent.DepartmentCreatedAt,
		DepartmentUpdatedAt:    ent.DepartmentUpdatedAt,
		DepartmentDeletedAt:    deletedAt,
	}
}

func FromModels(list []model.DepartmentModel) []DepartmentResponse {
	out := make([]DepartmentResponse, 0, len(list))
	for _, it := range list {
		out = append(out, FromModel(it))
	}
	return out
}
