// file: internals/features/academics/semesters/dto/semester_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"reflectify_backend/internals/features/academics/semesters/model"
)

// =======================
// Request DTO
// =======================

type SemesterCreateDTO struct {
	SemesterDepartmentID uuid.UUID  `json:"semester_department_id" validate:"required"`
	SemesterNumber       int        `json:"semester_number" validate:"required,min=1,max=12"`
	SemesterAcademicYear string     `json:"semester_academic_year" validate:"required,academic_year"`
	// kosong -> diturunkan dari semester_number (ganjil/genap)
	SemesterType      string     `json:"semester_type,omitempty" validate:"omitempty,oneof=ODD EVEN odd even"`
	SemesterStartDate *time.Time `json:"semester_start_date,omitempty"`
	SemesterEndDate   *time.Time `json:"semester_end_date,omitempty"`
}

type SemesterUpdateDTO struct {
	SemesterDepartmentID *uuid.UUID `json:"semester_department_id,omitempty"`
	SemesterNumber       *int       `json:"semester_number,omitempty" validate:"omitempty,min=1,max=12"`
	SemesterAcademicYear *string    `json:"semester_academic_year,omitempty" validate:"omitempty,academic_year"`
	SemesterType         *string    `json:"semester_type,omitempty" validate:"omitempty,oneof=ODD EVEN odd even"`
	SemesterStartDate    *time.Time `json:"semester_start_date,omitempty"`
	SemesterEndDate      *time.Time `json:"semester_end_date,omitempty"`
}

// =======================
// Response DTO
// =======================

type SemesterResponse struct {
	SemesterID           uuid.UUID  `json:"semester_id"`
	SemesterDepartmentID uuid.UUID  `json:"semester_department_id"`
	SemesterNumber       int        `json:"semester_number"`
	SemesterAcademicYear string     `json:"semester_academic_year"`
	SemesterType         string     `json:"semester_type"`
	SemesterStartDate    *time.Time `json:"semester_start_date,omitempty"`
	SemesterEndDate      *time.Time `json:"semester_end_date,omitempty"`
	SemesterCreatedAt    time.Time  `json:"semester_created_at"`
	SemesterUpdatedAt    time.Time  `json:"semester_updated_at"`
	SemesterDeletedAt    *time.Time `json:"semester_deleted_at,omitempty"`
}

func (p *SemesterCreateDTO) ToModel() model.SemesterModel {
	typ := strings.ToUpper(strings.TrimSpace(p.SemesterType))
	if typ == "" {
		typ = model.TypeForNumber(p.SemesterNumber)
	}
	return model.SemesterModel{
		SemesterDepartmentID: p.SemesterDepartmentID,
		SemesterNumber:       p.SemesterNumber,
		SemesterAcademicYear: strings.TrimSpace(p.SemesterAcademicYear),
		SemesterType:         typ,
		SemesterStartDate:    p.SemesterStartDate,
		SemesterEndDate:      p.SemesterEndDate,
	}
}

func (u *SemesterUpdateDTO) ApplyUpdates(ent *model.SemesterModel) {
	if u.SemesterDepartmentID != nil {
		ent.SemesterDepartmentID = *u.SemesterDepartmentID
	}
	if u.SemesterNumber != nil {
		ent.SemesterNumber = *u.SemesterNumber
		if u.SemesterType == nil {
			ent.SemesterType = model.TypeForNumber(*u.SemesterNumber)
		}
	}
	if u.SemesterAcademicYear != nil {
		ent.SemesterAcademicYear = strings.TrimSpace(*u.SemesterAcademicYear)
	}
	if u.SemesterType != nil {
		ent.SemesterType = strings.ToUpper(strings.TrimSpace(*u.SemesterType))
	}
	if u.SemesterStartDate != nil {
		ent.SemesterStartDate = u.SemesterStartDate
	}
	if u.SemesterEndDate != nil {
		ent.SemesterEndDate = u.SemesterEndDate
	}
}

// DatesValid: end >= start (selaras CHECK di DB).
func DatesValid(ent *model.SemesterModel) bool {
	if ent.SemesterStartDate == nil || ent.SemesterEndDate == nil {
		return true
	}
	return !ent.SemesterEndDate.Before(*ent.SemesterStartDate)
}

func FromModel(ent model.SemesterModel) SemesterResponse {
	var deletedAt *time.Time
	if ent.SemesterDeletedAt.Valid {
		t := ent.SemesterDeletedAt.Time
		deletedAt = &t
	}
	return SemesterResponse{
		SemesterID:           ent.SemesterID,
		SemesterDepartmentID: ent.SemesterDepartmentID,
		SemesterNumber:       ent.SemesterNumber,
		SemesterAcademicYear: ent.SemesterAcademicYear,
		SemesterType:         ent.SemesterType,
		SemesterStartDate:    ent.SemesterStartDate,
		SemesterEndDate:      ent.SemesterEndDate,
		SemesterCreatedAt:    ent.SemesterCreatedAt,
		SemesterUpdatedAt:    ent.SemesterUpdatedAt,
		SemesterDeletedAt:    deletedAt,
	}
}
