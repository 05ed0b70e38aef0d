// file: internals/features/feedback/forms/dto/form_dto.go
package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"

	"reflectify_backend/internals/features/feedback/forms/model"
)

// =======================
// Request DTO
// =======================

type QuestionDTO struct {
	ID        string     `json:"id,omitempty" validate:"omitempty,max=40"`
	Text      string     `json:"text" validate:"required,max=500"`
	Type      string     `json:"type" validate:"required,oneof=rating text"`
	FacultyID *uuid.UUID `json:"faculty_id,omitempty"`
	SubjectID *uuid.UUID `json:"subject_id,omitempty"`
	Required  *bool      `json:"required,omitempty"`
}

type FormCreateDTO struct {
	FeedbackFormTitle        string        `json:"feedback_form_title" validate:"required,min=3,max=160"`
	FeedbackFormSemesterID   uuid.UUID     `json:"feedback_form_semester_id" validate:"required"`
	FeedbackFormDivision     string        `json:"feedback_form_division" validate:"required,max=32"`
	FeedbackFormStartDate    *time.Time    `json:"feedback_form_start_date,omitempty"`
	FeedbackFormEndDate      *time.Time    `json:"feedback_form_end_date,omitempty"`
	FeedbackFormQuestions    []QuestionDTO `json:"feedback_form_questions" validate:"omitempty,max=100,dive"`
	FeedbackFormTargetEmails []string      `json:"feedback_form_target_emails" validate:"omitempty,max=2000,dive,email"`
}

type FormUpdateDTO struct {
	FeedbackFormTitle        *string        `json:"feedback_form_title,omitempty" validate:"omitempty,min=3,max=160"`
	FeedbackFormSemesterID   *uuid.UUID     `json:"feedback_form_semester_id,omitempty"`
	FeedbackFormDivision     *string        `json:"feedback_form_division,omitempty" validate:"omitempty,max=32"`
	FeedbackFormStartDate    *time.Time     `json:"feedback_form_start_date,omitempty"`
	FeedbackFormEndDate      *time.Time     `json:"feedback_form_end_date,omitempty"`
	FeedbackFormQuestions    *[]QuestionDTO `json:"feedback_form_questions,omitempty" validate:"omitempty,max=100,dive"`
	FeedbackFormTargetEmails *[]string      `json:"feedback_form_target_emails,omitempty" validate:"omitempty,max=2000,dive,email"`
}

// TouchesContent: perubahan yang hanya boleh saat DRAFT.
func (u *FormUpdateDTO) TouchesContent() bool {
	return u.FeedbackFormQuestions != nil || u.FeedbackFormSemesterID != nil || u.FeedbackFormDivision != nil
}

// =======================
// Response DTO
// =======================

type FormResponse struct {
	FeedbackFormID           uuid.UUID        `json:"feedback_form_id"`
	FeedbackFormTitle        string           `json:"feedback_form_title"`
	FeedbackFormSlug         string           `json:"feedback_form_slug"`
	FeedbackFormSemesterID   uuid.UUID        `json:"feedback_form_semester_id"`
	FeedbackFormDivision     string           `json:"feedback_form_division"`
	FeedbackFormStatus       model.FormStatus `json:"feedback_form_status"`
	FeedbackFormStartDate    *time.Time       `json:"feedback_form_start_date,omitempty"`
	FeedbackFormEndDate      *time.Time       `json:"feedback_form_end_date,omitempty"`
	FeedbackFormIsExpired    bool             `json:"feedback_form_is_expired"`
	FeedbackFormQuestions    []model.Question `json:"feedback_form_questions"`
	FeedbackFormTargetEmails []string         `json:"feedback_form_target_emails"`
	FeedbackFormPublishedAt  *time.Time       `json:"feedback_form_published_at,omitempty"`
	FeedbackFormClosedAt     *time.Time       `json:"feedback_form_closed_at,omitempty"`
	FeedbackFormCreatedAt    time.Time        `json:"feedback_form_created_at"`
	FeedbackFormUpdatedAt    time.Time        `json:"feedback_form_updated_at"`
	FeedbackFormDeletedAt    *time.Time       `json:"feedback_form_deleted_at,omitempty"`
}

// PublicFormResponse: yang dilihat mahasiswa (tanpa daftar email).
type PublicFormResponse struct {
	FeedbackFormTitle     string           `json:"feedback_form_title"`
	FeedbackFormSlug      string           `json:"feedback_form_slug"`
	FeedbackFormDivision  string           `json:"feedback_form_division"`
	FeedbackFormEndDate   *time.Time       `json:"feedback_form_end_date,omitempty"`
	FeedbackFormQuestions []model.Question `json:"feedback_form_questions"`
}

// =======================
// Helpers
// =======================

// ToQuestions assigns ids q1..qN to questions without one and defaults
// Required to true.
func ToQuestions(in []QuestionDTO) datatypes.JSONSlice[model.Question] {
	out := make(datatypes.JSONSlice[model.Question], 0, len(in))
	used := map[string]bool{}
	for _, q := range in {
		if id := strings.TrimSpace(q.ID); id != "" {
			used[id] = true
		}
	}
	next := 1
	for _, q := range in {
		id := strings.TrimSpace(q.ID)
		if id == "" {
			for used[fmt.Sprintf("q%d", next)] {
				next++
			}
			id = fmt.Sprintf("q%d", next)
			used[id] = true
		}
		required := true
		if q.Required != nil {
			required = *q.Required
		}
		out = append(out, model.Question{
			ID:        id,
			Text:      strings.TrimSpace(q.Text),
			Type:      strings.ToLower(strings.TrimSpace(q.Type)),
			FacultyID: q.FacultyID,
			SubjectID: q.SubjectID,
			Required:  required,
		})
	}
	return out
}

// DuplicateQuestionIDs returns ids that appear more than once.
func DuplicateQuestionIDs(in []QuestionDTO) []string {
	seen := map[string]int{}
	var dup []string
	for _, q := range in {
		id := strings.TrimSpace(q.ID)
		if id == "" {
			continue
		}
		seen[id]++
		if seen[id] == 2 {
			dup = append(dup, id)
		}
	}
	return dup
}

// NormalizeEmails lowercases, trims and dedups.
func NormalizeEmails(in []string) pq.StringArray {
	out := make(pq.StringArray, 0, len(in))
	seen := map[string]bool{}
	for _, e := range in {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" || seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	return out
}

func (p *FormCreateDTO) ToModel(slug string) model.FeedbackFormModel {
	return model.FeedbackFormModel{
		FeedbackFormSemesterID:   p.FeedbackFormSemesterID,
		FeedbackFormTitle:        strings.TrimSpace(p.FeedbackFormTitle),
		FeedbackFormSlug:         slug,
		FeedbackFormDivision:     strings.ToUpper(strings.TrimSpace(p.FeedbackFormDivision)),
		FeedbackFormStatus:       model.FormStatusDraft,
		FeedbackFormStartDate:    p.FeedbackFormStartDate,
		FeedbackFormEndDate:      p.FeedbackFormEndDate,
		FeedbackFormQuestions:    ToQuestions(p.FeedbackFormQuestions),
		FeedbackFormTargetEmails: NormalizeEmails(p.FeedbackFormTargetEmails),
	}
}

func (u *FormUpdateDTO) ApplyUpdates(ent *model.FeedbackFormModel) {
	if u.FeedbackFormTitle != nil {
		ent.FeedbackFormTitle = strings.TrimSpace(*u.FeedbackFormTitle)
	}
	if u.FeedbackFormSemesterID != nil {
		ent.FeedbackFormSemesterID = *u.FeedbackFormSemesterID
	}
	if u.FeedbackFormDivision != nil {
		ent.FeedbackFormDivision = strings.ToUpper(strings.TrimSpace(*u.FeedbackFormDivision))
	}
	if u.FeedbackFormStartDate != nil {
		ent.FeedbackFormStartDate = u.FeedbackFormStartDate
	}
	if u.FeedbackFormEndDate != nil {
		ent.FeedbackFormEndDate = u.FeedbackFormEndDate
		ent.FeedbackFormIsExpired = false
	}
	if u.FeedbackFormQuestions != nil {
		ent.FeedbackFormQuestions = ToQuestions(*u.FeedbackFormQuestions)
	}
	if u.FeedbackFormTargetEmails != nil {
		ent.FeedbackFormTargetEmails = NormalizeEmails(*u.FeedbackFormTargetEmails)
	}
}

// DatesValid: end >= start.
func DatesValid(ent *model.FeedbackFormModel) bool {
	if ent.FeedbackFormStartDate == nil || ent.FeedbackFormEndDate == nil {
		return true
	}
	return !ent.FeedbackFormEndDate.Before(*ent.FeedbackFormStartDate)
}

func FromModel(ent model.FeedbackFormModel) FormResponse {
	var deletedAt *time.Time
	if ent.FeedbackFormDeletedAt.Valid {
		t := ent.FeedbackFormDeletedAt.Time
		deletedAt = &t
	}
	qs := []model.Question(ent.FeedbackFormQuestions)
	if qs == nil {
		qs = []model.Question{}
	}
	emails := []string(ent.FeedbackFormTargetEmails)
	if emails == nil {
		emails = []string{}
	}
	return FormResponse{
		FeedbackFormID:           ent.FeedbackFormID,
		FeedbackFormTitle:        ent.FeedbackFormTitle,
		FeedbackFormSlug:         ent.FeedbackFormSlug,
		FeedbackFormSemesterID:   ent.FeedbackFormSemesterID,
		FeedbackFormDivision:     ent.FeedbackFormDivision,
		FeedbackFormStatus:       ent.FeedbackFormStatus,
		FeedbackFormStartDate:    ent.FeedbackFormStartDate,
		FeedbackFormEndDate:      ent.FeedbackFormEndDate,
		FeedbackFormIsExpired:    ent.FeedbackFormIsExpired,
		FeedbackFormQuestions:    qs,
		FeedbackFormTargetEmails: emails,
		FeedbackFormPublishedAt:  ent.FeedbackFormPublishedAt,
		FeedbackFormClosedAt:     ent.FeedbackFormClosedAt,
		FeedbackFormCreatedAt:    ent.FeedbackFormCreatedAt,
		FeedbackFormUpdatedAt:    ent.FeedbackFormUpdatedAt,
		FeedbackFormDeletedAt:    deletedAt,
	}
}

func ToPublic(ent model.FeedbackFormModel) PublicFormResponse {
	qs := []model.Question(ent.FeedbackFormQuestions)
	if qs == nil {
		qs = []model.Question{}
	}
	return PublicFormResponse{
		FeedbackFormTitle:     ent.FeedbackFormTitle,
		FeedbackFormSlug:      ent.FeedbackFormSlug,
		FeedbackFormDivision:  ent.FeedbackFormDivision,
		FeedbackFormEndDate:   ent.FeedbackFormEndDate,
		FeedbackFormQuestions: qs,
	}
}
