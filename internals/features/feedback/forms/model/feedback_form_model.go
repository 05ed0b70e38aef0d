// file: internals/features/feedback/forms/model/feedback_form_model.go
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* =========================================================
   ENUM: status form
========================================================= */

type FormStatus string

const (
	FormStatusDraft  FormStatus = "DRAFT"
	FormStatusActive FormStatus = "ACTIVE"
	FormStatusClosed FormStatus = "CLOSED"
)

func (s FormStatus) Valid() bool {
	switch s {
	case FormStatusDraft, FormStatusActive, FormStatusClosed:
		return true
	}
	return false
}

const (
	QuestionTypeRating = "rating"
	QuestionTypeText   = "text"

	RatingMin = 1
	RatingMax = 5
)

// Question disimpan sebagai elemen jsonb di feedback_form_questions.
type Question struct {
	ID        string     `json:"id"`
	Text      string     `json:"text"`
	Type      string     `json:"type"`
	FacultyID *uuid.UUID `json:"faculty_id,omitempty"`
	SubjectID *uuid.UUID `json:"subject_id,omitempty"`
	Required  bool       `json:"required"`
}

/* =========================================================
   MODEL: feedback_forms
========================================================= */

type FeedbackFormModel struct {
	FeedbackFormID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:feedback_form_id" json:"feedback_form_id"`
	FeedbackFormSemesterID uuid.UUID `gorm:"type:uuid;not null;index;column:feedback_form_semester_id" json:"feedback_form_semester_id"`

	FeedbackFormTitle    string     `gorm:"type:text;not null;column:feedback_form_title" json:"feedback_form_title"`
	FeedbackFormSlug     string     `gorm:"type:varchar(120);not null;uniqueIndex:uq_feedback_form_slug;column:feedback_form_slug" json:"feedback_form_slug"`
	FeedbackFormDivision string     `gorm:"type:varchar(32);not null;column:feedback_form_division" json:"feedback_form_division"`
	FeedbackFormStatus   FormStatus `gorm:"type:varchar(10);not null;default:'DRAFT';index;column:feedback_form_status" json:"feedback_form_status"`

	FeedbackFormStartDate *time.Time `gorm:"type:timestamptz;column:feedback_form_start_date" json:"feedback_form_start_date,omitempty"`
	FeedbackFormEndDate   *time.Time `gorm:"type:timestamptz;column:feedback_form_end_date" json:"feedback_form_end_date,omitempty"`
	FeedbackFormIsExpired bool       `gorm:"not null;default:false;column:feedback_form_is_expired" json:"feedback_form_is_expired"`

	FeedbackFormQuestions    datatypes.JSONSlice[Question] `gorm:"type:jsonb;not null;default:'[]';column:feedback_form_questions" json:"feedback_form_questions"`
	FeedbackFormTargetEmails pq.StringArray                `gorm:"type:text[];not null;default:'{}';column:feedback_form_target_emails" json:"feedback_form_target_emails"`

	FeedbackFormPublishedAt *time.Time `gorm:"type:timestamptz;column:feedback_form_published_at" json:"feedback_form_published_at,omitempty"`
	FeedbackFormClosedAt    *time.Time `gorm:"type:timestamptz;column:feedback_form_closed_at" json:"feedback_form_closed_at,omitempty"`

	FeedbackFormCreatedAt time.Time      `gorm:"type:timestamptz;not null;autoCreateTime;column:feedback_form_created_at" json:"feedback_form_created_at"`
	FeedbackFormUpdatedAt time.Time      `gorm:"type:timestamptz;not null;autoUpdateTime;column:feedback_form_updated_at" json:"feedback_form_updated_at"`
	FeedbackFormDeletedAt gorm.DeletedAt `gorm:"column:feedback_form_deleted_at;index" json:"feedback_form_deleted_at,omitempty"`
}

func (FeedbackFormModel) TableName() string { return "feedback_forms" }

func (m *FeedbackFormModel) BeforeSave(tx *gorm.DB) error {
	m.FeedbackFormTitle = strings.TrimSpace(m.FeedbackFormTitle)
	m.FeedbackFormDivision = strings.ToUpper(strings.TrimSpace(m.FeedbackFormDivision))
	if m.FeedbackFormStatus == "" {
		m.FeedbackFormStatus = FormStatusDraft
	}
	if m.FeedbackFormQuestions == nil {
		m.FeedbackFormQuestions = datatypes.JSONSlice[Question]{}
	}
	if m.FeedbackFormTargetEmails == nil {
		m.FeedbackFormTargetEmails = pq.StringArray{}
	}
	return nil
}

// AcceptsResponses: hanya ACTIVE, belum expired, dan now di dalam rentang tanggal.
func (m *FeedbackFormModel) AcceptsResponses(now time.Time) bool {
	if m.FeedbackFormStatus != FormStatusActive || m.FeedbackFormIsExpired {
		return false
	}
	if m.FeedbackFormStartDate != nil && now.Before(*m.FeedbackFormStartDate) {
		return false
	}
	if m.FeedbackFormEndDate != nil && now.After(*m.FeedbackFormEndDate) {
		return false
	}
	return true
}

// Question lookup by id.
func (m *FeedbackFormModel) Question(id string) (Question, bool) {
	for _, q := range m.FeedbackFormQuestions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}
