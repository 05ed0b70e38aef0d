// file: internals/features/feedback/responses/model/feedback_response_model.go
package model

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type FeedbackResponseModel struct {
	FeedbackResponseID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:feedback_response_id" json:"feedback_response_id"`
	FeedbackResponseFormID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uq_response_form_email,where:feedback_response_deleted_at IS NULL;column:feedback_response_form_id" json:"feedback_response_form_id"`

	FeedbackResponseRespondentEmail string `gorm:"type:text;not null;uniqueIndex:uq_response_form_email,where:feedback_response_deleted_at IS NULL;column:feedback_response_respondent_email" json:"feedback_response_respondent_email"`

	// question id -> rating (number) / teks
	FeedbackResponseAnswers datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}';column:feedback_response_answers" json:"feedback_response_answers"`

	FeedbackResponseSubmittedAt time.Time `gorm:"type:timestamptz;not null;column:feedback_response_submitted_at" json:"feedback_response_submitted_at"`

	FeedbackResponseCreatedAt time.Time      `gorm:"type:timestamptz;not null;autoCreateTime;column:feedback_response_created_at" json:"feedback_response_created_at"`
	FeedbackResponseUpdatedAt time.Time      `gorm:"type:timestamptz;not null;autoUpdateTime;column:feedback_response_updated_at" json:"feedback_response_updated_at"`
	FeedbackResponseDeletedAt gorm.DeletedAt `gorm:"column:feedback_response_deleted_at;index" json:"feedback_response_deleted_at,omitempty"`
}

func (FeedbackResponseModel) TableName() string { return "feedback_responses" }

func (m *FeedbackResponseModel) BeforeSave(tx *gorm.DB) error {
	m.FeedbackResponseRespondentEmail = strings.ToLower(strings.TrimSpace(m.FeedbackResponseRespondentEmail))
	if m.FeedbackResponseSubmittedAt.IsZero() {
		m.FeedbackResponseSubmittedAt = time.Now()
	}
	return nil
}

// Rating membaca jawaban numerik. Nilai dari jsonb datang sebagai float64,
// nilai yang dibuat di kode bisa int.
func (m *FeedbackResponseModel) Rating(questionID string) (float64, bool) {
	v, ok := m.FeedbackResponseAnswers[questionID]
	if !ok || v == nil {
		return 0, false
	}
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		return f, err == nil
	}
	return 0, false
}
