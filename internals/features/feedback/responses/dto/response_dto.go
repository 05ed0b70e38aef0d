// file: internals/features/feedback/responses/dto/response_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"reflectify_backend/internals/features/feedback/responses/model"
)

type SubmitResponseDTO struct {
	Email   string         `json:"email" validate:"required,email"`
	Answers map[string]any `json:"answers" validate:"required"`
}

type FeedbackResponseResponse struct {
	FeedbackResponseID              uuid.UUID      `json:"feedback_response_id"`
	FeedbackResponseFormID          uuid.UUID      `json:"feedback_response_form_id"`
	FeedbackResponseRespondentEmail string         `json:"feedback_response_respondent_email"`
	FeedbackResponseAnswers         map[string]any `json:"feedback_response_answers"`
	FeedbackResponseSubmittedAt     time.Time      `json:"feedback_response_submitted_at"`
}

func FromModel(m model.FeedbackResponseModel) FeedbackResponseResponse {
	answers := map[string]any(m.FeedbackResponseAnswers)
	if answers == nil {
		answers = map[string]any{}
	}
	return FeedbackResponseResponse{
		FeedbackResponseID:              m.FeedbackResponseID,
		FeedbackResponseFormID:          m.FeedbackResponseFormID,
		FeedbackResponseRespondentEmail: m.FeedbackResponseRespondentEmail,
		FeedbackResponseAnswers:         answers,
		FeedbackResponseSubmittedAt:     m.FeedbackResponseSubmittedAt,
	}
}
