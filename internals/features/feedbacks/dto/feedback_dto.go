package dto

import (
	"github.com/google/uuid"

	"booknetwork_backend/internals/features/feedbacks/model"
)

// ============================
// Request DTO
// ============================

type FeedbackRequest struct {
	FeedbackRate    float64   `json:"feedback_rate" validate:"gte=0,lte=5"`
	FeedbackComment string    `json:"feedback_comment" validate:"required,min=1"`
	FeedbackBookID  uuid.UUID `json:"feedback_book_id" validate:"required"`
}

func (r FeedbackRequest) ToModel(reviewerID uuid.UUID) model.FeedbackModel {
	return model.FeedbackModel{
		FeedbackBookID:    r.FeedbackBookID,
		FeedbackRate:      r.FeedbackRate,
		FeedbackComment:   r.FeedbackComment,
		FeedbackCreatedBy: reviewerID,
	}
}

// ============================
// Response DTO
// ============================

type FeedbackResponse struct {
	FeedbackRate    float64 `json:"feedback_rate"`
	FeedbackComment string  `json:"feedback_comment"`
	OwnFeedback     bool    `json:"own_feedback"`
}

// ToFeedbackResponse computes own_feedback against the caller at read time.
func ToFeedbackResponse(m model.FeedbackModel, callerID uuid.UUID) FeedbackResponse {
	return FeedbackResponse{
		FeedbackRate:    m.FeedbackRate,
		FeedbackComment: m.FeedbackComment,
		OwnFeedback:     m.FeedbackCreatedBy == callerID,
	}
}
