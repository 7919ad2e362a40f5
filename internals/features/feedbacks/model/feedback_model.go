package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FeedbackModel struct {
	FeedbackID      uuid.UUID `gorm:"column:feedback_id;primaryKey;type:uuid" json:"feedback_id"`
	FeedbackBookID  uuid.UUID `gorm:"column:feedback_book_id;type:uuid;not null;index" json:"feedback_book_id"`
	FeedbackRate    float64   `gorm:"column:feedback_rate;not null" json:"feedback_rate"`
	FeedbackComment string    `gorm:"column:feedback_comment;type:text;not null" json:"feedback_comment"`

	// Reviewer id, used to compute own_feedback at read time.
	FeedbackCreatedBy uuid.UUID `gorm:"column:feedback_created_by;type:uuid;not null;index" json:"feedback_created_by"`
	FeedbackCreatedAt time.Time `gorm:"column:feedback_created_at;autoCreateTime" json:"feedback_created_at"`
	FeedbackUpdatedAt time.Time `gorm:"column:feedback_updated_at;autoUpdateTime" json:"feedback_updated_at"`
}

func (FeedbackModel) TableName() string {
	return "feedbacks"
}

func (m *FeedbackModel) BeforeCreate(tx *gorm.DB) error {
	if m.FeedbackID == uuid.Nil {
		m.FeedbackID = uuid.New()
	}
	return nil
}
