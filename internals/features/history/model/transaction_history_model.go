package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// One row per borrow. Open means transaction_return_approved = false.
// Lifecycle: borrowed → returned=true (borrower) → return_approved=true (owner).
type TransactionHistoryModel struct {
	TransactionID             uuid.UUID `gorm:"column:transaction_id;primaryKey;type:uuid" json:"transaction_id"`
	TransactionBookID         uuid.UUID `gorm:"column:transaction_book_id;type:uuid;not null;index" json:"transaction_book_id"`
	TransactionUserID         uuid.UUID `gorm:"column:transaction_user_id;type:uuid;not null;index" json:"transaction_user_id"`
	TransactionReturned       bool      `gorm:"column:transaction_returned;not null;default:false" json:"transaction_returned"`
	TransactionReturnApproved bool      `gorm:"column:transaction_return_approved;not null;default:false" json:"transaction_return_approved"`
	TransactionCreatedAt      time.Time `gorm:"column:transaction_created_at;autoCreateTime" json:"transaction_created_at"`
	TransactionUpdatedAt      time.Time `gorm:"column:transaction_updated_at;autoUpdateTime" json:"transaction_updated_at"`
}

func (TransactionHistoryModel) TableName() string {
	return "book_transaction_histories"
}

func (m *TransactionHistoryModel) BeforeCreate(tx *gorm.DB) error {
	if m.TransactionID == uuid.Nil {
		m.TransactionID = uuid.New()
	}
	return nil
}
