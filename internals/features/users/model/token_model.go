package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Activation / password-reset codes mailed to the user. A code is spent
// once token_validated_at is set.
type TokenModel struct {
	TokenID          uuid.UUID  `gorm:"column:token_id;primaryKey;type:uuid" json:"token_id"`
	TokenValue       string     `gorm:"column:token_value;type:varchar(16);not null;index" json:"token_value"`
	TokenUserID      uuid.UUID  `gorm:"column:token_user_id;type:uuid;not null;index" json:"token_user_id"`
	TokenCreatedAt   time.Time  `gorm:"column:token_created_at;autoCreateTime" json:"token_created_at"`
	TokenExpiresAt   time.Time  `gorm:"column:token_expires_at;not null" json:"token_expires_at"`
	TokenValidatedAt *time.Time `gorm:"column:token_validated_at" json:"token_validated_at,omitempty"`
}

func (TokenModel) TableName() string {
	return "tokens"
}

func (m *TokenModel) BeforeCreate(tx *gorm.DB) error {
	if m.TokenID == uuid.Nil {
		m.TokenID = uuid.New()
	}
	return nil
}
