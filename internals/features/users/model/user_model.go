package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserModel struct {
	UserID            uuid.UUID `gorm:"column:user_id;primaryKey;type:uuid" json:"user_id"`
	UserFirstName     string    `gorm:"column:user_first_name;type:varchar(100);not null" json:"user_first_name"`
	UserLastName      string    `gorm:"column:user_last_name;type:varchar(100);not null" json:"user_last_name"`
	UserEmail         string    `gorm:"column:user_email;type:varchar(255);not null;uniqueIndex" json:"user_email"`
	UserPassword      string    `gorm:"column:user_password;type:varchar(255);not null" json:"-"`
	UserEnabled       bool      `gorm:"column:user_enabled;not null;default:false" json:"user_enabled"`
	UserAccountLocked bool      `gorm:"column:user_account_locked;not null;default:false" json:"user_account_locked"`
	UserCreatedAt     time.Time `gorm:"column:user_created_at;autoCreateTime" json:"user_created_at"`
	UserUpdatedAt     time.Time `gorm:"column:user_updated_at;autoUpdateTime" json:"user_updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}

func (m *UserModel) BeforeCreate(tx *gorm.DB) error {
	if m.UserID == uuid.Nil {
		m.UserID = uuid.New()
	}
	return nil
}

func (m *UserModel) FullName() string {
	return strings.TrimSpace(m.UserFirstName + " " + m.UserLastName)
}
