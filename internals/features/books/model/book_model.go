package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookModel struct {
	BookID         uuid.UUID `gorm:"column:book_id;primaryKey;type:uuid" json:"book_id"`
	BookTitle      string    `gorm:"column:book_title;type:varchar(255);not null" json:"book_title"`
	BookAuthorName string    `gorm:"column:book_author_name;type:varchar(255);not null" json:"book_author_name"`
	BookISBN       string    `gorm:"column:book_isbn;type:varchar(32);not null" json:"book_isbn"`
	BookSynopsis   string    `gorm:"column:book_synopsis;type:text;not null" json:"book_synopsis"`
	BookCover      string    `gorm:"column:book_cover;type:text" json:"book_cover"`
	BookArchived   bool      `gorm:"column:book_archived;not null;default:false" json:"book_archived"`
	BookShareable  bool      `gorm:"column:book_shareable;not null;default:false" json:"book_shareable"`

	// Owner never changes after creation.
	BookOwnerID uuid.UUID `gorm:"column:book_owner_id;type:uuid;not null;index" json:"book_owner_id"`

	BookCreatedBy uuid.UUID `gorm:"column:book_created_by;type:uuid" json:"book_created_by"`
	BookUpdatedBy uuid.UUID `gorm:"column:book_updated_by;type:uuid" json:"book_updated_by"`
	BookCreatedAt time.Time `gorm:"column:book_created_at;autoCreateTime" json:"book_created_at"`
	BookUpdatedAt time.Time `gorm:"column:book_updated_at;autoUpdateTime" json:"book_updated_at"`
}

func (BookModel) TableName() string {
	return "books"
}

func (m *BookModel) BeforeCreate(tx *gorm.DB) error {
	if m.BookID == uuid.Nil {
		m.BookID = uuid.New()
	}
	return nil
}
