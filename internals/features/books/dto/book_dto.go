package dto

import (
	"time"

	"github.com/google/uuid"

	"booknetwork_backend/internals/features/books/model"
)

// ============================
// Request DTO
// ============================

type CreateBookRequest struct {
	BookTitle      string `json:"book_title" validate:"required,min=1"`
	BookAuthorName string `json:"book_author_name" validate:"required,min=1"`
	BookISBN       string `json:"book_isbn" validate:"required,min=1"`
	BookSynopsis   string `json:"book_synopsis" validate:"required,min=1"`
	BookShareable  bool   `json:"book_shareable"`
}

func (r CreateBookRequest) ToModel(ownerID uuid.UUID) model.BookModel {
	return model.BookModel{
		BookTitle:      r.BookTitle,
		BookAuthorName: r.BookAuthorName,
		BookISBN:       r.BookISBN,
		BookSynopsis:   r.BookSynopsis,
		BookShareable:  r.BookShareable,
		BookArchived:   false,
		BookOwnerID:    ownerID,
		BookCreatedBy:  ownerID,
		BookUpdatedBy:  ownerID,
	}
}

// ============================
// Response DTO
// ============================

type BookResponse struct {
	BookID         uuid.UUID `json:"book_id"`
	BookTitle      string    `json:"book_title"`
	BookAuthorName string    `json:"book_author_name"`
	BookISBN       string    `json:"book_isbn"`
	BookSynopsis   string    `json:"book_synopsis"`
	BookCover      string    `json:"book_cover,omitempty"`
	BookOwner      string    `json:"book_owner"`
	BookRate       float64   `json:"book_rate"`
	BookArchived   bool      `json:"book_archived"`
	BookShareable  bool      `json:"book_shareable"`
	BookCreatedAt  time.Time `json:"book_created_at"`
}

func ToBookResponse(m model.BookModel, ownerName string, rate float64) BookResponse {
	return BookResponse{
		BookID:         m.BookID,
		BookTitle:      m.BookTitle,
		BookAuthorName: m.BookAuthorName,
		BookISBN:       m.BookISBN,
		BookSynopsis:   m.BookSynopsis,
		BookCover:      m.BookCover,
		BookOwner:      ownerName,
		BookRate:       rate,
		BookArchived:   m.BookArchived,
		BookShareable:  m.BookShareable,
		BookCreatedAt:  m.BookCreatedAt,
	}
}
