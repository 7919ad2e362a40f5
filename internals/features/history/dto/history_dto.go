package dto

import (
	"github.com/google/uuid"
)

// BorrowedBookResponse is one history row joined with its book, used by
// both the borrowed and the pending-return listings.
type BorrowedBookResponse struct {
	TransactionID  uuid.UUID `json:"transaction_id"`
	BookID         uuid.UUID `json:"book_id"`
	BookTitle      string    `json:"book_title"`
	BookAuthorName string    `json:"book_author_name"`
	BookISBN       string    `json:"book_isbn"`
	BookRate       float64   `json:"book_rate"`
	Returned       bool      `json:"returned"`
	ReturnApproved bool      `json:"return_approved"`
}
