// internals/features/history/service/lending_service.go
package service

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"booknetwork_backend/internals/cache"
	"booknetwork_backend/internals/errs"
	bookModel "booknetwork_backend/internals/features/books/model"
	feedbackModel "booknetwork_backend/internals/features/feedbacks/model"
	"booknetwork_backend/internals/features/history/dto"
	"booknetwork_backend/internals/features/history/model"
	helper "booknetwork_backend/internals/helpers"
	"booknetwork_backend/internals/policy"
)

// LendingService drives the borrow → return → approve state machine.
// Every transition runs as one read-check-write unit inside DB.Transaction,
// and the final write is guarded by the flags it transitions from, so a
// racing request loses with OperationNotPermitted instead of corrupting
// the history.
type LendingService struct {
	DB    *gorm.DB
	Cache *cache.Store
}

func NewLendingService(db *gorm.DB, store *cache.Store) *LendingService {
	return &LendingService{DB: db, Cache: store}
}

type HistoryPage struct {
	Items      []dto.BorrowedBookResponse `json:"items"`
	Pagination helper.Pagination          `json:"pagination"`
}

/* =========================================================
   BORROW
   ========================================================= */

func (s *LendingService) Borrow(ctx context.Context, bookID, callerID uuid.UUID) (uuid.UUID, error) {
	transactionID := uuid.New()

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		book, err := loadBook(tx, bookID)
		if err != nil {
			return err
		}
		if !policy.IsActionable(book.BookArchived, book.BookShareable) {
			return errs.NotPermitted("This requested book cannot be borrowed since it is archived or not shareable")
		}
		if policy.IsOwner(book.BookOwnerID, callerID) {
			return errs.NotPermitted("You cannot borrow your own book")
		}

		// Existence check and insert in one statement: the NOT EXISTS guard
		// re-validates against the latest persisted state, so two concurrent
		// borrows for the same (book, borrower) can never both insert.
		now := time.Now()
		res := tx.Exec(`
			INSERT INTO book_transaction_histories
				(transaction_id, transaction_book_id, transaction_user_id,
				 transaction_returned, transaction_return_approved,
				 transaction_created_at, transaction_updated_at)
			SELECT ?, ?, ?, ?, ?, ?, ?
			WHERE NOT EXISTS (
				SELECT 1 FROM book_transaction_histories
				WHERE transaction_book_id = ?
				  AND transaction_user_id = ?
				  AND transaction_return_approved = ?
			)`,
			transactionID, bookID, callerID, false, false, now, now,
			bookID, callerID, false,
		)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errs.NotPermitted("This requested book is already borrowed")
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	s.Cache.InvalidateBook(bookID)
	return transactionID, nil
}

/* =========================================================
   RETURN (borrower)
   ========================================================= */

func (s *LendingService) ReturnBorrowed(ctx context.Context, bookID, callerID uuid.UUID) (uuid.UUID, error) {
	var transactionID uuid.UUID

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		book, err := loadBook(tx, bookID)
		if err != nil {
			return err
		}
		if !policy.IsActionable(book.BookArchived, book.BookShareable) {
			return errs.NotPermitted("This requested book cannot be returned since it is archived or not shareable")
		}
		if policy.IsOwner(book.BookOwnerID, callerID) {
			return errs.NotPermitted("You cannot borrow or return your own book")
		}

		var h model.TransactionHistoryModel
		err = tx.First(&h,
			"transaction_book_id = ? AND transaction_user_id = ? AND transaction_returned = ? AND transaction_return_approved = ?",
			bookID, callerID, false, false,
		).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errs.NotPermitted("You didn't borrow this book")
			}
			return err
		}

		res := tx.Model(&model.TransactionHistoryModel{}).
			Where("transaction_id = ? AND transaction_returned = ?", h.TransactionID, false).
			Update("transaction_returned", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errs.NotPermitted("You didn't borrow this book")
		}
		transactionID = h.TransactionID
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	s.Cache.InvalidateBook(bookID)
	return transactionID, nil
}

/* =========================================================
   APPROVE RETURN (owner)
   ========================================================= */

func (s *LendingService) ApproveReturn(ctx context.Context, bookID, callerID uuid.UUID) (uuid.UUID, error) {
	var transactionID uuid.UUID

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		book, err := loadBook(tx, bookID)
		if err != nil {
			return err
		}
		if !policy.IsActionable(book.BookArchived, book.BookShareable) {
			return errs.NotPermitted("This requested book cannot be returned since it is archived or not shareable")
		}
		if !policy.IsOwner(book.BookOwnerID, callerID) {
			return errs.NotPermitted("You cannot approve the return of a book you do not own")
		}

		var h model.TransactionHistoryModel
		err = tx.First(&h,
			"transaction_book_id = ? AND transaction_returned = ? AND transaction_return_approved = ?",
			bookID, true, false,
		).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errs.NotPermitted("The book is not returned yet. You cannot approve its return")
			}
			return err
		}

		res := tx.Model(&model.TransactionHistoryModel{}).
			Where("transaction_id = ? AND transaction_return_approved = ?", h.TransactionID, false).
			Update("transaction_return_approved", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errs.NotPermitted("The book is not returned yet. You cannot approve its return")
		}
		transactionID = h.TransactionID
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	s.Cache.InvalidateBook(bookID)
	return transactionID, nil
}

/* =========================================================
   LISTINGS
   ========================================================= */

// FindAllBorrowed lists the caller's borrow history, newest first.
func (s *LendingService) FindAllBorrowed(ctx context.Context, callerID uuid.UUID, page, perPage int) (HistoryPage, error) {
	q := s.DB.WithContext(ctx).
		Table("book_transaction_histories AS h").
		Joins("JOIN books AS b ON b.book_id = h.transaction_book_id").
		Where("h.transaction_user_id = ?", callerID)
	return s.pageQuery(ctx, q, page, perPage)
}

// FindAllReturned lists the history rows on books the caller owns, so an
// owner can see pending and approved returns.
func (s *LendingService) FindAllReturned(ctx context.Context, ownerID uuid.UUID, page, perPage int) (HistoryPage, error) {
	q := s.DB.WithContext(ctx).
		Table("book_transaction_histories AS h").
		Joins("JOIN books AS b ON b.book_id = h.transaction_book_id").
		Where("b.book_owner_id = ?", ownerID)
	return s.pageQuery(ctx, q, page, perPage)
}

/* =========================================================
   Internal
   ========================================================= */

// loadBook reads the book inside the current transaction and, where the
// dialect supports it, takes a row lock so all transitions for one book
// serialize. SQLite has a single writer and needs no lock clause.
func loadBook(tx *gorm.DB, bookID uuid.UUID) (bookModel.BookModel, error) {
	q := tx
	if tx.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var book bookModel.BookModel
	if err := q.First(&book, "book_id = ?", bookID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return book, errs.NotFound("Book", bookID)
		}
		return book, err
	}
	return book, nil
}

type historyRow struct {
	TransactionID             uuid.UUID
	TransactionBookID         uuid.UUID
	TransactionReturned       bool
	TransactionReturnApproved bool
	BookTitle                 string
	BookAuthorName            string
	BookISBN                  string `gorm:"column:book_isbn"`
}

func (s *LendingService) pageQuery(ctx context.Context, q *gorm.DB, page, perPage int) (HistoryPage, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return HistoryPage{}, err
	}

	var rows []historyRow
	err := q.Session(&gorm.Session{}).
		Select("h.transaction_id, h.transaction_book_id, h.transaction_returned, h.transaction_return_approved, b.book_title, b.book_author_name, b.book_isbn").
		Order("h.transaction_created_at DESC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Scan(&rows).Error
	if err != nil {
		return HistoryPage{}, err
	}

	bookIDs := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		bookIDs = append(bookIDs, r.TransactionBookID)
	}
	rates, err := s.averageRatings(ctx, bookIDs)
	if err != nil {
		return HistoryPage{}, err
	}

	items := make([]dto.BorrowedBookResponse, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.BorrowedBookResponse{
			TransactionID:  r.TransactionID,
			BookID:         r.TransactionBookID,
			BookTitle:      r.BookTitle,
			BookAuthorName: r.BookAuthorName,
			BookISBN:       r.BookISBN,
			BookRate:       rates[r.TransactionBookID],
			Returned:       r.TransactionReturned,
			ReturnApproved: r.TransactionReturnApproved,
		})
	}

	return HistoryPage{
		Items:      items,
		Pagination: helper.BuildPaginationFromPage(total, page, perPage),
	}, nil
}

func (s *LendingService) averageRatings(ctx context.Context, bookIDs []uuid.UUID) (map[uuid.UUID]float64, error) {
	out := make(map[uuid.UUID]float64, len(bookIDs))
	if len(bookIDs) == 0 {
		return out, nil
	}
	var rows []struct {
		FeedbackBookID uuid.UUID
		Avg            float64
	}
	err := s.DB.WithContext(ctx).Model(&feedbackModel.FeedbackModel{}).
		Where("feedback_book_id IN ?", bookIDs).
		Select("feedback_book_id, AVG(feedback_rate) AS avg").
		Group("feedback_book_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[r.FeedbackBookID] = math.Round(r.Avg*10) / 10
	}
	return out, nil
}
