// internals/features/books/service/book_service.go
package service

import (
	"context"
	"math"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"booknetwork_backend/internals/cache"
	"booknetwork_backend/internals/constants"
	"booknetwork_backend/internals/errs"
	"booknetwork_backend/internals/features/books/dto"
	"booknetwork_backend/internals/features/books/model"
	feedbackModel "booknetwork_backend/internals/features/feedbacks/model"
	userModel "booknetwork_backend/internals/features/users/model"
	helper "booknetwork_backend/internals/helpers"
	"booknetwork_backend/internals/helpers/filestore"
	"booknetwork_backend/internals/policy"
)

type BookService struct {
	DB    *gorm.DB
	Cache *cache.Store
	Files *filestore.Service
}

func NewBookService(db *gorm.DB, store *cache.Store, files *filestore.Service) *BookService {
	return &BookService{DB: db, Cache: store, Files: files}
}

// BookPage is one page of book views plus its pagination meta.
type BookPage struct {
	Items      []dto.BookResponse `json:"items"`
	Pagination helper.Pagination  `json:"pagination"`
}

/* =========================================================
   CREATE
   ========================================================= */

func (s *BookService) Create(ctx context.Context, ownerID uuid.UUID, req dto.CreateBookRequest) (uuid.UUID, error) {
	for field, v := range map[string]string{
		"book_title":       req.BookTitle,
		"book_author_name": req.BookAuthorName,
		"book_isbn":        req.BookISBN,
		"book_synopsis":    req.BookSynopsis,
	} {
		if strings.TrimSpace(v) == "" {
			return uuid.Nil, errs.Invalid(field + " is required")
		}
	}

	m := req.ToModel(ownerID)
	if err := s.DB.WithContext(ctx).Create(&m).Error; err != nil {
		return uuid.Nil, err
	}

	s.Cache.InvalidateBook(m.BookID)
	return m.BookID, nil
}

/* =========================================================
   READS
   ========================================================= */

func (s *BookService) FindByID(ctx context.Context, id uuid.UUID) (dto.BookResponse, error) {
	key := cache.BookKey(id)
	if v, ok := s.Cache.Get(key); ok {
		if resp, ok := v.(dto.BookResponse); ok {
			return resp, nil
		}
	}

	var book model.BookModel
	if err := s.DB.WithContext(ctx).First(&book, "book_id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return dto.BookResponse{}, errs.NotFound("Book", id)
		}
		return dto.BookResponse{}, err
	}

	rate, err := s.averageRating(ctx, id)
	if err != nil {
		return dto.BookResponse{}, err
	}
	names, err := s.ownerNames(ctx, []uuid.UUID{book.BookOwnerID})
	if err != nil {
		return dto.BookResponse{}, err
	}

	resp := dto.ToBookResponse(book, names[book.BookOwnerID], rate)
	s.Cache.Set(key, resp)
	return resp, nil
}

// FindAllDisplayable lists books visible to the caller: not archived,
// shareable, and owned by someone else. Newest first.
func (s *BookService) FindAllDisplayable(ctx context.Context, callerID uuid.UUID, page, perPage int) (BookPage, error) {
	key := cache.VisibleKey(callerID, page, perPage)
	if v, ok := s.Cache.Get(key); ok {
		if p, ok := v.(BookPage); ok {
			return p, nil
		}
	}

	q := s.DB.WithContext(ctx).Model(&model.BookModel{}).
		Where("book_archived = ? AND book_shareable = ? AND book_owner_id <> ?", false, true, callerID)

	result, err := s.pageQuery(ctx, q, page, perPage)
	if err != nil {
		return BookPage{}, err
	}
	s.Cache.Set(key, result)
	return result, nil
}

// FindAllByOwner lists the caller's own books regardless of flags.
func (s *BookService) FindAllByOwner(ctx context.Context, callerID uuid.UUID, page, perPage int) (BookPage, error) {
	key := cache.OwnedKey(callerID, page, perPage)
	if v, ok := s.Cache.Get(key); ok {
		if p, ok := v.(BookPage); ok {
			return p, nil
		}
	}

	q := s.DB.WithContext(ctx).Model(&model.BookModel{}).
		Where("book_owner_id = ?", callerID)

	result, err := s.pageQuery(ctx, q, page, perPage)
	if err != nil {
		return BookPage{}, err
	}
	s.Cache.Set(key, result)
	return result, nil
}

/* =========================================================
   FLAG TOGGLES (owner only)
   ========================================================= */

func (s *BookService) UpdateShareableStatus(ctx context.Context, bookID, callerID uuid.UUID) (uuid.UUID, error) {
	err := s.toggleFlag(ctx, bookID, callerID, "book_shareable",
		"You cannot update others books shareable status")
	if err != nil {
		return uuid.Nil, err
	}
	s.Cache.InvalidateBook(bookID)
	return bookID, nil
}

func (s *BookService) UpdateArchivedStatus(ctx context.Context, bookID, callerID uuid.UUID) (uuid.UUID, error) {
	err := s.toggleFlag(ctx, bookID, callerID, "book_archived",
		"You cannot update others books archived status")
	if err != nil {
		return uuid.Nil, err
	}
	s.Cache.InvalidateBook(bookID)
	return bookID, nil
}

func (s *BookService) toggleFlag(ctx context.Context, bookID, callerID uuid.UUID, column, denyReason string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var book model.BookModel
		if err := tx.First(&book, "book_id = ?", bookID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errs.NotFound("Book", bookID)
			}
			return err
		}
		if !policy.IsOwner(book.BookOwnerID, callerID) {
			return errs.NotPermitted(denyReason)
		}
		// single-statement flip, safe under concurrent toggles
		return tx.Model(&model.BookModel{}).
			Where("book_id = ?", bookID).
			Updates(map[string]any{
				column:            gorm.Expr("NOT " + column),
				"book_updated_by": callerID,
			}).Error
	})
}

/* =========================================================
   COVER UPLOAD
   ========================================================= */

func (s *BookService) UploadCover(ctx context.Context, bookID, callerID uuid.UUID, contentType string, data []byte) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var book model.BookModel
		if err := tx.First(&book, "book_id = ?", bookID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errs.NotFound("Book", bookID)
			}
			return err
		}
		if !constants.IsAllowedCoverType(contentType) {
			return errs.Invalid("Invalid file type. Only JPEG and PNG images are allowed.")
		}
		if !policy.IsOwner(book.BookOwnerID, callerID) {
			return errs.NotPermitted("You cannot upload a cover picture for another book")
		}

		ref, err := s.Files.SaveCover(callerID, contentType, data)
		if err != nil {
			return err
		}
		return tx.Model(&model.BookModel{}).
			Where("book_id = ?", bookID).
			Updates(map[string]any{"book_cover": ref, "book_updated_by": callerID}).Error
	})
	if err != nil {
		return err
	}
	s.Cache.InvalidateBook(bookID)
	return nil
}

/* =========================================================
   Internal queries
   ========================================================= */

// averageRating is an explicit aggregation over the feedbacks table,
// rounded to one decimal. 0.0 when the book has no feedback.
func (s *BookService) averageRating(ctx context.Context, bookID uuid.UUID) (float64, error) {
	var avg float64
	err := s.DB.WithContext(ctx).Model(&feedbackModel.FeedbackModel{}).
		Where("feedback_book_id = ?", bookID).
		Select("COALESCE(AVG(feedback_rate), 0)").
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}
	return math.Round(avg*10) / 10, nil
}

func (s *BookService) averageRatings(ctx context.Context, bookIDs []uuid.UUID) (map[uuid.UUID]float64, error) {
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

func (s *BookService) ownerNames(ctx context.Context, ownerIDs []uuid.UUID) (map[uuid.UUID]string, error) {
	out := make(map[uuid.UUID]string, len(ownerIDs))
	if len(ownerIDs) == 0 {
		return out, nil
	}
	var users []userModel.UserModel
	err := s.DB.WithContext(ctx).
		Where("user_id IN ?", ownerIDs).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		out[u.UserID] = u.FullName()
	}
	return out, nil
}

func (s *BookService) pageQuery(ctx context.Context, q *gorm.DB, page, perPage int) (BookPage, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return BookPage{}, err
	}

	var books []model.BookModel
	err := q.Session(&gorm.Session{}).Order("book_created_at DESC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&books).Error
	if err != nil {
		return BookPage{}, err
	}

	bookIDs := make([]uuid.UUID, 0, len(books))
	ownerIDs := make([]uuid.UUID, 0, len(books))
	for _, b := range books {
		bookIDs = append(bookIDs, b.BookID)
		ownerIDs = append(ownerIDs, b.BookOwnerID)
	}

	rates, err := s.averageRatings(ctx, bookIDs)
	if err != nil {
		return BookPage{}, err
	}
	names, err := s.ownerNames(ctx, ownerIDs)
	if err != nil {
		return BookPage{}, err
	}

	items := make([]dto.BookResponse, 0, len(books))
	for _, b := range books {
		items = append(items, dto.ToBookResponse(b, names[b.BookOwnerID], rates[b.BookID]))
	}

	return BookPage{
		Items:      items,
		Pagination: helper.BuildPaginationFromPage(total, page, perPage),
	}, nil
}
