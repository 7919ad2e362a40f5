// internals/features/feedbacks/service/feedback_service.go
package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"booknetwork_backend/internals/cache"
	"booknetwork_backend/internals/errs"
	bookModel "booknetwork_backend/internals/features/books/model"
	"booknetwork_backend/internals/features/feedbacks/dto"
	"booknetwork_backend/internals/features/feedbacks/model"
	helper "booknetwork_backend/internals/helpers"
	"booknetwork_backend/internals/policy"
)

type FeedbackService struct {
	DB    *gorm.DB
	Cache *cache.Store
}

func NewFeedbackService(db *gorm.DB, store *cache.Store) *FeedbackService {
	return &FeedbackService{DB: db, Cache: store}
}

type FeedbackPage struct {
	Items      []dto.FeedbackResponse `json:"items"`
	Pagination helper.Pagination      `json:"pagination"`
}

// Save stores a feedback entry. The rating range [0,5] is the caller's
// contract, enforced on the request DTO before this layer is reached.
func (s *FeedbackService) Save(ctx context.Context, callerID uuid.UUID, req dto.FeedbackRequest) (uuid.UUID, error) {
	m := req.ToModel(callerID)

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var book bookModel.BookModel
		if err := tx.First(&book, "book_id = ?", req.FeedbackBookID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errs.NotFound("Book", req.FeedbackBookID)
			}
			return err
		}
		if !policy.IsActionable(book.BookArchived, book.BookShareable) {
			return errs.NotPermitted("You cannot give a feedback for an archived or not shareable book")
		}
		if policy.IsOwner(book.BookOwnerID, callerID) {
			return errs.NotPermitted("You cannot give a feedback to your own book")
		}
		return tx.Create(&m).Error
	})
	if err != nil {
		return uuid.Nil, err
	}

	// the book's average rating changed
	s.Cache.InvalidateBook(req.FeedbackBookID)
	return m.FeedbackID, nil
}

// FindAllByBook pages the feedback for a book; own_feedback marks the
// caller's entries.
func (s *FeedbackService) FindAllByBook(ctx context.Context, bookID, callerID uuid.UUID, page, perPage int) (FeedbackPage, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}

	q := s.DB.WithContext(ctx).Model(&model.FeedbackModel{}).
		Where("feedback_book_id = ?", bookID)

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return FeedbackPage{}, err
	}

	var feedbacks []model.FeedbackModel
	err := q.Session(&gorm.Session{}).
		Order("feedback_created_at DESC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&feedbacks).Error
	if err != nil {
		return FeedbackPage{}, err
	}

	items := make([]dto.FeedbackResponse, 0, len(feedbacks))
	for _, f := range feedbacks {
		items = append(items, dto.ToFeedbackResponse(f, callerID))
	}

	return FeedbackPage{
		Items:      items,
		Pagination: helper.BuildPaginationFromPage(total, page, perPage),
	}, nil
}
