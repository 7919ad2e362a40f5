package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"booknetwork_backend/internals/cache"
	"booknetwork_backend/internals/errs"
	"booknetwork_backend/internals/features/books/dto"
	"booknetwork_backend/internals/features/books/model"
	feedbackModel "booknetwork_backend/internals/features/feedbacks/model"
	"booknetwork_backend/internals/helpers/filestore"
	"booknetwork_backend/internals/testutil"
)

func newBookService(t *testing.T) (*BookService, *gorm.DB) {
	t.Helper()
	db := testutil.OpenTestDB(t)
	svc := NewBookService(db, cache.New(time.Minute), filestore.New(t.TempDir()))
	return svc, db
}

func addFeedback(t *testing.T, db *gorm.DB, bookID, reviewerID uuid.UUID, rate float64) {
	t.Helper()
	require.NoError(t, db.Create(&feedbackModel.FeedbackModel{
		FeedbackBookID:    bookID,
		FeedbackRate:      rate,
		FeedbackComment:   "comment",
		FeedbackCreatedBy: reviewerID,
	}).Error)
}

func TestCreateBook(t *testing.T) {
	svc, db := newBookService(t)
	owner := testutil.CreateUser(t, db, "Jane", "Doe")

	id, err := svc.Create(context.Background(), owner.UserID, dto.CreateBookRequest{
		BookTitle:      "The Go Programming Language",
		BookAuthorName: "Donovan & Kernighan",
		BookISBN:       "978-0134190440",
		BookSynopsis:   "A tour of Go.",
		BookShareable:  true,
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, id)

	var saved model.BookModel
	require.NoError(t, db.First(&saved, "book_id = ?", id).Error)
	assert.Equal(t, owner.UserID, saved.BookOwnerID)
	assert.Equal(t, owner.UserID, saved.BookCreatedBy)
	assert.True(t, saved.BookShareable)
	assert.False(t, saved.BookArchived)
}

func TestCreateBookRejectsBlankFields(t *testing.T) {
	svc, db := newBookService(t)
	owner := testutil.CreateUser(t, db, "Jane", "Doe")

	_, err := svc.Create(context.Background(), owner.UserID, dto.CreateBookRequest{
		BookTitle:      "   ",
		BookAuthorName: "Someone",
		BookISBN:       "123",
		BookSynopsis:   "text",
	})
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
}

func TestFindByID(t *testing.T) {
	svc, db := newBookService(t)
	owner := testutil.CreateUser(t, db, "Jane", "Doe")
	book := testutil.CreateBook(t, db, owner.UserID, "Dune", true, false)

	resp, err := svc.FindByID(context.Background(), book.BookID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", resp.BookTitle)
	assert.Equal(t, "Jane Doe", resp.BookOwner)
	assert.Equal(t, 0.0, resp.BookRate)

	_, err = svc.FindByID(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}

func TestFindByIDAverageRating(t *testing.T) {
	svc, db := newBookService(t)
	owner := testutil.CreateUser(t, db, "Jane", "Doe")
	reviewer := testutil.CreateUser(t, db, "John", "Smith")
	book := testutil.CreateBook(t, db, owner.UserID, "Dune", true, false)

	addFeedback(t, db, book.BookID, reviewer.UserID, 3)
	addFeedback(t, db, book.BookID, reviewer.UserID, 4)
	addFeedback(t, db, book.BookID, reviewer.UserID, 4)

	// mean of 3, 4, 4 is 3.666..., rounded to one decimal
	resp, err := svc.FindByID(context.Background(), book.BookID)
	require.NoError(t, err)
	assert.Equal(t, 3.7, resp.BookRate)
}

func TestFindAllDisplayable(t *testing.T) {
	svc, db := newBookService(t)
	owner := testutil.CreateUser(t, db, "Jane", "Doe")
	caller := testutil.CreateUser(t, db, "John", "Smith")

	visible := testutil.CreateBook(t, db, owner.UserID, "Visible", true, false)
	testutil.CreateBook(t, db, owner.UserID, "Archived", true, true)
	testutil.CreateBook(t, db, owner.UserID, "Private", false, false)
	testutil.CreateBook(t, db, caller.UserID, "Mine", true, false)

	page, err := svc.FindAllDisplayable(context.Background(), caller.UserID, 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, visible.BookID, page.Items[0].BookID)
	assert.Equal(t, int64(1), page.Pagination.Total)
}

func TestFindAllDisplayableOrderAndPaging(t *testing.T) {
	svc, db := newBookService(t)
	owner := testutil.CreateUser(t, db, "Jane", "Doe")
	caller := testutil.CreateUser(t, db, "John", "Smith")

	base := time.Now().Add(-time.Hour)
	titles := []string{"first", "second", "third"}
	for i, title := range titles {
		b := testutil.CreateBook(t, db, owner.UserID, title, true, false)
		require.NoError(t, db.Model(&model.BookModel{}).
			Where("book_id = ?", b.BookID).
			Update("book_created_at", base.Add(time.Duration(i)*time.Minute)).Error)
	}

	page, err := svc.FindAllDisplayable(context.Background(), caller.UserID, 1, 2)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "third", page.Items[0].BookTitle)
	assert.Equal(t, "second", page.Items[1].BookTitle)
	assert.Equal(t, int64(3), page.Pagination.Total)

	page, err = svc.FindAllDisplayable(context.Background(), caller.UserID, 2, 2)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "first", page.Items[0].BookTitle)
}

func TestFindAllByOwnerIncludesHiddenBooks(t *testing.T) {
	svc, db := newBookService(t)
	owner := testutil.CreateUser(t, db, "Jane", "Doe")

	testutil.CreateBook(t, db, owner.UserID, "Shared", true, false)
	testutil.CreateBook(t, db, owner.UserID, "Hidden", false, true)

	page, err := svc.FindAllByOwner(context.Background(), owner.UserID, 1, 10)
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
}

func TestUpdateShareableStatus(t *testing.T) {
	svc, db := newBookService(t)
	owner := testutil.CreateUser(t, db, "Jane", "Doe")
	stranger := testutil.CreateUser(t, db, "John", "Smith")
	book := testutil.CreateBook(t, db, owner.UserID, "Dune", true, false)

	_, err := svc.UpdateShareableStatus(context.Background(), book.BookID, stranger.UserID)
	require.Error(t, err)
	assert.True(t, errs.IsNotPermitted(err))

	_, err = svc.UpdateShareableStatus(context.Background(), book.BookID, owner.UserID)
	require.NoError(t, err)

	var saved model.BookModel
	require.NoError(t, db.First(&saved, "book_id = ?", book.BookID).Error)
	assert.False(t, saved.BookShareable)

	// second toggle flips it back
	_, err = svc.UpdateShareableStatus(context.Background(), book.BookID, owner.UserID)
	require.NoError(t, err)
	require.NoError(t, db.First(&saved, "book_id = ?", book.BookID).Error)
	assert.True(t, saved.BookShareable)
}

func TestUpdateArchivedStatus(t *testing.T) {
	svc, db := newBookService(t)
	owner := testutil.CreateUser(t, db, "Jane", "Doe")
	book := testutil.CreateBook(t, db, owner.UserID, "Dune", true, false)

	_, err := svc.UpdateArchivedStatus(context.Background(), book.BookID, owner.UserID)
	require.NoError(t, err)

	var saved model.BookModel
	require.NoError(t, db.First(&saved, "book_id = ?", book.BookID).Error)
	assert.True(t, saved.BookArchived)

	_, err = svc.UpdateArchivedStatus(context.Background(), uuid.New(), owner.UserID)
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}

func TestUploadCover(t *testing.T) {
	svc, db := newBookService(t)
	owner := testutil.CreateUser(t, db, "Jane", "Doe")
	stranger := testutil.CreateUser(t, db, "John", "Smith")
	book := testutil.CreateBook(t, db, owner.UserID, "Dune", true, false)
	payload := []byte{0x89, 0x50, 0x4E, 0x47}

	err := svc.UploadCover(context.Background(), book.BookID, owner.UserID, "application/pdf", payload)
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))

	err = svc.UploadCover(context.Background(), book.BookID, stranger.UserID, "image/png", payload)
	require.Error(t, err)
	assert.True(t, errs.IsNotPermitted(err))

	err = svc.UploadCover(context.Background(), book.BookID, owner.UserID, "image/png", payload)
	require.NoError(t, err)

	var saved model.BookModel
	require.NoError(t, db.First(&saved, "book_id = ?", book.BookID).Error)
	require.NotEmpty(t, saved.BookCover)

	stored, err := svc.Files.Read(saved.BookCover)
	require.NoError(t, err)
	assert.Equal(t, payload, stored)
}
