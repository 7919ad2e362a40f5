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
	"booknetwork_backend/internals/features/feedbacks/dto"
	"booknetwork_backend/internals/features/feedbacks/model"
	"booknetwork_backend/internals/testutil"
)

func newFeedbackService(t *testing.T) (*FeedbackService, *gorm.DB) {
	t.Helper()
	db := testutil.OpenTestDB(t)
	return NewFeedbackService(db, cache.New(time.Minute)), db
}

func TestSaveFeedback(t *testing.T) {
	svc, db := newFeedbackService(t)
	owner := testutil.CreateUser(t, db, "Jane", "Doe")
	reviewer := testutil.CreateUser(t, db, "John", "Smith")
	book := testutil.CreateBook(t, db, owner.UserID, "Dune", true, false)

	id, err := svc.Save(context.Background(), reviewer.UserID, dto.FeedbackRequest{
		FeedbackRate:    4.5,
		FeedbackComment: "Great read",
		FeedbackBookID:  book.BookID,
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, id)

	var saved model.FeedbackModel
	require.NoError(t, db.First(&saved, "feedback_id = ?", id).Error)
	assert.Equal(t, 4.5, saved.FeedbackRate)
	assert.Equal(t, reviewer.UserID, saved.FeedbackCreatedBy)
}

func TestSaveFeedbackRejections(t *testing.T) {
	svc, db := newFeedbackService(t)
	owner := testutil.CreateUser(t, db, "Jane", "Doe")
	reviewer := testutil.CreateUser(t, db, "John", "Smith")
	own := testutil.CreateBook(t, db, owner.UserID, "Own", true, false)
	archived := testutil.CreateBook(t, db, owner.UserID, "Archived", true, true)

	ctx := context.Background()

	_, err := svc.Save(ctx, owner.UserID, dto.FeedbackRequest{
		FeedbackRate: 3, FeedbackComment: "c", FeedbackBookID: own.BookID,
	})
	require.Error(t, err)
	assert.True(t, errs.IsNotPermitted(err))
	assert.EqualError(t, err, "You cannot give a feedback to your own book")

	_, err = svc.Save(ctx, reviewer.UserID, dto.FeedbackRequest{
		FeedbackRate: 3, FeedbackComment: "c", FeedbackBookID: archived.BookID,
	})
	require.Error(t, err)
	assert.True(t, errs.IsNotPermitted(err))

	_, err = svc.Save(ctx, reviewer.UserID, dto.FeedbackRequest{
		FeedbackRate: 3, FeedbackComment: "c", FeedbackBookID: uuid.New(),
	})
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}

func TestFindAllByBookMarksOwnFeedback(t *testing.T) {
	svc, db := newFeedbackService(t)
	owner := testutil.CreateUser(t, db, "Jane", "Doe")
	reviewer := testutil.CreateUser(t, db, "John", "Smith")
	other := testutil.CreateUser(t, db, "Alex", "Brown")
	book := testutil.CreateBook(t, db, owner.UserID, "Dune", true, false)

	ctx := context.Background()

	_, err := svc.Save(ctx, reviewer.UserID, dto.FeedbackRequest{
		FeedbackRate: 5, FeedbackComment: "mine", FeedbackBookID: book.BookID,
	})
	require.NoError(t, err)
	_, err = svc.Save(ctx, other.UserID, dto.FeedbackRequest{
		FeedbackRate: 2, FeedbackComment: "theirs", FeedbackBookID: book.BookID,
	})
	require.NoError(t, err)

	page, err := svc.FindAllByBook(ctx, book.BookID, reviewer.UserID, 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)

	for _, item := range page.Items {
		if item.FeedbackComment == "mine" {
			assert.True(t, item.OwnFeedback)
		} else {
			assert.False(t, item.OwnFeedback)
		}
	}
}
