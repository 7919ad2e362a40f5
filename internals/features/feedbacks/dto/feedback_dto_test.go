package dto

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedbackRequestValidation(t *testing.T) {
	validate := validator.New()

	valid := FeedbackRequest{
		FeedbackRate:    5,
		FeedbackComment: "ok",
		FeedbackBookID:  uuid.New(),
	}
	require.NoError(t, validate.Struct(valid))

	overMax := valid
	overMax.FeedbackRate = 6.0
	assert.Error(t, validate.Struct(overMax))

	negative := valid
	negative.FeedbackRate = -0.5
	assert.Error(t, validate.Struct(negative))

	blankComment := valid
	blankComment.FeedbackComment = ""
	assert.Error(t, validate.Struct(blankComment))

	noBook := valid
	noBook.FeedbackBookID = uuid.Nil
	assert.Error(t, validate.Struct(noBook))
}

func TestToFeedbackResponseOwnFlag(t *testing.T) {
	reviewer := uuid.New()
	m := FeedbackRequest{
		FeedbackRate:    3.5,
		FeedbackComment: "fine",
		FeedbackBookID:  uuid.New(),
	}.ToModel(reviewer)

	own := ToFeedbackResponse(m, reviewer)
	assert.True(t, own.OwnFeedback)
	assert.Equal(t, 3.5, own.FeedbackRate)

	other := ToFeedbackResponse(m, uuid.New())
	assert.False(t, other.OwnFeedback)
}
