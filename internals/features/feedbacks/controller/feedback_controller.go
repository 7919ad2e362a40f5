package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"booknetwork_backend/internals/features/feedbacks/dto"
	"booknetwork_backend/internals/features/feedbacks/service"
	helper "booknetwork_backend/internals/helpers"
)

var validateFeedback = validator.New()

type FeedbackController struct {
	Service *service.FeedbackService
}

func NewFeedbackController(svc *service.FeedbackService) *FeedbackController {
	return &FeedbackController{Service: svc}
}

// =============================
// Submit feedback
// =============================
func (ctrl *FeedbackController) CreateFeedback(c *fiber.Ctx) error {
	callerID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	var body dto.FeedbackRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	// rating range [0,5] and required comment are enforced here, before
	// the feedback service is reached
	if err := validateFeedback.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	id, err := ctrl.Service.Save(c.UserContext(), callerID, body)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "Feedback saved", fiber.Map{"feedback_id": id})
}

// =============================
// List feedback for a book
// =============================
func (ctrl *FeedbackController) GetAllFeedbacksByBook(c *fiber.Ctx) error {
	callerID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	bookID, err := uuid.Parse(c.Params("book_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid book ID")
	}
	p := helper.ResolvePaging(c, 10, 100)

	page, err := ctrl.Service.FindAllByBook(c.UserContext(), bookID, callerID, p.Page, p.PerPage)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonList(c, "", page.Items, page.Pagination)
}
