package controller

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"booknetwork_backend/internals/features/history/service"
	helper "booknetwork_backend/internals/helpers"
)

type LendingController struct {
	Service *service.LendingService
}

func NewLendingController(svc *service.LendingService) *LendingController {
	return &LendingController{Service: svc}
}

// =============================
// Borrow / Return / Approve
// =============================
func (ctrl *LendingController) BorrowBook(c *fiber.Ctx) error {
	return ctrl.transition(c, ctrl.Service.Borrow, "Book borrowed")
}

func (ctrl *LendingController) ReturnBorrowedBook(c *fiber.Ctx) error {
	return ctrl.transition(c, ctrl.Service.ReturnBorrowed, "Book returned")
}

func (ctrl *LendingController) ApproveReturnBorrowedBook(c *fiber.Ctx) error {
	return ctrl.transition(c, ctrl.Service.ApproveReturn, "Return approved")
}

func (ctrl *LendingController) transition(c *fiber.Ctx, op func(ctx context.Context, bookID, callerID uuid.UUID) (uuid.UUID, error), message string) error {
	callerID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	bookID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid book ID")
	}

	transactionID, err := op(c.UserContext(), bookID, callerID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, message, fiber.Map{"transaction_id": transactionID})
}

// =============================
// Borrowed / Returned listings
// =============================
func (ctrl *LendingController) GetAllBorrowedBooks(c *fiber.Ctx) error {
	callerID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	p := helper.ResolvePaging(c, 10, 100)

	page, err := ctrl.Service.FindAllBorrowed(c.UserContext(), callerID, p.Page, p.PerPage)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonList(c, "", page.Items, page.Pagination)
}

func (ctrl *LendingController) GetAllReturnedBooks(c *fiber.Ctx) error {
	callerID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	p := helper.ResolvePaging(c, 10, 100)

	page, err := ctrl.Service.FindAllReturned(c.UserContext(), callerID, p.Page, p.PerPage)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonList(c, "", page.Items, page.Pagination)
}
