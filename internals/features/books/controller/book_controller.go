package controller

import (
	"context"
	"io"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"booknetwork_backend/internals/features/books/dto"
	"booknetwork_backend/internals/features/books/service"
	helper "booknetwork_backend/internals/helpers"
)

var validateBook = validator.New()

type BookController struct {
	Service *service.BookService
}

func NewBookController(svc *service.BookService) *BookController {
	return &BookController{Service: svc}
}

// =============================
// Create Book
// =============================
func (ctrl *BookController) CreateBook(c *fiber.Ctx) error {
	callerID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	var body dto.CreateBookRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateBook.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	id, err := ctrl.Service.Create(c.UserContext(), callerID, body)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "Book created", fiber.Map{"book_id": id})
}

// =============================
// Get Book By ID
// =============================
func (ctrl *BookController) GetBook(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid book ID")
	}

	resp, err := ctrl.Service.FindByID(c.UserContext(), id)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "", resp)
}

// =============================
// List books visible to the caller
// =============================
func (ctrl *BookController) GetAllBooks(c *fiber.Ctx) error {
	callerID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	p := helper.ResolvePaging(c, 10, 100)

	page, err := ctrl.Service.FindAllDisplayable(c.UserContext(), callerID, p.Page, p.PerPage)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonList(c, "", page.Items, page.Pagination)
}

// =============================
// List caller's own books
// =============================
func (ctrl *BookController) GetAllBooksByOwner(c *fiber.Ctx) error {
	callerID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	p := helper.ResolvePaging(c, 10, 100)

	page, err := ctrl.Service.FindAllByOwner(c.UserContext(), callerID, p.Page, p.PerPage)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonList(c, "", page.Items, page.Pagination)
}

// =============================
// Toggle shareable / archived (owner only)
// =============================
func (ctrl *BookController) UpdateShareableStatus(c *fiber.Ctx) error {
	return ctrl.toggle(c, ctrl.Service.UpdateShareableStatus)
}

func (ctrl *BookController) UpdateArchivedStatus(c *fiber.Ctx) error {
	return ctrl.toggle(c, ctrl.Service.UpdateArchivedStatus)
}

func (ctrl *BookController) toggle(c *fiber.Ctx, op func(ctx context.Context, bookID, callerID uuid.UUID) (uuid.UUID, error)) error {
	callerID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	bookID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid book ID")
	}

	id, err := op(c.UserContext(), bookID, callerID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "", fiber.Map{"book_id": id})
}

// =============================
// Upload Cover (multipart)
// =============================
func (ctrl *BookController) UploadBookCover(c *fiber.Ctx) error {
	callerID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	bookID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid book ID")
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Missing cover file")
	}
	f, err := fh.Open()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Unreadable cover file")
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Unreadable cover file")
	}

	contentType := fh.Header.Get("Content-Type")
	if err := ctrl.Service.UploadCover(c.UserContext(), bookID, callerID, contentType, data); err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "Cover uploaded", fiber.Map{"book_id": bookID})
}
