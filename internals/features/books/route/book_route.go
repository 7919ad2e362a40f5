package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"booknetwork_backend/internals/cache"
	bookController "booknetwork_backend/internals/features/books/controller"
	bookService "booknetwork_backend/internals/features/books/service"
	"booknetwork_backend/internals/helpers/filestore"
)

// BookRoutes registers the book registry endpoints on the authenticated
// group. Static paths (/owner) must be mounted before the :id detail route.
func BookRoutes(api fiber.Router, db *gorm.DB, store *cache.Store, files *filestore.Service) {
	ctrl := bookController.NewBookController(bookService.NewBookService(db, store, files))

	books := api.Group("/books")
	books.Post("/", ctrl.CreateBook)
	books.Get("/", ctrl.GetAllBooks)
	books.Get("/owner", ctrl.GetAllBooksByOwner)
	books.Patch("/shareable/:id", ctrl.UpdateShareableStatus)
	books.Patch("/archived/:id", ctrl.UpdateArchivedStatus)
	books.Post("/cover/:id", ctrl.UploadBookCover)
	books.Get("/:id", ctrl.GetBook)
}
