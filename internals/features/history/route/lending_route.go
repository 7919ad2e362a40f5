package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"booknetwork_backend/internals/cache"
	lendingController "booknetwork_backend/internals/features/history/controller"
	lendingService "booknetwork_backend/internals/features/history/service"
)

// LendingRoutes registers the borrow lifecycle endpoints under /books.
// Mounted before BookRoutes so /books/borrowed and /books/returned are not
// swallowed by the /books/:id detail route.
func LendingRoutes(api fiber.Router, db *gorm.DB, store *cache.Store) {
	ctrl := lendingController.NewLendingController(lendingService.NewLendingService(db, store))

	books := api.Group("/books")
	books.Get("/borrowed", ctrl.GetAllBorrowedBooks)
	books.Get("/returned", ctrl.GetAllReturnedBooks)
	books.Post("/borrow/:id", ctrl.BorrowBook)
	books.Patch("/borrow/return/:id", ctrl.ReturnBorrowedBook)
	books.Patch("/borrow/return/approve/:id", ctrl.ApproveReturnBorrowedBook)
}
