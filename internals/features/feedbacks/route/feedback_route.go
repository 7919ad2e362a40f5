package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"booknetwork_backend/internals/cache"
	feedbackController "booknetwork_backend/internals/features/feedbacks/controller"
	feedbackService "booknetwork_backend/internals/features/feedbacks/service"
)

func FeedbackRoutes(api fiber.Router, db *gorm.DB, store *cache.Store) {
	ctrl := feedbackController.NewFeedbackController(feedbackService.NewFeedbackService(db, store))

	feedbacks := api.Group("/feedbacks")
	feedbacks.Post("/", ctrl.CreateFeedback)
	feedbacks.Get("/book/:book_id", ctrl.GetAllFeedbacksByBook)
}
