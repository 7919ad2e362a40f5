// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"booknetwork_backend/internals/cache"
	"booknetwork_backend/internals/configs"
	bookRoute "booknetwork_backend/internals/features/books/route"
	feedbackRoute "booknetwork_backend/internals/features/feedbacks/route"
	lendingRoute "booknetwork_backend/internals/features/history/route"
	authRoute "booknetwork_backend/internals/features/users/route"
	"booknetwork_backend/internals/helpers/filestore"
	"booknetwork_backend/internals/helpers/mailer"
	authMiddleware "booknetwork_backend/internals/middlewares/auth"
)

var startTime time.Time

// SetupRoutes wires every endpoint. The cache store and file store are
// shared across features so a lending or feedback mutation invalidates the
// cached book entries.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	store := cache.New(5 * time.Minute)
	files := filestore.New(configs.UploadDir)
	mail := mailer.NewFromEnv()

	BaseRoutes(app, db)

	log.Println("[INFO] Setting up AuthRoutes...")
	authRoute.AuthRoutes(app, db, mail)

	log.Println("[INFO] Setting up protected /api group...")
	api := app.Group("/api", authMiddleware.AuthMiddleware(db))

	// lending first: /books/borrowed and /books/returned must win over /books/:id
	lendingRoute.LendingRoutes(api, db, store)
	bookRoute.BookRoutes(api, db, store, files)
	feedbackRoute.FeedbackRoutes(api, db, store)
}
