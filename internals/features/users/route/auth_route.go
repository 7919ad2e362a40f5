package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "booknetwork_backend/internals/features/users/controller"
	authService "booknetwork_backend/internals/features/users/service"
	"booknetwork_backend/internals/helpers/mailer"
	"booknetwork_backend/internals/middlewares"
)

// AuthRoutes registers the public authentication endpoints. Login, register
// and forgot-password carry their own rate limiters.
func AuthRoutes(app fiber.Router, db *gorm.DB, m *mailer.Mailer) {
	ctrl := authController.NewAuthController(authService.NewAuthService(db, m))

	auth := app.Group("/api/auth")
	auth.Post("/register", middlewares.RegisterRateLimiter(), ctrl.Register)
	auth.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
	auth.Get("/activate", ctrl.Activate)
	auth.Post("/forgot-password", middlewares.ForgotPasswordRateLimiter(), ctrl.ForgotPassword)
	auth.Post("/reset-password", ctrl.ResetPassword)
}
