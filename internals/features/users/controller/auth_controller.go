package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"booknetwork_backend/internals/features/users/dto"
	"booknetwork_backend/internals/features/users/service"
	helper "booknetwork_backend/internals/helpers"
)

var validateAuth = validator.New()

type AuthController struct {
	Service *service.AuthService
}

func NewAuthController(svc *service.AuthService) *AuthController {
	return &AuthController{Service: svc}
}

// =============================
// Register
// =============================
func (ctrl *AuthController) Register(c *fiber.Ctx) error {
	var body dto.RegisterRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateAuth.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	if err := ctrl.Service.Register(c.UserContext(), body); err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "Registered. Check your email for the activation code", nil)
}

// =============================
// Login
// =============================
func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	var body dto.LoginRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateAuth.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	resp, err := ctrl.Service.Login(c.UserContext(), body)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "Logged in", resp)
}

// =============================
// Activate account
// =============================
func (ctrl *AuthController) Activate(c *fiber.Ctx) error {
	code := c.Query("token")
	if code == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Missing activation token")
	}
	if err := ctrl.Service.Activate(c.UserContext(), code); err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "Account activated", nil)
}

// =============================
// Forgot / Reset password
// =============================
func (ctrl *AuthController) ForgotPassword(c *fiber.Ctx) error {
	var body dto.ForgotPasswordRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateAuth.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	if err := ctrl.Service.ForgotPassword(c.UserContext(), body); err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "Reset code sent to your email", nil)
}

func (ctrl *AuthController) ResetPassword(c *fiber.Ctx) error {
	code := c.Query("token")
	if code == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Missing reset token")
	}

	var body dto.ResetPasswordRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateAuth.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	if err := ctrl.Service.ResetPassword(c.UserContext(), code, body); err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "Password updated", nil)
}
