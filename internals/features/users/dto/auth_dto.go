package dto

import (
	"github.com/google/uuid"
)

// ============================
// Request DTOs
// ============================

type RegisterRequest struct {
	UserFirstName string `json:"user_first_name" validate:"required,min=1"`
	UserLastName  string `json:"user_last_name" validate:"required,min=1"`
	UserEmail     string `json:"user_email" validate:"required,email"`
	UserPassword  string `json:"user_password" validate:"required,min=8"`
}

type LoginRequest struct {
	UserEmail    string `json:"user_email" validate:"required,email"`
	UserPassword string `json:"user_password" validate:"required"`
}

type ForgotPasswordRequest struct {
	UserEmail string `json:"user_email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	NewPassword          string `json:"new_password" validate:"required,min=8"`
	ConfirmationPassword string `json:"confirmation_password" validate:"required,min=8"`
}

// ============================
// Response DTOs
// ============================

type LoginResponse struct {
	Token    string    `json:"token"`
	UserID   uuid.UUID `json:"user_id"`
	FullName string    `json:"full_name"`
}
