package dto

import (
	"time"

	"FINTRACK_BACK-END/internal/models"
)

// RegisterRequest represents the request payload for user registration
type RegisterRequest struct {
	Name     string `json:"name" example:"Alice"`
	Email    string `json:"email" example:"alice@example.com"`
	Password string `json:"password" example:"correct-horse"`
}

// RegisterResponse is returned after an account has been created.
// VerificationURL is only present in demo email mode.
type RegisterResponse struct {
	Success         bool   `json:"success"`
	Message         string `json:"message"`
	UserID          string `json:"userId"`
	VerificationURL string `json:"verificationUrl,omitempty"`
}

// VerifyEmailRequest carries a verification token
type VerifyEmailRequest struct {
	Token string `json:"token"`
}

// VerifyEmailResponse is returned by email verification. SessionToken is
// omitted when the account had already been verified.
type VerifyEmailResponse struct {
	Success      bool         `json:"success"`
	Message      string       `json:"message"`
	User         UserResponse `json:"user"`
	SessionToken string       `json:"sessionToken,omitempty"`
}

// LoginRequest represents the request payload for user login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse represents the response after successful authentication
type AuthResponse struct {
	User         UserResponse `json:"user"`
	SessionToken string       `json:"sessionToken"`
}

// ForgotPasswordRequest asks for a password reset link
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResendVerificationRequest asks for a new verification link
type ResendVerificationRequest struct {
	Email string `json:"email"`
}

// ChangePasswordRequest replaces the password of the signed-in user
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ResetPasswordRequest sets a new password with a reset token
type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// MessageResponse is a plain acknowledgement
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// DemoVerificationResponse exposes the last verification link in demo mode
type DemoVerificationResponse struct {
	Email           string `json:"email"`
	VerificationURL string `json:"verificationUrl"`
}

// UpdateProfileRequest changes the account's display name
type UpdateProfileRequest struct {
	Name string `json:"name"`
}

// UserResponse represents user data in API responses
type UserResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Verified  bool   `json:"verified"`
	CreatedAt string `json:"createdAt"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		Verified:  u.Verified,
		CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339),
	}
}
