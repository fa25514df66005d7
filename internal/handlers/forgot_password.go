package handlers

import (
	"net/http"

	"FINTRACK_BACK-END/internal/dto"
	"FINTRACK_BACK-END/internal/services"
	"FINTRACK_BACK-END/internal/utils"
)

// ForgotPasswordHandler handles forgot password functionality
type ForgotPasswordHandler struct {
	auth *services.AuthService
}

// NewForgotPasswordHandler creates a new ForgotPasswordHandler instance
func NewForgotPasswordHandler(auth *services.AuthService) *ForgotPasswordHandler {
	return &ForgotPasswordHandler{auth: auth}
}

// ForgotPassword emails a password reset link
// @Summary Request password reset
// @Description Email a reset link valid for one hour. The response does not reveal whether the account exists
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.ForgotPasswordRequest true "Email address"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Router /auth/forgot-password [post]
func (h *ForgotPasswordHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req dto.ForgotPasswordRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		utils.WriteAppError(w, err)
		return
	}

	if err := h.auth.ForgotPassword(r.Context(), req.Email); err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Success: true, Message: services.MsgForgotPassword})
}

// ResetPassword resets user's password using reset token
// @Summary Reset password
// @Description Set a new password with the token from the reset email
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.ResetPasswordRequest true "Reset token and new password"
// @Success 200 {object} dto.MessageResponse "Password reset successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid or expired reset token"
// @Router /auth/reset-password [post]
func (h *ForgotPasswordHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req dto.ResetPasswordRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		utils.WriteAppError(w, err)
		return
	}

	if err := h.auth.ResetPassword(r.Context(), req.Token, req.NewPassword); err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Success: true, Message: "Password has been reset successfully"})
}
