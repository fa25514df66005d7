package handlers

import (
	"net/http"

	"FINTRACK_BACK-END/internal/dto"
	"FINTRACK_BACK-END/internal/services"
	"FINTRACK_BACK-END/internal/utils"
)

// AccountHandler serves the signed-in user's own account.
type AccountHandler struct {
	auth *services.AuthService
}

func NewAccountHandler(auth *services.AuthService) *AccountHandler {
	return &AccountHandler{auth: auth}
}

// GetMe godoc
// @Summary      Current user
// @Tags         account
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /auth/me [get]
func (h *AccountHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(w, r)
	if !ok {
		return
	}

	user, err := h.auth.GetMe(r.Context(), userID)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.NewUserResponse(user))
}

// UpdateMe godoc
// @Summary      Update display name
// @Tags         account
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      dto.UpdateProfileRequest  true  "New name"
// @Success      200      {object}  dto.UserResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      401      {object}  dto.ErrorResponse
// @Router       /auth/me [put]
func (h *AccountHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(w, r)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		utils.WriteAppError(w, err)
		return
	}

	user, err := h.auth.UpdateName(r.Context(), userID, req.Name)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.NewUserResponse(user))
}

// ChangePassword godoc
// @Summary      Change password
// @Description  Requires the current password. Reset links issued before the change stop working
// @Tags         account
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      dto.ChangePasswordRequest  true  "Current and new password"
// @Success      200      {object}  dto.MessageResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      401      {object}  dto.ErrorResponse  "Missing session or wrong current password"
// @Router       /auth/me/password [put]
func (h *AccountHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(w, r)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		utils.WriteAppError(w, err)
		return
	}

	if err := h.auth.ChangePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		utils.WriteAppError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Success: true, Message: "Password changed successfully"})
}

// DeleteMe godoc
// @Summary      Delete account
// @Description  Removes the account together with its tokens, transactions and budgets
// @Tags         account
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.MessageResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /auth/me [delete]
func (h *AccountHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(w, r)
	if !ok {
		return
	}

	if err := h.auth.DeleteAccount(r.Context(), userID); err != nil {
		utils.WriteAppError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Success: true, Message: "Account deleted successfully"})
}
