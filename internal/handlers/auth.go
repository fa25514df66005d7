package handlers

import (
	"net/http"
	"strings"

	"FINTRACK_BACK-END/internal/apperrors"
	"FINTRACK_BACK-END/internal/dto"
	"FINTRACK_BACK-END/internal/services"
	"FINTRACK_BACK-END/internal/utils"
)

// AuthHandler handles registration, email verification and login
type AuthHandler struct {
	auth   *services.AuthService
	outbox *utils.OutboxMailer
}

// NewAuthHandler creates a new AuthHandler instance. outbox is only set in
// demo email mode.
func NewAuthHandler(auth *services.AuthService, outbox *utils.OutboxMailer) *AuthHandler {
	return &AuthHandler{auth: auth, outbox: outbox}
}

// Register handles user registration
// @Summary Register a new user
// @Description Create an unverified account and email a verification link
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "User registration data"
// @Success 201 {object} dto.RegisterResponse "User created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Email already registered. Unverified accounts get a new link"
// @Failure 500 {object} dto.ErrorResponse "Verification email could not be sent"
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		utils.WriteAppError(w, err)
		return
	}

	res, err := h.auth.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	message := "Registration successful. Please check your email to verify your account."
	if res.VerificationURL != "" {
		message = "Registration successful. Email delivery is in demo mode; use the verification link below."
	}
	utils.WriteJSONResponse(w, http.StatusCreated, dto.RegisterResponse{
		Success:         true,
		Message:         message,
		UserID:          res.User.ID.String(),
		VerificationURL: res.VerificationURL,
	})
}

// VerifyEmail consumes a verification token
// @Summary Verify email
// @Description Verify an account with the emailed token. Accepts the token in the JSON body or as ?token=
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.VerifyEmailRequest false "Verification token"
// @Param token query string false "Verification token"
// @Success 200 {object} dto.VerifyEmailResponse "Email verified"
// @Failure 400 {object} dto.ErrorResponse "Missing token"
// @Failure 404 {object} dto.ErrorResponse "Unknown token or user"
// @Failure 410 {object} dto.ErrorResponse "Expired token"
// @Router /auth/verify-email [post]
func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" && r.Method == http.MethodPost && r.ContentLength != 0 {
		var req dto.VerifyEmailRequest
		if err := utils.DecodeJSONRequest(r, &req); err != nil {
			utils.WriteAppError(w, err)
			return
		}
		token = req.Token
	}

	res, err := h.auth.VerifyEmail(r.Context(), token)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	resp := dto.VerifyEmailResponse{
		Success:      true,
		Message:      "Email verified successfully",
		User:         dto.NewUserResponse(res.User),
		SessionToken: res.Token,
	}
	if res.AlreadyVerified {
		resp.Message = "Email already verified"
	}
	utils.WriteJSONResponse(w, http.StatusOK, resp)
}

// ResendVerification mails a new verification link
// @Summary Resend verification email
// @Description Replace the pending verification token and email a new link. The response does not reveal whether the account exists
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.ResendVerificationRequest true "Email address"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Router /auth/resend-verification [post]
func (h *AuthHandler) ResendVerification(w http.ResponseWriter, r *http.Request) {
	var req dto.ResendVerificationRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		utils.WriteAppError(w, err)
		return
	}

	if err := h.auth.ResendVerification(r.Context(), req.Email); err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Success: true, Message: services.MsgResendVerification})
}

// Login handles user login
// @Summary Login user
// @Description Authenticate user with email and password
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.AuthResponse "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 403 {object} dto.ErrorResponse "Email not verified"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		utils.WriteAppError(w, err)
		return
	}

	res, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.AuthResponse{
		User:         dto.NewUserResponse(res.User),
		SessionToken: res.Token,
	})
}

// DemoVerification returns the last verification link sent to an email
// @Summary Demo verification link
// @Description Only available when EMAIL_MODE=demo
// @Tags authentication
// @Produce json
// @Param email query string true "Registered email"
// @Success 200 {object} dto.DemoVerificationResponse
// @Failure 404 {object} dto.ErrorResponse "No link recorded"
// @Router /auth/demo-verification [get]
func (h *AuthHandler) DemoVerification(w http.ResponseWriter, r *http.Request) {
	email := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("email")))
	if email == "" {
		utils.WriteAppError(w, apperrors.Validation("email is required"))
		return
	}
	if h.outbox == nil {
		utils.WriteAppError(w, apperrors.NotFound("Demo email mode is disabled"))
		return
	}
	link, ok := h.outbox.LastLink(email)
	if !ok {
		utils.WriteAppError(w, apperrors.NotFound("No verification link for this email"))
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.DemoVerificationResponse{Email: email, VerificationURL: link})
}
