package handlers

import (
	"context"
	"crypto/subtle"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	googleOAuth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"FINTRACK_BACK-END/internal/apperrors"
	"FINTRACK_BACK-END/internal/config"
	"FINTRACK_BACK-END/internal/dto"
	"FINTRACK_BACK-END/internal/services"
	"FINTRACK_BACK-END/internal/utils"
)

// stateCookie carries the OAuth state between the login redirect and the
// callback on the same browser.
const (
	stateCookie    = "oauth_state"
	stateCookieTTL = 10 * 60
)

// ProfileFetcher exchanges an authorization code for the Google profile.
type ProfileFetcher func(ctx context.Context, code string) (*dto.GoogleUserInfo, error)

// GoogleAuthHandler handles Google OAuth authentication
type GoogleAuthHandler struct {
	auth         *services.AuthService
	oauth2Config *oauth2.Config
	fetch        ProfileFetcher
}

// NewGoogleAuthHandler creates a new GoogleAuthHandler instance
func NewGoogleAuthHandler(auth *services.AuthService, cfg *config.GoogleOAuthConfig) *GoogleAuthHandler {
	oauth2Config := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}

	h := &GoogleAuthHandler{auth: auth, oauth2Config: oauth2Config}
	h.fetch = h.exchange
	return h
}

// WithProfileFetcher replaces the code exchange, mainly for tests.
func (h *GoogleAuthHandler) WithProfileFetcher(f ProfileFetcher) *GoogleAuthHandler {
	h.fetch = f
	return h
}

// GoogleLogin initiates Google OAuth login
// @Summary Google OAuth login
// @Description Initiate Google OAuth login flow
// @Tags authentication
// @Produce json
// @Success 200 {object} dto.GoogleLoginResponse "Google OAuth URL"
// @Router /auth/google/login [get]
func (h *GoogleAuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	state := uuid.New().String()
	authURL := h.oauth2Config.AuthCodeURL(state, oauth2.AccessTypeOffline)
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/auth/google",
		MaxAge:   stateCookieTTL,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})

	utils.WriteJSONResponse(w, http.StatusOK, dto.GoogleLoginResponse{AuthURL: authURL, State: state})
}

// GoogleCallback handles Google OAuth callback
// @Summary Google OAuth callback
// @Description Exchange the authorization code and start a session. Google accounts are treated as verified
// @Tags authentication
// @Produce json
// @Param code query string true "Authorization code from Google"
// @Param state query string true "State returned by /auth/google/login, checked against the oauth_state cookie"
// @Success 200 {object} dto.AuthResponse "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Missing authorization code"
// @Failure 401 {object} dto.ErrorResponse "Invalid state or authorization code"
// @Router /auth/google/callback [get]
func (h *GoogleAuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		utils.WriteAppError(w, apperrors.Validation("Authorization code is required"))
		return
	}
	if !validState(r) {
		utils.WriteAppError(w, apperrors.Unauthorized("Invalid OAuth state"))
		return
	}
	// single use
	http.SetCookie(w, &http.Cookie{Name: stateCookie, Path: "/auth/google", MaxAge: -1, HttpOnly: true})

	info, err := h.fetch(r.Context(), code)
	if err != nil {
		utils.WriteAppError(w, apperrors.Wrap(apperrors.ErrUnauthorized, "Invalid authorization code", err))
		return
	}

	res, err := h.auth.LoginWithGoogle(r.Context(), services.GoogleProfile{
		Email:    info.Email,
		Name:     info.Name,
		Verified: info.Verified,
	})
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.AuthResponse{
		User:         dto.NewUserResponse(res.User),
		SessionToken: res.Token,
	})
}

func validState(r *http.Request) bool {
	state := r.URL.Query().Get("state")
	c, err := r.Cookie(stateCookie)
	if err != nil || state == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(state), []byte(c.Value)) == 1
}

func (h *GoogleAuthHandler) exchange(ctx context.Context, code string) (*dto.GoogleUserInfo, error) {
	token, err := h.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}

	service, err := googleOAuth2.NewService(ctx, option.WithTokenSource(h.oauth2Config.TokenSource(ctx, token)))
	if err != nil {
		return nil, err
	}

	userInfo, err := service.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return nil, err
	}

	verified := false
	if userInfo.VerifiedEmail != nil {
		verified = *userInfo.VerifiedEmail
	}

	return &dto.GoogleUserInfo{
		ID:       userInfo.Id,
		Email:    userInfo.Email,
		Name:     userInfo.Name,
		Picture:  userInfo.Picture,
		Verified: verified,
	}, nil
}
