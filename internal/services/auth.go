// Package services contains the business logic behind the HTTP handlers.
// This file implements AuthService: registration with email verification,
// login, Google sign-in, password reset and account management.
package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"FINTRACK_BACK-END/internal/apperrors"
	"FINTRACK_BACK-END/internal/config"
	"FINTRACK_BACK-END/internal/logging"
	"FINTRACK_BACK-END/internal/middleware"
	"FINTRACK_BACK-END/internal/models"
	"FINTRACK_BACK-END/internal/store"
	"FINTRACK_BACK-END/internal/utils"
)

const minPasswordLength = 8

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Client-facing messages shared with tests.
const (
	MsgInvalidCredentials = "Invalid email or password"
	MsgEmailSendFailed    = "Failed to send verification email. Please try again."
	MsgForgotPassword     = "If an account with that email exists, a password reset link has been sent"
	MsgResendVerification = "If that email is waiting for verification, a new link has been sent"
	MsgEmailRegistered    = "Email already registered"
	MsgVerificationResent = "Email already registered but not verified. A new verification link has been sent."
	MsgTokenExpired       = "Verification token has expired. Request a new verification email or register again."
)

// RegisterResult is returned by Register. VerificationURL is only filled
// in demo mode, where no email leaves the process.
type RegisterResult struct {
	User            *models.User
	VerificationURL string
}

// VerifyResult is returned by VerifyEmail. Token is empty when the account
// had already been verified.
type VerifyResult struct {
	User            *models.User
	Token           string
	AlreadyVerified bool
}

// LoginResult carries the user and a fresh session token.
type LoginResult struct {
	User  *models.User
	Token string
}

// GoogleProfile is the subset of Google userinfo used for sign-in.
type GoogleProfile struct {
	Email    string
	Name     string
	Verified bool
}

type AuthService struct {
	store  *store.Store
	mailer utils.Mailer
	cfg    *config.Config
	log    logging.Logger
	now    func() time.Time
}

func NewAuthService(st *store.Store, mailer utils.Mailer, cfg *config.Config, log logging.Logger) *AuthService {
	return &AuthService{store: st, mailer: mailer, cfg: cfg, log: log.With("component", "auth"), now: time.Now}
}

// WithClock replaces the time source; used by tests.
func (s *AuthService) WithClock(now func() time.Time) *AuthService {
	s.now = now
	return s
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an unverified account and mails a verification link.
// If the email cannot be dispatched the account and its token are removed
// again and the call fails.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*RegisterResult, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return nil, apperrors.Validation("Name, email and password are required")
	}
	if !emailPattern.MatchString(email) {
		return nil, apperrors.Validation("Invalid email format")
	}
	if len(password) < minPasswordLength {
		return nil, apperrors.Validation("Password must be at least 8 characters long")
	}

	if existing, err := s.store.Users.GetByEmail(ctx, email); err == nil {
		if existing.Verified {
			return nil, apperrors.Conflict(MsgEmailRegistered)
		}
		// still pending: replace its token so the owner can finish signing up
		if _, err := s.issueVerification(ctx, existing); err != nil {
			s.log.Warn(ctx, "reissuing verification on re-registration", "email", email, "error", err)
		}
		return nil, apperrors.Conflict(MsgVerificationResent)
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.Internal(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	now := s.now()
	user := &models.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.Users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperrors.Conflict(MsgEmailRegistered)
		}
		return nil, apperrors.Internal(err)
	}

	link, err := s.issueVerification(ctx, user)
	if err != nil {
		s.log.Error(ctx, "verification email failed, rolling back registration", "email", email, "error", err)
		s.rollbackRegistration(ctx, user)
		return nil, apperrors.Wrap(apperrors.ErrInternal, MsgEmailSendFailed, err)
	}

	s.log.Info(ctx, "user registered", "user_id", user.ID)
	res := &RegisterResult{User: user}
	if s.cfg.IsDemoMode() {
		res.VerificationURL = link
	}
	return res, nil
}

// issueVerification stores a fresh token for user, replacing any earlier
// one, and mails the link.
func (s *AuthService) issueVerification(ctx context.Context, user *models.User) (string, error) {
	token, err := newVerificationToken()
	if err != nil {
		return "", err
	}
	now := s.now()
	vt := &models.VerificationToken{
		Email:     user.Email,
		Token:     token,
		Expires:   now.Add(s.cfg.App.VerificationTokenTTL),
		CreatedAt: now,
	}
	if err := s.store.Tokens.Upsert(ctx, vt); err != nil {
		return "", fmt.Errorf("store token: %w", err)
	}

	link := s.cfg.App.BaseURL + "/verify-email?token=" + url.QueryEscape(token)
	if err := s.mailer.SendVerificationEmail(ctx, user.Email, user.Name, link); err != nil {
		return "", err
	}
	return link, nil
}

// ResendVerification mails a new verification link to an account that has
// not been verified yet. Like ForgotPassword it never reveals whether the
// account exists.
func (s *AuthService) ResendVerification(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return apperrors.Validation("Email is required")
	}

	user, err := s.store.Users.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.log.Error(ctx, "resend verification lookup", "error", err)
		}
		return nil
	}
	if user.Verified {
		return nil
	}
	if _, err := s.issueVerification(ctx, user); err != nil {
		s.log.Error(ctx, "resending verification email", "user_id", user.ID, "error", err)
		return nil
	}
	s.log.Info(ctx, "verification email resent", "user_id", user.ID)
	return nil
}

func (s *AuthService) rollbackRegistration(ctx context.Context, user *models.User) {
	if err := s.store.Tokens.DeleteByEmail(ctx, user.Email); err != nil {
		s.log.Error(ctx, "rollback: deleting verification token", "email", user.Email, "error", err)
	}
	if err := s.store.Users.Delete(ctx, user.ID); err != nil && !errors.Is(err, store.ErrNotFound) {
		s.log.Error(ctx, "rollback: deleting user", "user_id", user.ID, "error", err)
	}
}

// newVerificationToken returns 32 hex characters from crypto/rand.
func newVerificationToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// VerifyEmail consumes a verification token. The token is marked used
// rather than removed, so submitting it again while it is unexpired
// reports success without minting another session.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) (*VerifyResult, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, apperrors.Validation("Verification token is required")
	}

	vt, err := s.store.Tokens.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("Invalid verification token")
		}
		return nil, apperrors.Internal(err)
	}

	if vt.Expired(s.now()) {
		s.deleteToken(ctx, token)
		return nil, apperrors.Expired(MsgTokenExpired)
	}

	user, err := s.store.Users.GetByEmail(ctx, vt.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.deleteToken(ctx, token)
			return nil, apperrors.NotFound("User not found")
		}
		return nil, apperrors.Internal(err)
	}

	if user.Verified {
		if !vt.Used {
			s.markUsed(ctx, token)
		}
		return &VerifyResult{User: user, AlreadyVerified: true}, nil
	}

	user.Verified = true
	user.UpdatedAt = s.now()
	if err := s.store.Users.Update(ctx, user); err != nil {
		return nil, apperrors.Internal(err)
	}
	s.markUsed(ctx, token)

	session, err := middleware.GenerateSessionToken(user.ID, user.Email, &s.cfg.JWT)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	s.log.Info(ctx, "email verified", "user_id", user.ID)
	return &VerifyResult{User: user, Token: session}, nil
}

func (s *AuthService) markUsed(ctx context.Context, token string) {
	if err := s.store.Tokens.MarkUsed(ctx, token); err != nil {
		s.log.Warn(ctx, "marking verification token used", "error", err)
	}
}

func (s *AuthService) deleteToken(ctx context.Context, token string) {
	if err := s.store.Tokens.Delete(ctx, token); err != nil {
		s.log.Warn(ctx, "deleting verification token", "error", err)
	}
}

// Login checks credentials. Unknown email and wrong password produce the
// same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, apperrors.Validation("Email and password are required")
	}

	user, err := s.store.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.Unauthorized(MsgInvalidCredentials)
		}
		return nil, apperrors.Internal(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.Unauthorized(MsgInvalidCredentials)
	}
	if !user.Verified {
		return nil, apperrors.Forbidden("Please verify your email before logging in")
	}

	return s.issueSession(user)
}

func (s *AuthService) issueSession(user *models.User) (*LoginResult, error) {
	token, err := middleware.GenerateSessionToken(user.ID, user.Email, &s.cfg.JWT)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return &LoginResult{User: user, Token: token}, nil
}

// LoginWithGoogle signs in with a Google profile, creating a verified
// account on first use. The created account has an unusable password.
func (s *AuthService) LoginWithGoogle(ctx context.Context, p GoogleProfile) (*LoginResult, error) {
	email := normalizeEmail(p.Email)
	if email == "" || !p.Verified {
		return nil, apperrors.Unauthorized("Google account email is not verified")
	}

	user, err := s.store.Users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if !user.Verified {
			user.Verified = true
			user.UpdatedAt = s.now()
			if err := s.store.Users.Update(ctx, user); err != nil {
				return nil, apperrors.Internal(err)
			}
			s.deleteTokensFor(ctx, email)
		}
	case errors.Is(err, store.ErrNotFound):
		user, err = s.createGoogleUser(ctx, email, p.Name)
		if err != nil {
			return nil, err
		}
	default:
		return nil, apperrors.Internal(err)
	}

	return s.issueSession(user)
}

func (s *AuthService) createGoogleUser(ctx context.Context, email, name string) (*models.User, error) {
	secret, err := newVerificationToken()
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if name = strings.TrimSpace(name); name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}
	now := s.now()
	user := &models.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Verified:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.Users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperrors.Conflict(MsgEmailRegistered)
		}
		return nil, apperrors.Internal(err)
	}
	s.log.Info(ctx, "user created from google sign-in", "user_id", user.ID)
	return user, nil
}

func (s *AuthService) deleteTokensFor(ctx context.Context, email string) {
	if err := s.store.Tokens.DeleteByEmail(ctx, email); err != nil {
		s.log.Warn(ctx, "deleting verification tokens", "email", email, "error", err)
	}
}

// ForgotPassword mails a reset link to verified accounts. The outcome is
// not revealed to the caller.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return apperrors.Validation("Email is required")
	}

	user, err := s.store.Users.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.log.Error(ctx, "forgot password lookup", "error", err)
		}
		return nil
	}
	if !user.Verified {
		return nil
	}

	token, err := middleware.GenerateResetToken(user.ID, user.Email, middleware.PasswordFingerprint(user.PasswordHash), &s.cfg.JWT)
	if err != nil {
		s.log.Error(ctx, "generating reset token", "user_id", user.ID, "error", err)
		return nil
	}
	link := s.cfg.App.BaseURL + "/reset-password?token=" + url.QueryEscape(token)
	if err := s.mailer.SendPasswordResetEmail(ctx, user.Email, user.Name, link); err != nil {
		s.log.Error(ctx, "password reset email failed", "user_id", user.ID, "error", err)
	}
	return nil
}

// ResetPassword sets a new password from a reset token. A token stops
// working as soon as the password it was issued for changes.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if strings.TrimSpace(token) == "" || newPassword == "" {
		return apperrors.Validation("Reset token and new password are required")
	}
	if len(newPassword) < minPasswordLength {
		return apperrors.Validation("Password must be at least 8 characters long")
	}

	invalid := apperrors.Unauthorized("Invalid or expired reset token")
	claims, err := middleware.ValidateResetToken(token, &s.cfg.JWT)
	if err != nil {
		return invalid
	}
	user, err := s.store.Users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return invalid
		}
		return apperrors.Internal(err)
	}
	if middleware.PasswordFingerprint(user.PasswordHash) != claims.Fingerprint {
		return invalid
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.Internal(err)
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = s.now()
	if err := s.store.Users.Update(ctx, user); err != nil {
		return apperrors.Internal(err)
	}
	s.log.Info(ctx, "password reset", "user_id", user.ID)
	return nil
}

// ChangePassword replaces the password of a signed-in user after checking
// the current one. The new hash changes the password fingerprint, so reset
// links issued earlier stop working.
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, current, newPassword string) error {
	if current == "" || newPassword == "" {
		return apperrors.Validation("Current and new password are required")
	}
	if len(newPassword) < minPasswordLength {
		return apperrors.Validation("Password must be at least 8 characters long")
	}

	user, err := s.GetMe(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
		return apperrors.Unauthorized("Current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.Internal(err)
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = s.now()
	if err := s.store.Users.Update(ctx, user); err != nil {
		return apperrors.Internal(err)
	}
	s.log.Info(ctx, "password changed", "user_id", user.ID)
	return nil
}

// GetMe returns the session user. A deleted account is reported as
// unauthorized since the session no longer maps to anyone.
func (s *AuthService) GetMe(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.store.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.Unauthorized("User not found")
		}
		return nil, apperrors.Internal(err)
	}
	return user, nil
}

func (s *AuthService) UpdateName(ctx context.Context, userID uuid.UUID, name string) (*models.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.Validation("Name is required")
	}
	user, err := s.GetMe(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Name = name
	user.UpdatedAt = s.now()
	if err := s.store.Users.Update(ctx, user); err != nil {
		return nil, apperrors.Internal(err)
	}
	return user, nil
}

// DeleteAccount removes the user and everything it owns.
func (s *AuthService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	if err := s.store.Users.Delete(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperrors.Unauthorized("User not found")
		}
		return apperrors.Internal(err)
	}
	s.log.Info(ctx, "account deleted", "user_id", userID)
	return nil
}
