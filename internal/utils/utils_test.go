package utils

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FINTRACK_BACK-END/internal/apperrors"
	"FINTRACK_BACK-END/internal/config"
)

func TestWriteAppError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"conflict", apperrors.Conflict("Email already registered"), 409, "Email already registered"},
		{"expired", apperrors.Expired("Verification token has expired"), 410, "Verification token has expired"},
		{"unknown", errors.New("pq: connection refused"), 500, "Internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteAppError(rec, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.body, body["error"])
		})
	}
}

func TestDecodeJSONRequest(t *testing.T) {
	var v struct {
		Email string `json:"email"`
	}

	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"a@example.com"}`))
	require.NoError(t, DecodeJSONRequest(req, &v))
	assert.Equal(t, "a@example.com", v.Email)

	req = httptest.NewRequest("POST", "/", strings.NewReader(`{"email":`))
	err := DecodeJSONRequest(req, &v)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Equal(t, "Invalid request body", apperrors.Message(err))

	req = httptest.NewRequest("POST", "/", strings.NewReader(``))
	assert.ErrorIs(t, DecodeJSONRequest(req, &v), apperrors.ErrValidation)
}

func TestUserContext(t *testing.T) {
	_, ok := GetUserIDFromContext(context.Background())
	assert.False(t, ok)

	id := uuid.New()
	ctx := WithUser(context.Background(), id, "a@example.com")
	got, ok := GetUserIDFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, id, got)
	email, _ := GetEmailFromContext(ctx)
	assert.Equal(t, "a@example.com", email)
}

func TestParseDate(t *testing.T) {
	d, dateOnly, err := ParseDate("2025-03-31")
	require.NoError(t, err)
	assert.True(t, dateOnly)
	assert.Equal(t, time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC), d)
	assert.Equal(t, time.Date(2025, 3, 31, 23, 59, 59, 999999999, time.UTC), EndOfDay(d))

	ts, dateOnly, err := ParseDate("2025-03-31T10:00:00Z")
	require.NoError(t, err)
	assert.False(t, dateOnly)
	assert.Equal(t, 10, ts.Hour())

	_, _, err = ParseDate("31/03/2025")
	assert.Error(t, err)
}

func TestOutboxMailer(t *testing.T) {
	o := NewOutboxMailer()
	require.NoError(t, o.SendVerificationEmail(context.Background(), "A@Example.com", "A", "http://x/verify-email?token=1"))
	require.NoError(t, o.SendVerificationEmail(context.Background(), "a@example.com", "A", "http://x/verify-email?token=2"))
	require.NoError(t, o.SendPasswordResetEmail(context.Background(), "a@example.com", "A", "http://x/reset-password?token=r"))

	link, ok := o.LastLink("a@example.com")
	require.True(t, ok)
	assert.Equal(t, "http://x/verify-email?token=2", link)

	reset, ok := o.Last("password_reset", "a@example.com")
	require.True(t, ok)
	assert.Equal(t, "http://x/reset-password?token=r", reset.Link)

	_, ok = o.LastLink("nobody@example.com")
	assert.False(t, ok)
}

func TestSMTPMailer(t *testing.T) {
	cfg := &config.Config{
		Email: config.EmailConfig{SMTPHost: "smtp.example.com", SMTPPort: "587", SMTPUsername: "bot@example.com",
			SMTPPassword: "secret", FromName: "Finance Tracker"},
		App: config.AppConfig{VerificationTokenTTL: 24 * time.Hour},
		JWT: config.JWTConfig{ResetTTL: time.Hour},
	}
	m := NewSMTPMailer(cfg)

	var gotAddr, gotFrom string
	var gotMsg []byte
	m.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotMsg = addr, from, msg
		return nil
	}

	require.NoError(t, m.SendVerificationEmail(context.Background(), "a@example.com", "Alice", "http://x/verify-email?token=abc"))
	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, "bot@example.com", gotFrom)
	assert.Contains(t, string(gotMsg), "Subject: Verify your email address")
	assert.Contains(t, string(gotMsg), "http://x/verify-email?token=abc")

	m.send = func(string, smtp.Auth, string, []string, []byte) error { return errors.New("relay down") }
	assert.Error(t, m.SendPasswordResetEmail(context.Background(), "a@example.com", "Alice", "link"))

	cfg.Email.SMTPPassword = ""
	assert.Error(t, m.SendVerificationEmail(context.Background(), "a@example.com", "Alice", "link"))
}

func TestSMTPMailer_EscapesNameAndQuotesTTL(t *testing.T) {
	cfg := &config.Config{
		Email: config.EmailConfig{SMTPHost: "smtp.example.com", SMTPPort: "587", SMTPUsername: "bot@example.com",
			SMTPPassword: "secret", FromName: "Finance Tracker"},
		App: config.AppConfig{VerificationTokenTTL: 48 * time.Hour},
		JWT: config.JWTConfig{ResetTTL: 30 * time.Minute},
	}
	m := NewSMTPMailer(cfg)
	var gotMsg []byte
	m.send = func(_ string, _ smtp.Auth, _ string, _ []string, msg []byte) error {
		gotMsg = msg
		return nil
	}
	name := `<a href="https://evil.example">Claim prize</a>`

	require.NoError(t, m.SendVerificationEmail(context.Background(), "a@example.com", name, "http://x/verify-email?token=abc"))
	body := string(gotMsg)
	htmlPart := body[strings.Index(body, "Content-Type: text/html"):]
	assert.NotContains(t, htmlPart, `<a href="https://evil.example">`)
	assert.Contains(t, htmlPart, "&lt;a href=")
	assert.Contains(t, body, "expires in 48 hours")
	assert.NotContains(t, body, "24 hours")

	require.NoError(t, m.SendPasswordResetEmail(context.Background(), "a@example.com", name, "http://x/reset-password?token=r"))
	body = string(gotMsg)
	htmlPart = body[strings.Index(body, "Content-Type: text/html"):]
	assert.NotContains(t, htmlPart, `<a href="https://evil.example">`)
	assert.Contains(t, body, "30 minutes")
}

func TestFormatTTL(t *testing.T) {
	assert.Equal(t, "24 hours", formatTTL(24*time.Hour))
	assert.Equal(t, "1 hour", formatTTL(time.Hour))
	assert.Equal(t, "90 minutes", formatTTL(90*time.Minute))
	assert.Equal(t, "1 minute", formatTTL(time.Minute))
}
