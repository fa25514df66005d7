package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FINTRACK_BACK-END/internal/config"
	"FINTRACK_BACK-END/internal/logging"
	"FINTRACK_BACK-END/internal/utils"
)

func testJWTConfig() *config.JWTConfig {
	return &config.JWTConfig{Secret: "0123456789abcdef-test", SessionTTL: time.Hour, ResetTTL: time.Hour}
}

func TestSessionToken_RoundTrip(t *testing.T) {
	cfg := testJWTConfig()
	id := uuid.New()

	tok, err := GenerateSessionToken(id, "a@example.com", cfg)
	require.NoError(t, err)

	claims, err := ValidateSessionToken(tok, cfg)
	require.NoError(t, err)
	assert.Equal(t, id, claims.UserID)
	assert.Equal(t, "a@example.com", claims.Email)
	assert.NotNil(t, claims.IssuedAt)
}

func TestSessionToken_Rejections(t *testing.T) {
	cfg := testJWTConfig()
	id := uuid.New()

	t.Run("wrong secret", func(t *testing.T) {
		tok, err := GenerateSessionToken(id, "a@example.com", cfg)
		require.NoError(t, err)
		other := *cfg
		other.Secret = "another-secret-of-16+"
		_, err = ValidateSessionToken(tok, &other)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		expired := *cfg
		expired.SessionTTL = -time.Minute
		tok, err := GenerateSessionToken(id, "a@example.com", &expired)
		require.NoError(t, err)
		_, err = ValidateSessionToken(tok, cfg)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("reset token is not a session", func(t *testing.T) {
		tok, err := GenerateResetToken(id, "a@example.com", "fp", cfg)
		require.NoError(t, err)
		_, err = ValidateSessionToken(tok, cfg)
		assert.Error(t, err)
	})

	t.Run("unsigned", func(t *testing.T) {
		claims := JWTClaims{UserID: id, RegisteredClaims: jwt.RegisteredClaims{
			Issuer: tokenIssuer, Subject: sessionSubject, ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}}
		tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = ValidateSessionToken(tok, cfg)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := ValidateSessionToken("not-a-token", cfg)
		assert.Error(t, err)
	})
}

func TestResetToken(t *testing.T) {
	cfg := testJWTConfig()
	id := uuid.New()
	fp := PasswordFingerprint("$2a$10$hash")

	tok, err := GenerateResetToken(id, "a@example.com", fp, cfg)
	require.NoError(t, err)

	claims, err := ValidateResetToken(tok, cfg)
	require.NoError(t, err)
	assert.Equal(t, id, claims.UserID)
	assert.Equal(t, fp, claims.Fingerprint)
	assert.NotEqual(t, fp, PasswordFingerprint("$2a$10$other"))

	session, err := GenerateSessionToken(id, "a@example.com", cfg)
	require.NoError(t, err)
	_, err = ValidateResetToken(session, cfg)
	assert.Error(t, err)
}

func TestAuthMiddleware(t *testing.T) {
	cfg := testJWTConfig()
	id := uuid.New()
	tok, err := GenerateSessionToken(id, "a@example.com", cfg)
	require.NoError(t, err)

	var seen uuid.UUID
	h := AuthMiddleware(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = utils.GetUserIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"valid", "Bearer " + tok, http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/transactions", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
	assert.Equal(t, id, seen)
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := logging.NewWithWriter(&buf, "info")

	h := RequestLogger(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Contains(t, buf.String(), `"path":"/healthz"`)
	assert.Contains(t, buf.String(), `"status":418`)
}

func TestRecoverer_WritesJSONError(t *testing.T) {
	var buf bytes.Buffer
	log := logging.NewWithWriter(&buf, "info")

	h := Recoverer(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("nil map write")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/transactions", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"Internal server error"}`, rec.Body.String())
	assert.Contains(t, buf.String(), "nil map write")
	assert.NotContains(t, rec.Body.String(), "nil map write")
}

func TestRecoverer_ReraisesAbort(t *testing.T) {
	h := Recoverer(logging.Discard())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	}))
	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}
