package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FINTRACK_BACK-END/internal/config"
	"FINTRACK_BACK-END/internal/currency"
	"FINTRACK_BACK-END/internal/dto"
	"FINTRACK_BACK-END/internal/logging"
	"FINTRACK_BACK-END/internal/models"
	"FINTRACK_BACK-END/internal/services"
	"FINTRACK_BACK-END/internal/store"
	"FINTRACK_BACK-END/internal/utils"
)

type testServer struct {
	handler http.Handler
	store   *store.Store
	outbox  *utils.OutboxMailer
}

func newTestServer(t *testing.T, emailMode string) *testServer {
	t.Helper()
	cfg := &config.Config{
		JWT:   config.JWTConfig{Secret: "test-secret-0123456789", SessionTTL: time.Hour, ResetTTL: time.Hour},
		Email: config.EmailConfig{Mode: emailMode},
		App: config.AppConfig{
			BaseURL:              "http://localhost:3000",
			VerificationTokenTTL: 24 * time.Hour,
			DefaultCurrency:      "USD",
		},
		CORS: config.CORSConfig{AllowedOrigins: []string{"*"}, AllowedMethods: []string{"GET", "POST", "PUT", "DELETE"}},
	}
	st := store.NewMemory()
	outbox := utils.NewOutboxMailer()
	log := logging.Discard()
	h := NewHandlers(cfg, st, outbox, currency.NewConverter(config.DefaultRates()), log)
	return &testServer{handler: SetupRoutes(cfg, log, h), store: st, outbox: outbox}
}

func (s *testServer) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func (s *testServer) verificationToken(t *testing.T, email string) string {
	t.Helper()
	link, ok := s.outbox.LastLink(email)
	require.True(t, ok)
	u, err := url.Parse(link)
	require.NoError(t, err)
	return u.Query().Get("token")
}

// signUp registers and verifies an account, returning its id and session token.
func (s *testServer) signUp(t *testing.T, email string) (string, string) {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/auth/register", dto.RegisterRequest{Name: "Alice", Email: email, Password: "password123"}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	reg := decode[dto.RegisterResponse](t, rec)

	rec = s.do(t, http.MethodPost, "/auth/verify-email", dto.VerifyEmailRequest{Token: s.verificationToken(t, email)}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	ver := decode[dto.VerifyEmailResponse](t, rec)
	require.NotEmpty(t, ver.SessionToken)
	return reg.UserID, ver.SessionToken
}

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t, config.EmailModeSMTP)

	rec := s.do(t, http.MethodPost, "/auth/register", dto.RegisterRequest{Name: "Alice", Email: "Alice@Example.com", Password: "password123"}, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	reg := decode[dto.RegisterResponse](t, rec)
	assert.True(t, reg.Success)
	assert.NotEmpty(t, reg.UserID)
	assert.Empty(t, reg.VerificationURL)

	rec = s.do(t, http.MethodPost, "/auth/login", dto.LoginRequest{Email: "alice@example.com", Password: "password123"}, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	token := s.verificationToken(t, "alice@example.com")
	rec = s.do(t, http.MethodPost, "/auth/verify-email", dto.VerifyEmailRequest{Token: token}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	ver := decode[dto.VerifyEmailResponse](t, rec)
	assert.True(t, ver.User.Verified)
	assert.Equal(t, reg.UserID, ver.User.ID)
	assert.NotEmpty(t, ver.SessionToken)

	// a second submission of the same link still succeeds
	rec = s.do(t, http.MethodPost, "/auth/verify-email", dto.VerifyEmailRequest{Token: token}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	again := decode[dto.VerifyEmailResponse](t, rec)
	assert.True(t, again.Success)
	assert.Equal(t, "Email already verified", again.Message)
	assert.Empty(t, again.SessionToken)

	rec = s.do(t, http.MethodPost, "/auth/login", dto.LoginRequest{Email: "alice@example.com", Password: "password123"}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	login := decode[dto.AuthResponse](t, rec)
	assert.Equal(t, "alice@example.com", login.User.Email)

	rec = s.do(t, http.MethodGet, "/auth/me", nil, login.SessionToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Alice", decode[dto.UserResponse](t, rec).Name)
}

func TestRegister_Errors(t *testing.T) {
	s := newTestServer(t, config.EmailModeSMTP)
	s.signUp(t, "bob@example.com")

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"duplicate email", dto.RegisterRequest{Name: "Bob", Email: "BOB@example.com", Password: "password123"}, http.StatusConflict},
		{"missing name", dto.RegisterRequest{Email: "c@example.com", Password: "password123"}, http.StatusBadRequest},
		{"bad email", dto.RegisterRequest{Name: "C", Email: "nope", Password: "password123"}, http.StatusBadRequest},
		{"short password", dto.RegisterRequest{Name: "C", Email: "c@example.com", Password: "short"}, http.StatusBadRequest},
		{"empty body", nil, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, http.MethodPost, "/auth/register", tt.body, "")
			assert.Equal(t, tt.status, rec.Code)
			assert.NotEmpty(t, decode[dto.ErrorResponse](t, rec).Error)
		})
	}
}

func TestVerifyEmail_Errors(t *testing.T) {
	s := newTestServer(t, config.EmailModeSMTP)

	rec := s.do(t, http.MethodPost, "/auth/verify-email", dto.VerifyEmailRequest{}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/auth/verify-email", dto.VerifyEmailRequest{Token: "unknown"}, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodPost, "/auth/register", dto.RegisterRequest{Name: "Eve", Email: "eve@example.com", Password: "password123"}, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	token := s.verificationToken(t, "eve@example.com")

	// push the pending token past its expiry
	require.NoError(t, s.store.Tokens.Upsert(context.Background(), &models.VerificationToken{
		Email:     "eve@example.com",
		Token:     token,
		Expires:   time.Now().Add(-time.Minute),
		CreatedAt: time.Now().Add(-25 * time.Hour),
	}))

	rec = s.do(t, http.MethodPost, "/auth/verify-email", dto.VerifyEmailRequest{Token: token}, "")
	assert.Equal(t, http.StatusGone, rec.Code)

	// expired tokens are removed on first use
	rec = s.do(t, http.MethodPost, "/auth/verify-email", dto.VerifyEmailRequest{Token: token}, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestVerifyEmail_ExpiredTokenCanBeReplaced(t *testing.T) {
	s := newTestServer(t, config.EmailModeSMTP)
	reg := dto.RegisterRequest{Name: "Fay", Email: "fay@example.com", Password: "password123"}
	rec := s.do(t, http.MethodPost, "/auth/register", reg, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	token := s.verificationToken(t, "fay@example.com")

	require.NoError(t, s.store.Tokens.Upsert(context.Background(), &models.VerificationToken{
		Email:   "fay@example.com",
		Token:   token,
		Expires: time.Now().Add(-time.Minute),
	}))
	rec = s.do(t, http.MethodPost, "/auth/verify-email", dto.VerifyEmailRequest{Token: token}, "")
	require.Equal(t, http.StatusGone, rec.Code)

	rec = s.do(t, http.MethodPost, "/auth/register", reg, "")
	require.Equal(t, http.StatusConflict, rec.Code)
	reissued := s.verificationToken(t, "fay@example.com")
	require.NotEqual(t, token, reissued)

	rec = s.do(t, http.MethodPost, "/auth/resend-verification", dto.ResendVerificationRequest{Email: "fay@example.com"}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, services.MsgResendVerification, decode[dto.MessageResponse](t, rec).Message)
	resent := s.verificationToken(t, "fay@example.com")
	require.NotEqual(t, reissued, resent)

	rec = s.do(t, http.MethodPost, "/auth/verify-email", dto.VerifyEmailRequest{Token: resent}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, decode[dto.VerifyEmailResponse](t, rec).SessionToken)

	rec = s.do(t, http.MethodPost, "/auth/resend-verification", dto.ResendVerificationRequest{Email: "ghost@example.com"}, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(t, http.MethodPost, "/auth/resend-verification", dto.ResendVerificationRequest{}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVerifyEmail_QueryParameter(t *testing.T) {
	s := newTestServer(t, config.EmailModeSMTP)
	rec := s.do(t, http.MethodPost, "/auth/register", dto.RegisterRequest{Name: "Dan", Email: "dan@example.com", Password: "password123"}, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = s.do(t, http.MethodGet, "/auth/verify-email?token="+url.QueryEscape(s.verificationToken(t, "dan@example.com")), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[dto.VerifyEmailResponse](t, rec).User.Verified)
}

func TestLogin_FailuresLookAlike(t *testing.T) {
	s := newTestServer(t, config.EmailModeSMTP)
	s.signUp(t, "frank@example.com")

	unknown := s.do(t, http.MethodPost, "/auth/login", dto.LoginRequest{Email: "ghost@example.com", Password: "password123"}, "")
	wrong := s.do(t, http.MethodPost, "/auth/login", dto.LoginRequest{Email: "frank@example.com", Password: "password999"}, "")

	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, http.StatusUnauthorized, wrong.Code)
	assert.JSONEq(t, unknown.Body.String(), wrong.Body.String())

	rec := s.do(t, http.MethodPost, "/auth/login", dto.LoginRequest{Email: "frank@example.com"}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDemoVerification(t *testing.T) {
	t.Run("demo mode", func(t *testing.T) {
		s := newTestServer(t, config.EmailModeDemo)
		rec := s.do(t, http.MethodPost, "/auth/register", dto.RegisterRequest{Name: "Gina", Email: "gina@example.com", Password: "password123"}, "")
		require.Equal(t, http.StatusCreated, rec.Code)
		reg := decode[dto.RegisterResponse](t, rec)
		assert.Contains(t, reg.VerificationURL, "/verify-email?token=")

		rec = s.do(t, http.MethodGet, "/auth/demo-verification?email=gina@example.com", nil, "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, reg.VerificationURL, decode[dto.DemoVerificationResponse](t, rec).VerificationURL)

		rec = s.do(t, http.MethodGet, "/auth/demo-verification?email=nobody@example.com", nil, "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("smtp mode does not expose links", func(t *testing.T) {
		s := newTestServer(t, config.EmailModeSMTP)
		rec := s.do(t, http.MethodGet, "/auth/demo-verification?email=gina@example.com", nil, "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestPasswordReset(t *testing.T) {
	s := newTestServer(t, config.EmailModeSMTP)
	s.signUp(t, "hank@example.com")

	rec := s.do(t, http.MethodPost, "/auth/forgot-password", dto.ForgotPasswordRequest{Email: "hank@example.com"}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	unknown := s.do(t, http.MethodPost, "/auth/forgot-password", dto.ForgotPasswordRequest{Email: "ghost@example.com"}, "")
	require.Equal(t, http.StatusOK, unknown.Code)
	assert.JSONEq(t, rec.Body.String(), unknown.Body.String())

	msg, ok := s.outbox.Last("password_reset", "hank@example.com")
	require.True(t, ok)
	u, err := url.Parse(msg.Link)
	require.NoError(t, err)
	resetToken := u.Query().Get("token")

	rec = s.do(t, http.MethodPost, "/auth/reset-password", dto.ResetPasswordRequest{Token: resetToken, NewPassword: "newpassword1"}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	// the token is bound to the old password
	rec = s.do(t, http.MethodPost, "/auth/reset-password", dto.ResetPasswordRequest{Token: resetToken, NewPassword: "another-pass"}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodPost, "/auth/login", dto.LoginRequest{Email: "hank@example.com", Password: "newpassword1"}, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAccount(t *testing.T) {
	s := newTestServer(t, config.EmailModeSMTP)
	_, session := s.signUp(t, "ivy@example.com")

	rec := s.do(t, http.MethodGet, "/auth/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodPut, "/auth/me", dto.UpdateProfileRequest{Name: "  "}, session)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPut, "/auth/me", dto.UpdateProfileRequest{Name: "Ivy"}, session)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Ivy", decode[dto.UserResponse](t, rec).Name)

	change := dto.ChangePasswordRequest{CurrentPassword: "password123", NewPassword: "ivy-password"}
	rec = s.do(t, http.MethodPut, "/auth/me/password", change, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = s.do(t, http.MethodPut, "/auth/me/password", dto.ChangePasswordRequest{CurrentPassword: "wrong-password", NewPassword: "ivy-password"}, session)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = s.do(t, http.MethodPut, "/auth/me/password", dto.ChangePasswordRequest{CurrentPassword: "password123", NewPassword: "short"}, session)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = s.do(t, http.MethodPut, "/auth/me/password", change, session)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[dto.MessageResponse](t, rec).Success)

	rec = s.do(t, http.MethodPost, "/auth/login", dto.LoginRequest{Email: "ivy@example.com", Password: "password123"}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = s.do(t, http.MethodPost, "/auth/login", dto.LoginRequest{Email: "ivy@example.com", Password: "ivy-password"}, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodDelete, "/auth/me", nil, session)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/auth/me", nil, session)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTransactions(t *testing.T) {
	s := newTestServer(t, config.EmailModeSMTP)
	userID, session := s.signUp(t, "jack@example.com")
	otherID, otherSession := s.signUp(t, "kate@example.com")

	str := func(v string) *string { return &v }
	amt := func(v string) *decimal.Decimal { d := decimal.RequireFromString(v); return &d }

	rec := s.do(t, http.MethodGet, "/transactions", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodGet, "/transactions", nil, session)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, "/transactions?userId="+otherID, nil, session)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodPost, "/transactions", dto.TransactionRequest{
		UserID: str(otherID), Date: str("2025-03-05"), Description: str("Rent"), Amount: amt("-900"), Category: str("Housing"),
	}, session)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodPost, "/transactions", dto.TransactionRequest{
		UserID: str(userID), Date: str("2025-03-05"), Description: str("Groceries"), Amount: amt("-42.10"), Category: str("Food"),
	}, session)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	groceries := decode[dto.TransactionResponse](t, rec)
	assert.Equal(t, "USD", groceries.Currency)
	assert.True(t, decimal.RequireFromString("-42.10").Equal(groceries.Amount))

	rec = s.do(t, http.MethodPost, "/transactions", dto.TransactionRequest{
		UserID: str(userID), Date: str("2025-03-01"), Description: str("Salary"), Amount: amt("3000"), Category: str("Income"), Currency: str("eur"),
	}, session)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "EUR", decode[dto.TransactionResponse](t, rec).Currency)

	rec = s.do(t, http.MethodPost, "/transactions", dto.TransactionRequest{UserID: str(userID), Description: str("No date")}, session)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, "/transactions?userId="+userID, nil, session)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]dto.TransactionResponse](t, rec)
	require.Len(t, list, 2)
	assert.Equal(t, "Groceries", list[0].Description)

	rec = s.do(t, http.MethodGet, "/transactions?userId="+userID+"&type=income", nil, session)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]dto.TransactionResponse](t, rec), 1)

	rec = s.do(t, http.MethodGet, "/transactions?userId="+userID+"&endDate=2025-03-05", nil, session)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]dto.TransactionResponse](t, rec), 2)

	rec = s.do(t, http.MethodGet, "/transactions/"+groceries.ID, nil, session)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(t, http.MethodGet, "/transactions/"+groceries.ID, nil, otherSession)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = s.do(t, http.MethodGet, "/transactions/not-a-uuid", nil, session)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodPut, "/transactions/"+groceries.ID, dto.TransactionRequest{Description: str("Weekly groceries")}, session)
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode[dto.TransactionResponse](t, rec)
	assert.Equal(t, "Weekly groceries", updated.Description)
	assert.Equal(t, "Food", updated.Category)

	rec = s.do(t, http.MethodDelete, "/transactions/"+groceries.ID, nil, otherSession)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = s.do(t, http.MethodDelete, "/transactions/"+groceries.ID, nil, session)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Transaction deleted successfully", decode[dto.MessageResponse](t, rec).Message)
	rec = s.do(t, http.MethodGet, "/transactions/"+groceries.ID, nil, session)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBudgetsAndReports(t *testing.T) {
	s := newTestServer(t, config.EmailModeSMTP)
	userID, session := s.signUp(t, "liam@example.com")

	str := func(v string) *string { return &v }
	amt := func(v string) *decimal.Decimal { d := decimal.RequireFromString(v); return &d }
	today := time.Now().UTC().Format("2006-01-02")

	rec := s.do(t, http.MethodPost, "/transactions", dto.TransactionRequest{
		UserID: str(userID), Date: str(today), Description: str("Dinner"), Amount: amt("-50"), Category: str("Food"),
	}, session)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = s.do(t, http.MethodPost, "/budgets", dto.BudgetRequest{Category: str("Food"), Amount: amt("200"), Period: str("monthly")}, session)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	budget := decode[dto.BudgetResponse](t, rec)
	assert.True(t, decimal.RequireFromString("50").Equal(budget.Spent))
	assert.True(t, decimal.RequireFromString("150").Equal(budget.Remaining))
	assert.Equal(t, "on_track", budget.Status)

	rec = s.do(t, http.MethodPost, "/budgets", dto.BudgetRequest{Category: str("Food"), Amount: amt("300"), Period: str("monthly")}, session)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodPost, "/budgets", dto.BudgetRequest{Category: str("Fun"), Amount: amt("0"), Period: str("monthly")}, session)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPut, "/budgets/"+budget.ID, dto.BudgetRequest{Amount: amt("50")}, session)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "over_budget", decode[dto.BudgetResponse](t, rec).Status)

	rec = s.do(t, http.MethodGet, "/budgets", nil, session)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]dto.BudgetResponse](t, rec), 1)

	rec = s.do(t, http.MethodGet, "/reports?timeframe=all", nil, session)
	require.Equal(t, http.StatusOK, rec.Code)
	report := decode[dto.ReportResponse](t, rec)
	assert.Equal(t, 1, report.Summary.TransactionCount)
	assert.True(t, decimal.RequireFromString("50").Equal(report.Summary.Expenses))
	require.Len(t, report.SpendingByCategory, 1)
	assert.Equal(t, "Food", report.SpendingByCategory[0].Category)

	rec = s.do(t, http.MethodGet, "/reports?timeframe=decade", nil, session)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodDelete, "/budgets/"+budget.ID, nil, session)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(t, http.MethodGet, "/budgets/"+budget.ID, nil, session)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCurrency(t *testing.T) {
	s := newTestServer(t, config.EmailModeSMTP)

	rec := s.do(t, http.MethodGet, "/currency/rates", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	rates := decode[dto.RatesResponse](t, rec)
	assert.Equal(t, "USD", rates.Base)
	assert.Contains(t, rates.Currencies, "EUR")

	rec = s.do(t, http.MethodGet, "/currency/convert?from=eur&to=USD&amount=100", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	conv := decode[dto.ConversionResponse](t, rec)
	assert.Equal(t, "EUR", conv.From)
	assert.True(t, decimal.RequireFromString("109").Equal(conv.Result), conv.Result.String())

	rec = s.do(t, http.MethodGet, "/currency/convert?from=USD&to=EUR&amount=abc", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, "/currency/convert?from=USD&to=XYZ&amount=1", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthAndFallbacks(t *testing.T) {
	s := newTestServer(t, config.EmailModeSMTP)

	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/healthz", nil, "").Code)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/readyz", nil, "").Code)

	rec := s.do(t, http.MethodGet, "/nowhere", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not Found", decode[dto.ErrorResponse](t, rec).Error)
}
