package services

import (
	"context"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"FINTRACK_BACK-END/internal/config"
	"FINTRACK_BACK-END/internal/logging"
	"FINTRACK_BACK-END/internal/store"
	"FINTRACK_BACK-END/internal/utils"
)

func testConfig() *config.Config {
	return &config.Config{
		JWT:   config.JWTConfig{Secret: "test-secret-0123456789", SessionTTL: time.Hour, ResetTTL: time.Hour},
		Email: config.EmailConfig{Mode: config.EmailModeSMTP, FromName: "Finance Tracker"},
		App: config.AppConfig{
			BaseURL:              "http://localhost:3000",
			VerificationTokenTTL: 24 * time.Hour,
			DefaultCurrency:      "USD",
		},
	}
}

// testClock is a settable time source.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock(t time.Time) *testClock { return &testClock{now: t} }

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// failingMailer refuses every message.
type failingMailer struct {
	err   error
	calls int
}

func (m *failingMailer) SendVerificationEmail(context.Context, string, string, string) error {
	m.calls++
	return m.err
}

func (m *failingMailer) SendPasswordResetEmail(context.Context, string, string, string) error {
	m.calls++
	return m.err
}

type authFixture struct {
	svc    *AuthService
	store  *store.Store
	outbox *utils.OutboxMailer
	clock  *testClock
	cfg    *config.Config
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	cfg := testConfig()
	st := store.NewMemory()
	outbox := utils.NewOutboxMailer()
	clock := newTestClock(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	svc := NewAuthService(st, outbox, cfg, logging.Discard()).WithClock(clock.Now)
	return &authFixture{svc: svc, store: st, outbox: outbox, clock: clock, cfg: cfg}
}

// tokenFromLink pulls the token query parameter out of an emailed link.
func tokenFromLink(t *testing.T, link string) string {
	t.Helper()
	u, err := url.Parse(link)
	require.NoError(t, err)
	tok := u.Query().Get("token")
	require.NotEmpty(t, tok)
	return tok
}

// registerAndVerify creates a verified account.
func (f *authFixture) registerAndVerify(t *testing.T, email, password string) *VerifyResult {
	t.Helper()
	ctx := context.Background()
	_, err := f.svc.Register(ctx, "Test User", email, password)
	require.NoError(t, err)
	link, ok := f.outbox.LastLink(email)
	require.True(t, ok)
	res, err := f.svc.VerifyEmail(ctx, tokenFromLink(t, link))
	require.NoError(t, err)
	return res
}
