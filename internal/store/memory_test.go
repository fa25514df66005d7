package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FINTRACK_BACK-END/internal/models"
)

func seedUser(t *testing.T, s *Store, email string) *models.User {
	t.Helper()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	u := &models.User{ID: uuid.New(), Name: "Alice", Email: email, PasswordHash: "hash", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, s.Users.Create(context.Background(), u))
	return u
}

func TestMemoryUsers_DuplicateEmail(t *testing.T) {
	s := NewMemory()
	seedUser(t, s, "alice@example.com")

	err := s.Users.Create(context.Background(), &models.User{ID: uuid.New(), Email: "ALICE@example.com"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestMemoryUsers_ReturnsCopies(t *testing.T) {
	s := NewMemory()
	u := seedUser(t, s, "alice@example.com")

	got, err := s.Users.GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	got.Verified = true

	again, err := s.Users.GetByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.False(t, again.Verified)
}

func TestMemoryTokens_UpsertReplacesPerEmail(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	exp := time.Now().Add(time.Hour)

	require.NoError(t, s.Tokens.Upsert(ctx, &models.VerificationToken{Email: "a@example.com", Token: "first", Expires: exp}))
	require.NoError(t, s.Tokens.Upsert(ctx, &models.VerificationToken{Email: "a@example.com", Token: "second", Expires: exp}))

	_, err := s.Tokens.GetByToken(ctx, "first")
	assert.ErrorIs(t, err, ErrNotFound)

	tok, err := s.Tokens.GetByToken(ctx, "second")
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", tok.Email)

	require.NoError(t, s.Tokens.MarkUsed(ctx, "second"))
	tok, err = s.Tokens.GetByToken(ctx, "second")
	require.NoError(t, err)
	assert.True(t, tok.Used)
	assert.ErrorIs(t, s.Tokens.MarkUsed(ctx, "first"), ErrNotFound)

	require.NoError(t, s.Tokens.DeleteByEmail(ctx, "a@example.com"))
	_, err = s.Tokens.GetByToken(ctx, "second")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryTransactions_Ownership(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	alice := seedUser(t, s, "alice@example.com")
	bob := seedUser(t, s, "bob@example.com")

	tx := &models.Transaction{ID: uuid.New(), UserID: alice.ID, Date: time.Now(), Description: "Coffee",
		Amount: decimal.NewFromInt(-3), Category: "Food", Currency: "USD"}
	require.NoError(t, s.Transactions.Create(ctx, tx))

	_, err := s.Transactions.Get(ctx, bob.ID, tx.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.Transactions.Delete(ctx, bob.ID, tx.ID), ErrNotFound)

	stolen := *tx
	stolen.UserID = bob.ID
	assert.ErrorIs(t, s.Transactions.Update(ctx, &stolen), ErrNotFound)

	list, err := s.Transactions.ListByUser(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestMemoryTransactions_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	u := seedUser(t, s, "alice@example.com")
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		require.NoError(t, s.Transactions.Create(ctx, &models.Transaction{
			ID: uuid.New(), UserID: u.ID, Date: base.AddDate(0, 0, i), Description: "x",
			Amount: decimal.NewFromInt(-1), Category: "Food", Currency: "USD",
		}))
	}

	list, err := s.Transactions.ListByUser(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.True(t, list[0].Date.After(list[1].Date))
	assert.True(t, list[1].Date.After(list[2].Date))
}

func TestMemoryBudgets_DuplicateCategoryPeriod(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	u := seedUser(t, s, "alice@example.com")

	b := &models.Budget{ID: uuid.New(), UserID: u.ID, Category: "Food", Amount: decimal.NewFromInt(100), Period: models.PeriodMonthly}
	require.NoError(t, s.Budgets.Create(ctx, b))

	dup := &models.Budget{ID: uuid.New(), UserID: u.ID, Category: "Food", Amount: decimal.NewFromInt(50), Period: models.PeriodMonthly}
	assert.ErrorIs(t, s.Budgets.Create(ctx, dup), ErrDuplicate)

	weekly := &models.Budget{ID: uuid.New(), UserID: u.ID, Category: "Food", Amount: decimal.NewFromInt(50), Period: models.PeriodWeekly}
	require.NoError(t, s.Budgets.Create(ctx, weekly))

	weekly.Period = models.PeriodMonthly
	assert.ErrorIs(t, s.Budgets.Update(ctx, weekly), ErrDuplicate)
}

func TestMemoryUsers_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	u := seedUser(t, s, "alice@example.com")
	other := seedUser(t, s, "bob@example.com")

	require.NoError(t, s.Tokens.Upsert(ctx, &models.VerificationToken{Email: u.Email, Token: "tok", Expires: time.Now().Add(time.Hour)}))
	require.NoError(t, s.Transactions.Create(ctx, &models.Transaction{ID: uuid.New(), UserID: u.ID, Amount: decimal.NewFromInt(1)}))
	require.NoError(t, s.Transactions.Create(ctx, &models.Transaction{ID: uuid.New(), UserID: other.ID, Amount: decimal.NewFromInt(1)}))
	require.NoError(t, s.Budgets.Create(ctx, &models.Budget{ID: uuid.New(), UserID: u.ID, Category: "Food", Period: models.PeriodMonthly}))

	require.NoError(t, s.Users.Delete(ctx, u.ID))

	_, err := s.Users.GetByID(ctx, u.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Tokens.GetByToken(ctx, "tok")
	assert.ErrorIs(t, err, ErrNotFound)

	txs, _ := s.Transactions.ListByUser(ctx, u.ID)
	assert.Empty(t, txs)
	bs, _ := s.Budgets.ListByUser(ctx, u.ID)
	assert.Empty(t, bs)

	otherTxs, _ := s.Transactions.ListByUser(ctx, other.ID)
	assert.Len(t, otherTxs, 1)

	assert.ErrorIs(t, s.Users.Delete(ctx, u.ID), ErrNotFound)
}

func TestStore_PingWithoutBackend(t *testing.T) {
	assert.NoError(t, NewMemory().Ping(context.Background()))
}
