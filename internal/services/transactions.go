package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"FINTRACK_BACK-END/internal/apperrors"
	"FINTRACK_BACK-END/internal/models"
	"FINTRACK_BACK-END/internal/store"
	"FINTRACK_BACK-END/internal/utils"
)

var currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

// TransactionInput carries create/update fields. Nil fields are left
// unchanged on update and are missing on create.
type TransactionInput struct {
	Date        *string
	Description *string
	Amount      *decimal.Decimal
	Category    *string
	Currency    *string
}

type TransactionService struct {
	store           *store.Store
	defaultCurrency string
	now             func() time.Time
}

func NewTransactionService(st *store.Store, defaultCurrency string) *TransactionService {
	return &TransactionService{store: st, defaultCurrency: defaultCurrency, now: time.Now}
}

// WithClock replaces the time source; used by tests.
func (s *TransactionService) WithClock(now func() time.Time) *TransactionService {
	s.now = now
	return s
}

// List returns the user's transactions matching p, newest first.
func (s *TransactionService) List(ctx context.Context, userID uuid.UUID, p FilterParams) ([]models.Transaction, error) {
	filter, err := BuildFilter(p)
	if err != nil {
		return nil, err
	}
	txs, err := s.store.Transactions.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return filter.Apply(txs), nil
}

func (s *TransactionService) Get(ctx context.Context, userID, id uuid.UUID) (*models.Transaction, error) {
	t, err := s.store.Transactions.Get(ctx, userID, id)
	if err != nil {
		return nil, notFoundOr(err, "Transaction not found")
	}
	return t, nil
}

func (s *TransactionService) Create(ctx context.Context, userID uuid.UUID, in TransactionInput) (*models.Transaction, error) {
	if in.Date == nil || strings.TrimSpace(*in.Date) == "" || in.Description == nil || in.Amount == nil || in.Category == nil {
		return nil, apperrors.Validation("date, description, amount and category are required")
	}

	now := s.now()
	t := &models.Transaction{
		ID:        uuid.New(),
		UserID:    userID,
		Currency:  s.defaultCurrency,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := applyTransactionInput(t, in); err != nil {
		return nil, err
	}

	if err := s.store.Transactions.Create(ctx, t); err != nil {
		return nil, apperrors.Internal(err)
	}
	return t, nil
}

func (s *TransactionService) Update(ctx context.Context, userID, id uuid.UUID, in TransactionInput) (*models.Transaction, error) {
	t, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := applyTransactionInput(t, in); err != nil {
		return nil, err
	}
	t.UpdatedAt = s.now()
	if err := s.store.Transactions.Update(ctx, t); err != nil {
		return nil, notFoundOr(err, "Transaction not found")
	}
	return t, nil
}

func (s *TransactionService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.store.Transactions.Delete(ctx, userID, id); err != nil {
		return notFoundOr(err, "Transaction not found")
	}
	return nil
}

// applyTransactionInput validates and copies the non-nil fields of in onto t.
func applyTransactionInput(t *models.Transaction, in TransactionInput) error {
	if in.Date != nil {
		d, _, err := utils.ParseDate(*in.Date)
		if err != nil {
			return apperrors.Validation("Invalid date format. Use YYYY-MM-DD")
		}
		t.Date = d
	}
	if in.Description != nil {
		desc := strings.TrimSpace(*in.Description)
		if desc == "" {
			return apperrors.Validation("Description is required")
		}
		t.Description = desc
	}
	if in.Amount != nil {
		if in.Amount.IsZero() {
			return apperrors.Validation("Amount must be non-zero")
		}
		if err := checkCents(*in.Amount); err != nil {
			return err
		}
		t.Amount = *in.Amount
	}
	if in.Category != nil {
		cat := strings.TrimSpace(*in.Category)
		if cat == "" {
			return apperrors.Validation("Category is required")
		}
		t.Category = cat
	}
	if in.Currency != nil && strings.TrimSpace(*in.Currency) != "" {
		cur, err := normalizeCurrency(*in.Currency)
		if err != nil {
			return err
		}
		t.Currency = cur
	}
	return nil
}

// checkCents rejects amounts finer than a cent; the database column keeps
// two decimal places.
func checkCents(d decimal.Decimal) error {
	if !d.Equal(d.Truncate(2)) {
		return apperrors.Validation("Amount must have at most 2 decimal places")
	}
	return nil
}

func normalizeCurrency(c string) (string, error) {
	c = strings.ToUpper(strings.TrimSpace(c))
	if !currencyPattern.MatchString(c) {
		return "", apperrors.Validation("Currency must be a 3-letter code")
	}
	return c, nil
}

// notFoundOr maps store.ErrNotFound to a NotFound with msg and anything
// else to Internal.
func notFoundOr(err error, msg string) error {
	if errors.Is(err, store.ErrNotFound) {
		return apperrors.NotFound(msg)
	}
	return apperrors.Internal(err)
}
