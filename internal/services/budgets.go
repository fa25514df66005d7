package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"FINTRACK_BACK-END/internal/apperrors"
	"FINTRACK_BACK-END/internal/finance"
	"FINTRACK_BACK-END/internal/models"
	"FINTRACK_BACK-END/internal/store"
)

// BudgetInput carries create/update fields; nil means unchanged on update.
type BudgetInput struct {
	Category *string
	Amount   *decimal.Decimal
	Period   *string
	Currency *string
}

type BudgetService struct {
	store           *store.Store
	defaultCurrency string
	now             func() time.Time
}

func NewBudgetService(st *store.Store, defaultCurrency string) *BudgetService {
	return &BudgetService{store: st, defaultCurrency: defaultCurrency, now: time.Now}
}

// WithClock replaces the time source; used by tests.
func (s *BudgetService) WithClock(now func() time.Time) *BudgetService {
	s.now = now
	return s
}

// List returns the user's budgets with spend derived from its transactions
// at the current time.
func (s *BudgetService) List(ctx context.Context, userID uuid.UUID) ([]finance.BudgetSpend, error) {
	budgets, err := s.store.Budgets.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	txs, err := s.store.Transactions.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return finance.ComputeSpend(budgets, txs, s.now()), nil
}

// Get returns one budget with its spend.
func (s *BudgetService) Get(ctx context.Context, userID, id uuid.UUID) (*finance.BudgetSpend, error) {
	b, err := s.store.Budgets.Get(ctx, userID, id)
	if err != nil {
		return nil, notFoundOr(err, "Budget not found")
	}
	return s.withSpend(ctx, b)
}

func (s *BudgetService) withSpend(ctx context.Context, b *models.Budget) (*finance.BudgetSpend, error) {
	txs, err := s.store.Transactions.ListByUser(ctx, b.UserID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	spend := finance.ComputeSpend([]models.Budget{*b}, txs, s.now())
	return &spend[0], nil
}

func (s *BudgetService) Create(ctx context.Context, userID uuid.UUID, in BudgetInput) (*finance.BudgetSpend, error) {
	if in.Category == nil || in.Amount == nil || in.Period == nil {
		return nil, apperrors.Validation("category, amount and period are required")
	}
	now := s.now()
	b := &models.Budget{
		ID:        uuid.New(),
		UserID:    userID,
		Currency:  s.defaultCurrency,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := applyBudgetInput(b, in); err != nil {
		return nil, err
	}
	if err := s.store.Budgets.Create(ctx, b); err != nil {
		return nil, budgetWriteError(err)
	}
	return s.withSpend(ctx, b)
}

func (s *BudgetService) Update(ctx context.Context, userID, id uuid.UUID, in BudgetInput) (*finance.BudgetSpend, error) {
	b, err := s.store.Budgets.Get(ctx, userID, id)
	if err != nil {
		return nil, notFoundOr(err, "Budget not found")
	}
	if err := applyBudgetInput(b, in); err != nil {
		return nil, err
	}
	b.UpdatedAt = s.now()
	if err := s.store.Budgets.Update(ctx, b); err != nil {
		return nil, budgetWriteError(err)
	}
	return s.withSpend(ctx, b)
}

func (s *BudgetService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.store.Budgets.Delete(ctx, userID, id); err != nil {
		return notFoundOr(err, "Budget not found")
	}
	return nil
}

func budgetWriteError(err error) error {
	if errors.Is(err, store.ErrDuplicate) {
		return apperrors.Conflict("A budget for this category and period already exists")
	}
	return notFoundOr(err, "Budget not found")
}

func applyBudgetInput(b *models.Budget, in BudgetInput) error {
	if in.Category != nil {
		cat := strings.TrimSpace(*in.Category)
		if cat == "" {
			return apperrors.Validation("Category is required")
		}
		b.Category = cat
	}
	if in.Amount != nil {
		if !in.Amount.IsPositive() {
			return apperrors.Validation("Amount must be greater than 0")
		}
		if err := checkCents(*in.Amount); err != nil {
			return err
		}
		b.Amount = *in.Amount
	}
	if in.Period != nil {
		p := models.Period(strings.ToLower(strings.TrimSpace(*in.Period)))
		if !p.Valid() {
			return apperrors.Validation("Period must be one of weekly, monthly, quarterly, yearly")
		}
		b.Period = p
	}
	if in.Currency != nil && strings.TrimSpace(*in.Currency) != "" {
		cur, err := normalizeCurrency(*in.Currency)
		if err != nil {
			return err
		}
		b.Currency = cur
	}
	return nil
}
