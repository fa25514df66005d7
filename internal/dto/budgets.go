package dto

import (
	"github.com/shopspring/decimal"

	"FINTRACK_BACK-END/internal/finance"
)

// BudgetRequest is the body of POST and PUT /budgets
type BudgetRequest struct {
	Category *string          `json:"category,omitempty" example:"Food"`
	Amount   *decimal.Decimal `json:"amount,omitempty" swaggertype:"number" example:"400"`
	Period   *string          `json:"period,omitempty" example:"monthly"`
	Currency *string          `json:"currency,omitempty" example:"USD"`
}

// BudgetResponse is a budget with its spend derived at read time
type BudgetResponse struct {
	ID        string          `json:"id"`
	Category  string          `json:"category"`
	Amount    decimal.Decimal `json:"amount" swaggertype:"number"`
	Period    string          `json:"period"`
	Currency  string          `json:"currency"`
	Spent     decimal.Decimal `json:"spent" swaggertype:"number"`
	Remaining decimal.Decimal `json:"remaining" swaggertype:"number"`
	Progress  decimal.Decimal `json:"progress" swaggertype:"number"`
	Status    string          `json:"status" example:"on_track"`
}

func NewBudgetResponse(s *finance.BudgetSpend) BudgetResponse {
	return BudgetResponse{
		ID:        s.Budget.ID.String(),
		Category:  s.Budget.Category,
		Amount:    s.Budget.Amount,
		Period:    string(s.Budget.Period),
		Currency:  s.Budget.Currency,
		Spent:     s.Spent,
		Remaining: s.Remaining,
		Progress:  s.Progress,
		Status:    string(s.Status),
	}
}

func NewBudgetList(spends []finance.BudgetSpend) []BudgetResponse {
	out := make([]BudgetResponse, 0, len(spends))
	for i := range spends {
		out = append(out, NewBudgetResponse(&spends[i]))
	}
	return out
}
