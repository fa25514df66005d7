package finance

import (
	"time"

	"github.com/shopspring/decimal"

	"FINTRACK_BACK-END/internal/models"
)

// BudgetStatus buckets how much of a budget has been used.
type BudgetStatus string

const (
	StatusOnTrack   BudgetStatus = "on_track"
	StatusNearLimit BudgetStatus = "near_limit"
	StatusOver      BudgetStatus = "over_budget"
)

var (
	hundred       = decimal.NewFromInt(100)
	nearThreshold = decimal.NewFromInt(90)
)

// BudgetSpend is a budget together with its derived figures.
type BudgetSpend struct {
	Budget    models.Budget
	Spent     decimal.Decimal
	Remaining decimal.Decimal
	Progress  decimal.Decimal // percent of Amount, two decimals
	Status    BudgetStatus
}

// Spent sums the absolute value of expenses in the budget's category that
// fall inside its period window at now.
func Spent(b models.Budget, txs []models.Transaction, now time.Time) decimal.Decimal {
	w, err := PeriodWindow(b.Period, now)
	if err != nil {
		return decimal.Zero
	}
	total := decimal.Zero
	for _, t := range txs {
		if t.Category != b.Category || !t.IsExpense() || !w.Contains(t.Date) {
			continue
		}
		total = total.Add(t.Amount.Abs())
	}
	return total
}

// ComputeSpend derives spend figures for every budget. It is pure: the same
// inputs always produce the same output, in budget order.
func ComputeSpend(budgets []models.Budget, txs []models.Transaction, now time.Time) []BudgetSpend {
	out := make([]BudgetSpend, 0, len(budgets))
	for _, b := range budgets {
		spent := Spent(b, txs, now)
		out = append(out, summarize(b, spent))
	}
	return out
}

func summarize(b models.Budget, spent decimal.Decimal) BudgetSpend {
	remaining := b.Amount.Sub(spent)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	progress := decimal.Zero
	if b.Amount.IsPositive() {
		progress = spent.Div(b.Amount).Mul(hundred).Round(2)
	}
	status := StatusOnTrack
	switch {
	case progress.GreaterThanOrEqual(hundred):
		status = StatusOver
	case progress.GreaterThanOrEqual(nearThreshold):
		status = StatusNearLimit
	}
	return BudgetSpend{Budget: b, Spent: spent, Remaining: remaining, Progress: progress, Status: status}
}
