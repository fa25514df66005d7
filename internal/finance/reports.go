package finance

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"FINTRACK_BACK-END/internal/models"
)

// CategoryTotal is the expense total for one category.
type CategoryTotal struct {
	Category string
	Amount   decimal.Decimal
}

// MonthTotals holds income and expenses for a calendar month ("2006-01").
type MonthTotals struct {
	Month    string
	Income   decimal.Decimal
	Expenses decimal.Decimal
}

// DayTotal is the expense total for a single day ("2006-01-02").
type DayTotal struct {
	Day    string
	Amount decimal.Decimal
}

// BudgetActual compares a budget with what was spent in the report range.
type BudgetActual struct {
	Category  string
	Period    models.Period
	Budget    decimal.Decimal
	Actual    decimal.Decimal
	Remaining decimal.Decimal
}

// Summary is the headline of a report.
type Summary struct {
	Income           decimal.Decimal
	Expenses         decimal.Decimal
	Balance          decimal.Decimal
	TransactionCount int
	LargestExpense   *models.Transaction
	LargestIncome    *models.Transaction
}

// Report aggregates a filtered set of transactions.
type Report struct {
	Timeframe          Timeframe
	Summary            Summary
	SpendingByCategory []CategoryTotal
	IncomeVsExpenses   []MonthTotals
	SpendingTrend      []DayTotal
	BudgetVsActual     []BudgetActual
}

// BuildReport restricts txs to the timeframe window at now and to filter,
// then aggregates. Every figure is a grouped sum and the output does not
// depend on input order: series are chronological, the category breakdown
// is by amount then name.
func BuildReport(txs []models.Transaction, budgets []models.Budget, tf Timeframe, filter Filter, now time.Time) Report {
	selected := filter.Apply(InWindow(txs, tf.Window(now)))

	return Report{
		Timeframe:          tf,
		Summary:            Summarize(selected),
		SpendingByCategory: SpendingByCategory(selected),
		IncomeVsExpenses:   IncomeVsExpenses(selected),
		SpendingTrend:      SpendingTrend(selected),
		BudgetVsActual:     BudgetVsActualFor(budgets, selected),
	}
}

// Summarize totals income and expenses and picks the largest of each.
func Summarize(txs []models.Transaction) Summary {
	s := Summary{Income: decimal.Zero, Expenses: decimal.Zero, TransactionCount: len(txs)}
	for i := range txs {
		t := txs[i]
		switch {
		case t.IsIncome():
			s.Income = s.Income.Add(t.Amount)
			if s.LargestIncome == nil || largerMagnitude(t, *s.LargestIncome) {
				s.LargestIncome = &t
			}
		case t.IsExpense():
			s.Expenses = s.Expenses.Add(t.Amount.Abs())
			if s.LargestExpense == nil || largerMagnitude(t, *s.LargestExpense) {
				s.LargestExpense = &t
			}
		}
	}
	s.Balance = s.Income.Sub(s.Expenses)
	return s
}

// largerMagnitude breaks ties on the earlier date, then the smaller id.
func largerMagnitude(a, b models.Transaction) bool {
	if c := a.Amount.Abs().Cmp(b.Amount.Abs()); c != 0 {
		return c > 0
	}
	if !a.Date.Equal(b.Date) {
		return a.Date.Before(b.Date)
	}
	return a.ID.String() < b.ID.String()
}

// SpendingByCategory sums expenses per category, largest first.
func SpendingByCategory(txs []models.Transaction) []CategoryTotal {
	totals := map[string]decimal.Decimal{}
	for _, t := range txs {
		if !t.IsExpense() {
			continue
		}
		totals[t.Category] = totals[t.Category].Add(t.Amount.Abs())
	}
	out := make([]CategoryTotal, 0, len(totals))
	for c, a := range totals {
		out = append(out, CategoryTotal{Category: c, Amount: a})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Amount.Cmp(out[j].Amount); c != 0 {
			return c > 0
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// IncomeVsExpenses groups by calendar month in chronological order.
func IncomeVsExpenses(txs []models.Transaction) []MonthTotals {
	months := map[string]*MonthTotals{}
	for _, t := range txs {
		key := t.Date.UTC().Format("2006-01")
		m, ok := months[key]
		if !ok {
			m = &MonthTotals{Month: key, Income: decimal.Zero, Expenses: decimal.Zero}
			months[key] = m
		}
		if t.IsIncome() {
			m.Income = m.Income.Add(t.Amount)
		} else if t.IsExpense() {
			m.Expenses = m.Expenses.Add(t.Amount.Abs())
		}
	}
	out := make([]MonthTotals, 0, len(months))
	for _, m := range months {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// SpendingTrend sums expenses per day in chronological order.
func SpendingTrend(txs []models.Transaction) []DayTotal {
	days := map[string]decimal.Decimal{}
	for _, t := range txs {
		if !t.IsExpense() {
			continue
		}
		key := t.Date.UTC().Format("2006-01-02")
		days[key] = days[key].Add(t.Amount.Abs())
	}
	out := make([]DayTotal, 0, len(days))
	for d, a := range days {
		out = append(out, DayTotal{Day: d, Amount: a})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out
}

// BudgetVsActualFor compares each budget with the expenses in its category
// among txs, which the caller has already narrowed to the report range.
func BudgetVsActualFor(budgets []models.Budget, txs []models.Transaction) []BudgetActual {
	out := make([]BudgetActual, 0, len(budgets))
	for _, b := range budgets {
		actual := decimal.Zero
		for _, t := range txs {
			if t.Category == b.Category && t.IsExpense() {
				actual = actual.Add(t.Amount.Abs())
			}
		}
		remaining := b.Amount.Sub(actual)
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}
		out = append(out, BudgetActual{
			Category:  b.Category,
			Period:    b.Period,
			Budget:    b.Amount,
			Actual:    actual,
			Remaining: remaining,
		})
	}
	return out
}
