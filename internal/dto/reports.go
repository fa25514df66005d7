package dto

import (
	"github.com/shopspring/decimal"

	"FINTRACK_BACK-END/internal/finance"
	"FINTRACK_BACK-END/internal/models"
)

type ReportSummary struct {
	Income           decimal.Decimal      `json:"income" swaggertype:"number"`
	Expenses         decimal.Decimal      `json:"expenses" swaggertype:"number"`
	Balance          decimal.Decimal      `json:"balance" swaggertype:"number"`
	TransactionCount int                  `json:"transactionCount"`
	LargestExpense   *TransactionResponse `json:"largestExpense"`
	LargestIncome    *TransactionResponse `json:"largestIncome"`
}

type CategoryAmount struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount" swaggertype:"number"`
}

type MonthAmounts struct {
	Month    string          `json:"month" example:"2025-03"`
	Income   decimal.Decimal `json:"income" swaggertype:"number"`
	Expenses decimal.Decimal `json:"expenses" swaggertype:"number"`
}

type DayAmount struct {
	Day    string          `json:"day" example:"2025-03-05"`
	Amount decimal.Decimal `json:"amount" swaggertype:"number"`
}

type BudgetActual struct {
	Category  string          `json:"category"`
	Period    string          `json:"period"`
	Budget    decimal.Decimal `json:"budget" swaggertype:"number"`
	Actual    decimal.Decimal `json:"actual" swaggertype:"number"`
	Remaining decimal.Decimal `json:"remaining" swaggertype:"number"`
}

// ReportResponse is the body of GET /reports
type ReportResponse struct {
	Timeframe          string           `json:"timeframe"`
	Summary            ReportSummary    `json:"summary"`
	SpendingByCategory []CategoryAmount `json:"spendingByCategory"`
	IncomeVsExpenses   []MonthAmounts   `json:"incomeVsExpenses"`
	SpendingTrend      []DayAmount      `json:"spendingTrend"`
	BudgetVsActual     []BudgetActual   `json:"budgetVsActual"`
}

func optionalTransaction(t *models.Transaction) *TransactionResponse {
	if t == nil {
		return nil
	}
	r := NewTransactionResponse(t)
	return &r
}

func NewReportResponse(r *finance.Report) ReportResponse {
	out := ReportResponse{
		Timeframe: string(r.Timeframe),
		Summary: ReportSummary{
			Income:           r.Summary.Income,
			Expenses:         r.Summary.Expenses,
			Balance:          r.Summary.Balance,
			TransactionCount: r.Summary.TransactionCount,
			LargestExpense:   optionalTransaction(r.Summary.LargestExpense),
			LargestIncome:    optionalTransaction(r.Summary.LargestIncome),
		},
		SpendingByCategory: make([]CategoryAmount, 0, len(r.SpendingByCategory)),
		IncomeVsExpenses:   make([]MonthAmounts, 0, len(r.IncomeVsExpenses)),
		SpendingTrend:      make([]DayAmount, 0, len(r.SpendingTrend)),
		BudgetVsActual:     make([]BudgetActual, 0, len(r.BudgetVsActual)),
	}
	for _, c := range r.SpendingByCategory {
		out.SpendingByCategory = append(out.SpendingByCategory, CategoryAmount{Category: c.Category, Amount: c.Amount})
	}
	for _, m := range r.IncomeVsExpenses {
		out.IncomeVsExpenses = append(out.IncomeVsExpenses, MonthAmounts{Month: m.Month, Income: m.Income, Expenses: m.Expenses})
	}
	for _, d := range r.SpendingTrend {
		out.SpendingTrend = append(out.SpendingTrend, DayAmount{Day: d.Day, Amount: d.Amount})
	}
	for _, b := range r.BudgetVsActual {
		out.BudgetVsActual = append(out.BudgetVsActual, BudgetActual{
			Category: b.Category, Period: string(b.Period), Budget: b.Budget, Actual: b.Actual, Remaining: b.Remaining,
		})
	}
	return out
}
