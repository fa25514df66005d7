package finance

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"FINTRACK_BACK-END/internal/models"
)

// TxType narrows transactions by sign.
type TxType string

const (
	TxTypeAll     TxType = "all"
	TxTypeIncome  TxType = "income"
	TxTypeExpense TxType = "expense"
)

// ParseTxType accepts income, expense, all or empty (all).
func ParseTxType(s string) (TxType, error) {
	switch t := TxType(strings.ToLower(strings.TrimSpace(s))); t {
	case TxTypeIncome, TxTypeExpense, TxTypeAll:
		return t, nil
	case "":
		return TxTypeAll, nil
	}
	return "", fmt.Errorf("unknown transaction type %q", s)
}

// Filter is a conjunction of optional predicates. Zero fields are inactive.
type Filter struct {
	Category string     // exact match; "all" means no filter
	Start    *time.Time // inclusive
	End      *time.Time // inclusive
	Search   string     // case-insensitive substring of description or category
	Type     TxType
}

// Matches reports whether t passes every active predicate.
func (f Filter) Matches(t models.Transaction) bool {
	if f.Category != "" && f.Category != "all" && t.Category != f.Category {
		return false
	}
	if f.Start != nil && t.Date.Before(*f.Start) {
		return false
	}
	if f.End != nil && t.Date.After(*f.End) {
		return false
	}
	switch f.Type {
	case TxTypeIncome:
		if !t.IsIncome() {
			return false
		}
	case TxTypeExpense:
		if !t.IsExpense() {
			return false
		}
	}
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		if !strings.Contains(strings.ToLower(t.Description), q) &&
			!strings.Contains(strings.ToLower(t.Category), q) {
			return false
		}
	}
	return true
}

// Apply returns the transactions matching f, in input order.
func (f Filter) Apply(txs []models.Transaction) []models.Transaction {
	out := make([]models.Transaction, 0, len(txs))
	for _, t := range txs {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// InWindow returns the transactions dated inside w.
func InWindow(txs []models.Transaction, w Window) []models.Transaction {
	out := make([]models.Transaction, 0, len(txs))
	for _, t := range txs {
		if w.Contains(t.Date) {
			out = append(out, t)
		}
	}
	return out
}

// SortNewestFirst orders by date descending, breaking ties by id so the
// result does not depend on input order.
func SortNewestFirst(txs []models.Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		if !txs[i].Date.Equal(txs[j].Date) {
			return txs[i].Date.After(txs[j].Date)
		}
		return txs[i].ID.String() < txs[j].ID.String()
	})
}
