package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction is a single income or expense record owned by a user
type Transaction struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	UserID      uuid.UUID       `json:"user_id" db:"user_id"`
	Date        time.Time       `json:"date" db:"date"`
	Description string          `json:"description" db:"description"`
	Amount      decimal.Decimal `json:"amount" db:"amount"` // negative = expense, positive = income
	Category    string          `json:"category" db:"category"`
	Currency    string          `json:"currency" db:"currency"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

// IsExpense reports whether the transaction takes money out.
func (t Transaction) IsExpense() bool {
	return t.Amount.IsNegative()
}

// IsIncome reports whether the transaction brings money in.
func (t Transaction) IsIncome() bool {
	return t.Amount.IsPositive()
}
