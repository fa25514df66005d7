package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"FINTRACK_BACK-END/internal/models"
)

// TransactionRequest is the body of POST and PUT /transactions. On PUT
// only the fields present are changed.
type TransactionRequest struct {
	UserID      *string          `json:"userId,omitempty"`
	Date        *string          `json:"date,omitempty" example:"2025-03-05"`
	Description *string          `json:"description,omitempty" example:"Groceries"`
	Amount      *decimal.Decimal `json:"amount,omitempty" swaggertype:"number" example:"-42.10"`
	Category    *string          `json:"category,omitempty" example:"Food"`
	Currency    *string          `json:"currency,omitempty" example:"USD"`
}

// TransactionResponse is a transaction as returned by the API
type TransactionResponse struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount" swaggertype:"number"`
	Category    string          `json:"category"`
	Currency    string          `json:"currency"`
	CreatedAt   string          `json:"createdAt"`
	UpdatedAt   string          `json:"updatedAt"`
}

func NewTransactionResponse(t *models.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID.String(),
		UserID:      t.UserID.String(),
		Date:        t.Date.UTC().Format(time.RFC3339),
		Description: t.Description,
		Amount:      t.Amount,
		Category:    t.Category,
		Currency:    t.Currency,
		CreatedAt:   t.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   t.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func NewTransactionList(txs []models.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txs))
	for i := range txs {
		out = append(out, NewTransactionResponse(&txs[i]))
	}
	return out
}
