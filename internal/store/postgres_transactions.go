package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"FINTRACK_BACK-END/internal/models"
)

const transactionColumns = `id, user_id, date, description, amount, category, currency, created_at, updated_at`

type PostgresTransactions struct {
	db querier
}

func (r *PostgresTransactions) Create(ctx context.Context, t *models.Transaction) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO transactions (`+transactionColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		t.ID, t.UserID, t.Date, t.Description, t.Amount, t.Category, t.Currency, t.CreatedAt, t.UpdatedAt)
	return translate(err)
}

func (r *PostgresTransactions) Get(ctx context.Context, userID, id uuid.UUID) (*models.Transaction, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return nil, translate(err)
	}
	t, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[models.Transaction])
	if err != nil {
		return nil, translate(err)
	}
	return t, nil
}

func (r *PostgresTransactions) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Transaction, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+transactionColumns+` FROM transactions
		 WHERE user_id = $1
		 ORDER BY date DESC, id`, userID)
	if err != nil {
		return nil, translate(err)
	}
	txs, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Transaction])
	if err != nil {
		return nil, translate(err)
	}
	return txs, nil
}

func (r *PostgresTransactions) Update(ctx context.Context, t *models.Transaction) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE transactions
		 SET date = $3, description = $4, amount = $5, category = $6, currency = $7, updated_at = $8
		 WHERE id = $1 AND user_id = $2`,
		t.ID, t.UserID, t.Date, t.Description, t.Amount, t.Category, t.Currency, t.UpdatedAt)
	if err != nil {
		return translate(err)
	}
	return affected(tag)
}

func (r *PostgresTransactions) Delete(ctx context.Context, userID, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM transactions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return translate(err)
	}
	return affected(tag)
}
