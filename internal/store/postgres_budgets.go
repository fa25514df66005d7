package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"FINTRACK_BACK-END/internal/models"
)

const budgetColumns = `id, user_id, category, amount, period, currency, created_at, updated_at`

type PostgresBudgets struct {
	db querier
}

func (r *PostgresBudgets) Create(ctx context.Context, b *models.Budget) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO budgets (`+budgetColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		b.ID, b.UserID, b.Category, b.Amount, string(b.Period), b.Currency, b.CreatedAt, b.UpdatedAt)
	return translate(err)
}

func (r *PostgresBudgets) Get(ctx context.Context, userID, id uuid.UUID) (*models.Budget, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+budgetColumns+` FROM budgets WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return nil, translate(err)
	}
	b, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[models.Budget])
	if err != nil {
		return nil, translate(err)
	}
	return b, nil
}

func (r *PostgresBudgets) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Budget, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+budgetColumns+` FROM budgets
		 WHERE user_id = $1
		 ORDER BY created_at, category, id`, userID)
	if err != nil {
		return nil, translate(err)
	}
	bs, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Budget])
	if err != nil {
		return nil, translate(err)
	}
	return bs, nil
}

func (r *PostgresBudgets) Update(ctx context.Context, b *models.Budget) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE budgets
		 SET category = $3, amount = $4, period = $5, currency = $6, updated_at = $7
		 WHERE id = $1 AND user_id = $2`,
		b.ID, b.UserID, b.Category, b.Amount, string(b.Period), b.Currency, b.UpdatedAt)
	if err != nil {
		return translate(err)
	}
	return affected(tag)
}

func (r *PostgresBudgets) Delete(ctx context.Context, userID, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM budgets WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return translate(err)
	}
	return affected(tag)
}
