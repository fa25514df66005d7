package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"FINTRACK_BACK-END/internal/models"
)

const userColumns = `id, name, email, password_hash, verified, created_at, updated_at`

type PostgresUsers struct {
	pool *pgxpool.Pool
}

func (r *PostgresUsers) Create(ctx context.Context, u *models.User) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO users (id, name, email, password_hash, verified, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Verified, u.CreatedAt, u.UpdatedAt)
	return translate(err)
}

func (r *PostgresUsers) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *PostgresUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *PostgresUsers) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, translate(err)
	}
	u, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[models.User])
	if err != nil {
		return nil, translate(err)
	}
	return u, nil
}

func (r *PostgresUsers) Update(ctx context.Context, u *models.User) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET name = $2, password_hash = $3, verified = $4, updated_at = $5
		 WHERE id = $1`,
		u.ID, u.Name, u.PasswordHash, u.Verified, u.UpdatedAt)
	if err != nil {
		return translate(err)
	}
	return affected(tag)
}

// Delete removes the token row by email in the same transaction; owned
// transactions and budgets go through ON DELETE CASCADE.
func (r *PostgresUsers) Delete(ctx context.Context, id uuid.UUID) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		var email string
		if err := tx.QueryRow(ctx, `SELECT email FROM users WHERE id = $1`, id).Scan(&email); err != nil {
			return translate(err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM verification_tokens WHERE email = $1`, email); err != nil {
			return translate(err)
		}
		tag, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
		if err != nil {
			return translate(err)
		}
		return affected(tag)
	})
}
