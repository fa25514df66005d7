package store

import (
	"context"

	"github.com/jackc/pgx/v5"

	"FINTRACK_BACK-END/internal/models"
)

type PostgresTokens struct {
	db querier
}

// Upsert keeps a single row per email; a newer registration replaces the
// previous token.
func (r *PostgresTokens) Upsert(ctx context.Context, t *models.VerificationToken) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO verification_tokens (email, token, expires, used, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (email) DO UPDATE
		 SET token = EXCLUDED.token, expires = EXCLUDED.expires, used = EXCLUDED.used, created_at = EXCLUDED.created_at`,
		t.Email, t.Token, t.Expires, t.Used, t.CreatedAt)
	return translate(err)
}

func (r *PostgresTokens) GetByToken(ctx context.Context, token string) (*models.VerificationToken, error) {
	rows, err := r.db.Query(ctx,
		`SELECT email, token, expires, used, created_at FROM verification_tokens WHERE token = $1`, token)
	if err != nil {
		return nil, translate(err)
	}
	t, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[models.VerificationToken])
	if err != nil {
		return nil, translate(err)
	}
	return t, nil
}

func (r *PostgresTokens) MarkUsed(ctx context.Context, token string) error {
	tag, err := r.db.Exec(ctx, `UPDATE verification_tokens SET used = TRUE WHERE token = $1`, token)
	if err != nil {
		return translate(err)
	}
	return affected(tag)
}

func (r *PostgresTokens) Delete(ctx context.Context, token string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM verification_tokens WHERE token = $1`, token)
	return translate(err)
}

func (r *PostgresTokens) DeleteByEmail(ctx context.Context, email string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM verification_tokens WHERE email = $1`, email)
	return translate(err)
}
