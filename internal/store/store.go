// Package store holds the persistence layer: repository interfaces with a
// PostgreSQL implementation on pgxpool and an in-memory implementation used
// by tests and local runs.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"FINTRACK_BACK-END/internal/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

type UserRepository interface {
	// Create fails with ErrDuplicate when the email is taken.
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// Update persists name, password hash, verified flag and updated_at.
	Update(ctx context.Context, u *models.User) error
	// Delete removes the user together with its verification token,
	// transactions and budgets.
	Delete(ctx context.Context, id uuid.UUID) error
}

type TokenRepository interface {
	// Upsert stores t, replacing any existing token for the same email.
	Upsert(ctx context.Context, t *models.VerificationToken) error
	GetByToken(ctx context.Context, token string) (*models.VerificationToken, error)
	MarkUsed(ctx context.Context, token string) error
	Delete(ctx context.Context, token string) error
	DeleteByEmail(ctx context.Context, email string) error
}

type TransactionRepository interface {
	Create(ctx context.Context, t *models.Transaction) error
	Get(ctx context.Context, userID, id uuid.UUID) (*models.Transaction, error)
	// ListByUser returns every transaction of the user, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Transaction, error)
	Update(ctx context.Context, t *models.Transaction) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type BudgetRepository interface {
	// Create fails with ErrDuplicate when the user already has a budget
	// for the same category and period.
	Create(ctx context.Context, b *models.Budget) error
	Get(ctx context.Context, userID, id uuid.UUID) (*models.Budget, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Budget, error)
	Update(ctx context.Context, b *models.Budget) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// Store bundles the repositories of one backend.
type Store struct {
	Users        UserRepository
	Tokens       TokenRepository
	Transactions TransactionRepository
	Budgets      BudgetRepository

	ping  func(ctx context.Context) error
	close func()
}

// Ping checks that the backend is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if s.ping == nil {
		return nil
	}
	return s.ping(ctx)
}

// Close releases backend resources.
func (s *Store) Close() {
	if s.close != nil {
		s.close()
	}
}
