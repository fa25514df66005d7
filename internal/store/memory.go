package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"FINTRACK_BACK-END/internal/finance"
	"FINTRACK_BACK-END/internal/models"
)

// memoryDB is the shared state behind the in-memory repositories.
// Values are copied in and out so callers never alias stored records.
type memoryDB struct {
	mu           sync.RWMutex
	users        map[uuid.UUID]models.User
	tokens       map[string]models.VerificationToken // by token
	transactions map[uuid.UUID]models.Transaction
	budgets      map[uuid.UUID]models.Budget
}

// NewMemory returns a Store backed by process memory.
func NewMemory() *Store {
	db := &memoryDB{
		users:        make(map[uuid.UUID]models.User),
		tokens:       make(map[string]models.VerificationToken),
		transactions: make(map[uuid.UUID]models.Transaction),
		budgets:      make(map[uuid.UUID]models.Budget),
	}
	return &Store{
		Users:        &memoryUsers{db},
		Tokens:       &memoryTokens{db},
		Transactions: &memoryTransactions{db},
		Budgets:      &memoryBudgets{db},
	}
}

func sameEmail(a, b string) bool { return strings.EqualFold(a, b) }

type memoryUsers struct{ db *memoryDB }

func (r *memoryUsers) Create(_ context.Context, u *models.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, existing := range r.db.users {
		if sameEmail(existing.Email, u.Email) {
			return ErrDuplicate
		}
	}
	if _, ok := r.db.users[u.ID]; ok {
		return ErrDuplicate
	}
	r.db.users[u.ID] = *u
	return nil
}

func (r *memoryUsers) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	u, ok := r.db.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (r *memoryUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	for _, u := range r.db.users {
		if sameEmail(u.Email, email) {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryUsers) Update(_ context.Context, u *models.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.users[u.ID]; !ok {
		return ErrNotFound
	}
	r.db.users[u.ID] = *u
	return nil
}

func (r *memoryUsers) Delete(_ context.Context, id uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[id]
	if !ok {
		return ErrNotFound
	}
	delete(r.db.users, id)
	for tok, t := range r.db.tokens {
		if sameEmail(t.Email, u.Email) {
			delete(r.db.tokens, tok)
		}
	}
	for tid, t := range r.db.transactions {
		if t.UserID == id {
			delete(r.db.transactions, tid)
		}
	}
	for bid, b := range r.db.budgets {
		if b.UserID == id {
			delete(r.db.budgets, bid)
		}
	}
	return nil
}

type memoryTokens struct{ db *memoryDB }

func (r *memoryTokens) Upsert(_ context.Context, t *models.VerificationToken) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for tok, existing := range r.db.tokens {
		if sameEmail(existing.Email, t.Email) {
			delete(r.db.tokens, tok)
		}
	}
	if _, ok := r.db.tokens[t.Token]; ok {
		return ErrDuplicate
	}
	r.db.tokens[t.Token] = *t
	return nil
}

func (r *memoryTokens) GetByToken(_ context.Context, token string) (*models.VerificationToken, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	t, ok := r.db.tokens[token]
	if !ok {
		return nil, ErrNotFound
	}
	return &t, nil
}

func (r *memoryTokens) MarkUsed(_ context.Context, token string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	t, ok := r.db.tokens[token]
	if !ok {
		return ErrNotFound
	}
	t.Used = true
	r.db.tokens[token] = t
	return nil
}

func (r *memoryTokens) Delete(_ context.Context, token string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.tokens, token)
	return nil
}

func (r *memoryTokens) DeleteByEmail(_ context.Context, email string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for tok, t := range r.db.tokens {
		if sameEmail(t.Email, email) {
			delete(r.db.tokens, tok)
		}
	}
	return nil
}

type memoryTransactions struct{ db *memoryDB }

func (r *memoryTransactions) Create(_ context.Context, t *models.Transaction) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.users[t.UserID]; !ok {
		return ErrNotFound
	}
	if _, ok := r.db.transactions[t.ID]; ok {
		return ErrDuplicate
	}
	r.db.transactions[t.ID] = *t
	return nil
}

func (r *memoryTransactions) Get(_ context.Context, userID, id uuid.UUID) (*models.Transaction, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	t, ok := r.db.transactions[id]
	if !ok || t.UserID != userID {
		return nil, ErrNotFound
	}
	return &t, nil
}

func (r *memoryTransactions) ListByUser(_ context.Context, userID uuid.UUID) ([]models.Transaction, error) {
	r.db.mu.RLock()
	out := []models.Transaction{}
	for _, t := range r.db.transactions {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	r.db.mu.RUnlock()
	finance.SortNewestFirst(out)
	return out, nil
}

func (r *memoryTransactions) Update(_ context.Context, t *models.Transaction) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	existing, ok := r.db.transactions[t.ID]
	if !ok || existing.UserID != t.UserID {
		return ErrNotFound
	}
	r.db.transactions[t.ID] = *t
	return nil
}

func (r *memoryTransactions) Delete(_ context.Context, userID, id uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	t, ok := r.db.transactions[id]
	if !ok || t.UserID != userID {
		return ErrNotFound
	}
	delete(r.db.transactions, id)
	return nil
}

type memoryBudgets struct{ db *memoryDB }

// clashes reports whether another budget of the same user already covers
// b's category and period. Callers hold the lock.
func (r *memoryBudgets) clashes(b *models.Budget) bool {
	for _, existing := range r.db.budgets {
		if existing.ID != b.ID && existing.UserID == b.UserID &&
			existing.Category == b.Category && existing.Period == b.Period {
			return true
		}
	}
	return false
}

func (r *memoryBudgets) Create(_ context.Context, b *models.Budget) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.users[b.UserID]; !ok {
		return ErrNotFound
	}
	if _, ok := r.db.budgets[b.ID]; ok || r.clashes(b) {
		return ErrDuplicate
	}
	r.db.budgets[b.ID] = *b
	return nil
}

func (r *memoryBudgets) Get(_ context.Context, userID, id uuid.UUID) (*models.Budget, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	b, ok := r.db.budgets[id]
	if !ok || b.UserID != userID {
		return nil, ErrNotFound
	}
	return &b, nil
}

func (r *memoryBudgets) ListByUser(_ context.Context, userID uuid.UUID) ([]models.Budget, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	out := []models.Budget{}
	for _, b := range r.db.budgets {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	sortBudgets(out)
	return out, nil
}

func (r *memoryBudgets) Update(_ context.Context, b *models.Budget) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	existing, ok := r.db.budgets[b.ID]
	if !ok || existing.UserID != b.UserID {
		return ErrNotFound
	}
	if r.clashes(b) {
		return ErrDuplicate
	}
	r.db.budgets[b.ID] = *b
	return nil
}

func (r *memoryBudgets) Delete(_ context.Context, userID, id uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	b, ok := r.db.budgets[id]
	if !ok || b.UserID != userID {
		return ErrNotFound
	}
	delete(r.db.budgets, id)
	return nil
}

// sortBudgets orders budgets the way the postgres listing does.
func sortBudgets(bs []models.Budget) {
	sort.Slice(bs, func(i, j int) bool {
		if !bs[i].CreatedAt.Equal(bs[j].CreatedAt) {
			return bs[i].CreatedAt.Before(bs[j].CreatedAt)
		}
		if bs[i].Category != bs[j].Category {
			return bs[i].Category < bs[j].Category
		}
		return bs[i].ID.String() < bs[j].ID.String()
	})
}
