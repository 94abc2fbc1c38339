package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kareem-sharaf/Banking-System-sub001/internal/domain"
)

// AccountRepository is a mutex-guarded in-memory store. It backs tests and
// single-process wiring; row consistency comes from the single lock.
type AccountRepository struct {
	mu       sync.RWMutex
	byID     map[string]domain.Account
	byNumber map[string]string
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		byID:     make(map[string]domain.Account),
		byNumber: make(map[string]string),
	}
}

// Create seeds an account. Account opening is driven by an external flow,
// so this lives on the concrete type rather than the repository contract.
func (r *AccountRepository) Create(_ context.Context, account domain.Account) (domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	account.CreatedAt = now
	account.UpdatedAt = now

	r.byID[account.ID] = account
	r.byNumber[account.AccountNumber] = account.ID
	return account, nil
}

func (r *AccountRepository) GetByID(_ context.Context, id string) (domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.byID[id]
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound
	}
	return account, nil
}

func (r *AccountRepository) GetByAccountNumber(_ context.Context, accountNumber string) (domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byNumber[accountNumber]
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound
	}
	return r.byID[id], nil
}

func (r *AccountRepository) ListByStatus(_ context.Context, status domain.AccountStatus) ([]domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Account, 0)
	for _, account := range r.byID {
		if account.Status == status {
			out = append(out, account)
		}
	}
	return out, nil
}

func (r *AccountRepository) Update(_ context.Context, account domain.Account) (domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[account.ID]; !ok {
		return domain.Account{}, domain.ErrAccountNotFound
	}

	account.UpdatedAt = time.Now().UTC()
	r.byID[account.ID] = account
	r.byNumber[account.AccountNumber] = account.ID
	return account, nil
}
