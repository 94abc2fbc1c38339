package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kareem-sharaf/Banking-System-sub001/internal/domain"
)

// TransactionRepository stores transactions in memory. CommitOperation
// mutates the account store under the same lock so the transaction status
// and the balances move together, mirroring the relational unit of work.
type TransactionRepository struct {
	mu       sync.Mutex
	accounts *AccountRepository
	byID     map[string]domain.Transaction
	byNumber map[string]string
}

func NewTransactionRepository(accounts *AccountRepository) *TransactionRepository {
	return &TransactionRepository{
		accounts: accounts,
		byID:     make(map[string]domain.Transaction),
		byNumber: make(map[string]string),
	}
}

func (r *TransactionRepository) Create(_ context.Context, txn domain.Transaction) (domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store(txn), nil
}

func (r *TransactionRepository) GetByTransactionNumber(_ context.Context, transactionNumber string) (domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byNumber[transactionNumber]
	if !ok {
		return domain.Transaction{}, domain.ErrTransactionNotFound
	}
	return r.byID[id], nil
}

func (r *TransactionRepository) ListByAccountID(_ context.Context, accountID string) ([]domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.Transaction, 0)
	for _, txn := range r.byID {
		if txn.FromAccountID == accountID {
			out = append(out, txn)
			continue
		}
		if txn.ToAccountID != nil && *txn.ToAccountID == accountID {
			out = append(out, txn)
		}
	}
	return out, nil
}

func (r *TransactionRepository) CommitOperation(ctx context.Context, txn domain.Transaction, accounts ...domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, account := range accounts {
		if _, err := r.accounts.Update(ctx, account); err != nil {
			return err
		}
	}
	r.store(txn)
	return nil
}

func (r *TransactionRepository) store(txn domain.Transaction) domain.Transaction {
	if txn.ID == "" {
		txn.ID = uuid.NewString()
	}
	if txn.CreatedAt.IsZero() {
		txn.CreatedAt = time.Now().UTC()
	}
	r.byID[txn.ID] = txn
	r.byNumber[txn.TransactionNumber] = txn.ID
	return txn
}
