package repo_interfaces

import (
	"context"

	"github.com/kareem-sharaf/Banking-System-sub001/internal/domain"
)

type TransactionRepository interface {
	Create(ctx context.Context, txn domain.Transaction) (domain.Transaction, error)
	GetByTransactionNumber(ctx context.Context, transactionNumber string) (domain.Transaction, error)
	ListByAccountID(ctx context.Context, accountID string) ([]domain.Transaction, error)

	// CommitOperation persists the transaction and the affected accounts as
	// one atomic unit. The balance mutation and the status update are never
	// observable separately.
	CommitOperation(ctx context.Context, txn domain.Transaction, accounts ...domain.Account) error
}
