package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/kareem-sharaf/Banking-System-sub001/internal/domain"
	"github.com/kareem-sharaf/Banking-System-sub001/internal/logger"
)

const transactionColumns = `
id, transaction_number, from_account_id, to_account_id, transaction_type,
amount, currency, status, description, created_at, completed_at`

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(ctx context.Context, txn domain.Transaction) (domain.Transaction, error) {
	const query = `
INSERT INTO transactions (
	id, transaction_number, from_account_id, to_account_id, transaction_type,
	amount, currency, status, description, created_at, completed_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.ExecContext(ctx, query, insertTransactionArgs(txn)...)
	if err != nil {
		logger.Error("transaction repository create failed", err, logger.Fields{
			"transactionNumber": txn.TransactionNumber,
		})
		return domain.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}

	return txn, nil
}

func (r *TransactionRepository) GetByTransactionNumber(ctx context.Context, transactionNumber string) (domain.Transaction, error) {
	const query = `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_number = $1`

	txn, err := scanTransaction(r.db.QueryRowContext(ctx, query, transactionNumber))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Transaction{}, domain.ErrTransactionNotFound
		}
		return domain.Transaction{}, err
	}
	return txn, nil
}

func (r *TransactionRepository) ListByAccountID(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	const query = `SELECT ` + transactionColumns + `
FROM transactions
WHERE from_account_id = $1 OR to_account_id = $1
ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("list transactions by account: %w", err)
	}
	defer rows.Close()

	transactions := make([]domain.Transaction, 0)
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	return transactions, nil
}

// CommitOperation writes the transaction row and every account balance in
// one database transaction. Either everything lands or nothing does.
func (r *TransactionRepository) CommitOperation(ctx context.Context, txn domain.Transaction, accounts ...domain.Account) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin operation tx: %w", err)
	}

	for _, account := range accounts {
		const update = `
UPDATE accounts
SET balance = $2, last_activity_at = $3, updated_at = NOW()
WHERE id = $1`

		result, err := tx.ExecContext(ctx, update, account.ID, account.Balance.StringFixed(2), nullTime(account.LastActivityAt))
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("update account %s: %w", account.AccountNumber, err)
		}
		affected, err := result.RowsAffected()
		if err == nil && affected == 0 {
			_ = tx.Rollback()
			return domain.ErrAccountNotFound
		}
	}

	const upsert = `
INSERT INTO transactions (
	id, transaction_number, from_account_id, to_account_id, transaction_type,
	amount, currency, status, description, created_at, completed_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (id) DO UPDATE SET status = EXCLUDED.status, completed_at = EXCLUDED.completed_at`

	if _, err := tx.ExecContext(ctx, upsert, insertTransactionArgs(txn)...); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("persist transaction %s: %w", txn.TransactionNumber, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit operation: %w", err)
	}

	return nil
}

func insertTransactionArgs(txn domain.Transaction) []any {
	return []any{
		txn.ID,
		txn.TransactionNumber,
		txn.FromAccountID,
		nullString(txn.ToAccountID),
		txn.Type,
		txn.Amount.StringFixed(2),
		txn.Currency,
		txn.Status,
		txn.Description,
		txn.CreatedAt,
		nullTime(txn.CompletedAt),
	}
}

func scanTransaction(row rowScanner) (domain.Transaction, error) {
	var txn domain.Transaction
	var amount string
	var toAccountID sql.NullString
	var completedAt sql.NullTime

	err := row.Scan(
		&txn.ID,
		&txn.TransactionNumber,
		&txn.FromAccountID,
		&toAccountID,
		&txn.Type,
		&amount,
		&txn.Currency,
		&txn.Status,
		&txn.Description,
		&txn.CreatedAt,
		&completedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Transaction{}, err
		}
		return domain.Transaction{}, fmt.Errorf("scan transaction: %w", err)
	}

	txn.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("parse transaction amount %q: %w", amount, err)
	}

	if toAccountID.Valid {
		id := toAccountID.String
		txn.ToAccountID = &id
	}
	if completedAt.Valid {
		t := completedAt.Time
		txn.CompletedAt = &t
	}

	return txn, nil
}

func nullString(value *string) any {
	if value == nil {
		return nil
	}
	return *value
}
