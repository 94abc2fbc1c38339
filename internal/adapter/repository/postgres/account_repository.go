package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kareem-sharaf/Banking-System-sub001/internal/domain"
	"github.com/kareem-sharaf/Banking-System-sub001/internal/logger"
)

const accountColumns = `
id, account_number, account_type, status, balance, currency, interest_rate,
last_interest_date, last_activity_at, opened_at, closed_at, parent_account_id,
created_at, updated_at`

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (domain.Account, error) {
	const query = `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *AccountRepository) GetByAccountNumber(ctx context.Context, accountNumber string) (domain.Account, error) {
	const query = `SELECT ` + accountColumns + ` FROM accounts WHERE account_number = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, accountNumber))
}

func (r *AccountRepository) ListByStatus(ctx context.Context, status domain.AccountStatus) ([]domain.Account, error) {
	const query = `SELECT ` + accountColumns + ` FROM accounts WHERE status = $1 ORDER BY account_number`

	rows, err := r.db.QueryContext(ctx, query, status)
	if err != nil {
		logger.Error("account repository list by status failed", err, logger.Fields{
			"status": string(status),
		})
		return nil, fmt.Errorf("list accounts by status: %w", err)
	}
	defer rows.Close()

	accounts := make([]domain.Account, 0)
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate accounts: %w", err)
	}

	return accounts, nil
}

func (r *AccountRepository) Update(ctx context.Context, account domain.Account) (domain.Account, error) {
	const query = `
UPDATE accounts
SET status = $2,
	balance = $3,
	interest_rate = $4,
	last_interest_date = $5,
	last_activity_at = $6,
	closed_at = $7,
	updated_at = NOW()
WHERE id = $1
RETURNING updated_at`

	var updatedAt time.Time
	err := r.db.QueryRowContext(
		ctx,
		query,
		account.ID,
		account.Status,
		account.Balance.StringFixed(2),
		nullDecimal(account.InterestRate),
		nullTime(account.LastInterestDate),
		nullTime(account.LastActivityAt),
		nullTime(account.ClosedAt),
	).Scan(&updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, domain.ErrAccountNotFound
		}
		logger.Error("account repository update failed", err, logger.Fields{
			"accountId": account.ID,
		})
		return domain.Account{}, fmt.Errorf("update account: %w", err)
	}

	account.UpdatedAt = updatedAt
	return account, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *AccountRepository) scanOne(row rowScanner) (domain.Account, error) {
	account, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, domain.ErrAccountNotFound
		}
		return domain.Account{}, err
	}
	return account, nil
}

func scanAccount(row rowScanner) (domain.Account, error) {
	var account domain.Account
	var balance string
	var interestRate sql.NullString
	var lastInterestDate, lastActivityAt, closedAt sql.NullTime
	var parentAccountID sql.NullString

	err := row.Scan(
		&account.ID,
		&account.AccountNumber,
		&account.Type,
		&account.Status,
		&balance,
		&account.Currency,
		&interestRate,
		&lastInterestDate,
		&lastActivityAt,
		&account.OpenedAt,
		&closedAt,
		&parentAccountID,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, err
		}
		return domain.Account{}, fmt.Errorf("scan account: %w", err)
	}

	account.Balance, err = decimal.NewFromString(balance)
	if err != nil {
		return domain.Account{}, fmt.Errorf("parse account balance %q: %w", balance, err)
	}

	if interestRate.Valid {
		rate, err := decimal.NewFromString(interestRate.String)
		if err != nil {
			return domain.Account{}, fmt.Errorf("parse interest rate %q: %w", interestRate.String, err)
		}
		account.InterestRate = &rate
	}
	if lastInterestDate.Valid {
		t := lastInterestDate.Time
		account.LastInterestDate = &t
	}
	if lastActivityAt.Valid {
		t := lastActivityAt.Time
		account.LastActivityAt = &t
	}
	if closedAt.Valid {
		t := closedAt.Time
		account.ClosedAt = &t
	}
	if parentAccountID.Valid {
		id := parentAccountID.String
		account.ParentAccountID = &id
	}

	return account, nil
}

func nullDecimal(value *decimal.Decimal) any {
	if value == nil {
		return nil
	}
	return value.String()
}

func nullTime(value *time.Time) any {
	if value == nil {
		return nil
	}
	return *value
}
