package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "DEPOSIT"
	TransactionTypeWithdrawal TransactionType = "WITHDRAWAL"
	TransactionTypeTransfer   TransactionType = "TRANSFER"
	TransactionTypeInterest   TransactionType = "INTEREST"
)

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusFailed    TransactionStatus = "FAILED"
	TransactionStatusCancelled TransactionStatus = "CANCELLED"
	TransactionStatusRejected  TransactionStatus = "REJECTED"
)

// IsTerminal reports whether the status may no longer change. Transactions
// move PENDING -> {COMPLETED, FAILED, CANCELLED, REJECTED} exactly once.
func (s TransactionStatus) IsTerminal() bool {
	return s != TransactionStatusPending
}

type Transaction struct {
	ID                string
	TransactionNumber string
	FromAccountID     string
	ToAccountID       *string
	Type              TransactionType
	Amount            decimal.Decimal
	Currency          string
	Status            TransactionStatus
	Description       string
	CreatedAt         time.Time
	CompletedAt       *time.Time
}
