package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type AccountStatus string

const (
	AccountStatusActive    AccountStatus = "ACTIVE"
	AccountStatusFrozen    AccountStatus = "FROZEN"
	AccountStatusSuspended AccountStatus = "SUSPENDED"
	AccountStatusClosed    AccountStatus = "CLOSED"
)

type AccountType string

const (
	AccountTypeChecking     AccountType = "CHECKING"
	AccountTypeSavings      AccountType = "SAVINGS"
	AccountTypeLoan         AccountType = "LOAN"
	AccountTypeFixedDeposit AccountType = "FIXED_DEPOSIT"
)

type Account struct {
	ID               string
	AccountNumber    string
	Type             AccountType
	Status           AccountStatus
	Balance          decimal.Decimal
	Currency         string
	InterestRate     *decimal.Decimal
	LastInterestDate *time.Time
	LastActivityAt   *time.Time
	OpenedAt         time.Time
	ClosedAt         *time.Time
	ParentAccountID  *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// CanTransact reports whether balance-mutating operations are permitted.
// Only ACTIVE accounts may be deposited to, withdrawn from, transferred
// between, or accrued interest on.
func (a Account) CanTransact() bool {
	return a.Status == AccountStatusActive
}
