package domain

import (
	"errors"
	"fmt"
)

var ErrAccountNotFound = errors.New("account not found")
var ErrTransactionNotFound = errors.New("transaction not found")
var ErrAccountNotActive = errors.New("account is not active")
var ErrInsufficientBalance = errors.New("insufficient balance")
var ErrSameAccount = errors.New("debit and credit accounts cannot be the same")
var ErrApprovalRejected = errors.New("transaction rejected by approval chain")

// InterestCalculationError wraps an unexpected per-account failure during
// interest accrual. The batch driver records it and moves on.
type InterestCalculationError struct {
	AccountID string
	Err       error
}

func (e *InterestCalculationError) Error() string {
	return fmt.Sprintf("interest calculation failed for account %s: %v", e.AccountID, e.Err)
}

func (e *InterestCalculationError) Unwrap() error {
	return e.Err
}
