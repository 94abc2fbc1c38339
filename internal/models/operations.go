package models

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type DepositRequest struct {
	AccountNumber string          `json:"accountNumber"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description,omitempty"`
}

func (r DepositRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.AccountNumber) == "" {
		errs = append(errs, "accountNumber is required")
	}
	if !r.Amount.IsPositive() {
		errs = append(errs, "amount must be greater than zero")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type WithdrawRequest struct {
	AccountNumber string          `json:"accountNumber"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description,omitempty"`
}

func (r WithdrawRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.AccountNumber) == "" {
		errs = append(errs, "accountNumber is required")
	}
	if !r.Amount.IsPositive() {
		errs = append(errs, "amount must be greater than zero")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type TransferRequest struct {
	FromAccountNumber string          `json:"fromAccountNumber"`
	ToAccountNumber   string          `json:"toAccountNumber"`
	Amount            decimal.Decimal `json:"amount"`
	Description       string          `json:"description,omitempty"`
}

func (r TransferRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.FromAccountNumber) == "" {
		errs = append(errs, "fromAccountNumber is required")
	}
	if strings.TrimSpace(r.ToAccountNumber) == "" {
		errs = append(errs, "toAccountNumber is required")
	}
	if !r.Amount.IsPositive() {
		errs = append(errs, "amount must be greater than zero")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// OperationResult is what the thin API layer consumes. Amounts are rendered
// at 2-digit scale.
type OperationResult struct {
	TransactionID     string    `json:"transactionId"`
	TransactionNumber string    `json:"transactionNumber"`
	AccountNumber     string    `json:"accountNumber"`
	Amount            string    `json:"amount"`
	NewBalance        string    `json:"newBalance"`
	Currency          string    `json:"currency"`
	Status            string    `json:"status"`
	Timestamp         time.Time `json:"timestamp"`
}

// BatchSummary aggregates one daily accrual run.
type BatchSummary struct {
	Date          time.Time `json:"date"`
	TotalAccounts int       `json:"totalAccounts"`
	Succeeded     int       `json:"succeeded"`
	Failed        int       `json:"failed"`
	Skipped       int       `json:"skipped"`
	TotalInterest string    `json:"totalInterest"`
}
