package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type CalculationStatus string

const (
	CalculationStatusSuccess CalculationStatus = "SUCCESS"
	CalculationStatusFailed  CalculationStatus = "FAILED"
	CalculationStatusPending CalculationStatus = "PENDING"
	CalculationStatusSkipped CalculationStatus = "SKIPPED"
)

// InterestCalculation is the append-only audit record of one accrual attempt
// for one account on one calculation date.
type InterestCalculation struct {
	ID              string
	AccountID       string
	CalculationDate time.Time
	InterestAmount  decimal.Decimal
	CalculatorName  string
	Status          CalculationStatus
	PreviousBalance decimal.Decimal
	NewBalance      decimal.Decimal
	ErrorMessage    string
	Duration        time.Duration
	CreatedAt       time.Time
}
