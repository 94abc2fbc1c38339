package interest

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kareem-sharaf/Banking-System-sub001/internal/domain"
)

// SavingsCalculator accrues on positive savings balances. A zero or negative
// balance earns nothing.
type SavingsCalculator struct {
	cfg Config
}

func NewSavingsCalculator(cfg Config) *SavingsCalculator {
	return &SavingsCalculator{cfg: cfg}
}

func (c *SavingsCalculator) Name() string { return "savings" }

func (c *SavingsCalculator) Supports(accountType domain.AccountType) bool {
	return accountType == domain.AccountTypeSavings || accountType == domain.AccountTypeFixedDeposit
}

func (c *SavingsCalculator) Calculate(account domain.Account, _ time.Time) (decimal.Decimal, error) {
	if !account.Balance.IsPositive() {
		return decimal.Zero, nil
	}
	return dailyInterest(account.Balance, effectiveRate(account, c.cfg.SavingsAnnualRate)), nil
}

// CheckingCalculator accrues a modest rate on positive checking balances.
type CheckingCalculator struct {
	cfg Config
}

func NewCheckingCalculator(cfg Config) *CheckingCalculator {
	return &CheckingCalculator{cfg: cfg}
}

func (c *CheckingCalculator) Name() string { return "checking" }

func (c *CheckingCalculator) Supports(accountType domain.AccountType) bool {
	return accountType == domain.AccountTypeChecking
}

func (c *CheckingCalculator) Calculate(account domain.Account, _ time.Time) (decimal.Decimal, error) {
	if !account.Balance.IsPositive() {
		return decimal.Zero, nil
	}
	return dailyInterest(account.Balance, effectiveRate(account, c.cfg.CheckingAnnualRate)), nil
}

// LoanCalculator accrues on negative balances only. The result keeps the
// balance's sign, so applying it grows the debt.
type LoanCalculator struct {
	cfg Config
}

func NewLoanCalculator(cfg Config) *LoanCalculator {
	return &LoanCalculator{cfg: cfg}
}

func (c *LoanCalculator) Name() string { return "loan" }

func (c *LoanCalculator) Supports(accountType domain.AccountType) bool {
	return accountType == domain.AccountTypeLoan
}

func (c *LoanCalculator) Calculate(account domain.Account, _ time.Time) (decimal.Decimal, error) {
	if !account.Balance.IsNegative() {
		return decimal.Zero, nil
	}
	return dailyInterest(account.Balance, effectiveRate(account, c.cfg.LoanAnnualRate)), nil
}
