package interest

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kareem-sharaf/Banking-System-sub001/internal/domain"
)

// BonusCalculator is a universal adjustor. It rewards high balances and
// long-standing accounts; both bonuses can apply on the same day.
type BonusCalculator struct {
	cfg Config
}

func NewBonusCalculator(cfg Config) *BonusCalculator {
	return &BonusCalculator{cfg: cfg}
}

func (c *BonusCalculator) Name() string { return "bonus" }

func (c *BonusCalculator) Supports(_ domain.AccountType) bool { return true }

func (c *BonusCalculator) Calculate(account domain.Account, date time.Time) (decimal.Decimal, error) {
	total := decimal.Zero

	if account.Balance.GreaterThanOrEqual(c.cfg.BonusBalanceMin) {
		total = total.Add(dailyInterest(account.Balance, c.cfg.BonusAnnualRate))
	}

	loyaltyCutoff := date.AddDate(0, -c.cfg.LoyaltyMonths, 0)
	if account.Balance.IsPositive() && !account.OpenedAt.After(loyaltyCutoff) {
		total = total.Add(dailyInterest(account.Balance, c.cfg.LoyaltyAnnualRate))
	}

	return total, nil
}

// PenaltyCalculator subtracts fees for low balances and inactivity. It only
// applies to checking and savings accounts.
type PenaltyCalculator struct {
	cfg Config
}

func NewPenaltyCalculator(cfg Config) *PenaltyCalculator {
	return &PenaltyCalculator{cfg: cfg}
}

func (c *PenaltyCalculator) Name() string { return "penalty" }

func (c *PenaltyCalculator) Supports(accountType domain.AccountType) bool {
	return accountType == domain.AccountTypeChecking || accountType == domain.AccountTypeSavings
}

func (c *PenaltyCalculator) Calculate(account domain.Account, date time.Time) (decimal.Decimal, error) {
	total := decimal.Zero

	if account.Balance.IsPositive() && account.Balance.LessThan(c.cfg.PenaltyBalanceMax) {
		total = total.Sub(c.cfg.PenaltyLowBalanceFee)
	}

	lastActivity := account.OpenedAt
	if account.LastActivityAt != nil {
		lastActivity = *account.LastActivityAt
	}
	if date.Sub(lastActivity) >= time.Duration(c.cfg.InactivityDays)*24*time.Hour {
		total = total.Sub(c.cfg.PenaltyInactivityFee)
	}

	return total, nil
}
