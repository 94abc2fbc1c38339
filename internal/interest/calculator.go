package interest

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kareem-sharaf/Banking-System-sub001/internal/domain"
)

// Calculator computes one contribution to an account's daily interest.
// Supports is the type predicate used to resolve the base calculator and to
// decide whether the bonus and penalty adjustors join the composite.
type Calculator interface {
	Name() string
	Supports(accountType domain.AccountType) bool
	Calculate(account domain.Account, date time.Time) (decimal.Decimal, error)
}

// Config carries every rate and threshold the calculators use. Values come
// from runtime configuration; an account's own InterestRate overrides the
// per-type default.
type Config struct {
	SavingsAnnualRate  decimal.Decimal
	CheckingAnnualRate decimal.Decimal
	LoanAnnualRate     decimal.Decimal

	BonusBalanceMin   decimal.Decimal
	BonusAnnualRate   decimal.Decimal
	LoyaltyMonths     int
	LoyaltyAnnualRate decimal.Decimal

	PenaltyBalanceMax    decimal.Decimal
	PenaltyLowBalanceFee decimal.Decimal
	InactivityDays       int
	PenaltyInactivityFee decimal.Decimal
}

func DefaultConfig() Config {
	return Config{
		SavingsAnnualRate:    decimal.RequireFromString("0.03"),
		CheckingAnnualRate:   decimal.RequireFromString("0.005"),
		LoanAnnualRate:       decimal.RequireFromString("0.12"),
		BonusBalanceMin:      decimal.NewFromInt(50000),
		BonusAnnualRate:      decimal.RequireFromString("0.005"),
		LoyaltyMonths:        12,
		LoyaltyAnnualRate:    decimal.RequireFromString("0.0025"),
		PenaltyBalanceMax:    decimal.NewFromInt(100),
		PenaltyLowBalanceFee: decimal.RequireFromString("0.25"),
		InactivityDays:       90,
		PenaltyInactivityFee: decimal.RequireFromString("0.50"),
	}
}

var (
	daysPerYear = decimal.NewFromInt(365)
	hundred     = decimal.NewFromInt(100)
)

// dailyInterest applies the numeric policy: the annual rate, taken as a
// percentage, is divided by 365 and rounded half-up to 4 places; the result
// is applied to the balance and rounded half-up to 2 places (1000 at 0.03
// annual yields 0.08 per day). Sign follows the balance.
func dailyInterest(balance, annualRate decimal.Decimal) decimal.Decimal {
	dailyRatePct := annualRate.Mul(hundred).DivRound(daysPerYear, 4)
	return balance.Mul(dailyRatePct).Div(hundred).Round(2)
}

// effectiveRate picks the account's own rate when present, else the default.
func effectiveRate(account domain.Account, fallback decimal.Decimal) decimal.Decimal {
	if account.InterestRate != nil {
		return *account.InterestRate
	}
	return fallback
}
