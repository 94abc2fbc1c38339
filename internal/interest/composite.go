package interest

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kareem-sharaf/Banking-System-sub001/internal/domain"
	"github.com/kareem-sharaf/Banking-System-sub001/internal/logger"
)

// Composite folds the contributions of its members into one amount. A member
// that fails is excluded and logged; the remaining members still count.
type Composite struct {
	members []Calculator
}

func NewComposite(members ...Calculator) *Composite {
	return &Composite{members: members}
}

func (c *Composite) Name() string {
	names := make([]string, 0, len(c.members))
	for _, m := range c.members {
		names = append(names, m.Name())
	}
	return strings.Join(names, "+")
}

// Supports delegates to the first member, which is always the base
// calculator the composite was resolved around.
func (c *Composite) Supports(accountType domain.AccountType) bool {
	if len(c.members) == 0 {
		return false
	}
	return c.members[0].Supports(accountType)
}

func (c *Composite) Calculate(account domain.Account, date time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, member := range c.members {
		amount, err := member.Calculate(account, date)
		if err != nil {
			logger.Error("composite calculator member failed, excluding contribution", err, logger.Fields{
				"calculator":    member.Name(),
				"accountNumber": account.AccountNumber,
			})
			continue
		}
		total = total.Add(amount)
	}
	return total, nil
}

// Registry resolves the composite calculator for an account type: the first
// registered base calculator whose predicate matches, wrapped together with
// the universal adjustors that also support the type.
type Registry struct {
	bases   []Calculator
	bonus   Calculator
	penalty Calculator
}

func NewRegistry(cfg Config) *Registry {
	return &Registry{
		bases: []Calculator{
			NewSavingsCalculator(cfg),
			NewCheckingCalculator(cfg),
			NewLoanCalculator(cfg),
		},
		bonus:   NewBonusCalculator(cfg),
		penalty: NewPenaltyCalculator(cfg),
	}
}

// NewRegistryWithBases keeps the adjustors but swaps the base calculator
// list, in registration order.
func NewRegistryWithBases(cfg Config, bases ...Calculator) *Registry {
	return &Registry{
		bases:   bases,
		bonus:   NewBonusCalculator(cfg),
		penalty: NewPenaltyCalculator(cfg),
	}
}

// Resolve returns nil when no base calculator supports the account type.
func (r *Registry) Resolve(accountType domain.AccountType) Calculator {
	for _, base := range r.bases {
		if !base.Supports(accountType) {
			continue
		}

		members := []Calculator{base}
		if r.bonus.Supports(accountType) {
			members = append(members, r.bonus)
		}
		if r.penalty.Supports(accountType) {
			members = append(members, r.penalty)
		}
		return NewComposite(members...)
	}
	return nil
}
