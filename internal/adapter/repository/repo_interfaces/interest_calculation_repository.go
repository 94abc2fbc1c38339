package repo_interfaces

import (
	"context"
	"time"

	"github.com/kareem-sharaf/Banking-System-sub001/internal/domain"
)

type InterestCalculationRepository interface {
	// HasSuccessForDate reports whether a SUCCESS row already exists for the
	// account on the calculation date. The at-most-one-success rule is
	// enforced by this lookup, not by a storage constraint.
	HasSuccessForDate(ctx context.Context, accountID string, date time.Time) (bool, error)
	Create(ctx context.Context, calc domain.InterestCalculation) (domain.InterestCalculation, error)

	// ApplyInterest persists the mutated account together with its SUCCESS
	// audit row in one atomic unit.
	ApplyInterest(ctx context.Context, account domain.Account, calc domain.InterestCalculation) error
}
