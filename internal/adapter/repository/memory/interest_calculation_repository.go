package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kareem-sharaf/Banking-System-sub001/internal/domain"
)

type InterestCalculationRepository struct {
	mu       sync.Mutex
	accounts *AccountRepository
	rows     []domain.InterestCalculation
}

func NewInterestCalculationRepository(accounts *AccountRepository) *InterestCalculationRepository {
	return &InterestCalculationRepository{accounts: accounts}
}

func (r *InterestCalculationRepository) HasSuccessForDate(_ context.Context, accountID string, date time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	day := date.UTC().Truncate(24 * time.Hour)
	for _, row := range r.rows {
		if row.AccountID != accountID || row.Status != domain.CalculationStatusSuccess {
			continue
		}
		if row.CalculationDate.UTC().Truncate(24 * time.Hour).Equal(day) {
			return true, nil
		}
	}
	return false, nil
}

func (r *InterestCalculationRepository) Create(_ context.Context, calc domain.InterestCalculation) (domain.InterestCalculation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store(calc), nil
}

func (r *InterestCalculationRepository) ApplyInterest(ctx context.Context, account domain.Account, calc domain.InterestCalculation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.accounts.Update(ctx, account); err != nil {
		return err
	}
	r.store(calc)
	return nil
}

// ListByAccountID exists for test assertions over the audit trail.
func (r *InterestCalculationRepository) ListByAccountID(_ context.Context, accountID string) []domain.InterestCalculation {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.InterestCalculation, 0)
	for _, row := range r.rows {
		if row.AccountID == accountID {
			out = append(out, row)
		}
	}
	return out
}

func (r *InterestCalculationRepository) store(calc domain.InterestCalculation) domain.InterestCalculation {
	if calc.ID == "" {
		calc.ID = uuid.NewString()
	}
	if calc.CreatedAt.IsZero() {
		calc.CreatedAt = time.Now().UTC()
	}
	r.rows = append(r.rows, calc)
	return calc
}
