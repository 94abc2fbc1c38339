package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/kareem-sharaf/Banking-System-sub001/internal/domain"
	"github.com/kareem-sharaf/Banking-System-sub001/internal/logger"
)

type InterestCalculationRepository struct {
	db *sql.DB
}

func NewInterestCalculationRepository(db *sql.DB) *InterestCalculationRepository {
	return &InterestCalculationRepository{db: db}
}

func (r *InterestCalculationRepository) HasSuccessForDate(ctx context.Context, accountID string, date time.Time) (bool, error) {
	const query = `
SELECT COUNT(1)
FROM interest_calculations
WHERE account_id = $1 AND calculation_date = $2 AND status = $3`

	var count int
	err := r.db.QueryRowContext(ctx, query, accountID, date, domain.CalculationStatusSuccess).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check interest calculation for date: %w", err)
	}

	return count > 0, nil
}

func (r *InterestCalculationRepository) Create(ctx context.Context, calc domain.InterestCalculation) (domain.InterestCalculation, error) {
	if _, err := r.db.ExecContext(ctx, insertCalculationQuery, insertCalculationArgs(calc)...); err != nil {
		logger.Error("interest calculation repository create failed", err, logger.Fields{
			"accountId": calc.AccountID,
			"status":    string(calc.Status),
		})
		return domain.InterestCalculation{}, fmt.Errorf("create interest calculation: %w", err)
	}

	return calc, nil
}

// ApplyInterest commits the mutated balance and the SUCCESS audit row
// together.
func (r *InterestCalculationRepository) ApplyInterest(ctx context.Context, account domain.Account, calc domain.InterestCalculation) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin interest tx: %w", err)
	}

	const update = `
UPDATE accounts
SET balance = $2, last_interest_date = $3, updated_at = NOW()
WHERE id = $1`

	result, err := tx.ExecContext(ctx, update, account.ID, account.Balance.StringFixed(2), nullTime(account.LastInterestDate))
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("update account %s: %w", account.AccountNumber, err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		_ = tx.Rollback()
		return domain.ErrAccountNotFound
	}

	if _, err := tx.ExecContext(ctx, insertCalculationQuery, insertCalculationArgs(calc)...); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("persist interest calculation: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit interest application: %w", err)
	}

	return nil
}

const insertCalculationQuery = `
INSERT INTO interest_calculations (
	id, account_id, calculation_date, interest_amount, calculator_name,
	status, previous_balance, new_balance, error_message, duration_ms
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

func insertCalculationArgs(calc domain.InterestCalculation) []any {
	return []any{
		calc.ID,
		calc.AccountID,
		calc.CalculationDate,
		calc.InterestAmount.StringFixed(2),
		calc.CalculatorName,
		calc.Status,
		calc.PreviousBalance.StringFixed(2),
		calc.NewBalance.StringFixed(2),
		calc.ErrorMessage,
		calc.Duration.Milliseconds(),
	}
}
