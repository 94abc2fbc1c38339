package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kareem-sharaf/Banking-System-sub001/internal/adapter/repository/repo_interfaces"
	"github.com/kareem-sharaf/Banking-System-sub001/internal/domain"
	"github.com/kareem-sharaf/Banking-System-sub001/internal/interest"
	"github.com/kareem-sharaf/Banking-System-sub001/internal/logger"
	"github.com/kareem-sharaf/Banking-System-sub001/internal/models"
	"github.com/kareem-sharaf/Banking-System-sub001/internal/notification"
)

const errorMessageMaxLength = 1000

type InterestService struct {
	accountRepo repo_interfaces.AccountRepository
	calcRepo    repo_interfaces.InterestCalculationRepository
	registry    *interest.Registry
	notifier    *notification.Subject
}

func NewInterestService(
	accountRepo repo_interfaces.AccountRepository,
	calcRepo repo_interfaces.InterestCalculationRepository,
	registry *interest.Registry,
	notifier *notification.Subject,
) *InterestService {
	return &InterestService{
		accountRepo: accountRepo,
		calcRepo:    calcRepo,
		registry:    registry,
		notifier:    notifier,
	}
}

func (s *InterestService) CalculateForAccount(ctx context.Context, account domain.Account, date time.Time) (domain.InterestCalculation, error) {
	start := time.Now()
	date = date.UTC().Truncate(24 * time.Hour)

	if !account.CanTransact() {
		return s.recordSkip(ctx, account, date, "", "account is not active", start), nil
	}

	alreadyDone, err := s.calcRepo.HasSuccessForDate(ctx, account.ID, date)
	if err != nil {
		return s.recordFailure(ctx, account, date, "", err, start)
	}
	if alreadyDone {
		return s.recordSkip(ctx, account, date, "", "interest already calculated for this date", start), nil
	}

	calculator := s.registry.Resolve(account.Type)
	if calculator == nil {
		return s.recordSkip(ctx, account, date, "",
			fmt.Sprintf("no calculator supports account type %s", account.Type), start), nil
	}

	amount, err := calculator.Calculate(account, date)
	if err != nil {
		return s.recordFailure(ctx, account, date, calculator.Name(), err, start)
	}

	if amount.LessThanOrEqual(decimal.Zero) {
		return s.recordSkip(ctx, account, date, calculator.Name(),
			fmt.Sprintf("computed interest %s is not positive", amount.StringFixed(2)), start), nil
	}

	previousBalance := account.Balance
	account.Balance = previousBalance.Add(amount)
	account.LastInterestDate = &date

	row := domain.InterestCalculation{
		ID:              uuid.NewString(),
		AccountID:       account.ID,
		CalculationDate: date,
		InterestAmount:  amount,
		CalculatorName:  calculator.Name(),
		Status:          domain.CalculationStatusSuccess,
		PreviousBalance: previousBalance,
		NewBalance:      account.Balance,
		Duration:        time.Since(start),
	}

	if err := s.calcRepo.ApplyInterest(ctx, account, row); err != nil {
		return s.recordFailure(ctx, account, date, calculator.Name(), err, start)
	}

	newBalance := account.Balance
	s.notifier.NotifyObservers(ctx, domain.AccountEvent{
		Type:            domain.EventInterest,
		Account:         account,
		Amount:          &amount,
		PreviousBalance: &previousBalance,
		NewBalance:      &newBalance,
		Message: fmt.Sprintf("interest of %s %s applied by %s",
			amount.StringFixed(2), account.Currency, calculator.Name()),
		Timestamp: time.Now().UTC(),
	})

	return row, nil
}

func (s *InterestService) RunDailyBatch(ctx context.Context, date time.Time) (models.BatchSummary, error) {
	date = date.UTC().Truncate(24 * time.Hour)

	logger.Info("interest batch started", logger.Fields{
		"date": date.Format("2006-01-02"),
	})

	accounts, err := s.accountRepo.ListByStatus(ctx, domain.AccountStatusActive)
	if err != nil {
		return models.BatchSummary{Date: date}, fmt.Errorf("list active accounts: %w", err)
	}

	summary := models.BatchSummary{Date: date, TotalAccounts: len(accounts)}
	totalInterest := decimal.Zero

	for _, account := range accounts {
		row, err := s.processAccount(ctx, account, date)
		if err != nil {
			summary.Failed++
			logger.Error("interest batch account failed, continuing", err, logger.Fields{
				"accountNumber": account.AccountNumber,
			})
			continue
		}

		switch row.Status {
		case domain.CalculationStatusSuccess:
			summary.Succeeded++
			totalInterest = totalInterest.Add(row.InterestAmount)
		default:
			summary.Skipped++
		}
	}

	summary.TotalInterest = totalInterest.StringFixed(2)

	logger.Info("interest batch finished", logger.Fields{
		"date":          date.Format("2006-01-02"),
		"totalAccounts": summary.TotalAccounts,
		"succeeded":     summary.Succeeded,
		"failed":        summary.Failed,
		"skipped":       summary.Skipped,
		"totalInterest": summary.TotalInterest,
	})

	return summary, nil
}

// processAccount contains one account inside its own failure boundary; a
// panicking calculator counts as that account's failure and the batch
// moves on.
func (s *InterestService) processAccount(ctx context.Context, account domain.Account, date time.Time) (row domain.InterestCalculation, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &domain.InterestCalculationError{
				AccountID: account.ID,
				Err:       fmt.Errorf("panic: %v", r),
			}
		}
	}()

	return s.CalculateForAccount(ctx, account, date)
}

func (s *InterestService) recordSkip(ctx context.Context, account domain.Account, date time.Time, calculatorName, reason string, start time.Time) domain.InterestCalculation {
	row := domain.InterestCalculation{
		ID:              uuid.NewString(),
		AccountID:       account.ID,
		CalculationDate: date,
		InterestAmount:  decimal.Zero,
		CalculatorName:  calculatorName,
		Status:          domain.CalculationStatusSkipped,
		PreviousBalance: account.Balance,
		NewBalance:      account.Balance,
		ErrorMessage:    reason,
		Duration:        time.Since(start),
	}

	if _, err := s.calcRepo.Create(ctx, row); err != nil {
		logger.Error("failed to persist skipped interest calculation", err, logger.Fields{
			"accountNumber": account.AccountNumber,
			"reason":        reason,
		})
	}

	return row
}

func (s *InterestService) recordFailure(ctx context.Context, account domain.Account, date time.Time, calculatorName string, cause error, start time.Time) (domain.InterestCalculation, error) {
	row := domain.InterestCalculation{
		ID:              uuid.NewString(),
		AccountID:       account.ID,
		CalculationDate: date,
		InterestAmount:  decimal.Zero,
		CalculatorName:  calculatorName,
		Status:          domain.CalculationStatusFailed,
		PreviousBalance: account.Balance,
		NewBalance:      account.Balance,
		ErrorMessage:    truncateError(cause),
		Duration:        time.Since(start),
	}

	if _, err := s.calcRepo.Create(ctx, row); err != nil {
		logger.Error("failed to persist failed interest calculation", err, logger.Fields{
			"accountNumber": account.AccountNumber,
		})
	}

	return row, &domain.InterestCalculationError{AccountID: account.ID, Err: cause}
}

func truncateError(err error) string {
	message := err.Error()
	if len(message) > errorMessageMaxLength {
		return message[:errorMessageMaxLength]
	}
	return message
}
