package service_interfaces

import (
	"context"
	"time"

	"github.com/kareem-sharaf/Banking-System-sub001/internal/domain"
	"github.com/kareem-sharaf/Banking-System-sub001/internal/models"
)

type InterestService interface {
	// CalculateForAccount runs one accrual attempt and returns the audit row
	// it recorded. Unexpected failures come back as a
	// *domain.InterestCalculationError.
	CalculateForAccount(ctx context.Context, account domain.Account, date time.Time) (domain.InterestCalculation, error)

	// RunDailyBatch is the entry point the external scheduler calls once per
	// day. One account's failure never aborts the rest.
	RunDailyBatch(ctx context.Context, date time.Time) (models.BatchSummary, error)
}
