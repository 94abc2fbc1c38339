package main

import (
	"context"
	"log"
	"time"

	"github.com/kareem-sharaf/Banking-System-sub001/internal/adapter/repository/postgres"
	"github.com/kareem-sharaf/Banking-System-sub001/internal/config"
	"github.com/kareem-sharaf/Banking-System-sub001/internal/interest"
	"github.com/kareem-sharaf/Banking-System-sub001/internal/notification"
	"github.com/kareem-sharaf/Banking-System-sub001/internal/usecase/services"
)

// The daily accrual entry point. An external scheduler (cron or similar)
// runs this binary once per day.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx := context.Background()

	migrateCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := postgres.RunMigrations(migrateCtx, cfg.DatabaseDSN, cfg.MigrationsDir); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	db, err := postgres.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	accountRepo := postgres.NewAccountRepository(db)
	calcRepo := postgres.NewInterestCalculationRepository(db)
	auditRepo := postgres.NewAuditRecordRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)

	notifier := notification.NewSubject(
		notification.NewAuditLogger(auditRepo),
		notification.NewEmailNotifier(notificationRepo),
		notification.NewInAppNotifier(notificationRepo),
	)

	registry := interest.NewRegistry(interest.Config{
		SavingsAnnualRate:    cfg.Interest.SavingsAnnualRate,
		CheckingAnnualRate:   cfg.Interest.CheckingAnnualRate,
		LoanAnnualRate:       cfg.Interest.LoanAnnualRate,
		BonusBalanceMin:      cfg.Interest.BonusBalanceMin,
		BonusAnnualRate:      cfg.Interest.BonusAnnualRate,
		LoyaltyMonths:        cfg.Interest.LoyaltyMonths,
		LoyaltyAnnualRate:    cfg.Interest.LoyaltyAnnualRate,
		PenaltyBalanceMax:    cfg.Interest.PenaltyBalanceMax,
		PenaltyLowBalanceFee: cfg.Interest.PenaltyLowBalanceFee,
		InactivityDays:       cfg.Interest.InactivityDays,
		PenaltyInactivityFee: cfg.Interest.PenaltyInactivityFee,
	})

	interestService := services.NewInterestService(accountRepo, calcRepo, registry, notifier)

	summary, err := interestService.RunDailyBatch(ctx, time.Now().UTC())
	if err != nil {
		log.Fatalf("run daily interest batch: %v", err)
	}

	log.Printf("interest batch done: %d accounts, %d succeeded, %d failed, %d skipped, total interest %s",
		summary.TotalAccounts, summary.Succeeded, summary.Failed, summary.Skipped, summary.TotalInterest)
}
