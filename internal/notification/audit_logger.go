package notification

import (
	"context"
	"fmt"

	"github.com/kareem-sharaf/Banking-System-sub001/internal/adapter/repository/repo_interfaces"
	"github.com/kareem-sharaf/Banking-System-sub001/internal/domain"
	"github.com/kareem-sharaf/Banking-System-sub001/internal/logger"
)

// AuditLogger is the compliance observer. Every event becomes a classified
// audit record; losing one is a critical alert, not a silent drop.
type AuditLogger struct {
	auditRepo repo_interfaces.AuditRecordRepository
}

func NewAuditLogger(auditRepo repo_interfaces.AuditRecordRepository) *AuditLogger {
	return &AuditLogger{auditRepo: auditRepo}
}

func (o *AuditLogger) Name() string { return "audit-logger" }

func (o *AuditLogger) Update(ctx context.Context, event domain.AccountEvent) error {
	record := domain.AuditRecord{
		AccountID:     event.Account.ID,
		AccountNumber: event.Account.AccountNumber,
		Action:        classifyAction(event.Type),
		EventType:     event.Type,
		Details:       auditDetails(event),
		OccurredAt:    event.Timestamp,
	}
	if event.Transaction != nil {
		id := event.Transaction.ID
		record.TransactionID = &id
	}

	if _, err := o.auditRepo.Create(ctx, record); err != nil {
		logger.Critical("audit record could not be persisted, compliance trail incomplete", err, logger.Fields{
			"accountNumber": event.Account.AccountNumber,
			"eventType":     string(event.Type),
			"action":        string(record.Action),
		})
		return fmt.Errorf("persist audit record: %w", err)
	}

	return nil
}

func classifyAction(eventType domain.EventType) domain.AuditAction {
	switch eventType {
	case domain.EventDeposit:
		return domain.AuditActionFundsCredited
	case domain.EventWithdrawal:
		return domain.AuditActionFundsDebited
	case domain.EventTransfer:
		return domain.AuditActionFundsMoved
	case domain.EventLowBalance:
		return domain.AuditActionBalanceAlert
	case domain.EventInterest:
		return domain.AuditActionInterestAccrued
	default:
		return domain.AuditActionUnclassified
	}
}

func auditDetails(event domain.AccountEvent) string {
	if event.PreviousBalance != nil && event.NewBalance != nil {
		return fmt.Sprintf("%s: balance %s -> %s", event.Message,
			event.PreviousBalance.StringFixed(2), event.NewBalance.StringFixed(2))
	}
	return event.Message
}
