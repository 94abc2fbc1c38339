package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/kareem-sharaf/Banking-System-sub001/internal/domain"
	"github.com/kareem-sharaf/Banking-System-sub001/internal/logger"
)

type AuditRecordRepository struct {
	db *sql.DB
}

func NewAuditRecordRepository(db *sql.DB) *AuditRecordRepository {
	return &AuditRecordRepository{db: db}
}

func (r *AuditRecordRepository) Create(ctx context.Context, record domain.AuditRecord) (domain.AuditRecord, error) {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}

	const query = `
INSERT INTO audit_logs (
	id, account_id, account_number, transaction_id, action, event_type,
	details, occurred_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(
		ctx,
		query,
		record.ID,
		record.AccountID,
		record.AccountNumber,
		nullString(record.TransactionID),
		record.Action,
		record.EventType,
		record.Details,
		record.OccurredAt,
	)
	if err != nil {
		logger.Error("audit record repository create failed", err, logger.Fields{
			"accountNumber": record.AccountNumber,
			"action":        string(record.Action),
		})
		return domain.AuditRecord{}, fmt.Errorf("create audit record: %w", err)
	}

	return record, nil
}
