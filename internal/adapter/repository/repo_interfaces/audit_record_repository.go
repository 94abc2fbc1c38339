package repo_interfaces

import (
	"context"

	"github.com/kareem-sharaf/Banking-System-sub001/internal/domain"
)

type AuditRecordRepository interface {
	Create(ctx context.Context, record domain.AuditRecord) (domain.AuditRecord, error)
}
