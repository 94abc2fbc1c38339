package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kareem-sharaf/Banking-System-sub001/internal/domain"
)

type AuditRecordRepository struct {
	mu      sync.Mutex
	records []domain.AuditRecord
}

func NewAuditRecordRepository() *AuditRecordRepository {
	return &AuditRecordRepository{}
}

func (r *AuditRecordRepository) Create(_ context.Context, record domain.AuditRecord) (domain.AuditRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	record.CreatedAt = time.Now().UTC()
	r.records = append(r.records, record)
	return record, nil
}

// All exists for test assertions over the compliance trail.
func (r *AuditRecordRepository) All() []domain.AuditRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.AuditRecord, len(r.records))
	copy(out, r.records)
	return out
}
