package approval

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kareem-sharaf/Banking-System-sub001/internal/domain"
)

type Status string

const (
	StatusAutoApproved Status = "AUTO_APPROVED"
	StatusPending      Status = "PENDING"
	StatusRejected     Status = "REJECTED"
)

// Context is the ephemeral value submitted to the chain. It lives for the
// duration of one approval decision and is never persisted.
type Context struct {
	Transaction domain.Transaction
	Amount      decimal.Decimal
}

// Result is the chain's classification of a pending transaction.
type Result struct {
	Status     Status
	Message    string
	Comment    string
	ApprovedAt time.Time
}

// Handler is one link in the approval chain. CanHandle is the eligibility
// predicate; Process is only invoked on the first eligible handler and its
// result is terminal for the chain.
type Handler interface {
	Name() string
	CanHandle(ctx Context) bool
	Process(ctx Context) Result
}
