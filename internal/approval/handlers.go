package approval

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// AutoApprovalHandler approves transactions below its limit without any
// human involvement.
type AutoApprovalHandler struct {
	limit decimal.Decimal
}

func NewAutoApprovalHandler(limit decimal.Decimal) *AutoApprovalHandler {
	return &AutoApprovalHandler{limit: limit}
}

func (h *AutoApprovalHandler) Name() string { return "auto" }

func (h *AutoApprovalHandler) CanHandle(ctx Context) bool {
	return ctx.Amount.LessThan(h.limit)
}

func (h *AutoApprovalHandler) Process(ctx Context) Result {
	return Result{
		Status:     StatusAutoApproved,
		Message:    "transaction auto-approved",
		Comment:    fmt.Sprintf("amount %s below auto-approval limit %s", ctx.Amount.StringFixed(2), h.limit.StringFixed(2)),
		ApprovedAt: time.Now().UTC(),
	}
}

// ManagerApprovalHandler holds mid-range transactions for manager sign-off.
// Eligibility is inclusive on min, exclusive on max.
type ManagerApprovalHandler struct {
	min decimal.Decimal
	max decimal.Decimal
}

func NewManagerApprovalHandler(min, max decimal.Decimal) *ManagerApprovalHandler {
	return &ManagerApprovalHandler{min: min, max: max}
}

func (h *ManagerApprovalHandler) Name() string { return "manager" }

func (h *ManagerApprovalHandler) CanHandle(ctx Context) bool {
	return ctx.Amount.GreaterThanOrEqual(h.min) && ctx.Amount.LessThan(h.max)
}

func (h *ManagerApprovalHandler) Process(ctx Context) Result {
	return Result{
		Status:  StatusPending,
		Message: "transaction pending manager approval",
		Comment: fmt.Sprintf("amount %s requires manager approval", ctx.Amount.StringFixed(2)),
	}
}

// DirectorApprovalHandler holds large transactions for director sign-off.
type DirectorApprovalHandler struct {
	min decimal.Decimal
}

func NewDirectorApprovalHandler(min decimal.Decimal) *DirectorApprovalHandler {
	return &DirectorApprovalHandler{min: min}
}

func (h *DirectorApprovalHandler) Name() string { return "director" }

func (h *DirectorApprovalHandler) CanHandle(ctx Context) bool {
	return ctx.Amount.GreaterThanOrEqual(h.min)
}

func (h *DirectorApprovalHandler) Process(ctx Context) Result {
	return Result{
		Status:  StatusPending,
		Message: "transaction pending director approval",
		Comment: fmt.Sprintf("amount %s requires director approval", ctx.Amount.StringFixed(2)),
	}
}
