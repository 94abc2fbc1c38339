package approval

import (
	"github.com/shopspring/decimal"

	"github.com/kareem-sharaf/Banking-System-sub001/internal/logger"
)

// Thresholds configures the default handler set. Values arrive from runtime
// configuration; nothing in the handlers is hard-coded.
type Thresholds struct {
	AutoLimit   decimal.Decimal
	ManagerMin  decimal.Decimal
	ManagerMax  decimal.Decimal
	DirectorMin decimal.Decimal
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		AutoLimit:   decimal.NewFromInt(10000),
		ManagerMin:  decimal.NewFromInt(1000),
		ManagerMax:  decimal.NewFromInt(10000),
		DirectorMin: decimal.NewFromInt(10000),
	}
}

// Chain evaluates an ordered handler list first-match-wins. When no handler
// is eligible the chain falls back to PENDING rather than dropping the
// transaction on the floor.
type Chain struct {
	handlers []Handler
}

// NewChain assembles a chain from an arbitrary ordered handler list.
func NewChain(handlers ...Handler) *Chain {
	return &Chain{handlers: handlers}
}

// NewDefaultChain assembles the standard auto -> manager -> director chain
// over the given thresholds.
func NewDefaultChain(t Thresholds) *Chain {
	return NewChain(
		NewAutoApprovalHandler(t.AutoLimit),
		NewManagerApprovalHandler(t.ManagerMin, t.ManagerMax),
		NewDirectorApprovalHandler(t.DirectorMin),
	)
}

// Append returns a new chain with the handler added after the existing ones.
func (c *Chain) Append(h Handler) *Chain {
	handlers := make([]Handler, 0, len(c.handlers)+1)
	handlers = append(handlers, c.handlers...)
	handlers = append(handlers, h)
	return &Chain{handlers: handlers}
}

func (c *Chain) Submit(ctx Context) Result {
	for _, h := range c.handlers {
		if !h.CanHandle(ctx) {
			continue
		}

		result := h.Process(ctx)
		logger.Info("approval chain decision", logger.Fields{
			"handler":           h.Name(),
			"transactionNumber": ctx.Transaction.TransactionNumber,
			"amount":            ctx.Amount.StringFixed(2),
			"status":            string(result.Status),
		})
		return result
	}

	logger.Warn("approval chain exhausted without an eligible handler", logger.Fields{
		"transactionNumber": ctx.Transaction.TransactionNumber,
		"amount":            ctx.Amount.StringFixed(2),
	})

	return Result{
		Status:  StatusPending,
		Message: "no approval handler eligible; transaction held for manual review",
	}
}
