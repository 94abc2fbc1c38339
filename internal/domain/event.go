package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type EventType string

const (
	EventDeposit    EventType = "DEPOSIT"
	EventWithdrawal EventType = "WITHDRAWAL"
	EventTransfer   EventType = "TRANSFER"
	EventLowBalance EventType = "LOW_BALANCE"
	EventInterest   EventType = "INTEREST"
)

// AccountEvent is the payload fanned out to observers after a completed
// balance mutation. It lives for the duration of one notification pass and
// is never persisted by the subject itself.
type AccountEvent struct {
	Type            EventType
	Account         Account
	Transaction     *Transaction
	Amount          *decimal.Decimal
	PreviousBalance *decimal.Decimal
	NewBalance      *decimal.Decimal
	Message         string
	Timestamp       time.Time
}
