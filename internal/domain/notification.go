package domain

import "time"

// AuditAction is the audit logger's classification of an account event.
type AuditAction string

const (
	AuditActionFundsCredited   AuditAction = "FUNDS_CREDITED"
	AuditActionFundsDebited    AuditAction = "FUNDS_DEBITED"
	AuditActionFundsMoved      AuditAction = "FUNDS_MOVED"
	AuditActionBalanceAlert    AuditAction = "BALANCE_ALERT"
	AuditActionInterestAccrued AuditAction = "INTEREST_ACCRUED"
	AuditActionUnclassified    AuditAction = "UNCLASSIFIED"
)

// AuditRecord is the compliance trail written by the audit observer.
type AuditRecord struct {
	ID            string
	AccountID     string
	AccountNumber string
	TransactionID *string
	Action        AuditAction
	EventType     EventType
	Details       string
	OccurredAt    time.Time
	CreatedAt     time.Time
}

type NotificationChannel string

const (
	NotificationChannelEmail NotificationChannel = "EMAIL"
	NotificationChannelInApp NotificationChannel = "IN_APP"
)

// Notification is a persisted outbound message. Records are stored only;
// no delivery is attempted by this system.
type Notification struct {
	ID            string
	AccountID     string
	AccountNumber string
	Channel       NotificationChannel
	Subject       string
	Body          string
	Read          bool
	CreatedAt     time.Time
}
