package notification_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kareem-sharaf/Banking-System-sub001/internal/adapter/repository/memory"
	"github.com/kareem-sharaf/Banking-System-sub001/internal/domain"
	"github.com/kareem-sharaf/Banking-System-sub001/internal/notification"
)

func sampleEvent(eventType domain.EventType) domain.AccountEvent {
	amount := decimal.NewFromInt(100)
	prev := decimal.NewFromInt(400)
	next := decimal.NewFromInt(500)
	return domain.AccountEvent{
		Type:            eventType,
		Account:         domain.Account{ID: "acc-1", AccountNumber: "1000000001", Currency: "USD"},
		Amount:          &amount,
		PreviousBalance: &prev,
		NewBalance:      &next,
		Message:         "test event",
		Timestamp:       time.Now().UTC(),
	}
}

type failingObserver struct{ name string }

func (o failingObserver) Name() string { return o.name }

func (o failingObserver) Update(context.Context, domain.AccountEvent) error {
	return errors.New("delivery broken")
}

type panickingObserver struct{}

func (panickingObserver) Name() string { return "panicking" }

func (panickingObserver) Update(context.Context, domain.AccountEvent) error {
	panic("observer exploded")
}

func TestFailingObserverDoesNotBlockSiblings(t *testing.T) {
	auditRepo := memory.NewAuditRecordRepository()

	subject := notification.NewSubject(
		failingObserver{name: "email-notifier"},
		notification.NewAuditLogger(auditRepo),
	)

	subject.NotifyObservers(context.Background(), sampleEvent(domain.EventDeposit))

	if len(auditRepo.All()) != 1 {
		t.Fatalf("expected the audit logger to receive the event, got %d records", len(auditRepo.All()))
	}
}

func TestPanickingObserverIsContained(t *testing.T) {
	auditRepo := memory.NewAuditRecordRepository()

	subject := notification.NewSubject(
		panickingObserver{},
		notification.NewAuditLogger(auditRepo),
	)

	subject.NotifyObservers(context.Background(), sampleEvent(domain.EventWithdrawal))

	if len(auditRepo.All()) != 1 {
		t.Fatalf("expected delivery to continue past the panicking observer, got %d records", len(auditRepo.All()))
	}
}

func TestAttachIsIdempotentByName(t *testing.T) {
	notificationRepo := memory.NewNotificationRepository()
	subject := notification.NewSubject()

	subject.Attach(notification.NewInAppNotifier(notificationRepo))
	subject.Attach(notification.NewInAppNotifier(notificationRepo))

	subject.NotifyObservers(context.Background(), sampleEvent(domain.EventDeposit))

	if len(notificationRepo.All()) != 1 {
		t.Fatalf("expected a single delivery after duplicate attach, got %d", len(notificationRepo.All()))
	}
}

func TestDetachStopsDelivery(t *testing.T) {
	notificationRepo := memory.NewNotificationRepository()
	observer := notification.NewEmailNotifier(notificationRepo)

	subject := notification.NewSubject(observer)
	subject.Detach(observer.Name())

	subject.NotifyObservers(context.Background(), sampleEvent(domain.EventDeposit))

	if len(notificationRepo.All()) != 0 {
		t.Fatalf("expected no deliveries after detach, got %d", len(notificationRepo.All()))
	}
}

func TestAuditLoggerClassifiesEvents(t *testing.T) {
	cases := []struct {
		eventType domain.EventType
		action    domain.AuditAction
	}{
		{domain.EventDeposit, domain.AuditActionFundsCredited},
		{domain.EventWithdrawal, domain.AuditActionFundsDebited},
		{domain.EventTransfer, domain.AuditActionFundsMoved},
		{domain.EventLowBalance, domain.AuditActionBalanceAlert},
		{domain.EventInterest, domain.AuditActionInterestAccrued},
	}

	for _, tc := range cases {
		auditRepo := memory.NewAuditRecordRepository()
		observer := notification.NewAuditLogger(auditRepo)

		if err := observer.Update(context.Background(), sampleEvent(tc.eventType)); err != nil {
			t.Fatalf("unexpected error for %s: %v", tc.eventType, err)
		}

		records := auditRepo.All()
		if len(records) != 1 {
			t.Fatalf("expected one audit record for %s, got %d", tc.eventType, len(records))
		}
		if records[0].Action != tc.action {
			t.Fatalf("expected action %s for %s, got %s", tc.action, tc.eventType, records[0].Action)
		}
	}
}

func TestEmailAndInAppNotifiersPersistRecords(t *testing.T) {
	notificationRepo := memory.NewNotificationRepository()

	subject := notification.NewSubject(
		notification.NewEmailNotifier(notificationRepo),
		notification.NewInAppNotifier(notificationRepo),
	)

	subject.NotifyObservers(context.Background(), sampleEvent(domain.EventInterest))

	records := notificationRepo.All()
	if len(records) != 2 {
		t.Fatalf("expected one record per notifier, got %d", len(records))
	}

	channels := map[domain.NotificationChannel]bool{}
	for _, record := range records {
		channels[record.Channel] = true
		if record.AccountNumber != "1000000001" {
			t.Fatalf("unexpected account number %q", record.AccountNumber)
		}
	}
	if !channels[domain.NotificationChannelEmail] || !channels[domain.NotificationChannelInApp] {
		t.Fatalf("expected both channels to be written, got %v", channels)
	}
}
