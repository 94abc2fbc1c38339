package notification

import (
	"context"
	"fmt"

	"github.com/kareem-sharaf/Banking-System-sub001/internal/adapter/repository/repo_interfaces"
	"github.com/kareem-sharaf/Banking-System-sub001/internal/domain"
)

// EmailNotifier persists an email-shaped notification record per event.
// Nothing is actually sent; a downstream dispatcher owns delivery.
type EmailNotifier struct {
	notificationRepo repo_interfaces.NotificationRepository
}

func NewEmailNotifier(notificationRepo repo_interfaces.NotificationRepository) *EmailNotifier {
	return &EmailNotifier{notificationRepo: notificationRepo}
}

func (o *EmailNotifier) Name() string { return "email-notifier" }

func (o *EmailNotifier) Update(ctx context.Context, event domain.AccountEvent) error {
	subject, body := composeEmail(event)

	_, err := o.notificationRepo.Create(ctx, domain.Notification{
		AccountID:     event.Account.ID,
		AccountNumber: event.Account.AccountNumber,
		Channel:       domain.NotificationChannelEmail,
		Subject:       subject,
		Body:          body,
	})
	if err != nil {
		return fmt.Errorf("persist email notification: %w", err)
	}
	return nil
}

func composeEmail(event domain.AccountEvent) (string, string) {
	masked := maskAccountNumber(event.Account.AccountNumber)

	switch event.Type {
	case domain.EventDeposit:
		return "Deposit confirmation", fmt.Sprintf("A deposit of %s %s was credited to account %s.", amountOrEmpty(event), event.Account.Currency, masked)
	case domain.EventWithdrawal:
		return "Withdrawal confirmation", fmt.Sprintf("A withdrawal of %s %s was debited from account %s.", amountOrEmpty(event), event.Account.Currency, masked)
	case domain.EventTransfer:
		return "Transfer confirmation", fmt.Sprintf("A transfer of %s %s was processed on account %s.", amountOrEmpty(event), event.Account.Currency, masked)
	case domain.EventLowBalance:
		return "Low balance alert", fmt.Sprintf("The balance of account %s has fallen below the configured threshold.", masked)
	case domain.EventInterest:
		return "Interest credited", fmt.Sprintf("Interest of %s %s was applied to account %s.", amountOrEmpty(event), event.Account.Currency, masked)
	default:
		return "Account activity", event.Message
	}
}

func amountOrEmpty(event domain.AccountEvent) string {
	if event.Amount == nil {
		return ""
	}
	return event.Amount.StringFixed(2)
}

func maskAccountNumber(accountNumber string) string {
	if len(accountNumber) <= 4 {
		return accountNumber
	}
	return "****" + accountNumber[len(accountNumber)-4:]
}
