package notification

import (
	"context"
	"fmt"

	"github.com/kareem-sharaf/Banking-System-sub001/internal/adapter/repository/repo_interfaces"
	"github.com/kareem-sharaf/Banking-System-sub001/internal/domain"
)

// InAppNotifier persists a short in-app message per event.
type InAppNotifier struct {
	notificationRepo repo_interfaces.NotificationRepository
}

func NewInAppNotifier(notificationRepo repo_interfaces.NotificationRepository) *InAppNotifier {
	return &InAppNotifier{notificationRepo: notificationRepo}
}

func (o *InAppNotifier) Name() string { return "inapp-notifier" }

func (o *InAppNotifier) Update(ctx context.Context, event domain.AccountEvent) error {
	_, err := o.notificationRepo.Create(ctx, domain.Notification{
		AccountID:     event.Account.ID,
		AccountNumber: event.Account.AccountNumber,
		Channel:       domain.NotificationChannelInApp,
		Subject:       inAppTitle(event.Type),
		Body:          event.Message,
	})
	if err != nil {
		return fmt.Errorf("persist in-app notification: %w", err)
	}
	return nil
}

func inAppTitle(eventType domain.EventType) string {
	switch eventType {
	case domain.EventDeposit:
		return "Deposit received"
	case domain.EventWithdrawal:
		return "Withdrawal processed"
	case domain.EventTransfer:
		return "Transfer processed"
	case domain.EventLowBalance:
		return "Low balance"
	case domain.EventInterest:
		return "Interest applied"
	default:
		return "Account update"
	}
}
