package repo_interfaces

import (
	"context"

	"github.com/kareem-sharaf/Banking-System-sub001/internal/domain"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification domain.Notification) (domain.Notification, error)
}
