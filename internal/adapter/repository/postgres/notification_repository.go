package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/kareem-sharaf/Banking-System-sub001/internal/domain"
	"github.com/kareem-sharaf/Banking-System-sub001/internal/logger"
)

type NotificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, notification domain.Notification) (domain.Notification, error) {
	if notification.ID == "" {
		notification.ID = uuid.NewString()
	}

	const query = `
INSERT INTO notifications (
	id, account_id, account_number, channel, subject, body, read
) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(
		ctx,
		query,
		notification.ID,
		notification.AccountID,
		notification.AccountNumber,
		notification.Channel,
		notification.Subject,
		notification.Body,
		notification.Read,
	)
	if err != nil {
		logger.Error("notification repository create failed", err, logger.Fields{
			"accountNumber": notification.AccountNumber,
			"channel":       string(notification.Channel),
		})
		return domain.Notification{}, fmt.Errorf("create notification: %w", err)
	}

	return notification, nil
}
