package service

import (
	"context"

	"github.com/zaikanghel/Photo-Earn/internal/domain"
	"github.com/zaikanghel/Photo-Earn/pkg/logger"
)

type notificationRepository interface {
	CreateNotification(ctx context.Context, n domain.Notification) error
	CreateAdminNotification(ctx context.Context, n domain.AdminNotification) error
	NotificationsByUser(ctx context.Context, userID int64) ([]domain.Notification, error)
	AdminNotifications(ctx context.Context) ([]domain.AdminNotification, error)
	MarkNotificationRead(ctx context.Context, notificationID, userID int64) error
	MarkAllNotificationsRead(ctx context.Context, userID int64) error
}

// NotificationService is the fire-and-forget notification emitter plus the
// read side of both feeds. Delivery failures are logged and swallowed: a
// missed notification never fails the ledger operation that triggered it.
type NotificationService struct {
	repo notificationRepository
}

func NewNotificationService(repo notificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

func (s *NotificationService) Notify(ctx context.Context, userID int64, title, message, category string, relatedID *int64) {
	err := s.repo.CreateNotification(ctx, domain.Notification{
		UserID:    userID,
		Title:     title,
		Message:   message,
		Category:  category,
		RelatedID: relatedID,
	})
	if err != nil {
		logger.Log.Error("error delivering notification",
			logger.Int64("user_id", userID),
			logger.String("category", category),
			logger.Error(err),
		)
	}
}

func (s *NotificationService) NotifyAdmins(ctx context.Context, title, message, category string, relatedID *int64) {
	err := s.repo.CreateAdminNotification(ctx, domain.AdminNotification{
		Title:     title,
		Message:   message,
		Category:  category,
		RelatedID: relatedID,
	})
	if err != nil {
		logger.Log.Error("error delivering admin notification",
			logger.String("category", category),
			logger.Error(err),
		)
	}
}

func (s *NotificationService) Notifications(ctx context.Context, userID int64) ([]domain.Notification, error) {
	return s.repo.NotificationsByUser(ctx, userID)
}

func (s *NotificationService) AdminNotifications(ctx context.Context) ([]domain.AdminNotification, error) {
	return s.repo.AdminNotifications(ctx)
}

func (s *NotificationService) MarkRead(ctx context.Context, notificationID, userID int64) error {
	return s.repo.MarkNotificationRead(ctx, notificationID, userID)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID int64) error {
	return s.repo.MarkAllNotificationsRead(ctx, userID)
}
