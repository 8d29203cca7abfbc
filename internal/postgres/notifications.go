package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/zaikanghel/Photo-Earn/internal/domain"
	"github.com/zaikanghel/Photo-Earn/pkg/logger"
)

func (p *Postgres) CreateNotification(ctx context.Context, n domain.Notification) error {
	_, err := p.DB.ExecContext(ctx,
		`INSERT INTO notifications (user_id, title, message, category, related_id)
		 VALUES ($1, $2, $3, $4, $5)`,
		n.UserID, n.Title, n.Message, n.Category, n.RelatedID)
	if err != nil {
		return fmt.Errorf("error creating notification: %w", err)
	}

	return nil
}

func (p *Postgres) CreateAdminNotification(ctx context.Context, n domain.AdminNotification) error {
	_, err := p.DB.ExecContext(ctx,
		`INSERT INTO admin_notifications (title, message, category, related_id)
		 VALUES ($1, $2, $3, $4)`,
		n.Title, n.Message, n.Category, n.RelatedID)
	if err != nil {
		return fmt.Errorf("error creating admin notification: %w", err)
	}

	return nil
}

func (p *Postgres) NotificationsByUser(ctx context.Context, userID int64) ([]domain.Notification, error) {
	rows, err := p.DB.QueryContext(ctx,
		`SELECT id, user_id, title, message, category, related_id, is_read, created_at
		 FROM notifications WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("error fetching notifications: %w", err)
	}

	defer func(rows *sql.Rows) {
		err := rows.Close()
		if err != nil {
			logger.Log.Error("error closing rows", logger.Error(err))
		}
	}(rows)

	var notifications []domain.Notification
	for rows.Next() {
		var n domain.Notification
		var relatedID sql.NullInt64
		err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Category,
			&relatedID, &n.IsRead, &n.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning notification: %w", err)
		}
		if relatedID.Valid {
			n.RelatedID = &relatedID.Int64
		}
		notifications = append(notifications, n)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over notifications: %w", err)
	}

	return notifications, nil
}

func (p *Postgres) AdminNotifications(ctx context.Context) ([]domain.AdminNotification, error) {
	rows, err := p.DB.QueryContext(ctx,
		`SELECT id, title, message, category, related_id, is_read, created_at
		 FROM admin_notifications ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("error fetching admin notifications: %w", err)
	}

	defer func(rows *sql.Rows) {
		err := rows.Close()
		if err != nil {
			logger.Log.Error("error closing rows", logger.Error(err))
		}
	}(rows)

	var notifications []domain.AdminNotification
	for rows.Next() {
		var n domain.AdminNotification
		var relatedID sql.NullInt64
		err := rows.Scan(&n.ID, &n.Title, &n.Message, &n.Category, &relatedID, &n.IsRead, &n.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning admin notification: %w", err)
		}
		if relatedID.Valid {
			n.RelatedID = &relatedID.Int64
		}
		notifications = append(notifications, n)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over admin notifications: %w", err)
	}

	return notifications, nil
}

// MarkNotificationRead is scoped to the owner so users cannot touch other
// feeds.
func (p *Postgres) MarkNotificationRead(ctx context.Context, notificationID, userID int64) error {
	result, err := p.DB.ExecContext(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`,
		notificationID, userID)
	if err != nil {
		return fmt.Errorf("error marking notification read: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking rows affected for notification update: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrNotificationNotFound
	}

	return nil
}

func (p *Postgres) MarkAllNotificationsRead(ctx context.Context, userID int64) error {
	_, err := p.DB.ExecContext(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("error marking notifications read: %w", err)
	}

	return nil
}
