package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"voltrent-backend/internal/apperr"
	"voltrent-backend/internal/domain"
	"voltrent-backend/internal/logger"
	"voltrent-backend/internal/repository"
)

type notificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	attrs, err := json.Marshal(n.Attributes)
	if err != nil {
		return err
	}

	query := `INSERT INTO notifications (receiver_id, sender_id, booking_id, type, title, message, attributes, is_read, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id, created_on`
	logger.DatabaseCall("INSERT", "notifications", "receiverID", n.ReceiverID, "type", n.Type)
	return r.db.QueryRowContext(ctx, query, n.ReceiverID, n.SenderID, n.BookingID, n.Type, n.Title, n.Message,
		attrs, n.IsRead, time.Now()).Scan(&n.ID, &n.CreatedOn)
}

func (r *notificationRepository) List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM notifications WHERE receiver_id = $1`, userID).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, receiver_id, sender_id, booking_id, type, title, message, attributes, is_read, read_at, created_on
	          FROM notifications WHERE receiver_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var notes []domain.Notification
	for rows.Next() {
		var n domain.Notification
		var attrs []byte
		if err := rows.Scan(&n.ID, &n.ReceiverID, &n.SenderID, &n.BookingID, &n.Type, &n.Title, &n.Message,
			&attrs, &n.IsRead, &n.ReadAt, &n.CreatedOn); err != nil {
			return nil, 0, err
		}
		if len(attrs) > 0 {
			if err := json.Unmarshal(attrs, &n.Attributes); err != nil {
				return nil, 0, err
			}
		}
		notes = append(notes, n)
	}
	return notes, count, rows.Err()
}

func (r *notificationRepository) UnreadCount(ctx context.Context, userID int32) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM notifications WHERE receiver_id = $1 AND is_read = FALSE`, userID).Scan(&count)
	return count, err
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, id, userID int32) error {
	query := `UPDATE notifications SET is_read = TRUE, read_at = $1 WHERE id = $2 AND receiver_id = $3 AND is_read = FALSE`
	result, err := r.db.ExecContext(ctx, query, time.Now(), id, userID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		// Distinguish a wrong id from an already-read row.
		var exists bool
		if err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM notifications WHERE id = $1 AND receiver_id = $2)`, id, userID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return apperr.NotFound("notification not found")
		}
	}
	return nil
}

// MarkAllAsRead is idempotent. Marking zero rows is a success.
func (r *notificationRepository) MarkAllAsRead(ctx context.Context, userID int32) error {
	_, err := r.db.ExecContext(ctx, `UPDATE notifications SET is_read = TRUE, read_at = $1 WHERE receiver_id = $2 AND is_read = FALSE`, time.Now(), userID)
	return err
}
