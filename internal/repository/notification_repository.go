package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

// NotificationRepo stores staff-visible notifications. Rows are written by
// the API and by the booking event consumer.
type NotificationRepo struct {
	db *sql.DB
}

func NewNotificationRepo(db *sql.DB) *NotificationRepo { return &NotificationRepo{db: db} }

// List returns notifications, newest first, capped at limit (0 means a
// default of 100).
func (r *NotificationRepo) List(ctx context.Context, limit int) ([]model.Notification, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, sender_id, message, is_read, created_at FROM notifications ORDER BY created_at DESC, id DESC LIMIT ?`,
		limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ns := make([]model.Notification, 0)
	for rows.Next() {
		var n model.Notification
		var sender sql.NullInt64
		if err := rows.Scan(&n.ID, &sender, &n.Message, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		if sender.Valid {
			id := uint64(sender.Int64)
			n.SenderID = &id
		}
		ns = append(ns, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ns, nil
}

// Create inserts a notification. A nil sender marks a system message, e.g.
// one produced by the booking event consumer.
func (r *NotificationRepo) Create(ctx context.Context, senderID *uint64, message string) (uint64, error) {
	var sender interface{}
	if senderID != nil {
		sender = *senderID
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO notifications (sender_id, message) VALUES (?, ?)`, sender, message)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// MarkRead flags one notification as read. Returns sql.ErrNoRows when it
// does not exist.
func (r *NotificationRepo) MarkRead(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE notifications SET is_read = TRUE WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UnreadCount returns the number of unread notifications.
func (r *NotificationRepo) UnreadCount(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notifications WHERE is_read = FALSE`).Scan(&n)
	return n, err
}
