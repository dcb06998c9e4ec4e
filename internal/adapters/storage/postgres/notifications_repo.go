package postgres

import (
	"context"
	"database/sql"
	"strings"

	"pet-adoption-market/internal/domain/notifications"
)

type NotificationsRepo struct {
	db *sql.DB
}

func NewNotificationsRepo(db *sql.DB) *NotificationsRepo {
	return &NotificationsRepo{db: db}
}

func (r *NotificationsRepo) Create(ctx context.Context, n notifications.Notification) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notifications (
			id, user_id, type, message, related_id, read, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		n.ID,
		n.UserID,
		string(n.Type),
		n.Message,
		n.RelatedID,
		n.Read,
		n.CreatedAt,
	)
	return err
}

func (r *NotificationsRepo) GetByID(ctx context.Context, id string) (notifications.Notification, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return notifications.Notification{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, type, message, related_id, read, created_at
		FROM notifications
		WHERE id = $1
	`, id)

	var n notifications.Notification
	var typ string
	if err := row.Scan(
		&n.ID,
		&n.UserID,
		&typ,
		&n.Message,
		&n.RelatedID,
		&n.Read,
		&n.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return notifications.Notification{}, ErrNotFound
		}
		return notifications.Notification{}, err
	}

	n.Type = notifications.Type(typ)
	return n, nil
}

func (r *NotificationsRepo) ListByUser(ctx context.Context, userID string, onlyUnread bool) ([]notifications.Notification, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, type, message, related_id, read, created_at
		FROM notifications
		WHERE user_id = $1
		  AND ($2 = false OR read = false)
		ORDER BY created_at DESC
	`, userID, onlyUnread)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]notifications.Notification, 0)
	for rows.Next() {
		var n notifications.Notification
		var typ string
		if err := rows.Scan(
			&n.ID,
			&n.UserID,
			&typ,
			&n.Message,
			&n.RelatedID,
			&n.Read,
			&n.CreatedAt,
		); err != nil {
			return nil, err
		}
		n.Type = notifications.Type(typ)
		out = append(out, n)
	}

	return out, rows.Err()
}

func (r *NotificationsRepo) MarkRead(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE notifications SET read = true WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *NotificationsRepo) MarkAllRead(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE notifications SET read = true WHERE user_id = $1 AND read = false
	`, userID)
	return err
}

func (r *NotificationsRepo) CountUnread(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(1) FROM notifications WHERE user_id = $1 AND read = false
	`, userID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
