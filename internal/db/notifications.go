package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/campushub/campushub-BE/internal/notification"
)

const createNotificationQuery = `
INSERT INTO notifications (id, recipient_id, title, body, category, payload)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING created_at`

// CreateNotification persists n as a single atomic insert, assigning its ID
// here and its creation time in the database.
func (store *SQLStore) CreateNotification(ctx context.Context, n *notification.Notification) error {
	n.ID = uuid.NewString()

	row := store.connPool.QueryRow(ctx, createNotificationQuery,
		n.ID,
		n.RecipientID,
		n.Title,
		n.Body,
		n.Category,
		n.Payload,
	)
	if err := row.Scan(&n.CreatedAt); err != nil {
		return mapCreateNotificationError(n.RecipientID, err)
	}

	return nil
}

const markNotificationReadQuery = `
UPDATE notifications
SET read_at = now()
WHERE id = $1 AND recipient_id = $2 AND read_at IS NULL`

// MarkNotificationRead sets read_at exactly once. The single-statement
// update is atomic per row, so concurrent acknowledgments of the same
// notification settle on one timestamp. An already-read record is a no-op;
// a record the recipient does not own reports ErrNotificationNotFound.
func (store *SQLStore) MarkNotificationRead(ctx context.Context, notificationID, recipientID string) error {
	tag, err := store.connPool.Exec(ctx, markNotificationReadQuery, notificationID, recipientID)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	// Zero rows updated: either the record is already read or it does not
	// exist for this recipient.
	var exists bool
	err = store.connPool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM notifications WHERE id = $1 AND recipient_id = $2)`,
		notificationID, recipientID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check notification existence: %w", err)
	}
	if !exists {
		return notification.ErrNotificationNotFound
	}

	return nil
}

const listNotificationsQuery = `
SELECT id, recipient_id, title, body, category, payload, created_at, read_at
FROM notifications
WHERE recipient_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2 OFFSET $3`

// ListNotificationsForRecipient returns one page of the recipient's
// notifications, newest first.
func (store *SQLStore) ListNotificationsForRecipient(ctx context.Context, recipientID string, limit, offset int32) ([]notification.Notification, error) {
	rows, err := store.connPool.Query(ctx, listNotificationsQuery, recipientID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	notifications := make([]notification.Notification, 0, limit)
	for rows.Next() {
		var n notification.Notification
		err = rows.Scan(
			&n.ID,
			&n.RecipientID,
			&n.Title,
			&n.Body,
			&n.Category,
			&n.Payload,
			&n.CreatedAt,
			&n.ReadAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification row: %w", err)
		}
		notifications = append(notifications, n)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read notification rows: %w", err)
	}

	return notifications, nil
}

// CountUnreadNotifications counts the recipient's notifications that have
// not been marked as read.
func (store *SQLStore) CountUnreadNotifications(ctx context.Context, recipientID string) (int64, error) {
	var total int64
	err := store.connPool.QueryRow(ctx,
		`SELECT count(*) FROM notifications WHERE recipient_id = $1 AND read_at IS NULL`,
		recipientID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	return total, nil
}
