package db

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/campushub/campushub-BE/internal/notification"
)

const (
	ForeignKeyViolationCode = "23503"
)

const (
	NotificationsRecipientFKConstraint = "notifications_recipient_id_fkey"
)

// ErrorDescription returns the error code and constraint name from a Postgres error.
func ErrorDescription(err error) (errCode string, constraintName string) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName
	}

	return
}

// mapCreateNotificationError turns a recipient foreign-key violation into
// the typed unknown-recipient error, so a batch send reports a bad identity
// per recipient instead of an opaque storage failure.
func mapCreateNotificationError(recipientID string, err error) error {
	errCode, constraintName := ErrorDescription(err)
	if errCode == ForeignKeyViolationCode && constraintName == NotificationsRecipientFKConstraint {
		return fmt.Errorf("recipient %q: %w", recipientID, notification.ErrRecipientNotFound)
	}

	return fmt.Errorf("failed to insert notification: %w", err)
}
