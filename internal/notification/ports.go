package notification

import (
	"context"
)

// Store is the durable record store for notifications. Create assigns the
// record's ID and CreatedAt and must be atomic per record. MarkRead sets
// ReadAt only if it is absent and only for the owning recipient; it returns
// ErrNotificationNotFound when no such record exists for that recipient and
// nil when the record was already read.
type Store interface {
	CreateNotification(ctx context.Context, n *Notification) error
	MarkNotificationRead(ctx context.Context, notificationID, recipientID string) error
	ListNotificationsForRecipient(ctx context.Context, recipientID string, limit, offset int32) ([]Notification, error)
	CountUnreadNotifications(ctx context.Context, recipientID string) (int64, error)
}

// Directory resolves scope IDs to member user IDs. Implementations return
// ErrScopeNotFound for an unknown ID. Results reflect directory state at
// call time; nothing is cached here.
type Directory interface {
	CollegeMemberIDs(ctx context.Context, collegeID string) ([]string, error)
	BranchMemberIDs(ctx context.Context, branchID string) ([]string, error)
	BatchMemberIDs(ctx context.Context, batchID string) ([]string, error)
}

// Session is one live transport connection capable of receiving a push.
type Session interface {
	ID() string
	Send(payload []byte) error
}

// SessionRegistry maps a recipient to their currently live sessions. The
// registry is read-only from this package's perspective.
type SessionRegistry interface {
	LiveSessions(recipientID string) []Session
}
