package notification

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	defaultPageSize = int32(20)
	maxPageSize     = int32(100)

	unreadCountTTL = 5 * time.Minute
)

// SendResult is the per-recipient slot of a batch send. Exactly one of
// Record or Err is set; Outcome is only meaningful when Record is set.
type SendResult struct {
	RecipientID string
	Record      *Notification
	Outcome     DeliveryOutcome
	Err         error
}

// Service orchestrates the notification pipeline: resolve targets, persist
// one record per recipient, then push each persisted record to the
// recipient's live sessions. Persistence strictly precedes dispatch within a
// recipient; across recipients there is no ordering at all.
type Service struct {
	store      Store
	resolver   *TargetResolver
	dispatcher *DeliveryDispatcher
	cache      *redis.Client // optional unread-count cache
}

func NewService(store Store, directory Directory, registry SessionRegistry, cache *redis.Client) *Service {
	return &Service{
		store:      store,
		resolver:   NewTargetResolver(directory),
		dispatcher: NewDeliveryDispatcher(registry),
		cache:      cache,
	}
}

// SendToOne persists a notification for recipientID and then dispatches it.
// The persisted record is the operation's success condition: it is returned
// together with the dispatch outcome, which is metadata, never an error.
func (s *Service) SendToOne(ctx context.Context, recipientID string, content Content) (*Notification, DeliveryOutcome, error) {
	if recipientID == "" {
		return nil, DeliveryOutcome{}, errors.New("recipient ID must not be empty")
	}
	if err := content.Validate(); err != nil {
		return nil, DeliveryOutcome{}, err
	}
	return s.sendOne(ctx, recipientID, content)
}

// sendOne runs one recipient's unit of work. The store write uses a context
// detached from caller cancellation so an in-flight create always completes;
// dispatch is abandoned instead once the caller context is done.
func (s *Service) sendOne(ctx context.Context, recipientID string, content Content) (*Notification, DeliveryOutcome, error) {
	n := &Notification{
		RecipientID: recipientID,
		Title:       content.Title,
		Body:        content.Body,
		Category:    content.Category,
		Payload:     content.Payload,
	}

	if err := s.store.CreateNotification(context.WithoutCancel(ctx), n); err != nil {
		return nil, DeliveryOutcome{}, &PersistenceError{Err: err}
	}
	s.invalidateUnreadCount(recipientID)

	if ctx.Err() != nil {
		return n, DeliveryOutcome{Status: DeliveryAbandoned}, nil
	}
	return n, s.dispatcher.Push(n), nil
}

// SendToMany persists and dispatches independently per recipient, in
// parallel. One recipient's failure never blocks or rolls back another's
// record; the call as a whole fails only for an empty recipient set.
// Cancellation stops launching new per-recipient units but lets launched
// ones finish persisting.
func (s *Service) SendToMany(ctx context.Context, recipientIDs []string, content Content) ([]SendResult, error) {
	if len(recipientIDs) == 0 {
		return nil, ErrNoRecipients
	}
	if err := content.Validate(); err != nil {
		return nil, err
	}

	results := make([]SendResult, len(recipientIDs))
	var wg sync.WaitGroup
	for i, recipientID := range recipientIDs {
		if err := ctx.Err(); err != nil {
			results[i] = SendResult{RecipientID: recipientID, Err: fmt.Errorf("send cancelled: %w", err)}
			continue
		}

		wg.Add(1)
		go func(i int, recipientID string) {
			defer wg.Done()
			record, outcome, err := s.sendOne(ctx, recipientID, content)
			results[i] = SendResult{RecipientID: recipientID, Record: record, Outcome: outcome, Err: err}
		}(i, recipientID)
	}
	wg.Wait()

	return results, nil
}

// SendAnnouncement resolves target and fans the content out to every
// resolved recipient. A resolution failure aborts the whole call before any
// record is written.
func (s *Service) SendAnnouncement(ctx context.Context, target TargetDescriptor, content Content) ([]SendResult, error) {
	recipientIDs, err := s.resolver.Resolve(ctx, target)
	if err != nil {
		return nil, err
	}
	return s.SendToMany(ctx, recipientIDs, content)
}

// MarkRead acknowledges a notification for its owning recipient. It is
// idempotent; repeated calls leave ReadAt at its first value.
func (s *Service) MarkRead(ctx context.Context, recipientID, notificationID string) error {
	if err := s.store.MarkNotificationRead(ctx, notificationID, recipientID); err != nil {
		return err
	}
	s.invalidateUnreadCount(recipientID)
	return nil
}

// ListForRecipient returns the recipient's records newest first.
func (s *Service) ListForRecipient(ctx context.Context, recipientID string, limit, offset int32) ([]Notification, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return s.store.ListNotificationsForRecipient(ctx, recipientID, limit, offset)
}

// UnreadCount returns the number of unread records for recipientID, served
// from the cache when warm.
func (s *Service) UnreadCount(ctx context.Context, recipientID string) (int64, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, unreadCountKey(recipientID)).Result()
		if err == nil {
			if count, parseErr := strconv.ParseInt(cached, 10, 64); parseErr == nil {
				return count, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Str("recipientID", recipientID).Msg("unread count cache read failed")
		}
	}

	count, err := s.store.CountUnreadNotifications(ctx, recipientID)
	if err != nil {
		return 0, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, unreadCountKey(recipientID), count, unreadCountTTL).Err(); err != nil {
			log.Warn().Err(err).Str("recipientID", recipientID).Msg("unread count cache write failed")
		}
	}
	return count, nil
}

// invalidateUnreadCount drops the cached count after any write that changes
// it. Cache errors only get logged; the store stays the source of truth.
func (s *Service) invalidateUnreadCount(recipientID string) {
	if s.cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.cache.Del(ctx, unreadCountKey(recipientID)).Err(); err != nil {
		log.Warn().Err(err).Str("recipientID", recipientID).Msg("failed to invalidate unread count cache")
	}
}

func unreadCountKey(recipientID string) string {
	return fmt.Sprintf("notifications:unread:%s", recipientID)
}
