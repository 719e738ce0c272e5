package notification

import (
	"encoding/json"

	"github.com/rs/zerolog/log"
)

type DeliveryStatus string

const (
	// DeliverySkipped means the recipient had no live sessions. The record
	// stays durable for later retrieval, so this is not a failure.
	DeliverySkipped         DeliveryStatus = "skipped"
	DeliveryDelivered       DeliveryStatus = "delivered"
	DeliveryPartiallyFailed DeliveryStatus = "partially_failed"
	DeliveryAllFailed       DeliveryStatus = "all_failed"
	// DeliveryAbandoned means the record was persisted but dispatch was
	// never attempted because the caller cancelled. Like a skip, the
	// record stays retrievable.
	DeliveryAbandoned DeliveryStatus = "abandoned"
)

// SessionFailure records one session that rejected a push.
type SessionFailure struct {
	SessionID string
	Err       error
}

// DeliveryOutcome is the per-recipient result of a dispatch attempt. It is
// metadata attached to a persisted record, never an error: a missed push is
// recoverable by the client fetching its history.
type DeliveryOutcome struct {
	Status   DeliveryStatus
	Sessions int
	Failures []SessionFailure
}

// pushFrame is the wire shape written to a live session. The type tag lets
// clients tell notification pushes apart from other message kinds on the
// same transport.
type pushFrame struct {
	Type string        `json:"type"`
	Data *Notification `json:"data"`
}

// DeliveryDispatcher pushes persisted records to live sessions. It never
// mutates the record store and never retries.
type DeliveryDispatcher struct {
	registry SessionRegistry
}

func NewDeliveryDispatcher(registry SessionRegistry) *DeliveryDispatcher {
	return &DeliveryDispatcher{registry: registry}
}

// Push attempts delivery of n to every live session of its recipient. A
// failed push to one session does not abort pushes to the others.
func (d *DeliveryDispatcher) Push(n *Notification) DeliveryOutcome {
	sessions := d.registry.LiveSessions(n.RecipientID)
	if len(sessions) == 0 {
		return DeliveryOutcome{Status: DeliverySkipped}
	}

	frame, err := json.Marshal(pushFrame{Type: "notification", Data: n})
	if err != nil {
		// Payload is validated as JSON before persistence, so this only
		// happens for a corrupted record.
		log.Error().Err(err).Str("notificationID", n.ID).Msg("failed to encode notification frame")
		failures := make([]SessionFailure, len(sessions))
		for i, s := range sessions {
			failures[i] = SessionFailure{SessionID: s.ID(), Err: err}
		}
		return DeliveryOutcome{Status: DeliveryAllFailed, Sessions: len(sessions), Failures: failures}
	}

	outcome := DeliveryOutcome{Sessions: len(sessions)}
	for _, s := range sessions {
		if err := s.Send(frame); err != nil {
			log.Warn().Err(err).
				Str("notificationID", n.ID).
				Str("recipientID", n.RecipientID).
				Str("sessionID", s.ID()).
				Msg("failed to push notification to session")
			outcome.Failures = append(outcome.Failures, SessionFailure{SessionID: s.ID(), Err: err})
		}
	}

	switch len(outcome.Failures) {
	case 0:
		outcome.Status = DeliveryDelivered
	case len(sessions):
		outcome.Status = DeliveryAllFailed
	default:
		outcome.Status = DeliveryPartiallyFailed
	}
	return outcome
}
