package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"github.com/campushub/campushub-BE/internal/notification"
)

const (
	TargetTypeCollege = "college"
	TargetTypeBranch  = "branch"
	TargetTypeBatch   = "batch"
	TargetTypeUsers   = "users"
)

// TargetPayload is the JSON form of a notification.TargetDescriptor, flat so
// it can round-trip through Redis.
type TargetPayload struct {
	Type      string   `json:"type"`
	CollegeID string   `json:"college_id,omitempty"`
	BranchID  string   `json:"branch_id,omitempty"`
	BatchID   string   `json:"batch_id,omitempty"`
	UserIDs   []string `json:"user_ids,omitempty"`
}

// Descriptor converts the payload back into the closed descriptor variant.
func (p TargetPayload) Descriptor() (notification.TargetDescriptor, error) {
	switch p.Type {
	case TargetTypeCollege:
		return notification.TargetWhole{CollegeID: p.CollegeID}, nil
	case TargetTypeBranch:
		return notification.TargetBranch{BranchID: p.BranchID}, nil
	case TargetTypeBatch:
		return notification.TargetBatch{BatchID: p.BatchID}, nil
	case TargetTypeUsers:
		return notification.TargetUsers{UserIDs: p.UserIDs}, nil
	default:
		return nil, fmt.Errorf("unknown target type %q", p.Type)
	}
}

// PayloadSendAnnouncement contain all data of the task that we want to store in Redis.
type PayloadSendAnnouncement struct {
	AnnouncementCode string        `json:"announcement_code"`
	Target           TargetPayload `json:"target"`
	Title            string        `json:"title"`
	Body             string        `json:"body"`
}

func (distributor *RedisTaskDistributor) DistributeTaskSendAnnouncement(
	ctx context.Context,
	payload *PayloadSendAnnouncement,
	opts ...asynq.Option,
) error {
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal task payload: %w", err)
	}

	task := asynq.NewTask(TaskSendAnnouncement, jsonPayload, opts...)
	info, err := distributor.client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to enqueue task: %w", err)
	}

	log.Info().Str("type", task.Type()).Str("code", payload.AnnouncementCode).
		Str("queue", info.Queue).Int("max_retry", info.MaxRetry).Msg("task enqueued")

	return nil
}

// ProcessTaskSendAnnouncement fans one announcement out through the
// notification service. Resolution failures and malformed payloads are
// permanent; persistence failures leave the task retryable so the already
// written recipients get duplicate-free, at-least-once coverage from
// idempotent client handling.
func (processor *RedisTaskProcessor) ProcessTaskSendAnnouncement(
	ctx context.Context,
	task *asynq.Task,
) error {
	var payload PayloadSendAnnouncement
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", asynq.SkipRetry)
	}

	target, err := payload.Target.Descriptor()
	if err != nil {
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	data, err := json.Marshal(map[string]string{"announcement_code": payload.AnnouncementCode})
	if err != nil {
		return fmt.Errorf("failed to marshal announcement data: %w", asynq.SkipRetry)
	}

	content := notification.Content{
		Title:    payload.Title,
		Body:     payload.Body,
		Category: notification.CategoryAnnouncement,
		Payload:  data,
	}

	results, err := processor.notifier.SendAnnouncement(ctx, target, content)
	if err != nil {
		var resolutionErr *notification.ResolutionError
		if errors.As(err, &resolutionErr) {
			// An unknown scope will not become known by retrying.
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		return err
	}

	failed := 0
	for _, result := range results {
		if result.Err != nil {
			failed++
			log.Error().Err(result.Err).Str("code", payload.AnnouncementCode).
				Str("recipientID", result.RecipientID).Msg("announcement send failed for recipient")
		}
	}

	log.Info().Str("type", task.Type()).Str("code", payload.AnnouncementCode).
		Int("recipients", len(results)).Int("failed", failed).Msg("task processed")

	if failed > 0 {
		return fmt.Errorf("announcement %s failed for %d of %d recipients", payload.AnnouncementCode, failed, len(results))
	}
	return nil
}
