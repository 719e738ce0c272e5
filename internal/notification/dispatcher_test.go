package notification

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecord() *Notification {
	return &Notification{
		ID:          "n-1",
		RecipientID: "alice",
		Title:       "New message",
		Body:        "You have a new chat message.",
		Category:    CategoryChat,
		CreatedAt:   time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestPushNoLiveSessionsIsSkipped(t *testing.T) {
	dispatcher := NewDeliveryDispatcher(&fakeRegistry{sessions: map[string][]Session{}})

	outcome := dispatcher.Push(testRecord())
	assert.Equal(t, DeliverySkipped, outcome.Status)
	assert.Zero(t, outcome.Sessions)
	assert.Empty(t, outcome.Failures)
}

func TestPushDeliveredToAllSessions(t *testing.T) {
	s1 := &fakeSession{id: "s1"}
	s2 := &fakeSession{id: "s2"}
	dispatcher := NewDeliveryDispatcher(&fakeRegistry{
		sessions: map[string][]Session{"alice": {s1, s2}},
	})

	outcome := dispatcher.Push(testRecord())
	assert.Equal(t, DeliveryDelivered, outcome.Status)
	assert.Equal(t, 2, outcome.Sessions)
	assert.Len(t, s1.received, 1)
	assert.Len(t, s2.received, 1)
}

func TestPushPartialFailure(t *testing.T) {
	healthy := &fakeSession{id: "s1"}
	closed := &fakeSession{id: "s2", fail: true}
	dispatcher := NewDeliveryDispatcher(&fakeRegistry{
		sessions: map[string][]Session{"alice": {healthy, closed}},
	})

	outcome := dispatcher.Push(testRecord())
	assert.Equal(t, DeliveryPartiallyFailed, outcome.Status)
	require.Len(t, outcome.Failures, 1)
	assert.Equal(t, "s2", outcome.Failures[0].SessionID)

	// The failure must not have blocked delivery to the healthy session.
	assert.Len(t, healthy.received, 1)
}

func TestPushAllSessionsFailed(t *testing.T) {
	dispatcher := NewDeliveryDispatcher(&fakeRegistry{
		sessions: map[string][]Session{"alice": {
			&fakeSession{id: "s1", fail: true},
			&fakeSession{id: "s2", fail: true},
		}},
	})

	outcome := dispatcher.Push(testRecord())
	assert.Equal(t, DeliveryAllFailed, outcome.Status)
	assert.Len(t, outcome.Failures, 2)
}

func TestPushWireFrameShape(t *testing.T) {
	session := &fakeSession{id: "s1"}
	dispatcher := NewDeliveryDispatcher(&fakeRegistry{
		sessions: map[string][]Session{"alice": {session}},
	})

	record := testRecord()
	dispatcher.Push(record)

	require.Len(t, session.received, 1)

	var frame struct {
		Type string        `json:"type"`
		Data *Notification `json:"data"`
	}
	require.NoError(t, json.Unmarshal(session.received[0], &frame))
	assert.Equal(t, "notification", frame.Type)
	require.NotNil(t, frame.Data)
	assert.Equal(t, record.ID, frame.Data.ID)
	assert.Equal(t, record.RecipientID, frame.Data.RecipientID)
	assert.Equal(t, record.Category, frame.Data.Category)
}
