package notification

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(store *memStore, directory Directory, registry SessionRegistry) *Service {
	if directory == nil {
		directory = &fakeDirectory{}
	}
	if registry == nil {
		registry = &fakeRegistry{}
	}
	return NewService(store, directory, registry, nil)
}

func TestSendToOnePersistsBeforeDispatch(t *testing.T) {
	store := newMemStore()
	session := &fakeSession{id: "s1"}
	service := newTestService(store, nil, &fakeRegistry{
		sessions: map[string][]Session{"alice": {session}},
	})

	record, outcome, err := service.SendToOne(context.Background(), "alice", testContent())
	require.NoError(t, err)
	require.NotNil(t, record)

	assert.NotEmpty(t, record.ID)
	assert.False(t, record.CreatedAt.IsZero())
	assert.Nil(t, record.ReadAt)
	assert.Equal(t, DeliveryDelivered, outcome.Status)

	// The pushed record is the persisted one.
	require.NotNil(t, store.get(record.ID))
	assert.Len(t, session.received, 1)
}

func TestSendToOneRejectsInvalidContent(t *testing.T) {
	store := newMemStore()
	service := newTestService(store, nil, nil)

	testCases := []struct {
		name    string
		content Content
	}{
		{name: "empty title", content: Content{Body: "b", Category: CategorySystem}},
		{name: "empty body", content: Content{Title: "t", Category: CategorySystem}},
		{name: "bad category", content: Content{Title: "t", Body: "b", Category: "carrier-pigeon"}},
		{name: "bad payload", content: Content{Title: "t", Body: "b", Category: CategorySystem, Payload: []byte("{")}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := service.SendToOne(context.Background(), "alice", tc.content)
			require.Error(t, err)
		})
	}
	assert.Zero(t, store.count())
}

func TestSendToManyOneRecordPerRecipient(t *testing.T) {
	store := newMemStore()
	service := newTestService(store, nil, nil)

	recipients := []string{"alice", "bob", "carol", "dave"}
	results, err := service.SendToMany(context.Background(), recipients, testContent())
	require.NoError(t, err)
	require.Len(t, results, len(recipients))

	seenIDs := make(map[string]bool)
	for i, result := range results {
		require.NoError(t, result.Err)
		require.NotNil(t, result.Record)
		assert.Equal(t, recipients[i], result.Record.RecipientID)
		assert.False(t, seenIDs[result.Record.ID], "notification IDs must be distinct")
		seenIDs[result.Record.ID] = true
	}
	assert.Equal(t, len(recipients), store.count())
}

func TestSendToManyEmptyRecipientSet(t *testing.T) {
	service := newTestService(newMemStore(), nil, nil)

	results, err := service.SendToMany(context.Background(), nil, testContent())
	assert.Nil(t, results)
	assert.ErrorIs(t, err, ErrNoRecipients)
}

func TestSendToManyIsolatesPersistenceFailures(t *testing.T) {
	store := newMemStore()
	service := newTestService(store, nil, nil)

	// First recipient persists fine, then the store starts failing.
	_, _, err := service.SendToOne(context.Background(), "warmup", testContent())
	require.NoError(t, err)

	store.failCreate = errors.New("storage unavailable")
	results, err := service.SendToMany(context.Background(), []string{"alice", "bob"}, testContent())
	require.NoError(t, err, "batch call reports failures per recipient, not wholesale")

	for _, result := range results {
		require.Error(t, result.Err)
		var persistenceErr *PersistenceError
		assert.ErrorAs(t, result.Err, &persistenceErr)
		assert.Nil(t, result.Record)
	}
}

func TestSendToManyUnknownRecipientIsolated(t *testing.T) {
	store := newMemStore()
	store.failCreateFor = map[string]error{"ghost": ErrRecipientNotFound}
	service := newTestService(store, nil, nil)

	results, err := service.SendToMany(context.Background(), []string{"alice", "ghost", "bob"}, testContent())
	require.NoError(t, err)
	require.Len(t, results, 3)

	require.NoError(t, results[0].Err)
	require.NoError(t, results[2].Err)
	assert.Equal(t, 2, store.count())

	// The bad identity stays identifiable through the persistence wrapper.
	var persistenceErr *PersistenceError
	require.ErrorAs(t, results[1].Err, &persistenceErr)
	assert.ErrorIs(t, results[1].Err, ErrRecipientNotFound)
	assert.Nil(t, results[1].Record)
}

func TestCancellationAfterPersistAbandonsDispatch(t *testing.T) {
	store := newMemStore()
	session := &fakeSession{id: "s1"}
	service := newTestService(store, nil, &fakeRegistry{
		sessions: map[string][]Session{"alice": {session}},
	})

	ctx, cancel := context.WithCancel(context.Background())
	store.onCreate = cancel

	record, outcome, err := service.SendToOne(ctx, "alice", testContent())
	require.NoError(t, err)
	require.NotNil(t, record)

	// The record is durable, but dispatch was abandoned rather than
	// reported as a no-session skip.
	assert.Equal(t, DeliveryAbandoned, outcome.Status)
	assert.Empty(t, session.received)
	require.NotNil(t, store.get(record.ID))
}

func TestSendToManyCancelledContextLaunchesNothing(t *testing.T) {
	store := newMemStore()
	service := newTestService(store, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := service.SendToMany(ctx, []string{"alice", "bob"}, testContent())
	require.NoError(t, err)
	for _, result := range results {
		assert.ErrorIs(t, result.Err, context.Canceled)
	}
	assert.Zero(t, store.count())
}

func TestSendAnnouncementIndependentRecords(t *testing.T) {
	store := newMemStore()
	directory := &fakeDirectory{
		batches: map[string][]string{"2026-cs": {"alice", "bob", "carol"}},
	}
	service := newTestService(store, directory, nil)

	results, err := service.SendAnnouncement(context.Background(), TargetBatch{BatchID: "2026-cs"}, Content{
		Title:    "Campus closed",
		Body:     "The campus is closed on Friday.",
		Category: CategoryAnnouncement,
	})
	require.NoError(t, err)
	require.Len(t, results, 3)

	// Marking one recipient's record read leaves the siblings untouched.
	require.NoError(t, service.MarkRead(context.Background(), results[0].RecipientID, results[0].Record.ID))

	assert.NotNil(t, store.get(results[0].Record.ID).ReadAt)
	assert.Nil(t, store.get(results[1].Record.ID).ReadAt)
	assert.Nil(t, store.get(results[2].Record.ID).ReadAt)
}

func TestSendAnnouncementUnknownScopeWritesNothing(t *testing.T) {
	store := newMemStore()
	service := newTestService(store, &fakeDirectory{branches: map[string][]string{}}, nil)

	results, err := service.SendAnnouncement(context.Background(), TargetBranch{BranchID: "ghost"}, testContent())
	assert.Nil(t, results)

	var resolutionErr *ResolutionError
	require.ErrorAs(t, err, &resolutionErr)
	assert.Zero(t, store.count(), "a failed resolution must not create any record")
}

func TestMarkReadIsIdempotent(t *testing.T) {
	store := newMemStore()
	service := newTestService(store, nil, nil)

	record, _, err := service.SendToOne(context.Background(), "alice", testContent())
	require.NoError(t, err)

	require.NoError(t, service.MarkRead(context.Background(), "alice", record.ID))
	firstReadAt := store.get(record.ID).ReadAt
	require.NotNil(t, firstReadAt)

	require.NoError(t, service.MarkRead(context.Background(), "alice", record.ID))
	assert.Equal(t, firstReadAt, store.get(record.ID).ReadAt)
}

func TestMarkReadWrongRecipient(t *testing.T) {
	store := newMemStore()
	service := newTestService(store, nil, nil)

	record, _, err := service.SendToOne(context.Background(), "alice", testContent())
	require.NoError(t, err)

	err = service.MarkRead(context.Background(), "mallory", record.ID)
	assert.ErrorIs(t, err, ErrNotificationNotFound)
	assert.Nil(t, store.get(record.ID).ReadAt, "a rejected mark-read must not mutate the record")
}

func TestSkippedDeliveryKeepsRecordRetrievable(t *testing.T) {
	store := newMemStore()
	service := newTestService(store, nil, &fakeRegistry{})

	record, outcome, err := service.SendToOne(context.Background(), "offline-user", testContent())
	require.NoError(t, err)
	assert.Equal(t, DeliverySkipped, outcome.Status)

	listed, err := service.ListForRecipient(context.Background(), "offline-user", 10, 0)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, record.ID, listed[0].ID)
}

func TestPartialDeliveryFailureLeavesRecordIntact(t *testing.T) {
	store := newMemStore()
	service := newTestService(store, nil, &fakeRegistry{
		sessions: map[string][]Session{"alice": {
			&fakeSession{id: "s1"},
			&fakeSession{id: "s2", fail: true},
		}},
	})

	record, outcome, err := service.SendToOne(context.Background(), "alice", testContent())
	require.NoError(t, err)
	assert.Equal(t, DeliveryPartiallyFailed, outcome.Status)

	stored := store.get(record.ID)
	require.NotNil(t, stored)
	assert.Nil(t, stored.ReadAt)
	assert.Equal(t, record.Title, stored.Title)
}

func TestListForRecipientNewestFirst(t *testing.T) {
	store := newMemStore()
	service := newTestService(store, nil, nil)

	first, _, err := service.SendToOne(context.Background(), "alice", testContent())
	require.NoError(t, err)
	second, _, err := service.SendToOne(context.Background(), "alice", testContent())
	require.NoError(t, err)

	listed, err := service.ListForRecipient(context.Background(), "alice", 10, 0)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, second.ID, listed[0].ID)
	assert.Equal(t, first.ID, listed[1].ID)

	// A later send shows up at the head of a repeated call.
	third, _, err := service.SendToOne(context.Background(), "alice", testContent())
	require.NoError(t, err)

	listed, err = service.ListForRecipient(context.Background(), "alice", 10, 0)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, third.ID, listed[0].ID)
	for i := 1; i < len(listed); i++ {
		assert.True(t, listed[i-1].CreatedAt.After(listed[i].CreatedAt))
	}
}

func TestUnreadCountWithoutCache(t *testing.T) {
	store := newMemStore()
	service := newTestService(store, nil, nil)

	record, _, err := service.SendToOne(context.Background(), "alice", testContent())
	require.NoError(t, err)
	_, _, err = service.SendToOne(context.Background(), "alice", testContent())
	require.NoError(t, err)

	count, err := service.UnreadCount(context.Background(), "alice")
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	require.NoError(t, service.MarkRead(context.Background(), "alice", record.ID))
	count, err = service.UnreadCount(context.Background(), "alice")
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}
