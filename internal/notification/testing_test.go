package notification

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// memStore is an in-memory Store honoring the same contract as the Postgres
// implementation. Creation times increase strictly so list ordering is
// deterministic.
type memStore struct {
	mu      sync.Mutex
	records map[string]*Notification
	seq     int

	failCreate    error
	failCreateFor map[string]error
	onCreate      func()
}

func newMemStore() *memStore {
	return &memStore{records: make(map[string]*Notification)}
}

func (s *memStore) CreateNotification(_ context.Context, n *Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failCreate != nil {
		return s.failCreate
	}
	if err, ok := s.failCreateFor[n.RecipientID]; ok {
		return err
	}
	if s.onCreate != nil {
		s.onCreate()
	}

	s.seq++
	n.ID = uuid.NewString()
	n.CreatedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(s.seq) * time.Second)

	stored := *n
	s.records[n.ID] = &stored
	return nil
}

func (s *memStore) MarkNotificationRead(_ context.Context, notificationID, recipientID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[notificationID]
	if !ok || record.RecipientID != recipientID {
		return ErrNotificationNotFound
	}
	if record.ReadAt == nil {
		now := time.Now()
		record.ReadAt = &now
	}
	return nil
}

func (s *memStore) ListNotificationsForRecipient(_ context.Context, recipientID string, limit, offset int32) ([]Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Notification
	for _, record := range s.records {
		if record.RecipientID == recipientID {
			out = append(out, *record)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if int(offset) >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if int(limit) < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (s *memStore) CountUnreadNotifications(_ context.Context, recipientID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total int64
	for _, record := range s.records {
		if record.RecipientID == recipientID && record.ReadAt == nil {
			total++
		}
	}
	return total, nil
}

func (s *memStore) get(id string) *Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	if record, ok := s.records[id]; ok {
		copied := *record
		return &copied
	}
	return nil
}

func (s *memStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// fakeDirectory resolves scopes from fixed maps.
type fakeDirectory struct {
	colleges map[string][]string
	branches map[string][]string
	batches  map[string][]string
}

func (d *fakeDirectory) CollegeMemberIDs(_ context.Context, collegeID string) ([]string, error) {
	return d.members(d.colleges, "college", collegeID)
}

func (d *fakeDirectory) BranchMemberIDs(_ context.Context, branchID string) ([]string, error) {
	return d.members(d.branches, "branch", branchID)
}

func (d *fakeDirectory) BatchMemberIDs(_ context.Context, batchID string) ([]string, error) {
	return d.members(d.batches, "batch", batchID)
}

func (d *fakeDirectory) members(scopes map[string][]string, kind, id string) ([]string, error) {
	members, ok := scopes[id]
	if !ok {
		return nil, fmt.Errorf("%s %q: %w", kind, id, ErrScopeNotFound)
	}
	return members, nil
}

// fakeSession records pushed payloads and optionally fails every push.
type fakeSession struct {
	id       string
	fail     bool
	mu       sync.Mutex
	received [][]byte
}

func (s *fakeSession) ID() string { return s.id }

func (s *fakeSession) Send(payload []byte) error {
	if s.fail {
		return errors.New("session closed")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.received = append(s.received, payload)
	return nil
}

// fakeRegistry maps recipient IDs to fixed session lists.
type fakeRegistry struct {
	sessions map[string][]Session
}

func (r *fakeRegistry) LiveSessions(recipientID string) []Session {
	return r.sessions[recipientID]
}

func testContent() Content {
	return Content{
		Title:    "Attendance updated",
		Body:     "Your attendance for CS101 was marked present.",
		Category: CategoryAttendance,
	}
}
