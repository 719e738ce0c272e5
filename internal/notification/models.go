package notification

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Category routes a notification on the client side. It never affects
// delivery semantics.
type Category string

const (
	CategoryDirectMessage Category = "direct_message"
	CategoryAttendance    Category = "attendance"
	CategoryChat          Category = "chat"
	CategoryJobPosting    Category = "job_posting"
	CategorySystem        Category = "system"
	CategoryAnnouncement  Category = "announcement"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryDirectMessage, CategoryAttendance, CategoryChat,
		CategoryJobPosting, CategorySystem, CategoryAnnouncement:
		return true
	}
	return false
}

// Notification is one durable record addressed to a single recipient.
// Only ReadAt is ever mutated after creation, and it is set at most once.
type Notification struct {
	ID          string          `json:"id"`
	RecipientID string          `json:"recipient_id"`
	Title       string          `json:"title"`
	Body        string          `json:"body"`
	Category    Category        `json:"category"`
	Payload     json.RawMessage `json:"payload,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	ReadAt      *time.Time      `json:"read_at,omitempty"`
}

// Content is the recipient-independent part of a send request.
type Content struct {
	Title    string
	Body     string
	Category Category
	Payload  json.RawMessage
}

func (c Content) Validate() error {
	if c.Title == "" {
		return errors.New("notification title must not be empty")
	}
	if c.Body == "" {
		return errors.New("notification body must not be empty")
	}
	if !c.Category.Valid() {
		return fmt.Errorf("unknown notification category %q", c.Category)
	}
	if len(c.Payload) > 0 && !json.Valid(c.Payload) {
		return errors.New("notification payload must be valid JSON")
	}
	return nil
}

// TargetDescriptor describes who an announcement is addressed to. The set of
// variants is closed: TargetWhole, TargetBranch, TargetBatch and TargetUsers.
type TargetDescriptor interface {
	targetScope() string
}

// TargetWhole addresses every member of a college.
type TargetWhole struct {
	CollegeID string
}

// TargetBranch addresses every member of one branch.
type TargetBranch struct {
	BranchID string
}

// TargetBatch addresses every member of one batch.
type TargetBatch struct {
	BatchID string
}

// TargetUsers addresses an explicit list of user IDs.
type TargetUsers struct {
	UserIDs []string
}

func (t TargetWhole) targetScope() string  { return fmt.Sprintf("college:%s", t.CollegeID) }
func (t TargetBranch) targetScope() string { return fmt.Sprintf("branch:%s", t.BranchID) }
func (t TargetBatch) targetScope() string  { return fmt.Sprintf("batch:%s", t.BatchID) }
func (t TargetUsers) targetScope() string  { return fmt.Sprintf("users[%d]", len(t.UserIDs)) }
